// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults for the decisioning knobs.
const (
	DefaultTemperature     = 0.9
	DefaultSellProbability = 0.7
	DefaultBrand           = "HaSalon"
	DefaultCity            = "Tel Aviv"
	DefaultContactPhone    = "052-1234567"
	DefaultDataDir         = "data"
	DefaultResultsDir      = "results"
)

// Config represents the run configuration. It can be loaded from a JSON file,
// overridden by environment variables, and finally by CLI flags.
type Config struct {
	// Paths
	DataDir    string `json:"data_dir,omitempty"`    // Snapshot inputs (inventory, CSVs)
	ResultsDir string `json:"results_dir,omitempty"` // Per-run JSON artifacts

	// Identity used in outbound messages
	Brand        string `json:"brand,omitempty"`         // Our restaurant's name
	City         string `json:"city,omitempty"`          // Our restaurant's city
	ContactPhone string `json:"contact_phone,omitempty"` // Phone stamped into outreach messages

	// Decisioning knobs
	Temperature     float64 `json:"temperature,omitempty"`                             // Softmax temperature; <= 0 is greedy
	SellProbability float64 `json:"sell_probability,omitempty" validate:"gte=0,lte=1"` // Chance a non-cooked item is sold
	Seed            *int64  `json:"seed,omitempty"`                                    // Fixed rng seed; nil means time-based

	// External services
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // Postgres (pgvector) connection URL
	RedisAddr   string `json:"redis_addr,omitempty"`   // Optional embedding cache

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed step output

	// Set markers recorded by ApplyEnv. A zero temperature or sell
	// probability from the environment is an explicit choice (greedy
	// selection, never sell) and must survive the defaults merge the same
	// way an explicit CLI flag does.
	temperatureSet     bool
	sellProbabilitySet bool
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		DataDir:         DefaultDataDir,
		ResultsDir:      DefaultResultsDir,
		Brand:           DefaultBrand,
		City:            DefaultCity,
		ContactPhone:    DefaultContactPhone,
		Temperature:     DefaultTemperature,
		SellProbability: DefaultSellProbability,
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays environment variables onto the config. Env values win
// over file values; CLI flags are applied after this and win over both.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("FOODFLOW_CONTACT_PHONE"); v != "" {
		c.ContactPhone = v
	}
	if v := os.Getenv("FOODFLOW_BRAND"); v != "" {
		c.Brand = v
	}
	if v := os.Getenv("FOODFLOW_CITY"); v != "" {
		c.City = v
	}
	if v := os.Getenv("FOODFLOW_TEMPERATURE"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid FOODFLOW_TEMPERATURE %q: %w", v, err)
		}
		c.Temperature = parsed
		c.temperatureSet = true
	}
	if v := os.Getenv("FOODFLOW_SELL_PROBABILITY"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid FOODFLOW_SELL_PROBABILITY %q: %w", v, err)
		}
		c.SellProbability = parsed
		c.sellProbabilitySet = true
	}
	if v := os.Getenv("FOODFLOW_SEED"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid FOODFLOW_SEED %q: %w", v, err)
		}
		c.Seed = &parsed
	}
	return nil
}

// Validate checks that the configuration has valid values. Out-of-range
// probabilities are rejected, never clamped.
func (c *Config) Validate() error {
	if math.IsNaN(c.Temperature) || math.IsInf(c.Temperature, 0) {
		return fmt.Errorf("config error: 'temperature' must be finite, got %v", c.Temperature)
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: 'sell_probability' must be within [0,1]: %w", err)
	}

	if c.DataDir == "" {
		return fmt.Errorf("config error: 'data_dir' must not be empty")
	}
	if c.ResultsDir == "" {
		return fmt.Errorf("config error: 'results_dir' must not be empty")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. A zero temperature from the config file is treated as unset;
// greedy selection (temperature 0) is requested either via the --temperature
// CLI flag, which is applied after merging, or via FOODFLOW_TEMPERATURE,
// which ApplyEnv marks as explicitly set.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.ResultsDir == "" {
		result.ResultsDir = defaults.ResultsDir
	}
	if result.Brand == "" {
		result.Brand = defaults.Brand
	}
	if result.City == "" {
		result.City = defaults.City
	}
	if result.ContactPhone == "" {
		result.ContactPhone = defaults.ContactPhone
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.Temperature == 0 && !c.temperatureSet {
		result.Temperature = defaults.Temperature
	}
	if result.SellProbability == 0 && !c.sellProbabilitySet {
		result.SellProbability = defaults.SellProbability
	}
	if result.Seed == nil {
		result.Seed = defaults.Seed
	}

	return result
}

// RandomSource builds the single random source threaded through a run. A set
// seed makes the whole run reproducible; otherwise the clock seeds it.
func (c *Config) RandomSource() *rand.Rand {
	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	return rand.New(rand.NewSource(seed))
}
