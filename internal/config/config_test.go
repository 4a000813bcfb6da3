package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, `{
		"temperature": 0.5,
		"sell_probability": 0.9,
		"seed": 42,
		"brand": "Bistro Z"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Temperature)
	assert.Equal(t, 0.9, cfg.SellProbability)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.Equal(t, "Bistro Z", cfg.Brand)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConfigFile(t, `{not json`)
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"zero temperature is valid (greedy)", func(c *Config) { c.Temperature = 0 }, false},
		{"negative temperature is valid (greedy)", func(c *Config) { c.Temperature = -1 }, false},
		{"NaN temperature rejected", func(c *Config) { c.Temperature = math.NaN() }, true},
		{"infinite temperature rejected", func(c *Config) { c.Temperature = math.Inf(1) }, true},
		{"sell probability above one rejected", func(c *Config) { c.SellProbability = 1.5 }, true},
		{"negative sell probability rejected", func(c *Config) { c.SellProbability = -0.2 }, true},
		{"boundary sell probability valid", func(c *Config) { c.SellProbability = 1.0 }, false},
		{"empty data dir rejected", func(c *Config) { c.DataDir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("FOODFLOW_TEMPERATURE", "0.3")
	t.Setenv("FOODFLOW_SELL_PROBABILITY", "0.4")
	t.Setenv("FOODFLOW_SEED", "7")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 0.3, cfg.Temperature)
	assert.Equal(t, 0.4, cfg.SellProbability)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(7), *cfg.Seed)
	assert.Equal(t, "test-key", cfg.APIKey)
}

func TestConfig_ApplyEnv_ZeroSurvivesMerge(t *testing.T) {
	t.Setenv("FOODFLOW_TEMPERATURE", "0")
	t.Setenv("FOODFLOW_SELL_PROBABILITY", "0")

	var cfg Config
	require.NoError(t, cfg.ApplyEnv())
	merged := cfg.MergeWithDefaults(Default())

	// 0 from the environment means greedy selection and never-sell; the
	// defaults merge must not swallow it.
	assert.Equal(t, 0.0, merged.Temperature)
	assert.Equal(t, 0.0, merged.SellProbability)
}

func TestConfig_ApplyEnv_BadValues(t *testing.T) {
	t.Setenv("FOODFLOW_TEMPERATURE", "warm")
	cfg := Default()
	assert.Error(t, cfg.ApplyEnv())
}

func TestConfig_MergeWithDefaults(t *testing.T) {
	cfg := Config{Brand: "Other Place", SellProbability: 0.2}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, "Other Place", merged.Brand)
	assert.Equal(t, 0.2, merged.SellProbability)
	assert.Equal(t, DefaultTemperature, merged.Temperature)
	assert.Equal(t, DefaultDataDir, merged.DataDir)
	assert.Equal(t, DefaultContactPhone, merged.ContactPhone)
}

func TestConfig_RandomSourceSeeded(t *testing.T) {
	seed := int64(42)
	cfg := Default()
	cfg.Seed = &seed

	first := cfg.RandomSource()
	second := cfg.RandomSource()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.Float64(), second.Float64())
	}
}
