package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/team4/foodflow/internal/config"
)

// commonFlags are the flags every pipeline step shares. Precedence, lowest to
// highest: built-in defaults, config file, environment, CLI flags.
type commonFlags struct {
	configPath string
	dataDir    string
	resultsDir string
	seed       int64
	verbose    bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().StringVar(&f.dataDir, "data-dir", "", "Directory holding inventory snapshots and places CSVs")
	cmd.Flags().StringVar(&f.resultsDir, "results-dir", "", "Directory for run artifacts")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Fixed rng seed for reproducible runs (default: time-based)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed step output")
}

// resolve builds the effective configuration for one invocation.
func (f *commonFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	// Only override when the flag was explicitly set
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if cmd.Flags().Changed("results-dir") {
		cfg.ResultsDir = f.resultsDir
	}
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}

	cfg = cfg.MergeWithDefaults(config.Default())

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// requireAPIKey returns the Gemini API key or a usable error naming its
// sources. ApplyEnv has already overlaid GEMINI_API_KEY by the time this is
// called.
func requireAPIKey(cfg config.Config) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	return "", fmt.Errorf("GEMINI_API_KEY environment variable or `api_key` config value is required")
}
