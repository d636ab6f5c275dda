package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Load reads configuration from path (if non-empty and present), falling
// back to Default(), then always applies environment variable overrides.
// Mirrors the teacher's LoadConfigOrDefault -> MergeWithEnvironment chain.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v := viper.New()
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file %s: %w", path, err)
			}
			if err := v.Unmarshal(cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	MergeWithEnvironment(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeWithEnvironment applies TACSIM_* environment variable overrides on
// top of a loaded or default configuration.
func MergeWithEnvironment(cfg *Config) {
	if v := os.Getenv("TACSIM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TACSIM_SCENARIO_PATH"); v != "" {
		cfg.ScenarioPath = v
	}
	if v := os.Getenv("TACSIM_BASE_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.Runner.BaseSeed = uint32(n)
		}
	}
	if v := os.Getenv("TACSIM_NUM_RUNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Runner.NumRuns = n
		}
	}
	if v := os.Getenv("TACSIM_SOCKET_PATH"); v != "" {
		cfg.Distributed.SocketPath = v
	}
}

// MergeWithCLIOverrides applies explicit CLI flag values, taking
// precedence over file and environment values. Zero values mean "flag not
// set" and are skipped, matching cobra/pflag's changed-detection idiom.
func MergeWithCLIOverrides(cfg *Config, overrides map[string]interface{}) {
	for key, value := range overrides {
		switch key {
		case "scenario":
			if s, ok := value.(string); ok && s != "" {
				cfg.ScenarioPath = s
			}
		case "seed":
			if n, ok := value.(uint32); ok && n > 0 {
				cfg.Runner.BaseSeed = n
			}
		case "num_runs":
			if n, ok := value.(int); ok && n > 0 {
				cfg.Runner.NumRuns = n
			}
		case "max_sim_time":
			if f, ok := value.(float64); ok && f > 0 {
				cfg.Runner.MaxSimTime = f
			}
		case "dt":
			if f, ok := value.(float64); ok && f > 0 {
				cfg.Runner.Dt = f
			}
		case "sample_interval":
			if f, ok := value.(float64); ok && f > 0 {
				cfg.Replay.SampleInterval = f
			}
		case "output":
			if s, ok := value.(string); ok && s != "" {
				cfg.Replay.OutputPath = s
			}
		case "socket":
			if s, ok := value.(string); ok && s != "" {
				cfg.Distributed.SocketPath = s
			}
		case "workers":
			if n, ok := value.(int); ok && n > 0 {
				cfg.Distributed.WorkerCount = n
			}
		case "no_color":
			if b, ok := value.(bool); ok && b {
				cfg.NoColor = b
			}
		}
	}
}
