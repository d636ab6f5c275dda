// Package config holds the simulator's configuration tree and its
// load-file-or-default-or-fallback chain, adapted from the Counter-UAS
// simulation's cmd/drone-swarm/config package: the same nested-struct,
// yaml-tagged shape and override order (file -> environment -> CLI
// flags), generalized from swarm/defense parameters to this spec's
// runner/replay/distributed sections.
package config

// RunnerConfig configures the Monte-Carlo batch mode (spec.md §4.8).
type RunnerConfig struct {
	NumRuns     int     `yaml:"num_runs"`
	BaseSeed    uint32  `yaml:"base_seed"`
	MaxSimTime  float64 `yaml:"max_sim_time"`
	Dt          float64 `yaml:"dt"`
	Verbose     bool    `yaml:"verbose"`
	Parallelism int     `yaml:"parallelism"`
}

// ReplayConfig configures the single-run trajectory recorder (spec.md
// §4.9).
type ReplayConfig struct {
	SampleInterval float64 `yaml:"sample_interval"`
	OutputPath     string  `yaml:"output_path"`
}

// DistributedConfig configures the coordinator/worker barrier mode
// (spec.md §4.10).
type DistributedConfig struct {
	SocketPath    string  `yaml:"socket_path"`
	WorkerCount   int     `yaml:"worker_count"`
	SyncInterval  float64 `yaml:"sync_interval"`
	StepTimeoutMs int     `yaml:"step_timeout_ms"`
}

// Config is the full simulator configuration tree.
type Config struct {
	ScenarioPath string             `yaml:"scenario_path"`
	LogLevel     string             `yaml:"log_level"`
	NoColor      bool               `yaml:"no_color"`
	Runner       RunnerConfig       `yaml:"runner"`
	Replay       ReplayConfig       `yaml:"replay"`
	Distributed  DistributedConfig  `yaml:"distributed"`
}

// Default returns the built-in default configuration used when no config
// file, environment variable, or CLI flag supplies a value.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Runner: RunnerConfig{
			NumRuns:     100,
			BaseSeed:    1,
			MaxSimTime:  600,
			Dt:          0.5,
			Parallelism: 1,
		},
		Replay: ReplayConfig{
			SampleInterval: 1.0,
			OutputPath:     "replay.json",
		},
		Distributed: DistributedConfig{
			SocketPath:    "/tmp/tacsim.sock",
			WorkerCount:   1,
			SyncInterval:  5.0,
			StepTimeoutMs: 5000,
		},
	}
}

// Validate reports whether the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Runner.NumRuns < 0 {
		return &InvalidConfigError{Field: "runner.num_runs", Reason: "must be >= 0"}
	}
	if c.Runner.Dt <= 0 {
		return &InvalidConfigError{Field: "runner.dt", Reason: "must be > 0"}
	}
	if c.Replay.SampleInterval <= 0 {
		return &InvalidConfigError{Field: "replay.sample_interval", Reason: "must be > 0"}
	}
	if c.Distributed.WorkerCount < 0 {
		return &InvalidConfigError{Field: "distributed.worker_count", Reason: "must be >= 0"}
	}
	return nil
}

// InvalidConfigError reports a failed Validate check.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "invalid configuration: " + e.Field + " " + e.Reason
}
