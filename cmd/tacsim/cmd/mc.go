package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/picogrid/legion-tacsim/internal/config"
	"github.com/picogrid/legion-tacsim/internal/mcrunner"
	"github.com/picogrid/legion-tacsim/internal/scenario"
)

var (
	mcRuns        int
	mcMaxSimTime  float64
	mcDt          float64
	mcParallelism int
	mcOutput      string
	mcVerbose     bool
)

var mcCmd = &cobra.Command{
	Use:   "mc",
	Short: "Run a Monte-Carlo batch sweep of a scenario",
	RunE:  runMC,
}

func init() {
	mcCmd.Flags().IntVar(&mcRuns, "runs", 0, "number of independent runs (0 = use config default)")
	mcCmd.Flags().Float64Var(&mcMaxSimTime, "max-time", 0, "maximum simulated seconds per run")
	mcCmd.Flags().Float64Var(&mcDt, "dt", 0, "fixed timestep in seconds")
	mcCmd.Flags().IntVar(&mcParallelism, "parallelism", 0, "number of runs executed concurrently")
	mcCmd.Flags().StringVar(&mcOutput, "output", "", "output json path (default stdout)")
	mcCmd.Flags().BoolVar(&mcVerbose, "verbose", false, "verbose per-run logging")
}

func runMC(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.MergeWithCLIOverrides(cfg, map[string]interface{}{
		"scenario":     scenarioPath,
		"seed":         seed,
		"num_runs":     mcRuns,
		"max_sim_time": mcMaxSimTime,
		"dt":           mcDt,
		"no_color":     noColor,
	})
	if mcParallelism > 0 {
		cfg.Runner.Parallelism = mcParallelism
	}
	cfg.Runner.Verbose = cfg.Runner.Verbose || mcVerbose

	path, err := resolveScenarioPath(cfg.ScenarioPath)
	if err != nil {
		return err
	}

	f, err := scenario.Load(path)
	if err != nil {
		return fmt.Errorf("loading scenario %s: %w", path, err)
	}

	log.WithField("runs", cfg.Runner.NumRuns).WithField("seed", cfg.Runner.BaseSeed).Info("starting Monte-Carlo batch")

	out := mcrunner.Run(f, mcrunner.Config{
		NumRuns:     cfg.Runner.NumRuns,
		BaseSeed:    cfg.Runner.BaseSeed,
		MaxSimTime:  cfg.Runner.MaxSimTime,
		Dt:          cfg.Runner.Dt,
		Verbose:     cfg.Runner.Verbose,
		Parallelism: cfg.Runner.Parallelism,
	})

	return writeJSON(out, mcOutput)
}

func writeJSON(v interface{}, path string) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	if path == "" {
		_, err := os.Stdout.Write(append(b, '\n'))
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.WithField("path", path).Info("wrote output")
	return nil
}
