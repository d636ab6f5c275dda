package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picogrid/legion-tacsim/internal/config"
	"github.com/picogrid/legion-tacsim/internal/logging"
	"github.com/picogrid/legion-tacsim/internal/replay"
	"github.com/picogrid/legion-tacsim/internal/scenario"
	"github.com/picogrid/legion-tacsim/internal/sim"
)

var (
	replaySampleInterval float64
	replayMaxSimTime     float64
	replayDt             float64
	replayOutput         string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Record a single run's trajectory for playback",
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().Float64Var(&replaySampleInterval, "sample-interval", 0, "seconds between recorded samples")
	replayCmd.Flags().Float64Var(&replayMaxSimTime, "max-time", 0, "maximum simulated seconds")
	replayCmd.Flags().Float64Var(&replayDt, "dt", 0, "fixed timestep in seconds")
	replayCmd.Flags().StringVar(&replayOutput, "output", "", "output json path (default config's replay.output_path)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.MergeWithCLIOverrides(cfg, map[string]interface{}{
		"scenario":        scenarioPath,
		"seed":            seed,
		"max_sim_time":    replayMaxSimTime,
		"dt":              replayDt,
		"sample_interval": replaySampleInterval,
		"output":          replayOutput,
	})

	path, err := resolveScenarioPath(cfg.ScenarioPath)
	if err != nil {
		return err
	}
	f, err := scenario.Load(path)
	if err != nil {
		return fmt.Errorf("loading scenario %s: %w", path, err)
	}
	w, err := scenario.Build(f, cfg.Runner.BaseSeed)
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}

	sink := logging.EventSink{Log: log.WithPrefix("replay")}
	rec := replay.New(cfg.Replay.SampleInterval)

	nTicks := int(cfg.Runner.MaxSimTime/cfg.Runner.Dt + 0.999999)
	for i := 0; i < nTicks; i++ {
		rec.Observe(w)
		sim.Tick(w, cfg.Runner.Dt, sink)
	}
	rec.Observe(w)

	return writeJSON(rec.Output(w), cfg.Replay.OutputPath)
}
