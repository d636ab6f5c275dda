package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picogrid/legion-tacsim/internal/config"
	"github.com/picogrid/legion-tacsim/internal/distsim"
	"github.com/picogrid/legion-tacsim/internal/physics"
	"github.com/picogrid/legion-tacsim/internal/scenario"
)

var workerSocket string

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run a distributed worker that steps its assigned entities on each barrier round",
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().StringVar(&workerSocket, "socket", "", "unix socket path")
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.MergeWithCLIOverrides(cfg, map[string]interface{}{
		"scenario": scenarioPath,
		"socket":   workerSocket,
	})

	path, err := resolveScenarioPath(cfg.ScenarioPath)
	if err != nil {
		return err
	}
	f, err := scenario.Load(path)
	if err != nil {
		return fmt.Errorf("loading scenario %s: %w", path, err)
	}
	// The worker builds its own copy of the world from the same scenario
	// and seed so its assigned entities' physics states stay consistent
	// with the coordinator's view without shipping full state every step.
	w, err := scenario.Build(f, cfg.Runner.BaseSeed)
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}

	wk, err := distsim.Dial(cfg.Distributed.SocketPath)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", cfg.Distributed.SocketPath, err)
	}

	update := func(entityID string, t, dt float64) error {
		e := w.GetEntityByID(entityID)
		if e == nil {
			return fmt.Errorf("unknown entity %s", entityID)
		}
		physics.Step(e, dt)
		return nil
	}
	state := func(entityID string) (pos, vel [3]float64, ok bool) {
		e := w.GetEntityByID(entityID)
		if e == nil {
			return pos, vel, false
		}
		p := w.ECEFPosition(e)
		return [3]float64{p.X, p.Y, p.Z}, [3]float64{e.ECIVel.X, e.ECIVel.Y, e.ECIVel.Z}, true
	}

	log.WithField("socket", cfg.Distributed.SocketPath).Info("worker connected, awaiting assignment")
	if err := wk.Run(update, state); err != nil && err != distsim.ErrShutdown {
		return fmt.Errorf("worker loop: %w", err)
	}
	log.Info("worker shut down cleanly")
	return nil
}
