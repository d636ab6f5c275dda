package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/picogrid/legion-tacsim/internal/config"
	"github.com/picogrid/legion-tacsim/internal/distsim"
	"github.com/picogrid/legion-tacsim/internal/scenario"
	"github.com/picogrid/legion-tacsim/internal/world"
)

var (
	coordSocket       string
	coordWorkers      int
	coordMaxSimTime   float64
	coordDt           float64
	coordSyncInterval float64
	coordTimeoutMs    int
)

var coordinatorCmd = &cobra.Command{
	Use:   "coordinator",
	Short: "Run the distributed coordinator, driving workers through a step barrier",
	RunE:  runCoordinator,
}

func init() {
	coordinatorCmd.Flags().StringVar(&coordSocket, "socket", "", "unix socket path")
	coordinatorCmd.Flags().IntVar(&coordWorkers, "workers", 0, "number of workers to accept")
	coordinatorCmd.Flags().Float64Var(&coordMaxSimTime, "max-time", 0, "maximum simulated seconds")
	coordinatorCmd.Flags().Float64Var(&coordDt, "dt", 0, "fixed timestep in seconds")
	coordinatorCmd.Flags().Float64Var(&coordSyncInterval, "sync-interval", 0, "seconds between SYNC_REQUEST rounds")
	coordinatorCmd.Flags().IntVar(&coordTimeoutMs, "step-timeout-ms", 0, "per-step barrier timeout in milliseconds")
}

func runCoordinator(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.MergeWithCLIOverrides(cfg, map[string]interface{}{
		"scenario":     scenarioPath,
		"max_sim_time": coordMaxSimTime,
		"dt":           coordDt,
		"socket":       coordSocket,
		"workers":      coordWorkers,
	})
	if coordSyncInterval > 0 {
		cfg.Distributed.SyncInterval = coordSyncInterval
	}
	if coordTimeoutMs > 0 {
		cfg.Distributed.StepTimeoutMs = coordTimeoutMs
	}

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

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Warn("interrupt received, shutting down coordinator")
		cancel()
	}()

	coord, err := distsim.Listen(cfg.Distributed.SocketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Distributed.SocketPath, err)
	}
	defer coord.Shutdown()

	log.WithField("socket", cfg.Distributed.SocketPath).WithField("workers", cfg.Distributed.WorkerCount).Info("waiting for workers")
	if err := coord.AcceptWorkers(cfg.Distributed.WorkerCount); err != nil {
		return fmt.Errorf("accepting workers: %w", err)
	}

	assignments := partitionEntityIDs(w, cfg.Distributed.WorkerCount)
	if err := coord.Init(assignments); err != nil {
		return fmt.Errorf("initializing workers: %w", err)
	}

	timeout := time.Duration(cfg.Distributed.StepTimeoutMs) * time.Millisecond
	nextSync := cfg.Distributed.SyncInterval
	nTicks := int(cfg.Runner.MaxSimTime/cfg.Runner.Dt + 0.999999)

	for i := 0; i < nTicks; i++ {
		select {
		case <-ctx.Done():
			log.Info("coordinator stopping early")
			return nil
		default:
		}
		t := float64(i) * cfg.Runner.Dt
		if !coord.Step(t, cfg.Runner.Dt, timeout) {
			return fmt.Errorf("step barrier failed at t=%.2f", t)
		}
		if t >= nextSync {
			if _, ok := coord.SyncAll(t, timeout); !ok {
				log.Warn("sync round incomplete")
			}
			nextSync += cfg.Distributed.SyncInterval
		}
	}

	log.Info("coordinator run complete")
	return nil
}

// partitionEntityIDs splits the world's entities round-robin across n
// workers, the simplest fair sharding that keeps team composition mixed
// across shards.
func partitionEntityIDs(w *world.World, n int) [][]string {
	if n <= 0 {
		n = 1
	}
	assignments := make([][]string, n)
	for i, e := range w.Entities() {
		idx := i % n
		assignments[idx] = append(assignments[idx], e.ID)
	}
	return assignments
}
