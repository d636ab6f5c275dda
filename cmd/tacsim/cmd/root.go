package cmd

import (
	"github.com/picogrid/legion-tacsim/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	logLevel     string
	noColor      bool
	scenarioPath string
	seed         uint32
	log          logging.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tacsim",
	Short: "Tactical engagement simulator",
	Long: `tacsim runs a deterministic, seeded multi-domain combat simulation
(orbital, atmospheric, and ground) across three modes: a Monte-Carlo
batch sweep, a single-run trajectory replay recorder, and a
distributed coordinator/worker barrier protocol.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "path to scenario yaml")
	rootCmd.PersistentFlags().Uint32Var(&seed, "seed", 1, "base PRNG seed")

	rootCmd.AddCommand(mcCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(coordinatorCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(scenarioCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	log = logging.NewWithConfig(logging.Config{
		Level:    logging.ParseLevel(logLevel),
		NoColor:  noColor,
		ShowTime: true,
	})
}
