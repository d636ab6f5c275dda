package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picogrid/legion-tacsim/internal/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Scenario file utilities",
}

var scenarioValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Load and build a scenario file, reporting errors without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioValidate,
}

func init() {
	scenarioCmd.AddCommand(scenarioValidateCmd)
}

func runScenarioValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := scenario.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	w, err := scenario.Build(f, seed)
	if err != nil {
		return fmt.Errorf("building %s: %w", path, err)
	}
	log.WithField("entities", w.EntityCount()).WithField("events", len(w.Events)).Info("scenario is valid")
	return nil
}
