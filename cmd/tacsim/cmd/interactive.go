package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// resolveScenarioPath returns path if non-empty, otherwise falls back to
// an interactive prompt, mirroring the teacher's run.go pattern of only
// asking the operator when a flag wasn't supplied.
func resolveScenarioPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	prompt := &survey.Input{
		Message: "Scenario file:",
		Default: "scenario.yaml",
	}
	var answer string
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required)); err != nil {
		return "", fmt.Errorf("prompting for scenario path: %w", err)
	}
	if _, err := os.Stat(answer); err != nil {
		return "", fmt.Errorf("scenario file %s: %w", answer, err)
	}
	return answer, nil
}
