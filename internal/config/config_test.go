package config

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestValidateRejectsZeroDt(t *testing.T) {
	c := Default()
	c.Runner.Dt = 0
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error for dt=0")
	}
}

func TestMergeWithEnvironmentOverridesLogLevel(t *testing.T) {
	t.Setenv("TACSIM_LOG_LEVEL", "debug")
	c := Default()
	MergeWithEnvironment(c)
	if c.LogLevel != "debug" {
		t.Fatalf("expected env override applied, got %q", c.LogLevel)
	}
}

func TestMergeWithCLIOverridesIgnoresZeroValues(t *testing.T) {
	c := Default()
	original := c.Runner.NumRuns
	MergeWithCLIOverrides(c, map[string]interface{}{"num_runs": 0})
	if c.Runner.NumRuns != original {
		t.Fatalf("expected zero override to be ignored, got %d", c.Runner.NumRuns)
	}
	MergeWithCLIOverrides(c, map[string]interface{}{"num_runs": 50})
	if c.Runner.NumRuns != 50 {
		t.Fatalf("expected override applied, got %d", c.Runner.NumRuns)
	}
}
