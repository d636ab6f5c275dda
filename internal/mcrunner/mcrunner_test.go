package mcrunner

import (
	"testing"

	"github.com/picogrid/legion-tacsim/internal/scenario"
)

func kineticKillScenario() *scenario.File {
	return &scenario.File{
		Entities: []scenario.EntitySpec{
			{
				ID: "attacker", Name: "attacker", Team: "red",
				Components: scenario.ComponentsSpec{
					Physics: &scenario.PhysicsSpec{
						Type: "orbital_2body",
						Elements: &scenario.OrbitalElements{SMA: 42164000, Ecc: 0, Inc: 0, RAAN: 0, ArgPerigee: 0, MeanAnomaly: 0},
					},
					AI: &scenario.AISpec{
						Type: "orbital_combat", Role: "attacker", SensorRangeM: 1e9, KillRangeM: 1e6, MaxAccel: 1, ScanIntervalS: 0,
					},
					Weapons: &scenario.WeaponSpec{Type: "kinetic_kill", Pk: 1.0, KillRangeM: 1e6},
				},
			},
			{
				ID: "hva", Name: "hva", Team: "blue",
				Components: scenario.ComponentsSpec{
					Physics: &scenario.PhysicsSpec{
						Type: "orbital_2body",
						Elements: &scenario.OrbitalElements{SMA: 42164000, Ecc: 0, Inc: 0, RAAN: 0, ArgPerigee: 0, MeanAnomaly: 0.1},
					},
					AI: &scenario.AISpec{Type: "orbital_combat", Role: "hva", ScanIntervalS: 0},
				},
			},
		},
	}
}

func TestRunSingleRunTerminatesOnHVADestruction(t *testing.T) {
	f := kineticKillScenario()
	out := Run(f, Config{NumRuns: 1, BaseSeed: 1, MaxSimTime: 60, Dt: 0.5})

	if len(out.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(out.Runs))
	}
	run := out.Runs[0]
	if run.Error != "" {
		t.Fatalf("unexpected run error: %s", run.Error)
	}
	hva := run.EntitySurvival["hva"]
	if hva.Alive {
		t.Fatalf("expected hva destroyed and early termination to have occurred")
	}
	foundKill := false
	for _, eng := range run.EngagementLog {
		if eng.Result == "KILL" {
			foundKill = true
			if eng.WeaponType != "KKV" {
				t.Fatalf("expected KKV weapon type tag, got %s", eng.WeaponType)
			}
		}
	}
	if !foundKill {
		t.Fatalf("expected a harvested KILL record, got %+v", run.EngagementLog)
	}
}

func TestRunDeterministicAcrossIdenticalSeeds(t *testing.T) {
	f := kineticKillScenario()
	out1 := Run(f, Config{NumRuns: 1, BaseSeed: 7, MaxSimTime: 60, Dt: 0.5})
	out2 := Run(f, Config{NumRuns: 1, BaseSeed: 7, MaxSimTime: 60, Dt: 0.5})

	if len(out1.Runs[0].EngagementLog) != len(out2.Runs[0].EngagementLog) {
		t.Fatalf("expected identical engagement log lengths across identical seeds")
	}
	for i := range out1.Runs[0].EngagementLog {
		if out1.Runs[0].EngagementLog[i] != out2.Runs[0].EngagementLog[i] {
			t.Fatalf("engagement logs diverged at %d", i)
		}
	}
}

func TestRunBaseSeedOffsetsPerRunIndex(t *testing.T) {
	f := kineticKillScenario()
	out := Run(f, Config{NumRuns: 3, BaseSeed: 100, MaxSimTime: 10, Dt: 0.5})
	for i, run := range out.Runs {
		if run.Seed != uint32(100+i) {
			t.Fatalf("expected run %d seed %d, got %d", i, 100+i, run.Seed)
		}
	}
}

func TestRunParallelProducesSameRunCount(t *testing.T) {
	f := kineticKillScenario()
	out := Run(f, Config{NumRuns: 4, BaseSeed: 1, MaxSimTime: 10, Dt: 0.5, Parallelism: 4})
	if len(out.Runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(out.Runs))
	}
	for i, run := range out.Runs {
		if run.RunIndex != i {
			t.Fatalf("expected run index %d, got %d", i, run.RunIndex)
		}
	}
}
