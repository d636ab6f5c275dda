package sim

import (
	"math"
	"testing"

	"github.com/picogrid/legion-tacsim/internal/geo"
	"github.com/picogrid/legion-tacsim/internal/physics"
	"github.com/picogrid/legion-tacsim/internal/world"
)

// TestE1OrbitalKineticKill reproduces spec.md §8 scenario E1: two opposing
// geostationary entities, an attacker with a sacrificial kinetic-kill
// weapon and an HVA, separated by a small true-anomaly offset well inside
// kill range. Expect LAUNCH then KILL on the attacker, both destroyed.
func TestE1OrbitalKineticKill(t *testing.T) {
	w := world.New(1)
	sma := 42164000.0
	v := math.Sqrt(physics.GravParamEarth / sma)

	attacker := &world.Entity{
		ID: "attacker", Name: "attacker", Team: "red", Active: true,
		PhysicsKind: world.PhysicsOrbitalTwoBody, AIKind: world.AIOrbitalCombat,
		WeaponKind: world.WeaponKineticKill, Role: world.RoleAttacker,
		SensorRange: 1e9, KillRange: 1e6, MaxAccel: 1, ScanInterval: 0,
		EngagementRules: world.WeaponsFree,
		KineticPk:       1.0, KineticKillRange: 1e6,
		ECIPos: geo.Vec3{X: sma, Y: 0, Z: 0},
		ECIVel: geo.Vec3{X: 0, Y: v, Z: 0},
	}

	offset := 0.001
	hva := &world.Entity{
		ID: "hva", Name: "hva", Team: "blue", Active: true,
		PhysicsKind: world.PhysicsOrbitalTwoBody, AIKind: world.AIOrbitalCombat,
		Role:            world.RoleHVA,
		EngagementRules: world.WeaponsFree,
		ECIPos:          geo.Vec3{X: sma * math.Cos(offset), Y: sma * math.Sin(offset), Z: 0},
		ECIVel:          geo.Vec3{X: -v * math.Sin(offset), Y: v * math.Cos(offset), Z: 0},
	}

	if err := w.AddEntity(attacker); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.AddEntity(hva); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	Tick(w, 0.1, nil)

	if len(attacker.EngagementLog) < 2 {
		t.Fatalf("expected at least LAUNCH and KILL records, got %+v", attacker.EngagementLog)
	}
	if attacker.EngagementLog[0].Result != world.ResultLaunch {
		t.Fatalf("expected first record LAUNCH, got %v", attacker.EngagementLog[0].Result)
	}
	foundKill := false
	for _, rec := range attacker.EngagementLog {
		if rec.Result == world.ResultKill && rec.TargetID == "hva" {
			foundKill = true
		}
	}
	if !foundKill {
		t.Fatalf("expected KILL record referencing hva, got %+v", attacker.EngagementLog)
	}
	if !hva.Destroyed {
		t.Fatalf("expected hva destroyed")
	}
	if !attacker.Destroyed {
		t.Fatalf("expected attacker destroyed (sacrificial kinetic kill)")
	}
	if w.T > 1.0 {
		t.Fatalf("expected small simTimeFinal, got %v", w.T)
	}
}

// TestDeterminismAcrossRuns covers spec.md §8 invariant 1/E4: identical
// seed and scenario produce byte-identical engagement log sequences.
func TestDeterminismAcrossRuns(t *testing.T) {
	build := func() (*world.World, *world.Entity) {
		w := world.New(42)
		sam := &world.Entity{
			ID: "sam", Name: "sam", Team: "blue", Active: true, WeaponKind: world.WeaponSAMBattery,
			EngagementRules: world.WeaponsFree, SAMMaxRange: 150000, SAMMinRange: 5000,
			SAMMissileSpeed: 1200, MissilesReady: 8, SalvoSize: 2, PkPerMissile: 0.5,
		}
		radar := &world.Entity{
			ID: "radar", Team: "blue", Active: true, RadarEnabled: true,
			RadarMaxRange: 300000, RadarMinElev: -90, RadarMaxElev: 90,
			SweepInterval: 0.1, DetectProb: 1.0,
		}
		target := &world.Entity{
			ID: "tgt", Name: "tgt", Team: "red", Active: true, PhysicsKind: world.PhysicsFlight3DOF,
			Lat: 0, Lon: 1, Alt: 5000,
		}
		_ = w.AddEntity(sam)
		_ = w.AddEntity(radar)
		_ = w.AddEntity(target)
		return w, sam
	}

	w1, sam1 := build()
	w2, sam2 := build()

	for i := 0; i < 100; i++ {
		Tick(w1, 0.5, nil)
		Tick(w2, 0.5, nil)
	}

	if len(sam1.EngagementLog) != len(sam2.EngagementLog) {
		t.Fatalf("engagement log length mismatch: %d vs %d", len(sam1.EngagementLog), len(sam2.EngagementLog))
	}
	for i := range sam1.EngagementLog {
		if sam1.EngagementLog[i] != sam2.EngagementLog[i] {
			t.Fatalf("engagement log diverged at %d: %+v vs %+v", i, sam1.EngagementLog[i], sam2.EngagementLog[i])
		}
	}
}
