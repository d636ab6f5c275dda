package sensors

import (
	"testing"

	"github.com/picogrid/legion-tacsim/internal/world"
)

func mkRadarEntity(id, team string) *world.Entity {
	return &world.Entity{
		ID: id, Team: team, Active: true, PhysicsKind: world.PhysicsStatic,
		RadarEnabled: true, RadarMaxRange: 200000, RadarMinElev: -90, RadarMaxElev: 90,
		SweepInterval: 1.0, DetectProb: 1.0,
	}
}

func TestSweepDoesNotFireBeforeInterval(t *testing.T) {
	w := world.New(1)
	radar := mkRadarEntity("r1", "blue")
	target := &world.Entity{ID: "t1", Team: "red", Active: true, PhysicsKind: world.PhysicsStatic, Lat: 0, Lon: 0.1}
	_ = w.AddEntity(radar)
	_ = w.AddEntity(target)

	Step(w, radar, 0.5)
	if len(radar.Detections) != 0 {
		t.Fatalf("expected no detections before sweep interval elapses")
	}
}

func TestSweepDetectsEnemyWithinRange(t *testing.T) {
	w := world.New(1)
	radar := mkRadarEntity("r1", "blue")
	target := &world.Entity{ID: "t1", Team: "red", Active: true, PhysicsKind: world.PhysicsStatic, Lat: 0, Lon: 0.1}
	_ = w.AddEntity(radar)
	_ = w.AddEntity(target)

	Step(w, radar, 1.0)
	if len(radar.Detections) != 1 {
		t.Fatalf("expected 1 detection, got %d", len(radar.Detections))
	}
	if radar.Detections[0].TargetID != "t1" {
		t.Fatalf("expected detection of t1, got %q", radar.Detections[0].TargetID)
	}
}

func TestSweepIgnoresSameTeam(t *testing.T) {
	w := world.New(1)
	radar := mkRadarEntity("r1", "blue")
	friendly := &world.Entity{ID: "f1", Team: "blue", Active: true, PhysicsKind: world.PhysicsStatic, Lat: 0, Lon: 0.1}
	_ = w.AddEntity(radar)
	_ = w.AddEntity(friendly)

	Step(w, radar, 1.0)
	if len(radar.Detections) != 0 {
		t.Fatalf("expected same-team entities to be excluded from detections")
	}
}

func TestSweepRejectsOutOfRange(t *testing.T) {
	w := world.New(1)
	radar := mkRadarEntity("r1", "blue")
	farTarget := &world.Entity{ID: "t1", Team: "red", Active: true, PhysicsKind: world.PhysicsStatic, Lat: 0, Lon: 10}
	_ = w.AddEntity(radar)
	_ = w.AddEntity(farTarget)

	Step(w, radar, 1.0)
	if len(radar.Detections) != 0 {
		t.Fatalf("expected out-of-range target to be rejected")
	}
}

func TestDetectionsClearEverySweep(t *testing.T) {
	w := world.New(1)
	radar := mkRadarEntity("r1", "blue")
	target := &world.Entity{ID: "t1", Team: "red", Active: true, PhysicsKind: world.PhysicsStatic, Lat: 0, Lon: 0.1}
	_ = w.AddEntity(radar)
	_ = w.AddEntity(target)

	Step(w, radar, 1.0)
	if len(radar.Detections) != 1 {
		t.Fatalf("expected detection on first sweep")
	}
	target.Active = false
	Step(w, radar, 1.0)
	if len(radar.Detections) != 0 {
		t.Fatalf("expected detections cleared and rebuilt without the now-dead target")
	}
}
