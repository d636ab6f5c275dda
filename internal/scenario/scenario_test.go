package scenario

import (
	"testing"

	"github.com/picogrid/legion-tacsim/internal/world"
)

func TestBuildAssignsPhysicsAIAndWeaponKinds(t *testing.T) {
	f := &File{
		Entities: []EntitySpec{
			{
				ID: "bandit", Team: "red",
				InitialState: InitialState{Lat: 1, Lon: 2, Alt: 5000, Speed: 200},
				Components: ComponentsSpec{
					Physics: &PhysicsSpec{Type: "flight3dof", Config: "f16"},
					AI:      &AISpec{Type: "intercept", TargetID: "hq", EngageRange: 10000},
					Weapons: &WeaponSpec{Type: "a2a_missile", Loadout: []string{"aim120", "aim120", "aim9"}},
				},
			},
		},
	}
	w, err := Build(f, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := w.GetEntityByID("bandit")
	if e == nil {
		t.Fatalf("expected entity bandit to be present")
	}
	if e.PhysicsKind != world.PhysicsFlight3DOF {
		t.Fatalf("expected flight3dof physics kind")
	}
	if e.Mass != aircraftProfiles["f16"].Mass {
		t.Fatalf("expected f16 profile mass, got %v", e.Mass)
	}
	if e.AIKind != world.AIIntercept || e.InterceptTargetID != "hq" {
		t.Fatalf("expected intercept AI targeting hq, got %+v", e)
	}
	if e.WeaponKind != world.WeaponA2AMissile {
		t.Fatalf("expected a2a_missile weapon kind")
	}
	if e.A2AInventory["aim120"] != 2 || e.A2AInventory["aim9"] != 1 {
		t.Fatalf("expected inventory counts from loadout, got %+v", e.A2AInventory)
	}
	if e.A2ASpecs["aim120"].Range != 80000 {
		t.Fatalf("expected aim120 catalog spec populated, got %+v", e.A2ASpecs["aim120"])
	}
}

func TestUnknownAircraftConfigDefaultsToF16(t *testing.T) {
	p := LookupProfile("nonexistent")
	if p.Mass != aircraftProfiles["f16"].Mass {
		t.Fatalf("expected default to f16 profile")
	}
}

func TestAircraftAliasResolvesCanonicalName(t *testing.T) {
	p := LookupProfile("mq9")
	if p.Mass != aircraftProfiles["drone_male"].Mass {
		t.Fatalf("expected mq9 alias to resolve to drone_male profile")
	}
}

func TestEventTriggerAcceptsAlternateKeyNames(t *testing.T) {
	f := &File{
		Events: []EventSpec{
			{
				ID: "ev1",
				Trigger: TriggerSpec{
					Type: "proximity", EntityID: "a", TargetID: "b", Range: 5000,
				},
				Action: ActionSpec{Type: "message", Text: "close"},
			},
		},
	}
	w, err := Build(f, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Events) != 1 {
		t.Fatalf("expected one event")
	}
	ev := w.Events[0]
	if ev.EntityA != "a" || ev.EntityB != "b" || ev.ProximityRangeM != 5000 {
		t.Fatalf("expected entityId/targetId/range aliases resolved, got %+v", ev)
	}
}

func TestPlayerInputInstallsRacetrackPatrol(t *testing.T) {
	f := &File{
		Entities: []EntitySpec{
			{
				ID: "player", InitialState: InitialState{Lat: 10, Lon: 10, Heading: 0, Speed: 150},
				Components: ComponentsSpec{
					Physics: &PhysicsSpec{Type: "flight3dof", Config: "f16"},
					Control: &ControlSpec{Type: "player_input"},
				},
			},
		},
	}
	w, err := Build(f, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := w.GetEntityByID("player")
	if e.AIKind != world.AIWaypointPatrol {
		t.Fatalf("expected player_input to install waypoint_patrol AI")
	}
	if len(e.Waypoints) != 4 || !e.Loop {
		t.Fatalf("expected a 4-leg looping racetrack, got %+v loop=%v", e.Waypoints, e.Loop)
	}
}
