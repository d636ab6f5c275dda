package events

import (
	"testing"

	"github.com/picogrid/legion-tacsim/internal/world"
)

type recordingSink struct{ msgs []string }

func (r *recordingSink) Message(eventID, eventName, text string) {
	r.msgs = append(r.msgs, text)
}

func TestTimeTriggerFiresOnceAtThreshold(t *testing.T) {
	w := world.New(1)
	e := &world.Entity{ID: "a", Active: true, EngagementRules: world.WeaponsFree}
	_ = w.AddEntity(e)
	w.Events = []*world.Event{{
		ID: "ev1", Trigger: world.TriggerTime, TriggerTime: 10,
		Action: world.ActionSetState, EntityA: "a", StateField: "engagementRules", StateValue: "weapons_hold",
	}}

	w.T = 5
	StepAll(w, nil)
	if e.EngagementRules != world.WeaponsFree {
		t.Fatalf("expected no change before trigger time")
	}

	w.T = 10
	StepAll(w, nil)
	if e.EngagementRules != world.WeaponsHold {
		t.Fatalf("expected engagement rules changed at trigger time")
	}
	if !w.Events[0].Fired {
		t.Fatalf("expected event marked fired")
	}

	e.EngagementRules = world.WeaponsFree
	w.T = 20
	StepAll(w, nil)
	if e.EngagementRules != world.WeaponsFree {
		t.Fatalf("event must not re-fire once fired")
	}
}

func TestMessageActionGoesToSinkOnly(t *testing.T) {
	w := world.New(1)
	w.Events = []*world.Event{{
		ID: "ev1", Trigger: world.TriggerTime, TriggerTime: 0,
		Action: world.ActionMessage, MessageText: "hello",
	}}
	sink := &recordingSink{}
	StepAll(w, sink)
	if len(sink.msgs) != 1 || sink.msgs[0] != "hello" {
		t.Fatalf("expected message delivered to sink, got %+v", sink.msgs)
	}
}

func TestProximityTriggerGeodetic(t *testing.T) {
	w := world.New(1)
	a := &world.Entity{ID: "a", Active: true, Lat: 0, Lon: 0}
	b := &world.Entity{ID: "b", Active: true, Lat: 0, Lon: 0.001}
	_ = w.AddEntity(a)
	_ = w.AddEntity(b)
	w.Events = []*world.Event{{
		ID: "ev1", Trigger: world.TriggerProximity, EntityA: "a", EntityB: "b", ProximityRangeM: 1000,
		Action: world.ActionMessage,
	}}
	StepAll(w, nil)
	if !w.Events[0].Fired {
		t.Fatalf("expected proximity trigger to fire for close entities")
	}
}

func TestDetectionTrigger(t *testing.T) {
	w := world.New(1)
	sensor := &world.Entity{ID: "s", Active: true, RadarEnabled: true, Detections: []world.Detection{{TargetID: "tgt"}}}
	_ = w.AddEntity(sensor)
	w.Events = []*world.Event{{
		ID: "ev1", Trigger: world.TriggerDetection, SensorEntity: "s", TargetEntity: "tgt",
		Action: world.ActionMessage,
	}}
	StepAll(w, nil)
	if !w.Events[0].Fired {
		t.Fatalf("expected detection trigger to fire")
	}
}
