// Package events evaluates scripted world events: time, proximity, and
// detection triggers, firing message/set_state/change_rules actions
// exactly once per event.
package events

import (
	"github.com/picogrid/legion-tacsim/internal/geo"
	"github.com/picogrid/legion-tacsim/internal/world"
)

// MessageSink receives diagnostic "message" action text. The decided
// reading of the Open Question in spec.md §9/DESIGN.md is that these never
// appear in the replay output tree — only in this side channel.
type MessageSink interface {
	Message(eventID, eventName, text string)
}

// StepAll evaluates every not-yet-fired event against current world state
// and executes newly-triggered actions. sink may be nil to discard
// messages.
func StepAll(w *world.World, sink MessageSink) {
	for _, ev := range w.Events {
		if ev.Fired {
			continue
		}
		if !triggered(w, ev) {
			continue
		}
		ev.Fired = true
		execute(w, ev, sink)
	}
}

func triggered(w *world.World, ev *world.Event) bool {
	switch ev.Trigger {
	case world.TriggerTime:
		return w.T >= ev.TriggerTime
	case world.TriggerProximity:
		return proximityTriggered(w, ev)
	case world.TriggerDetection:
		return detectionTriggered(w, ev)
	default:
		return false
	}
}

func proximityTriggered(w *world.World, ev *world.Event) bool {
	a := w.GetEntityByID(ev.EntityA)
	b := w.GetEntityByID(ev.EntityB)
	if a == nil || b == nil || !a.Alive() || !b.Alive() {
		return false
	}
	var dist float64
	if a.PhysicsKind != world.PhysicsOrbitalTwoBody && b.PhysicsKind != world.PhysicsOrbitalTwoBody {
		dist = geo.GreatCircleDistance(a.Lat, a.Lon, b.Lat, b.Lon)
	} else {
		aEcef := w.ECEFPosition(a)
		bEcef := w.ECEFPosition(b)
		dist = aEcef.Sub(bEcef).Length()
	}
	return dist <= ev.ProximityRangeM
}

func detectionTriggered(w *world.World, ev *world.Event) bool {
	sensor := w.GetEntityByID(ev.SensorEntity)
	if sensor == nil || !sensor.RadarEnabled {
		return false
	}
	for _, det := range sensor.Detections {
		if det.TargetID == ev.TargetEntity {
			return true
		}
	}
	return false
}

func execute(w *world.World, ev *world.Event, sink MessageSink) {
	switch ev.Action {
	case world.ActionMessage:
		if sink != nil {
			sink.Message(ev.ID, ev.Name, ev.MessageText)
		}
	case world.ActionChangeRules:
		applySetState(w, ev)
	case world.ActionSetState:
		applySetState(w, ev)
	}
}

func applySetState(w *world.World, ev *world.Event) {
	target := w.GetEntityByID(ev.EntityA)
	if target == nil {
		return
	}
	switch ev.StateField {
	case "engagementRules":
		target.EngagementRules = world.EngagementRules(ev.StateValue)
	case "active":
		target.Active = ev.StateValue == "true"
	case "destroyed":
		target.Destroyed = ev.StateValue == "true"
	}
}
