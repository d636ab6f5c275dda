// Package sim wires the per-system packages into the fixed, ordered tick
// pipeline spec.md §2/§5 requires: AI -> physics -> sensors -> weapons ->
// events. This ordering is a determinism contract, not an implementation
// convenience: it fixes the sequence in which systems consult the world's
// RNG.
package sim

import (
	"github.com/picogrid/legion-tacsim/internal/ai"
	"github.com/picogrid/legion-tacsim/internal/events"
	"github.com/picogrid/legion-tacsim/internal/physics"
	"github.com/picogrid/legion-tacsim/internal/sensors"
	"github.com/picogrid/legion-tacsim/internal/weapons"
	"github.com/picogrid/legion-tacsim/internal/world"
)

// Tick advances the world by one fixed timestep dt, running every system
// in the mandated order, then advancing simulated time. sink receives
// scripted "message" event text; pass nil to discard it.
func Tick(w *world.World, dt float64, sink events.MessageSink) {
	for _, e := range w.Entities() {
		ai.Step(w, e, dt)
	}
	for _, e := range w.Entities() {
		physics.Step(e, dt)
	}
	for _, e := range w.Entities() {
		sensors.Step(w, e, dt)
	}
	weapons.StepAll(w, dt)
	events.StepAll(w, sink)
	w.T += dt
}
