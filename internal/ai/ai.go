package ai

import "github.com/picogrid/legion-tacsim/internal/world"

// Step dispatches one entity's AI update for the tick, by AIKind. AI never
// consults the RNG (spec.md §5): all decisions here are deterministic
// given world state.
func Step(w *world.World, e *world.Entity, dt float64) {
	if !e.Alive() {
		return
	}
	switch e.AIKind {
	case world.AIOrbitalCombat:
		StepOrbitalCombat(w, e, dt)
	case world.AIWaypointPatrol:
		StepWaypointPatrol(e, dt)
	case world.AIIntercept:
		StepIntercept(w, e, dt)
	}
}
