// Package weapons implements the three weapon systems and the per-tick
// global ordering spec.md §5 requires: kinetic-kill Pk rolls across all
// entities (in insertion order) precede SAM per-missile rolls across all
// entities (engagement-insertion order, missile-by-missile), which in turn
// precede A2A Pk rolls across all entities (engagement-insertion order).
// Entities with engagement_rules == weapons_hold are skipped entirely.
package weapons

import "github.com/picogrid/legion-tacsim/internal/world"

// StepAll runs the weapons phase for the whole world for one tick.
func StepAll(w *world.World, dt float64) {
	entities := w.Entities()

	for _, e := range entities {
		if !eligible(e) || e.WeaponKind != world.WeaponKineticKill {
			continue
		}
		stepKineticKill(w, e, dt)
	}

	for _, e := range entities {
		if !eligible(e) || e.WeaponKind != world.WeaponSAMBattery {
			continue
		}
		stepSAMAcquisition(w, e)
		stepSAMEngagements(w, e, dt)
	}

	for _, e := range entities {
		if !eligible(e) || e.WeaponKind != world.WeaponA2AMissile {
			continue
		}
		stepA2AAcquisition(w, e)
		stepA2AEngagements(w, e, dt)
	}
}

func eligible(e *world.Entity) bool {
	return e.Alive() && e.EngagementRules != world.WeaponsHold
}
