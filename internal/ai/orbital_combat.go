// Package ai implements the three AI behaviors entities can run: orbital
// combat role-based targeting, waypoint-patrol steering, and intercept
// guidance. Targeting-selection shape is grounded on the swarm behavior
// engine's nearest-target scan pattern, generalized from boid flocking
// forces to the role-based rules spec.md §4.4 requires.
package ai

import (
	"sort"

	"github.com/picogrid/legion-tacsim/internal/geo"
	"github.com/picogrid/legion-tacsim/internal/world"
)

// StepOrbitalCombat runs the orbital-combat AI for one entity. It only
// performs a fresh scan/select/steer cycle once its scan accumulator
// reaches the configured scan interval; see DESIGN.md for the decided
// reading of the ESCORT stale-scan-timer Open Question.
func StepOrbitalCombat(w *world.World, e *world.Entity, dt float64) {
	e.ScanAccum += dt
	if e.ScanAccum >= e.ScanInterval {
		e.ScanAccum -= e.ScanInterval
		runScanAndSelect(w, e)
	}
	steerTowardTarget(w, e, dt)
}

type candidate struct {
	entity *world.Entity
	distSq float64
}

// runScanAndSelect implements spec.md §4.4.1 steps (1) scan and (2) select.
func runScanAndSelect(w *world.World, e *world.Entity) {
	var candidates []candidate
	sensorRangeSq := e.SensorRange * e.SensorRange
	for _, other := range w.Entities() {
		if other == e || other.Team == e.Team || !other.Alive() {
			continue
		}
		d := other.ECIPos.Sub(e.ECIPos)
		distSq := d.Dot(d)
		if distSq <= sensorRangeSq {
			candidates = append(candidates, candidate{entity: other, distSq: distSq})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distSq < candidates[j].distSq
	})

	switch e.Role {
	case world.RoleHVA:
		e.CurrentTargetID = ""
	case world.RoleAttacker:
		e.CurrentTargetID = firstWithRole(candidates, world.RoleHVA)
	case world.RoleDefender:
		e.CurrentTargetID = selectDefenderTarget(w, e, candidates)
	case world.RoleEscort:
		e.CurrentTargetID = firstWithRoles(candidates, world.RoleDefender, world.RoleSweep)
	case world.RoleSweep:
		e.CurrentTargetID = firstWithRoles(candidates, world.RoleAttacker, world.RoleEscort)
	}
}

func firstWithRole(cands []candidate, role world.Role) string {
	for _, c := range cands {
		if c.entity.Role == role {
			return c.entity.ID
		}
	}
	return ""
}

func firstWithRoles(cands []candidate, roles ...world.Role) string {
	for _, c := range cands {
		for _, r := range roles {
			if c.entity.Role == r {
				return c.entity.ID
			}
		}
	}
	return ""
}

func selectDefenderTarget(w *world.World, e *world.Entity, cands []candidate) string {
	hva := w.GetEntityByID(e.AssignedHVAID)
	if hva == nil || !hva.Alive() {
		return ""
	}
	defRadiusSq := e.DefenseRadius * e.DefenseRadius
	for _, c := range cands {
		if c.entity.Role != world.RoleAttacker && c.entity.Role != world.RoleSweep && c.entity.Role != world.RoleEscort {
			continue
		}
		d := c.entity.ECIPos.Sub(hva.ECIPos)
		distToHVASq := d.Dot(d)
		if distToHVASq <= defRadiusSq {
			return c.entity.ID
		}
	}
	return ""
}

// steerTowardTarget implements spec.md §4.4.1's post-selection designator
// and thrust application, including the escort "drift toward nearest
// friendly attacker" fallback, gated per the preserved stale-timer Open
// Question decision in DESIGN.md.
func steerTowardTarget(w *world.World, e *world.Entity, dt float64) {
	target := w.GetEntityByID(e.CurrentTargetID)
	if target != nil && target.Alive() {
		d := target.ECIPos.Sub(e.ECIPos)
		if d.Length() <= e.KillRange {
			e.DesignatedWeaponTarget = target.ID
			return
		}
		e.DesignatedWeaponTarget = ""
		applyThrust(e, d, e.MaxAccel, dt)
		return
	}

	e.DesignatedWeaponTarget = ""
	if e.Role != world.RoleEscort {
		return
	}
	if e.ScanAccum <= 0.01 {
		return
	}
	friendly := nearestFriendlyAttacker(w, e)
	if friendly == nil {
		return
	}
	d := friendly.ECIPos.Sub(e.ECIPos)
	applyThrust(e, d, 0.3*e.MaxAccel, dt)
}

func nearestFriendlyAttacker(w *world.World, e *world.Entity) *world.Entity {
	var best *world.Entity
	bestDistSq := 0.0
	for _, other := range w.Entities() {
		if other == e || other.Team != e.Team || !other.Alive() || other.Role != world.RoleAttacker {
			continue
		}
		d := other.ECIPos.Sub(e.ECIPos)
		distSq := d.Dot(d)
		if best == nil || distSq < bestDistSq {
			best = other
			bestDistSq = distSq
		}
	}
	return best
}

// applyThrust nudges the entity's ECI velocity toward relPos (self->target)
// at the given acceleration, guarding against a near-zero relative vector.
func applyThrust(e *world.Entity, relPos geo.Vec3, accel, dt float64) {
	if relPos.Length() < 1 {
		return
	}
	dir := relPos.Normalize()
	e.ECIVel = e.ECIVel.Add(dir.Scale(accel * dt))
}
