package weapons

import (
	"github.com/picogrid/legion-tacsim/internal/world"
)

// stepKineticKill implements spec.md §4.6.1.
func stepKineticKill(w *world.World, e *world.Entity, dt float64) {
	if e.KineticCooldownTimer > 0 {
		e.KineticCooldownTimer -= dt
		return
	}

	targetID := e.DesignatedWeaponTarget
	if targetID == "" {
		return
	}
	target := w.GetEntityByID(targetID)
	if target == nil || !target.Alive() {
		e.DesignatedWeaponTarget = ""
		return
	}

	if targetID != e.KineticLastLaunchTarget {
		e.Log(target.ID, target.Name, world.ResultLaunch, w.T)
		e.KineticLastLaunchTarget = targetID
	}

	d := target.ECIPos.Sub(e.ECIPos)
	if d.Length() > e.KineticKillRange {
		return
	}

	if w.RNG.Bernoulli(e.KineticPk) {
		target.Kill()
		target.Log(e.ID, e.Name, world.ResultKilledBy, w.T)
		e.Kill()
		e.Log(target.ID, target.Name, world.ResultKill, w.T)
		return
	}

	e.KineticCooldownTimer = e.KineticCooldownTime
	e.DesignatedWeaponTarget = ""
	e.Log(target.ID, target.Name, world.ResultMiss, w.T)
}
