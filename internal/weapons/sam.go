package weapons

import (
	"github.com/picogrid/legion-tacsim/internal/world"
)

const (
	samDetectTimer = 1.0
	samTrackTimer  = 2.0
	samAssessTimer = 3.0
)

// stepSAMAcquisition implements spec.md §4.6.2's acquisition rule: for
// every same-team radar whose detections include a target not already
// engaged by this SAM, not static, at or above 100 m altitude, within
// [min_range, max_range], append a fresh detect-phase engagement.
func stepSAMAcquisition(w *world.World, e *world.Entity) {
	engaged := make(map[string]bool, len(e.SAMEngagements))
	for _, eng := range e.SAMEngagements {
		engaged[eng.TargetID] = true
	}

	selfECEF := w.ECEFPosition(e)
	for _, radar := range w.Entities() {
		if radar.Team != e.Team || !radar.RadarEnabled {
			continue
		}
		for _, det := range radar.Detections {
			if engaged[det.TargetID] {
				continue
			}
			target := w.GetEntityByID(det.TargetID)
			if target == nil || !target.Alive() || target.PhysicsKind == world.PhysicsStatic {
				continue
			}
			if target.Alt < 100 {
				continue
			}
			targetECEF := w.ECEFPosition(target)
			slant := targetECEF.Sub(selfECEF).Length()
			if slant < e.SAMMinRange || slant > e.SAMMaxRange {
				continue
			}
			e.SAMEngagements = append(e.SAMEngagements, world.SAMEngagement{
				TargetID:   det.TargetID,
				Phase:      world.SAMDetect,
				PhaseTimer: samDetectTimer,
			})
			engaged[det.TargetID] = true
		}
	}
}

// stepSAMEngagements advances each of this SAM's in-flight kill chains
// through detect -> track -> engage -> assess, per spec.md §4.6.2.
func stepSAMEngagements(w *world.World, e *world.Entity, dt float64) {
	kept := e.SAMEngagements[:0]
	for i := range e.SAMEngagements {
		eng := e.SAMEngagements[i]
		eng.PhaseTimer -= dt
		if eng.PhaseTimer > 0 {
			kept = append(kept, eng)
			continue
		}

		switch eng.Phase {
		case world.SAMDetect:
			eng.Phase = world.SAMTrack
			eng.PhaseTimer = samTrackTimer
			kept = append(kept, eng)

		case world.SAMTrack:
			target := w.GetEntityByID(eng.TargetID)
			if target == nil || !target.Alive() || e.MissilesReady <= 0 {
				continue // erase engagement
			}
			fired := e.SalvoSize
			if fired > e.MissilesReady {
				fired = e.MissilesReady
			}
			e.MissilesReady -= fired
			for i := 0; i < fired; i++ {
				e.Log(target.ID, target.Name, world.ResultLaunch, w.T)
			}
			eng.MissilesFired = fired
			slant := w.ECEFPosition(target).Sub(w.ECEFPosition(e)).Length()
			tof := slant / e.SAMMissileSpeed
			eng.Phase = world.SAMEngage
			eng.PhaseTimer = tof
			kept = append(kept, eng)

		case world.SAMEngage:
			target := w.GetEntityByID(eng.TargetID)
			anyHit := false
			for i := 0; i < eng.MissilesFired; i++ {
				if w.RNG.Bernoulli(e.PkPerMissile) {
					anyHit = true
				}
			}
			if anyHit && target != nil && target.Alive() {
				target.Kill()
				e.Log(target.ID, target.Name, world.ResultKill, w.T)
				target.Log(e.ID, e.Name, world.ResultKilledBy, w.T)
			} else {
				targetName := ""
				if target != nil {
					targetName = target.Name
				}
				e.Log(eng.TargetID, targetName, world.ResultMiss, w.T)
			}
			eng.Phase = world.SAMAssess
			eng.PhaseTimer = samAssessTimer
			kept = append(kept, eng)

		case world.SAMAssess:
			// erase: assess window elapsed.
		}
	}
	e.SAMEngagements = kept
}
