package weapons

import "github.com/picogrid/legion-tacsim/internal/world"

const a2aAssessTimer = 2.0

// selectWeapon implements the min-overkill selection of spec.md §4.6.3:
// the weapon with the smallest spec.range that is still >= the slant range
// to the target and has inventory > 0.
func selectWeapon(e *world.Entity, slantRange float64) (string, bool) {
	best := ""
	bestRange := 0.0
	for _, name := range e.A2ALoadout {
		spec, ok := e.A2ASpecs[name]
		if !ok {
			continue
		}
		if e.A2AInventory[name] <= 0 {
			continue
		}
		if spec.Range < slantRange {
			continue
		}
		if best == "" || spec.Range < bestRange {
			best = name
			bestRange = spec.Range
		}
	}
	return best, best != ""
}

// stepA2AAcquisition implements spec.md §4.6.3's acquisition rule.
func stepA2AAcquisition(w *world.World, e *world.Entity) {
	engaged := make(map[string]bool, len(e.A2AEngagements))
	for _, eng := range e.A2AEngagements {
		engaged[eng.TargetID] = true
	}

	selfECEF := w.ECEFPosition(e)
	for _, det := range e.Detections {
		if engaged[det.TargetID] {
			continue
		}
		target := w.GetEntityByID(det.TargetID)
		if target == nil || !target.Alive() {
			continue
		}
		slant := w.ECEFPosition(target).Sub(selfECEF).Length()
		weapon, ok := selectWeapon(e, slant)
		if !ok {
			continue
		}
		e.A2AEngagements = append(e.A2AEngagements, world.A2AEngagement{
			TargetID: det.TargetID, Phase: world.A2ALock, PhaseTimer: e.LockTime, WeaponName: weapon,
		})
		engaged[det.TargetID] = true
	}

	if e.AIKind == world.AIIntercept && e.EngagementState == 1 && e.InterceptTargetID != "" && !engaged[e.InterceptTargetID] {
		target := w.GetEntityByID(e.InterceptTargetID)
		if target != nil && target.Alive() {
			slant := w.ECEFPosition(target).Sub(selfECEF).Length()
			if weapon, ok := selectWeapon(e, slant); ok {
				e.A2AEngagements = append(e.A2AEngagements, world.A2AEngagement{
					TargetID: e.InterceptTargetID, Phase: world.A2ALock, PhaseTimer: e.LockTime, WeaponName: weapon,
				})
			}
		}
	}
}

// stepA2AEngagements advances each of this entity's in-flight A2A missile
// shots through lock -> guide -> assess, per spec.md §4.6.3. The MISS
// branch's target-name substitution for a target that died mid-guide is
// reproduced deliberately; see DESIGN.md's Open Question decision.
func stepA2AEngagements(w *world.World, e *world.Entity, dt float64) {
	kept := e.A2AEngagements[:0]
	for i := range e.A2AEngagements {
		eng := e.A2AEngagements[i]
		eng.PhaseTimer -= dt
		if eng.PhaseTimer > 0 {
			kept = append(kept, eng)
			continue
		}

		switch eng.Phase {
		case world.A2ALock:
			target := w.GetEntityByID(eng.TargetID)
			if target == nil || !target.Alive() || e.A2AInventory[eng.WeaponName] <= 0 {
				continue // erase
			}
			e.A2AInventory[eng.WeaponName]--
			e.Log(target.ID, target.Name, world.ResultLaunch, w.T)
			spec := e.A2ASpecs[eng.WeaponName]
			slant := w.ECEFPosition(target).Sub(w.ECEFPosition(e)).Length()
			eng.Phase = world.A2AGuide
			eng.PhaseTimer = slant / spec.Speed
			kept = append(kept, eng)

		case world.A2AGuide:
			target := w.GetEntityByID(eng.TargetID)
			spec := e.A2ASpecs[eng.WeaponName]
			hit := w.RNG.Bernoulli(spec.Pk)
			if hit && target != nil && target.Alive() {
				target.Kill()
				e.Log(target.ID, target.Name, world.ResultKill, w.T)
				target.Log(e.ID, e.Name, world.ResultKilledBy, w.T)
			} else if target == nil || !target.Alive() {
				// Target destroyed mid-guide: reproduce the reference
				// implementation's observed mismatch of substituting the
				// target id for its name in the MISS record.
				e.Log(eng.TargetID, eng.TargetID, world.ResultMiss, w.T)
			} else {
				e.Log(target.ID, target.Name, world.ResultMiss, w.T)
			}
			eng.Phase = world.A2AAssess
			eng.PhaseTimer = a2aAssessTimer
			kept = append(kept, eng)

		case world.A2AAssess:
			// erase: assess window elapsed.
		}
	}
	e.A2AEngagements = kept
}
