package ai

import (
	"math"

	"github.com/picogrid/legion-tacsim/internal/geo"
	"github.com/picogrid/legion-tacsim/internal/world"
)

// StepIntercept implements spec.md §4.4.3.
func StepIntercept(w *world.World, e *world.Entity, dt float64) {
	target := w.GetEntityByID(e.InterceptTargetID)
	if target == nil || !target.Alive() || target.PhysicsKind == world.PhysicsOrbitalTwoBody {
		e.EngagementState = 0
		return
	}

	bearing := geo.Bearing(e.Lat, e.Lon, target.Lat, target.Lon)
	groundDist := geo.GreatCircleDistance(e.Lat, e.Lon, target.Lat, target.Lon)
	deltaAlt := target.Alt - e.Alt
	slant := math.Hypot(groundDist, deltaAlt)

	desiredAlt := target.Alt
	if target.PhysicsKind != world.PhysicsFlight3DOF {
		desiredAlt = math.Max(target.Alt, 500)
	}

	e.Throttle = 1.0
	headingError := wrapPi(bearing - e.Heading)
	rollCommand := clampF(2*headingError, -0.7, 0.7)
	rate := math.Min(3*dt, 1)
	e.Bank += (rollCommand - e.Bank) * rate

	altError := desiredAlt - e.Alt
	e.AoA = clampF(0.001*altError, -0.15, 0.15)

	if e.EngageRange > 0 && slant < e.EngageRange {
		e.EngagementState = 1
	} else {
		e.EngagementState = 0
	}
}
