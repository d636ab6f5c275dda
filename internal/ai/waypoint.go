package ai

import (
	"math"

	"github.com/picogrid/legion-tacsim/internal/geo"
	"github.com/picogrid/legion-tacsim/internal/world"
)

const arrivalThresholdM = 2000.0

// StepWaypointPatrol implements spec.md §4.4.2: bearing/distance to the
// current waypoint, heading/altitude/speed control, and arrival/advance
// logic.
func StepWaypointPatrol(e *world.Entity, dt float64) {
	if len(e.Waypoints) == 0 {
		return
	}
	wp := e.Waypoints[e.WPIndex]

	bearing := geo.Bearing(e.Lat, e.Lon, wp.Lat, wp.Lon)
	dist := geo.GreatCircleDistance(e.Lat, e.Lon, wp.Lat, wp.Lon)

	desiredSpeed := wp.Speed
	if desiredSpeed <= 0 {
		desiredSpeed = e.TrueAirspeed
	}

	steerHeadingAltitudeSpeed(e, bearing, wp.Alt, desiredSpeed, dt)

	if dist <= arrivalThresholdM {
		advanceWaypoint(e)
	}
}

func advanceWaypoint(e *world.Entity) {
	e.WPIndex++
	if e.WPIndex >= len(e.Waypoints) {
		if e.Loop {
			e.WPIndex = 0
		} else {
			e.WPIndex = len(e.Waypoints) - 1
		}
	}
}

// steerHeadingAltitudeSpeed implements the shared PID-like steering shape
// used by both waypoint patrol (§4.4.2) and intercept (§4.4.3): a bank
// command proportional to heading error, altitude control via
// angle-of-attack proportional to altitude error, and throttle control
// toward a desired speed (skipped when desiredSpeed <= 0).
func steerHeadingAltitudeSpeed(e *world.Entity, desiredHeading, desiredAlt, desiredSpeed, dt float64) {
	headingError := wrapPi(desiredHeading - e.Heading)
	rollCommand := clampF(2*headingError, -0.7, 0.7)
	rate := math.Min(3*dt, 1)
	e.Bank += (rollCommand - e.Bank) * rate

	altError := desiredAlt - e.Alt
	e.AoA = clampF(0.001*altError, -0.15, 0.15)

	speedControl(e, desiredSpeed, dt)
}

func speedControl(e *world.Entity, desiredSpeed float64, dt float64) {
	if desiredSpeed <= 0 {
		return
	}
	if e.TrueAirspeed < 0.95*desiredSpeed {
		e.Throttle += 0.1 * dt
	} else if e.TrueAirspeed > 1.05*desiredSpeed {
		e.Throttle -= 0.1 * dt
	}
	e.Throttle = clampF(e.Throttle, 0.3, 1.0)
}

func wrapPi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
