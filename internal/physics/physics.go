// Package physics implements the per-entity equations of motion: analytical
// two-body Kepler propagation for orbital entities, 3-DOF point-mass flight
// dynamics over the US 1976 Standard Atmosphere for aircraft, and a no-op
// for static ground installations.
package physics

import (
	"math"

	"github.com/picogrid/legion-tacsim/internal/geo"
	"github.com/picogrid/legion-tacsim/internal/world"
)

// Step advances a single entity's physics state by dt seconds, dispatching
// on its PhysicsKind. AI writes steering/throttle commands into
// the entity earlier in the tick; physics only integrates state.
func Step(e *world.Entity, dt float64) {
	switch e.PhysicsKind {
	case world.PhysicsOrbitalTwoBody:
		stepOrbitalEntity(e, dt)
	case world.PhysicsFlight3DOF:
		stepFlightEntity(e, dt)
	case world.PhysicsStatic:
		// no-op
	}
}

func stepOrbitalEntity(e *world.Entity, dt float64) {
	StepOrbital(&e.ECIPos, &e.ECIVel, &e.SMA, &e.Ecc, &e.Inc, &e.RAAN, &e.ArgPeri, &e.MeanAnomaly, dt)
}

func stepFlightEntity(e *world.Entity, dt float64) {
	fs := FlightState{
		V: e.TrueAirspeed, Gamma: e.Gamma, Psi: e.Heading, Bank: e.Bank,
		AoA: e.AoA, Throttle: e.Throttle, EngineOn: e.EngineOn, AltM: e.Alt,
	}
	fp := FlightParams{
		Mass: e.Mass, WingArea: e.WingArea, AspectRatio: e.AspectRatio,
		Cd0: e.Cd0, OswaldEff: e.OswaldEff, ClAlpha: e.ClAlpha, ClMax: e.ClMax,
		ThrustMil: e.ThrustMil, ThrustAB: e.ThrustAB,
	}

	groundDist := fs.V * math.Cos(fs.Gamma) * dt
	newLat, newLon := geo.Destination(e.Lat, e.Lon, fs.Psi, groundDist)
	newAlt := fs.AltM + fs.V*math.Sin(fs.Gamma)*dt

	StepFlight(&fs, fp, dt)

	e.TrueAirspeed = fs.V
	e.Gamma = fs.Gamma
	e.Heading = fs.Psi
	e.Mach = fs.Mach
	e.Lat = newLat
	e.Lon = newLon
	if newAlt < 0 {
		newAlt = 0
	}
	e.Alt = newAlt
}
