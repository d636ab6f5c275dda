// Package sensors implements the radar sweep model: a fixed sweep-interval
// accumulator that rebuilds and clears the detection list on every sweep
// (no TTL-based persistence, unlike the scanner texture this was inspired
// by — see DESIGN.md).
package sensors

import (
	"math"

	"github.com/picogrid/legion-tacsim/internal/geo"
	"github.com/picogrid/legion-tacsim/internal/world"
)

// Step advances one radar-bearing entity's sweep timer and, when the
// interval elapses, rebuilds its detection list per spec.md §4.5.
func Step(w *world.World, e *world.Entity, dt float64) {
	if !e.RadarEnabled || !e.Alive() {
		return
	}
	e.SweepAccum += dt
	if e.SweepAccum < e.SweepInterval {
		return
	}
	e.SweepAccum = 0
	e.Detections = nil

	selfECEF := w.ECEFPosition(e)
	for _, other := range w.Entities() {
		if other == e || other.Team == e.Team || !other.Alive() {
			continue
		}
		otherECEF := w.ECEFPosition(other)
		delta := otherECEF.Sub(selfECEF)
		slantRange := delta.Length()
		if slantRange > e.RadarMaxRange {
			continue
		}

		// Split the ECEF delta into local-horizontal and local-up components
		// at the observer.
		origin := observerLatLon(w, e)
		latRad, lonRad := origin.lat*math.Pi/180, origin.lon*math.Pi/180
		east := -math.Sin(lonRad)*delta.X + math.Cos(lonRad)*delta.Y
		north := -math.Sin(latRad)*math.Cos(lonRad)*delta.X - math.Sin(latRad)*math.Sin(lonRad)*delta.Y + math.Cos(latRad)*delta.Z
		groundDist := math.Hypot(east, north)
		deltaAlt := math.Cos(latRad)*math.Cos(lonRad)*delta.X + math.Cos(latRad)*math.Sin(lonRad)*delta.Y + math.Sin(latRad)*delta.Z
		elevDeg := radarElevationDeg(groundDist, deltaAlt)
		if elevDeg < e.RadarMinElev || elevDeg > e.RadarMaxElev {
			continue
		}

		if !w.RNG.Bernoulli(e.DetectProb) {
			continue
		}

		bearing := localBearing(delta, origin)
		e.Detections = append(e.Detections, world.Detection{
			TargetID: other.ID,
			Range:    slantRange,
			Bearing:  bearing,
			Time:     w.T,
		})
	}
}

// radarElevationDeg implements spec.md §4.5's elevation computation:
// asin(deltaAlt/groundDist) in degrees, or +/-90 when groundDist < 1 m.
func radarElevationDeg(groundDist, deltaAlt float64) float64 {
	if groundDist < 1 {
		if deltaAlt >= 0 {
			return 90
		}
		return -90
	}
	ratio := deltaAlt / groundDist
	if ratio > 1 {
		ratio = 1
	}
	if ratio < -1 {
		ratio = -1
	}
	return math.Asin(ratio) * 180 / math.Pi
}

type latLon struct{ lat, lon float64 }

func observerLatLon(w *world.World, e *world.Entity) latLon {
	if e.PhysicsKind == world.PhysicsOrbitalTwoBody {
		lat, lon, _ := geo.ECEFToGeodetic(w.ECEFPosition(e))
		return latLon{lat, lon}
	}
	return latLon{e.Lat, e.Lon}
}

// localBearing returns the bearing (radians, clockwise from north) of an
// ECEF delta vector as seen from the observer's local tangent plane
// (East-North-Up), matching spec.md §4.5's "bearing (local tangent plane)".
func localBearing(delta geo.Vec3, origin latLon) float64 {
	latRad := origin.lat * math.Pi / 180
	lonRad := origin.lon * math.Pi / 180
	sinLat, cosLat := math.Sin(latRad), math.Cos(latRad)
	sinLon, cosLon := math.Sin(lonRad), math.Cos(lonRad)

	east := -sinLon*delta.X + cosLon*delta.Y
	north := -sinLat*cosLon*delta.X - sinLat*sinLon*delta.Y + cosLat*delta.Z

	bearing := math.Atan2(east, north)
	if bearing < 0 {
		bearing += 2 * math.Pi
	}
	return bearing
}
