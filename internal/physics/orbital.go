package physics

import (
	"math"

	"github.com/picogrid/legion-tacsim/internal/geo"
)

// GravParamEarth is mu for Earth, m^3/s^2.
const GravParamEarth = 3.986004418e14

const (
	keplerTolerance = 1e-12
	keplerMaxIter   = 20
)

// elements is the set of classical orbital elements recovered from a state
// vector, plus the true anomaly needed to reconstruct position/velocity.
type elements struct {
	sma, ecc, inc, raan, argp, meanAnomaly, trueAnomaly float64
}

// StepOrbital advances an entity's ECI position/velocity by dt seconds
// using analytical two-body Kepler propagation, per spec.md's guard and
// fallback rules. It also refreshes the entity's cached classical elements.
func StepOrbital(pos, vel *geo.Vec3, sma, ecc, inc, raan, argp, meanAnomaly *float64, dt float64) {
	r := pos.Length()
	v := vel.Length()
	if r < 1000 || v < 0.1 {
		return
	}

	energy := v*v/2 - GravParamEarth/r
	el, ok := stateToElements(*pos, *vel, energy)
	if !ok || energy >= 0 || !finiteElements(el) {
		// Hyperbolic/parabolic or degenerate: fall back to linear propagation.
		*pos = pos.Add(vel.Scale(dt))
		return
	}

	n := math.Sqrt(GravParamEarth / (el.sma * el.sma * el.sma))
	newMeanAnomaly := geo.WrapAngle2Pi(el.meanAnomaly + n*dt)

	E, ok := solveKepler(newMeanAnomaly, el.ecc)
	if !ok {
		*pos = pos.Add(vel.Scale(dt))
		return
	}

	newPos, newVel := elementsToState(el.sma, el.ecc, el.inc, el.raan, el.argp, E)
	if !finiteVec(newPos) || !finiteVec(newVel) {
		*pos = pos.Add(vel.Scale(dt))
		return
	}

	*pos = newPos
	*vel = newVel
	*sma = el.sma
	*ecc = el.ecc
	*inc = el.inc
	*raan = el.raan
	*argp = el.argp
	*meanAnomaly = newMeanAnomaly
}

func finiteElements(el elements) bool {
	return isFinite(el.sma) && isFinite(el.ecc) && isFinite(el.inc) &&
		isFinite(el.raan) && isFinite(el.argp) && isFinite(el.meanAnomaly)
}

func finiteVec(v geo.Vec3) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// stateToElements recovers classical elements from an ECI state vector.
func stateToElements(r, v geo.Vec3, energy float64) (elements, bool) {
	h := r.Cross(v)
	hLen := h.Length()
	if hLen < 1e-9 {
		return elements{}, false
	}
	kHat := geo.Vec3{Z: 1}
	nodeVec := kHat.Cross(h)
	nodeLen := nodeVec.Length()

	rLen := r.Length()
	eVec := v.Cross(h).Scale(1 / GravParamEarth).Sub(r.Scale(1 / rLen))
	ecc := eVec.Length()

	if ecc >= 1 || energy >= 0 {
		return elements{}, false
	}
	sma := -GravParamEarth / (2 * energy)

	inc := math.Acos(clamp(h.Z/hLen, -1, 1))

	var raan float64
	if nodeLen > 1e-9 {
		raan = math.Acos(clamp(nodeVec.X/nodeLen, -1, 1))
		if nodeVec.Y < 0 {
			raan = 2*math.Pi - raan
		}
	}

	var argp float64
	if nodeLen > 1e-9 && ecc > 1e-9 {
		cosArgp := nodeVec.Dot(eVec) / (nodeLen * ecc)
		argp = math.Acos(clamp(cosArgp, -1, 1))
		if eVec.Z < 0 {
			argp = 2*math.Pi - argp
		}
	}

	var trueAnomaly float64
	if ecc > 1e-9 {
		cosNu := eVec.Dot(r) / (ecc * rLen)
		trueAnomaly = math.Acos(clamp(cosNu, -1, 1))
		if r.Dot(v) < 0 {
			trueAnomaly = 2*math.Pi - trueAnomaly
		}
	} else if nodeLen > 1e-9 {
		// Circular inclined orbit: measure the argument of latitude from the ascending node.
		cosU := nodeVec.Dot(r) / (nodeLen * rLen)
		trueAnomaly = math.Acos(clamp(cosU, -1, 1))
		if r.Z < 0 {
			trueAnomaly = 2*math.Pi - trueAnomaly
		}
	} else {
		// Circular equatorial orbit: measure the true longitude from the X axis.
		trueAnomaly = geo.WrapAngle2Pi(math.Atan2(math.Copysign(1, h.Z)*r.Y, r.X))
	}

	E := trueAnomalyToEccentric(trueAnomaly, ecc)
	M := geo.WrapAngle2Pi(E - ecc*math.Sin(E))

	return elements{
		sma: sma, ecc: ecc, inc: inc, raan: raan, argp: argp,
		meanAnomaly: M, trueAnomaly: trueAnomaly,
	}, true
}

func trueAnomalyToEccentric(nu, ecc float64) float64 {
	E := 2 * math.Atan2(math.Sqrt(1-ecc)*math.Sin(nu/2), math.Sqrt(1+ecc)*math.Cos(nu/2))
	return geo.WrapAngle2Pi(E)
}

// solveKepler solves Kepler's equation M = E - e*sin(E) for E via Newton
// iteration, tolerance 1e-12, capped at 20 iterations.
func solveKepler(M, ecc float64) (float64, bool) {
	E := M
	if ecc > 0.8 {
		E = math.Pi
	}
	for i := 0; i < keplerMaxIter; i++ {
		f := E - ecc*math.Sin(E) - M
		fPrime := 1 - ecc*math.Cos(E)
		if math.Abs(fPrime) < 1e-15 {
			return E, isFinite(E)
		}
		delta := f / fPrime
		E -= delta
		if math.Abs(delta) < keplerTolerance {
			return E, isFinite(E)
		}
	}
	return E, isFinite(E)
}

// elementsToState reconstructs ECI position/velocity from classical
// elements and an eccentric anomaly.
func elementsToState(sma, ecc, inc, raan, argp, E float64) (geo.Vec3, geo.Vec3) {
	cosE, sinE := math.Cos(E), math.Sin(E)
	r := sma * (1 - ecc*cosE)

	// Perifocal frame position/velocity.
	xp := sma * (cosE - ecc)
	yp := sma * math.Sqrt(1-ecc*ecc) * sinE
	n := math.Sqrt(GravParamEarth / (sma * sma * sma))
	vxp := -sma * n * sinE / (1 - ecc*cosE)
	vyp := sma * n * math.Sqrt(1-ecc*ecc) * cosE / (1 - ecc*cosE)
	_ = r

	cosRAAN, sinRAAN := math.Cos(raan), math.Sin(raan)
	cosInc, sinInc := math.Cos(inc), math.Sin(inc)
	cosArgp, sinArgp := math.Cos(argp), math.Sin(argp)

	// Rotation matrix from perifocal to ECI (3-1-3 Euler: RAAN, inc, argp).
	r11 := cosRAAN*cosArgp - sinRAAN*sinArgp*cosInc
	r12 := -cosRAAN*sinArgp - sinRAAN*cosArgp*cosInc
	r21 := sinRAAN*cosArgp + cosRAAN*sinArgp*cosInc
	r22 := -sinRAAN*sinArgp + cosRAAN*cosArgp*cosInc
	r31 := sinArgp * sinInc
	r32 := cosArgp * sinInc

	pos := geo.Vec3{
		X: r11*xp + r12*yp,
		Y: r21*xp + r22*yp,
		Z: r31*xp + r32*yp,
	}
	vel := geo.Vec3{
		X: r11*vxp + r12*vyp,
		Y: r21*vxp + r22*vyp,
		Z: r31*vxp + r32*vyp,
	}
	return pos, vel
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
