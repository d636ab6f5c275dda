package physics

import "math"

// Atmosphere constants for the US 1976 Standard Atmosphere model.
const (
	seaLevelDensity  = 1.225       // kg/m^3, rho0
	specificGasConst = 287.058     // J/(kg*K), R
	adiabaticIndex   = 1.4         // gamma
	gravityStandard  = 9.80665     // m/s^2, g
	earthRadiusGeop  = 6356766.0   // m, used for geometric->geopotential conversion
	scaleHeightHigh  = 8500.0      // m, above 84852 m
)

type atmoLayer struct {
	baseAltM   float64
	baseTempK  float64
	lapseRate  float64 // K/m
	basePressPa float64
}

// layers holds the 7 standard-atmosphere layers up to 84852 m geopotential
// altitude.
var layers = []atmoLayer{
	{0, 288.15, -0.0065, 101325.0},
	{11000, 216.65, 0.0, 22632.1},
	{20000, 216.65, 0.001, 5474.89},
	{32000, 228.65, 0.0028, 868.019},
	{47000, 270.65, 0.0, 110.906},
	{51000, 270.65, -0.0028, 66.9389},
	{71000, 214.65, -0.002, 3.95642},
}

// geometricToGeopotential converts geometric altitude (m) to geopotential
// altitude (m).
func geometricToGeopotential(zGeometric float64) float64 {
	return earthRadiusGeop * zGeometric / (earthRadiusGeop + zGeometric)
}

// AtmosphereState is the local atmosphere at a given altitude.
type AtmosphereState struct {
	Density       float64 // kg/m^3
	Temperature   float64 // K
	Pressure      float64 // Pa
	SpeedOfSound  float64 // m/s
}

// Atmosphere evaluates the US 1976 Standard Atmosphere at the given
// geometric altitude in meters.
func Atmosphere(altM float64) AtmosphereState {
	h := geometricToGeopotential(altM)

	if h > layers[len(layers)-1].baseAltM+13852 {
		// Above 84852 m geopotential: exponential decay with 8500 m scale
		// height from the top of the tabulated layers.
		last := layers[len(layers)-1]
		topAlt := last.baseAltM + 13852.0
		pTop, tTop := pressureAndTempAtTop(last, topAlt)
		p := pTop * math.Exp(-(h - topAlt) / scaleHeightHigh)
		rho := p / (specificGasConst * tTop)
		a := math.Sqrt(adiabaticIndex * specificGasConst * tTop)
		return AtmosphereState{Density: rho, Temperature: tTop, Pressure: p, SpeedOfSound: a}
	}

	layer := layers[0]
	for i, l := range layers {
		if h >= l.baseAltM {
			layer = l
			if i+1 < len(layers) && h < layers[i+1].baseAltM {
				break
			}
		}
	}

	dh := h - layer.baseAltM
	var temp, press float64
	if layer.lapseRate != 0 {
		temp = layer.baseTempK + layer.lapseRate*dh
		press = layer.basePressPa * math.Pow(temp/layer.baseTempK, -gravityStandard/(layer.lapseRate*specificGasConst))
	} else {
		temp = layer.baseTempK
		press = layer.basePressPa * math.Exp(-gravityStandard*dh/(specificGasConst*layer.baseTempK))
	}

	rho := press / (specificGasConst * temp)
	a := math.Sqrt(adiabaticIndex * specificGasConst * temp)
	return AtmosphereState{Density: rho, Temperature: temp, Pressure: press, SpeedOfSound: a}
}

func pressureAndTempAtTop(layer atmoLayer, topAlt float64) (float64, float64) {
	dh := topAlt - layer.baseAltM
	if layer.lapseRate != 0 {
		temp := layer.baseTempK + layer.lapseRate*dh
		press := layer.basePressPa * math.Pow(temp/layer.baseTempK, -gravityStandard/(layer.lapseRate*specificGasConst))
		return press, temp
	}
	temp := layer.baseTempK
	press := layer.basePressPa * math.Exp(-gravityStandard*dh/(specificGasConst*layer.baseTempK))
	return press, temp
}
