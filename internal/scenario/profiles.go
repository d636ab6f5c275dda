package scenario

// AircraftProfile is one named entry in the fixed aircraft performance
// table spec.md §6 requires. ClAlpha is stored per radian; each table
// entry converts its per-degree figure inline (x 180/pi).
type AircraftProfile struct {
	Mass        float64
	WingArea    float64
	AspectRatio float64
	Cd0         float64
	OswaldEff   float64
	ClAlpha     float64 // per radian
	ClMax       float64
	ThrustMil   float64
	ThrustAB    float64
	GLimit      float64
	MaxAoA      float64 // radians
	IdleFrac    float64
}

const degToRad = 3.14159265358979323846 / 180.0

// aircraftProfiles is the fixed table named in spec.md §6. Figures are
// representative performance numbers for each airframe class, not
// classified data.
var aircraftProfiles = map[string]AircraftProfile{
	"f16":  {Mass: 12000, WingArea: 27.87, AspectRatio: 3.2, Cd0: 0.0214, OswaldEff: 0.8, ClAlpha: 0.11 * 180 / 3.14159265358979323846, ClMax: 1.6, ThrustMil: 79000, ThrustAB: 129000, GLimit: 9, MaxAoA: 25 * degToRad, IdleFrac: 0.05},
	"f15":  {Mass: 20200, WingArea: 56.5, AspectRatio: 3.0, Cd0: 0.0220, OswaldEff: 0.78, ClAlpha: 0.10 * 180 / 3.14159265358979323846, ClMax: 1.5, ThrustMil: 2 * 65000, ThrustAB: 2 * 105000, GLimit: 9, MaxAoA: 24 * degToRad, IdleFrac: 0.05},
	"f22":  {Mass: 19700, WingArea: 78.0, AspectRatio: 2.36, Cd0: 0.0200, OswaldEff: 0.82, ClAlpha: 0.105 * 180 / 3.14159265358979323846, ClMax: 1.7, ThrustMil: 2 * 104000, ThrustAB: 2 * 156000, GLimit: 9, MaxAoA: 30 * degToRad, IdleFrac: 0.05},
	"f35":  {Mass: 13300, WingArea: 42.7, AspectRatio: 2.66, Cd0: 0.0225, OswaldEff: 0.8, ClAlpha: 0.10 * 180 / 3.14159265358979323846, ClMax: 1.6, ThrustMil: 125000, ThrustAB: 191000, GLimit: 9, MaxAoA: 26 * degToRad, IdleFrac: 0.05},
	"f18":  {Mass: 14500, WingArea: 37.2, AspectRatio: 3.5, Cd0: 0.0210, OswaldEff: 0.8, ClAlpha: 0.105 * 180 / 3.14159265358979323846, ClMax: 1.6, ThrustMil: 2 * 49000, ThrustAB: 2 * 79000, GLimit: 7.5, MaxAoA: 25 * degToRad, IdleFrac: 0.05},
	"a10":  {Mass: 11300, WingArea: 47.0, AspectRatio: 6.5, Cd0: 0.0280, OswaldEff: 0.85, ClAlpha: 0.095 * 180 / 3.14159265358979323846, ClMax: 1.8, ThrustMil: 2 * 40000, ThrustAB: 2 * 40000, GLimit: 7, MaxAoA: 18 * degToRad, IdleFrac: 0.05},
	"mig29": {Mass: 11000, WingArea: 38.0, AspectRatio: 3.4, Cd0: 0.0215, OswaldEff: 0.78, ClAlpha: 0.10 * 180 / 3.14159265358979323846, ClMax: 1.5, ThrustMil: 2 * 49000, ThrustAB: 2 * 81000, GLimit: 9, MaxAoA: 24 * degToRad, IdleFrac: 0.05},
	"su27": {Mass: 17000, WingArea: 62.0, AspectRatio: 3.5, Cd0: 0.0200, OswaldEff: 0.8, ClAlpha: 0.10 * 180 / 3.14159265358979323846, ClMax: 1.6, ThrustMil: 2 * 74500, ThrustAB: 2 * 122500, GLimit: 9, MaxAoA: 26 * degToRad, IdleFrac: 0.05},
	"su35": {Mass: 18400, WingArea: 62.0, AspectRatio: 3.5, Cd0: 0.0195, OswaldEff: 0.82, ClAlpha: 0.105 * 180 / 3.14159265358979323846, ClMax: 1.7, ThrustMil: 2 * 86300, ThrustAB: 2 * 142000, GLimit: 9, MaxAoA: 28 * degToRad, IdleFrac: 0.05},
	"su57": {Mass: 18500, WingArea: 78.8, AspectRatio: 2.3, Cd0: 0.0190, OswaldEff: 0.82, ClAlpha: 0.105 * 180 / 3.14159265358979323846, ClMax: 1.7, ThrustMil: 2 * 93100, ThrustAB: 2 * 142000, GLimit: 9, MaxAoA: 30 * degToRad, IdleFrac: 0.05},
	"awacs": {Mass: 77000, WingArea: 283.4, AspectRatio: 7.0, Cd0: 0.0220, OswaldEff: 0.82, ClAlpha: 0.09 * 180 / 3.14159265358979323846, ClMax: 1.4, ThrustMil: 4 * 93000, ThrustAB: 4 * 93000, GLimit: 2.5, MaxAoA: 14 * degToRad, IdleFrac: 0.1},
	"b2":   {Mass: 71700, WingArea: 478.0, AspectRatio: 5.9, Cd0: 0.0150, OswaldEff: 0.88, ClAlpha: 0.085 * 180 / 3.14159265358979323846, ClMax: 1.3, ThrustMil: 4 * 77000, ThrustAB: 4 * 77000, GLimit: 2, MaxAoA: 12 * degToRad, IdleFrac: 0.1},
	"bomber":      {Mass: 83000, WingArea: 370.0, AspectRatio: 6.96, Cd0: 0.0180, OswaldEff: 0.85, ClAlpha: 0.09 * 180 / 3.14159265358979323846, ClMax: 1.4, ThrustMil: 8 * 61000, ThrustAB: 8 * 61000, GLimit: 2, MaxAoA: 13 * degToRad, IdleFrac: 0.1},
	"bomber_fast": {Mass: 87000, WingArea: 181.9, AspectRatio: 1.9, Cd0: 0.0165, OswaldEff: 0.8, ClAlpha: 0.08 * 180 / 3.14159265358979323846, ClMax: 1.2, ThrustMil: 4 * 84500, ThrustAB: 4 * 112000, GLimit: 2.25, MaxAoA: 12 * degToRad, IdleFrac: 0.1},
	"c17":         {Mass: 265000, WingArea: 353.0, AspectRatio: 7.2, Cd0: 0.0250, OswaldEff: 0.85, ClAlpha: 0.095 * 180 / 3.14159265358979323846, ClMax: 1.8, ThrustMil: 4 * 180000, ThrustAB: 4 * 180000, GLimit: 2, MaxAoA: 16 * degToRad, IdleFrac: 0.1},
	"transport":   {Mass: 79000, WingArea: 163.0, AspectRatio: 10.1, Cd0: 0.0230, OswaldEff: 0.85, ClAlpha: 0.095 * 180 / 3.14159265358979323846, ClMax: 1.8, ThrustMil: 4 * 20860, ThrustAB: 4 * 20860, GLimit: 2, MaxAoA: 16 * degToRad, IdleFrac: 0.1},
	"drone_male":  {Mass: 1100, WingArea: 11.5, AspectRatio: 19, Cd0: 0.0300, OswaldEff: 0.85, ClAlpha: 0.095 * 180 / 3.14159265358979323846, ClMax: 1.5, ThrustMil: 900, ThrustAB: 900, GLimit: 3, MaxAoA: 15 * degToRad, IdleFrac: 0.1},
	"drone_hale":  {Mass: 14600, WingArea: 50.2, AspectRatio: 25, Cd0: 0.0250, OswaldEff: 0.88, ClAlpha: 0.09 * 180 / 3.14159265358979323846, ClMax: 1.4, ThrustMil: 2 * 8500, ThrustAB: 2 * 8500, GLimit: 2, MaxAoA: 12 * degToRad, IdleFrac: 0.1},
}

// aircraftAliases maps alternate spellings in the scenario format to the
// canonical profile name.
var aircraftAliases = map[string]string{
	"mq9": "drone_male",
	"rq4": "drone_hale",
}

// LookupProfile resolves a named aircraft config to its profile, defaulting
// to f16 for unknown names per spec.md §6.
func LookupProfile(name string) AircraftProfile {
	if canon, ok := aircraftAliases[name]; ok {
		name = canon
	}
	if p, ok := aircraftProfiles[name]; ok {
		return p
	}
	return aircraftProfiles["f16"]
}

// a2aCatalog is the fixed air-to-air weapon catalog named in spec.md §6.
var a2aCatalog = map[string]struct {
	Range, Speed, Pk float64
}{
	"aim120": {Range: 80000, Speed: 1400, Pk: 0.75},
	"r77":    {Range: 80000, Speed: 1300, Pk: 0.70},
	"aim9":   {Range: 18000, Speed: 900, Pk: 0.85},
	"r73":    {Range: 18000, Speed: 850, Pk: 0.80},
}
