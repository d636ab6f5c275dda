// Package scenario decodes the YAML scenario tree spec.md §6 describes
// into a *world.World: entity records tagged with physics/AI/sensor/weapon
// components, scripted events, and the player_input auto-patrol
// convenience. Modeled on the Counter-UAS simulation's config/loader.go
// load chain, generalized from a single fixed simulation shape to an
// arbitrary entity/event tree.
package scenario

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/picogrid/legion-tacsim/internal/geo"
	"github.com/picogrid/legion-tacsim/internal/world"
)

// File is the top-level scenario document.
type File struct {
	Entities []EntitySpec `yaml:"entities"`
	Events   []EventSpec  `yaml:"events"`
}

// EntitySpec is one entity record in the scenario tree.
type EntitySpec struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Type         string            `yaml:"type"`
	Team         string            `yaml:"team"`
	InitialState InitialState      `yaml:"initialState"`
	Components   ComponentsSpec    `yaml:"components"`
}

// InitialState is the entity's starting kinematic state.
type InitialState struct {
	Lat      float64 `yaml:"lat"`
	Lon      float64 `yaml:"lon"`
	Alt      float64 `yaml:"alt"`
	Speed    float64 `yaml:"speed"`
	Heading  float64 `yaml:"heading"` // degrees
	Gamma    float64 `yaml:"gamma"`   // degrees
	Throttle float64 `yaml:"throttle"`
	EngineOn bool    `yaml:"engineOn"`
}

// ComponentsSpec groups the optional per-entity subsystem configurations.
type ComponentsSpec struct {
	Physics *PhysicsSpec `yaml:"physics"`
	AI      *AISpec      `yaml:"ai"`
	Sensors *SensorSpec  `yaml:"sensors"`
	Weapons *WeaponSpec  `yaml:"weapons"`
	Control *ControlSpec `yaml:"control"`
}

// OrbitalElements is the classical-element initial state for orbital
// entities.
type OrbitalElements struct {
	SMA         float64 `yaml:"sma"`
	Ecc         float64 `yaml:"ecc"`
	Inc         float64 `yaml:"inc"`         // degrees
	RAAN        float64 `yaml:"raan"`        // degrees
	ArgPerigee  float64 `yaml:"argPerigee"`  // degrees
	MeanAnomaly float64 `yaml:"meanAnomaly"` // degrees
}

// PhysicsSpec selects and configures an entity's physics model.
type PhysicsSpec struct {
	Type     string           `yaml:"type"` // "orbital_2body" | "flight3dof"
	Elements *OrbitalElements `yaml:"elements"`
	Config   string           `yaml:"config"` // aircraft profile name
}

// AISpec selects and configures an entity's AI behavior.
type AISpec struct {
	Type string `yaml:"type"` // "orbital_combat" | "waypoint_patrol" | "intercept"

	// orbital_combat
	Role          string  `yaml:"role"`
	SensorRangeM  float64 `yaml:"sensorRange_m"`
	DefenseRadius float64 `yaml:"defenseRadius_m"`
	MaxAccel      float64 `yaml:"maxAccel"`
	KillRangeM    float64 `yaml:"killRange_m"`
	ScanIntervalS float64 `yaml:"scanInterval_s"`
	AssignedHVA   string  `yaml:"assignedHva"`

	// waypoint_patrol
	Waypoints []WaypointSpec `yaml:"waypoints"`
	Loop      bool           `yaml:"loop"`

	// intercept
	TargetID    string  `yaml:"targetId"`
	EngageRange float64 `yaml:"engageRange_m"`
}

// WaypointSpec is one patrol leg in a scenario file.
type WaypointSpec struct {
	Lat   float64 `yaml:"lat"`
	Lon   float64 `yaml:"lon"`
	Alt   float64 `yaml:"alt"`
	Speed float64 `yaml:"speed"`
}

// SensorSpec configures a radar component.
type SensorSpec struct {
	Type                 string  `yaml:"type"` // "radar"
	MaxRangeM            float64 `yaml:"maxRange_m"`
	FOVDeg               float64 `yaml:"fov_deg"`
	DetectionProbability float64 `yaml:"detectionProbability"`
	MinElevationDeg      float64 `yaml:"minElevation_deg"`
	MaxElevationDeg      float64 `yaml:"maxElevation_deg"`
	ScanRateDPS          float64 `yaml:"scanRate_dps"`
}

// WeaponSpec configures a weapon component.
type WeaponSpec struct {
	Type string `yaml:"type"` // "kinetic_kill" | "sam_battery" | "a2a_missile" | "fighter_loadout"

	// kinetic_kill
	Pk             float64 `yaml:"pk"`
	KillRangeM     float64 `yaml:"killRange_m"`
	CooldownTimeS  float64 `yaml:"cooldownTime_s"`

	// sam_battery
	MaxRangeM      float64 `yaml:"maxRange_m"`
	MinRangeM      float64 `yaml:"minRange_m"`
	MissileSpeedMS float64 `yaml:"missileSpeed_ms"`
	MissilesReady  int     `yaml:"missilesReady"`
	SalvoSize      int     `yaml:"salvoSize"`
	PkPerMissile   float64 `yaml:"pkPerMissile"`

	// a2a_missile / fighter_loadout
	Loadout  []string `yaml:"loadout"`
	LockTime float64  `yaml:"lockTime_s"`
}

// ControlSpec configures the player_input racetrack auto-patrol.
type ControlSpec struct {
	Type string `yaml:"type"` // "player_input"
}

// EventSpec is one scripted world event.
type EventSpec struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Trigger TriggerSpec `yaml:"trigger"`
	Action  ActionSpec  `yaml:"action"`
}

// TriggerSpec accepts both naming conventions spec.md §6 requires
// (entityA/entityB and entityId/targetId; range_m and range).
type TriggerSpec struct {
	Type     string  `yaml:"type"` // "time" | "proximity" | "detection"
	Time     float64 `yaml:"time"`
	EntityA  string  `yaml:"entityA"`
	EntityB  string  `yaml:"entityB"`
	EntityID string  `yaml:"entityId"`
	TargetID string  `yaml:"targetId"`
	RangeM   float64 `yaml:"range_m"`
	Range    float64 `yaml:"range"`

	SensorEntity string `yaml:"sensorEntity"`
	TargetEntity string `yaml:"targetEntity"`
}

func (t TriggerSpec) resolvedEntityA() string {
	if t.EntityA != "" {
		return t.EntityA
	}
	return t.EntityID
}

func (t TriggerSpec) resolvedEntityB() string {
	if t.EntityB != "" {
		return t.EntityB
	}
	return t.TargetID
}

func (t TriggerSpec) resolvedRange() float64 {
	if t.RangeM != 0 {
		return t.RangeM
	}
	return t.Range
}

// ActionSpec is one scripted event action.
type ActionSpec struct {
	Type  string `yaml:"type"` // "message" | "set_state" | "change_rules"
	Field string `yaml:"field"`
	Value string `yaml:"value"`
	Text  string `yaml:"text"`
}

// Load reads and decodes a scenario file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	return &f, nil
}

// Build constructs a fresh *world.World from a decoded scenario, seeded
// with seed. Entities are added in file order, so stable insertion-order
// tie-breaking downstream (AI target selection, RNG consultation order)
// follows the scenario author's entity ordering.
func Build(f *File, seed uint32) (*world.World, error) {
	w := world.New(seed)
	for _, es := range f.Entities {
		e, err := buildEntity(es)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", es.ID, err)
		}
		if err := w.AddEntity(e); err != nil {
			return nil, err
		}
	}
	for _, ev := range f.Events {
		w.Events = append(w.Events, buildEvent(ev))
	}
	return w, nil
}

func buildEntity(es EntitySpec) (*world.Entity, error) {
	e := &world.Entity{
		ID:              es.ID,
		Name:            es.Name,
		Type:            es.Type,
		Team:            es.Team,
		Active:          true,
		EngagementRules: world.WeaponsFree,
		Lat:             es.InitialState.Lat,
		Lon:             es.InitialState.Lon,
		Alt:             es.InitialState.Alt,
		TrueAirspeed:    es.InitialState.Speed,
		Heading:         es.InitialState.Heading * degToRad,
		Gamma:           es.InitialState.Gamma * degToRad,
		Throttle:        es.InitialState.Throttle,
		EngineOn:        es.InitialState.EngineOn,
	}

	if p := es.Components.Physics; p != nil {
		if err := applyPhysics(e, p); err != nil {
			return nil, err
		}
	}
	if a := es.Components.AI; a != nil {
		applyAI(e, a)
	}
	if s := es.Components.Sensors; s != nil {
		applySensor(e, s)
	}
	if wp := es.Components.Weapons; wp != nil {
		applyWeapon(e, wp)
	}
	if c := es.Components.Control; c != nil && c.Type == "player_input" {
		installPlayerInputPatrol(e)
	}
	return e, nil
}

func applyPhysics(e *world.Entity, p *PhysicsSpec) error {
	switch p.Type {
	case "orbital_2body":
		e.PhysicsKind = world.PhysicsOrbitalTwoBody
		if p.Elements == nil {
			return fmt.Errorf("orbital_2body physics requires elements")
		}
		el := p.Elements
		e.SMA, e.Ecc = el.SMA, el.Ecc
		e.Inc, e.RAAN, e.ArgPeri, e.MeanAnomaly = el.Inc*degToRad, el.RAAN*degToRad, el.ArgPerigee*degToRad, el.MeanAnomaly*degToRad
		e.ECIPos, e.ECIVel = elementsToStateVectors(el)
	case "flight3dof":
		e.PhysicsKind = world.PhysicsFlight3DOF
		prof := LookupProfile(p.Config)
		e.Mass, e.WingArea, e.AspectRatio = prof.Mass, prof.WingArea, prof.AspectRatio
		e.Cd0, e.OswaldEff, e.ClAlpha, e.ClMax = prof.Cd0, prof.OswaldEff, prof.ClAlpha, prof.ClMax
		e.ThrustMil, e.ThrustAB, e.GLimit, e.MaxAoA = prof.ThrustMil, prof.ThrustAB, prof.GLimit, prof.MaxAoA
	default:
		e.PhysicsKind = world.PhysicsStatic
	}
	return nil
}

// elementsToStateVectors converts classical orbital elements at epoch into
// an ECI state vector so physics.StepOrbital can take over from there. It
// mirrors the perifocal reconstruction internal/physics/orbital.go uses
// internally, kept separate because scenario decoding has no reason to
// import an internal propagator helper not exported for that purpose.
func elementsToStateVectors(el *OrbitalElements) (geo.Vec3, geo.Vec3) {
	const mu = 3.986004418e14
	inc, raan, argp := el.Inc*degToRad, el.RAAN*degToRad, el.ArgPerigee*degToRad
	meanAnom := el.MeanAnomaly * degToRad

	ecc := el.Ecc
	if ecc < 0 {
		ecc = 0
	}
	eAnom := meanAnom
	for i := 0; i < 20; i++ {
		f := eAnom - ecc*math.Sin(eAnom) - meanAnom
		fp := 1 - ecc*math.Cos(eAnom)
		if fp == 0 {
			break
		}
		delta := f / fp
		eAnom -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	p := el.SMA * (1 - ecc*ecc)
	if p <= 0 {
		p = el.SMA
	}
	trueAnom := 2 * math.Atan2(math.Sqrt(1+ecc)*math.Sin(eAnom/2), math.Sqrt(1-ecc)*math.Cos(eAnom/2))
	r := p / (1 + ecc*math.Cos(trueAnom))

	rPF := geo.Vec3{X: r * math.Cos(trueAnom), Y: r * math.Sin(trueAnom), Z: 0}
	h := math.Sqrt(mu * p)
	vPF := geo.Vec3{X: -mu / h * math.Sin(trueAnom), Y: mu / h * (ecc + math.Cos(trueAnom)), Z: 0}

	cosO, sinO := math.Cos(raan), math.Sin(raan)
	cosI, sinI := math.Cos(inc), math.Sin(inc)
	cosW, sinW := math.Cos(argp), math.Sin(argp)

	r11 := cosO*cosW - sinO*sinW*cosI
	r12 := -cosO*sinW - sinO*cosW*cosI
	r21 := sinO*cosW + cosO*sinW*cosI
	r22 := -sinO*sinW + cosO*cosW*cosI
	r31 := sinW * sinI
	r32 := cosW * sinI

	pos := geo.Vec3{
		X: r11*rPF.X + r12*rPF.Y,
		Y: r21*rPF.X + r22*rPF.Y,
		Z: r31*rPF.X + r32*rPF.Y,
	}
	vel := geo.Vec3{
		X: r11*vPF.X + r12*vPF.Y,
		Y: r21*vPF.X + r22*vPF.Y,
		Z: r31*vPF.X + r32*vPF.Y,
	}
	return pos, vel
}

func applyAI(e *world.Entity, a *AISpec) {
	switch a.Type {
	case "orbital_combat":
		e.AIKind = world.AIOrbitalCombat
		e.Role = parseRole(a.Role)
		e.SensorRange, e.DefenseRadius, e.MaxAccel = a.SensorRangeM, a.DefenseRadius, a.MaxAccel
		e.KillRange, e.ScanInterval, e.AssignedHVAID = a.KillRangeM, a.ScanIntervalS, a.AssignedHVA
	case "waypoint_patrol":
		e.AIKind = world.AIWaypointPatrol
		e.Loop = a.Loop
		for _, wp := range a.Waypoints {
			e.Waypoints = append(e.Waypoints, world.Waypoint{Lat: wp.Lat, Lon: wp.Lon, Alt: wp.Alt, Speed: wp.Speed})
		}
	case "intercept":
		e.AIKind = world.AIIntercept
		e.InterceptTargetID = a.TargetID
		e.EngageRange = a.EngageRange
	}
}

func parseRole(s string) world.Role {
	switch s {
	case "hva":
		return world.RoleHVA
	case "defender":
		return world.RoleDefender
	case "attacker":
		return world.RoleAttacker
	case "escort":
		return world.RoleEscort
	case "sweep":
		return world.RoleSweep
	default:
		return world.RoleNone
	}
}

func applySensor(e *world.Entity, s *SensorSpec) {
	if s.Type != "radar" {
		return
	}
	e.RadarEnabled = true
	e.RadarMaxRange = s.MaxRangeM
	e.RadarFOVDeg = s.FOVDeg
	e.DetectProb = s.DetectionProbability
	e.RadarMinElev = s.MinElevationDeg
	e.RadarMaxElev = s.MaxElevationDeg
	if s.ScanRateDPS > 0 {
		e.SweepInterval = 360.0 / s.ScanRateDPS
	}
}

func applyWeapon(e *world.Entity, s *WeaponSpec) {
	switch s.Type {
	case "kinetic_kill":
		e.WeaponKind = world.WeaponKineticKill
		e.KineticPk = s.Pk
		e.KineticKillRange = s.KillRangeM
		e.KineticCooldownTime = s.CooldownTimeS
	case "sam_battery":
		e.WeaponKind = world.WeaponSAMBattery
		e.SAMMaxRange, e.SAMMinRange, e.SAMMissileSpeed = s.MaxRangeM, s.MinRangeM, s.MissileSpeedMS
		e.MissilesReady, e.SalvoSize, e.PkPerMissile = s.MissilesReady, s.SalvoSize, s.PkPerMissile
	case "a2a_missile", "fighter_loadout":
		e.WeaponKind = world.WeaponA2AMissile
		e.A2ALoadout = append([]string(nil), s.Loadout...)
		e.LockTime = s.LockTime
		installA2AInventory(e)
	}
}

// installA2AInventory populates an entity's A2A inventory/spec catalog
// lazily from its ordered loadout list, per spec.md §6.
func installA2AInventory(e *world.Entity) {
	if e.A2AInventory == nil {
		e.A2AInventory = make(map[string]int)
	}
	if e.A2ASpecs == nil {
		e.A2ASpecs = make(map[string]world.WeaponSpec)
	}
	for _, name := range e.A2ALoadout {
		e.A2AInventory[name]++
		if _, ok := e.A2ASpecs[name]; !ok {
			if spec, ok := a2aCatalog[name]; ok {
				e.A2ASpecs[name] = world.WeaponSpec{Range: spec.Range, Pk: spec.Pk, Speed: spec.Speed}
			}
		}
	}
}

// installPlayerInputPatrol auto-installs a waypoint patrol AI forming a
// 50 km forward x 20 km right racetrack from the entity's initial position
// and heading, per spec.md §6.
func installPlayerInputPatrol(e *world.Entity) {
	e.AIKind = world.AIWaypointPatrol
	e.Loop = true
	const forward = 50000.0
	const right = 20000.0
	hdg := e.Heading

	fwdLat, fwdLon := geo.Destination(e.Lat, e.Lon, hdg, forward)
	cornerLat, cornerLon := geo.Destination(fwdLat, fwdLon, wrapHeading(hdg+math.Pi/2), right)
	rightLat, rightLon := geo.Destination(e.Lat, e.Lon, wrapHeading(hdg+math.Pi/2), right)

	speed := e.TrueAirspeed
	e.Waypoints = []world.Waypoint{
		{Lat: fwdLat, Lon: fwdLon, Alt: e.Alt, Speed: speed},
		{Lat: cornerLat, Lon: cornerLon, Alt: e.Alt, Speed: speed},
		{Lat: rightLat, Lon: rightLon, Alt: e.Alt, Speed: speed},
		{Lat: e.Lat, Lon: e.Lon, Alt: e.Alt, Speed: speed},
	}
}

func wrapHeading(h float64) float64 {
	for h < 0 {
		h += 2 * math.Pi
	}
	for h >= 2*math.Pi {
		h -= 2 * math.Pi
	}
	return h
}

func buildEvent(ev EventSpec) *world.Event {
	e := &world.Event{
		ID:   ev.ID,
		Name: ev.Name,
	}
	switch ev.Trigger.Type {
	case "time":
		e.Trigger = world.TriggerTime
		e.TriggerTime = ev.Trigger.Time
	case "proximity":
		e.Trigger = world.TriggerProximity
		e.EntityA = ev.Trigger.resolvedEntityA()
		e.EntityB = ev.Trigger.resolvedEntityB()
		e.ProximityRangeM = ev.Trigger.resolvedRange()
	case "detection":
		e.Trigger = world.TriggerDetection
		e.SensorEntity = ev.Trigger.SensorEntity
		e.TargetEntity = ev.Trigger.TargetEntity
	}
	switch ev.Action.Type {
	case "message":
		e.Action = world.ActionMessage
		e.MessageText = ev.Action.Text
	case "set_state":
		e.Action = world.ActionSetState
		e.EntityA = firstNonEmpty(e.EntityA, ev.Trigger.resolvedEntityA())
		e.StateField = ev.Action.Field
		e.StateValue = ev.Action.Value
	case "change_rules":
		e.Action = world.ActionChangeRules
		e.EntityA = firstNonEmpty(e.EntityA, ev.Trigger.resolvedEntityA())
		e.StateField = "engagementRules"
		e.StateValue = ev.Action.Value
	}
	return e
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
