// Package mcrunner drives the Monte-Carlo batch mode spec.md §4.8
// describes: many independent single-seed runs of the same scenario,
// periodic engagement-log harvesting, and two independent early-
// termination checks. Modeled on the Counter-UAS simulation's
// core.UpdateBuffer periodic-flush batching shape, generalized from
// "flush updates to an API client" to "harvest engagement records from
// a world".
package mcrunner

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/picogrid/legion-tacsim/internal/scenario"
	"github.com/picogrid/legion-tacsim/internal/sim"
	"github.com/picogrid/legion-tacsim/internal/world"
)

// harvestPeriodTicks is spec.md §4.8 step 3's fixed harvest cadence.
const harvestPeriodTicks = 200

// Config is the batch runner's input configuration.
type Config struct {
	NumRuns     int
	BaseSeed    uint32
	MaxSimTime  float64
	Dt          float64
	Verbose     bool
	Parallelism int // 0 or 1 runs sequentially; >1 fans out with errgroup
}

// EngagementEntry is one harvested, deduplicated engagement record in the
// MC output tree.
type EngagementEntry struct {
	Time       float64 `json:"time"`
	SourceID   string  `json:"sourceId"`
	SourceName string  `json:"sourceName"`
	SourceTeam string  `json:"sourceTeam"`
	TargetID   string  `json:"targetId"`
	TargetName string  `json:"targetName"`
	Result     string  `json:"result"`
	WeaponType string  `json:"weaponType"`
}

// SurvivalRecord is one entity's end-of-run snapshot.
type SurvivalRecord struct {
	Name      string `json:"name"`
	Team      string `json:"team"`
	Type      string `json:"type"`
	Role      string `json:"role,omitempty"`
	Alive     bool   `json:"alive"`
	Destroyed bool   `json:"destroyed"`
}

// RunResult is one completed (or failed) run's output.
type RunResult struct {
	RunIndex       int                       `json:"runIndex"`
	Seed           uint32                    `json:"seed"`
	SimTimeFinal   float64                   `json:"simTimeFinal"`
	Error          string                    `json:"error,omitempty"`
	EngagementLog  []EngagementEntry         `json:"engagementLog"`
	EntitySurvival map[string]SurvivalRecord `json:"entitySurvival"`
}

// Output is the full batch output tree spec.md §6 names.
type Output struct {
	Config struct {
		NumRuns    int     `json:"numRuns"`
		BaseSeed   uint32  `json:"baseSeed"`
		MaxSimTime float64 `json:"maxSimTime"`
	} `json:"config"`
	Runs []RunResult `json:"runs"`
}

// Run executes cfg.NumRuns independent runs of the given scenario file and
// returns the assembled output tree. Run-scoped errors (including panics
// recovered from a single run) are captured per-run and never abort the
// batch.
func Run(f *scenario.File, cfg Config) Output {
	out := Output{}
	out.Config.NumRuns = cfg.NumRuns
	out.Config.BaseSeed = cfg.BaseSeed
	out.Config.MaxSimTime = cfg.MaxSimTime

	results := make([]RunResult, cfg.NumRuns)

	if cfg.Parallelism > 1 {
		var g errgroup.Group
		g.SetLimit(cfg.Parallelism)
		for i := 0; i < cfg.NumRuns; i++ {
			i := i
			g.Go(func() error {
				results[i] = runOne(f, cfg, i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := 0; i < cfg.NumRuns; i++ {
			results[i] = runOne(f, cfg, i)
		}
	}

	out.Runs = results
	return out
}

func runOne(f *scenario.File, cfg Config, runIndex int) (result RunResult) {
	seed := cfg.BaseSeed + uint32(runIndex)
	result.RunIndex = runIndex
	result.Seed = seed
	result.EntitySurvival = make(map[string]SurvivalRecord)

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Sprintf("run %d panicked: %v", runIndex, r)
		}
	}()

	w, err := scenario.Build(f, seed)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	h := newHarvester()
	nTicks := 0
	if cfg.Dt > 0 {
		nTicks = int(cfg.MaxSimTime/cfg.Dt + 0.999999)
	}

	for tick := 0; tick < nTicks; tick++ {
		sim.Tick(w, cfg.Dt, nil)

		if (tick+1)%harvestPeriodTicks == 0 {
			h.harvest(w)
		}
		if terminated(w) {
			break
		}
	}
	h.harvest(w)

	result.SimTimeFinal = w.T
	result.EngagementLog = h.entries
	for _, e := range w.Entities() {
		result.EntitySurvival[e.ID] = SurvivalRecord{
			Name:      e.Name,
			Team:      e.Team,
			Type:      e.Type,
			Role:      roleString(e),
			Alive:     e.Alive(),
			Destroyed: e.Destroyed,
		}
	}
	return result
}

func roleString(e *world.Entity) string {
	if e.AIKind != world.AIOrbitalCombat || e.Role == world.RoleNone {
		return ""
	}
	return e.Role.String()
}

// harvester tracks, per entity, how much of its EngagementLog has already
// been harvested, plus the whole-run dedup set keyed on
// (source, target, result, time).
type harvester struct {
	harvestedCount map[string]int
	seen           map[dedupKey]struct{}
	entries        []EngagementEntry
}

type dedupKey struct {
	source, target string
	result         world.ResultKind
	time           float64
}

func newHarvester() *harvester {
	return &harvester{
		harvestedCount: make(map[string]int),
		seen:           make(map[dedupKey]struct{}),
	}
}

func (h *harvester) harvest(w *world.World) {
	for _, e := range w.Entities() {
		start := h.harvestedCount[e.ID]
		if start >= len(e.EngagementLog) {
			continue
		}
		for _, rec := range e.EngagementLog[start:] {
			h.harvestedCount[e.ID] = len(e.EngagementLog)
			if rec.Result != world.ResultLaunch && rec.Result != world.ResultKill && rec.Result != world.ResultMiss {
				continue
			}
			key := dedupKey{source: e.ID, target: rec.TargetID, result: rec.Result, time: rec.Time}
			if _, dup := h.seen[key]; dup {
				continue
			}
			h.seen[key] = struct{}{}
			h.entries = append(h.entries, EngagementEntry{
				Time:       rec.Time,
				SourceID:   e.ID,
				SourceName: e.Name,
				SourceTeam: e.Team,
				TargetID:   rec.TargetID,
				TargetName: rec.TargetName,
				Result:     string(rec.Result),
				WeaponType: weaponTypeTag(e.WeaponKind),
			})
		}
	}
}

func weaponTypeTag(k world.WeaponKind) string {
	switch k {
	case world.WeaponKineticKill:
		return "KKV"
	case world.WeaponSAMBattery:
		return "SAM"
	case world.WeaponA2AMissile:
		return "A2A"
	default:
		return "UNK"
	}
}

// terminated checks the two independent early-termination domains spec.md
// §4.8 step 4 describes: orbital combat (role-based) and atmospheric
// (3-DOF AI/weapon-bearing entities).
func terminated(w *world.World) bool {
	return orbitalDomainTerminated(w) || atmosphericDomainTerminated(w)
}

type teamBucket struct {
	hvaAlive, hvaTotal       int
	nonHVAAlive, nonHVATotal int
}

func orbitalDomainTerminated(w *world.World) bool {
	teams := make(map[string]*teamBucket)
	for _, e := range w.Entities() {
		if e.AIKind != world.AIOrbitalCombat || e.Role == world.RoleNone {
			continue
		}
		b, ok := teams[e.Team]
		if !ok {
			b = &teamBucket{}
			teams[e.Team] = b
		}
		if e.Role == world.RoleHVA {
			b.hvaTotal++
			if e.Alive() {
				b.hvaAlive++
			}
		} else {
			b.nonHVATotal++
			if e.Alive() {
				b.nonHVAAlive++
			}
		}
	}
	for _, b := range teams {
		if b.hvaTotal > 0 && b.hvaAlive == 0 {
			return true
		}
		if b.nonHVATotal > 0 && b.nonHVAAlive == 0 {
			return true
		}
	}
	return false
}

func atmosphericDomainTerminated(w *world.World) bool {
	type bucket struct{ alive, total int }
	teams := make(map[string]*bucket)
	for _, e := range w.Entities() {
		if e.PhysicsKind != world.PhysicsFlight3DOF {
			continue
		}
		if e.AIKind == world.AINone && e.WeaponKind == world.WeaponNone {
			continue
		}
		b, ok := teams[e.Team]
		if !ok {
			b = &bucket{}
			teams[e.Team] = b
		}
		b.total++
		if e.Alive() {
			b.alive++
		}
	}
	for _, b := range teams {
		if b.total > 0 && b.alive == 0 {
			return true
		}
	}
	return false
}
