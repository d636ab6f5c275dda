// Package replay records a single simulation run's trajectories and
// weapon events for post-hoc playback, per spec.md §4.9. Modeled on the
// buffering shape of DriftPursuit's internal/replay recorder (texture
// only — the wire format and sampling cadence here are this spec's own),
// generalized to the ECEF trajectory/weapon-event tree this system
// requires.
package replay

import (
	"sort"

	"github.com/picogrid/legion-tacsim/internal/geo"
	"github.com/picogrid/legion-tacsim/internal/world"
)

// Event is one recorded weapon-log event, captured once with the ECEF
// positions of source and target at the moment it was logged.
type Event struct {
	Time       float64    `json:"time"`
	SourceID   string     `json:"sourceId"`
	SourceName string     `json:"sourceName"`
	TargetID   string     `json:"targetId"`
	TargetName string     `json:"targetName"`
	Result     string     `json:"result"`
	SourcePos  [3]float64 `json:"sourcePos"`
	TargetPos  [3]float64 `json:"targetPos"`
}

// EntityTimeline is one entity's full position history, one ECEF triple
// per sample time, plus its first-death time if it died during the run.
type EntityTimeline struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Team          string       `json:"team"`
	Positions     [][3]float64 `json:"positions"`
	FirstDeathSet bool         `json:"-"`
	FirstDeath    float64      `json:"firstDeath,omitempty"`
}

// Summary is the end-of-run tally spec.md §4.9 requires.
type Summary struct {
	BlueAlive   int `json:"blueAlive"`
	BlueTotal   int `json:"blueTotal"`
	RedAlive    int `json:"redAlive"`
	RedTotal    int `json:"redTotal"`
	TotalKills  int `json:"totalKills"`
	TotalLaunch int `json:"totalLaunches"`
}

// Output is the emitted replay tree.
type Output struct {
	Format string `json:"format"`
	Config struct {
		SampleInterval float64 `json:"sampleInterval"`
	} `json:"config"`
	Timeline struct {
		EndTime     float64   `json:"endTime"`
		SampleTimes []float64 `json:"sampleTimes"`
	} `json:"timeline"`
	Entities []EntityTimeline `json:"entities"`
	Events   []Event          `json:"events"`
	Summary  Summary          `json:"summary"`
}

// Recorder accumulates a trajectory/event recording over the lifetime of
// a single run.
type Recorder struct {
	sampleInterval float64
	nextSample     float64

	order     []string
	names     map[string]string
	teams     map[string]string
	sampleN   int
	sampleT   []float64
	positions map[string][][3]float64
	lastPos   map[string][3]float64

	firstDeath map[string]float64

	harvested map[string]int
	events    []Event
}

// New constructs a recorder that samples positions every sampleInterval
// seconds of simulated time.
func New(sampleInterval float64) *Recorder {
	return &Recorder{
		sampleInterval: sampleInterval,
		names:          make(map[string]string),
		teams:          make(map[string]string),
		positions:      make(map[string][][3]float64),
		lastPos:        make(map[string][3]float64),
		firstDeath:     make(map[string]float64),
		harvested:      make(map[string]int),
	}
}

// Observe is called once per tick, after the world has advanced. It
// harvests newly logged weapon events every call, and appends a position
// sample when the sample interval has elapsed.
func (r *Recorder) Observe(w *world.World) {
	if r.order == nil {
		for _, e := range w.Entities() {
			r.order = append(r.order, e.ID)
			r.names[e.ID] = e.Name
			r.teams[e.ID] = e.Team
		}
	}

	r.harvestEvents(w)

	for _, e := range w.Entities() {
		if e.Destroyed {
			if _, ok := r.firstDeath[e.ID]; !ok {
				r.firstDeath[e.ID] = w.T
			}
		}
	}

	if w.T < r.nextSample {
		return
	}
	r.sampleT = append(r.sampleT, w.T)
	for _, id := range r.order {
		e := w.GetEntityByID(id)
		var pos [3]float64
		if e.Alive() {
			p := w.ECEFPosition(e)
			pos = [3]float64{p.X, p.Y, p.Z}
			r.lastPos[id] = pos
		} else if last, ok := r.lastPos[id]; ok {
			pos = last
		} else {
			p := w.ECEFPosition(e)
			pos = [3]float64{p.X, p.Y, p.Z}
			r.lastPos[id] = pos
		}
		r.positions[id] = append(r.positions[id], pos)
	}
	r.sampleN++
	r.nextSample += r.sampleInterval
}

func (r *Recorder) harvestEvents(w *world.World) {
	for _, e := range w.Entities() {
		start := r.harvested[e.ID]
		if start >= len(e.EngagementLog) {
			continue
		}
		for _, rec := range e.EngagementLog[start:] {
			target := w.GetEntityByID(rec.TargetID)
			var srcP, tgtP geo.Vec3
			srcP = w.ECEFPosition(e)
			if target != nil {
				tgtP = w.ECEFPosition(target)
			}
			r.events = append(r.events, Event{
				Time:       rec.Time,
				SourceID:   e.ID,
				SourceName: e.Name,
				TargetID:   rec.TargetID,
				TargetName: rec.TargetName,
				Result:     string(rec.Result),
				SourcePos:  [3]float64{srcP.X, srcP.Y, srcP.Z},
				TargetPos:  [3]float64{tgtP.X, tgtP.Y, tgtP.Z},
			})
		}
		r.harvested[e.ID] = len(e.EngagementLog)
	}
}

// Output assembles the final replay tree. w is the terminal world state,
// used for the alive/total summary tallies.
func (r *Recorder) Output(w *world.World) Output {
	out := Output{Format: "tacsim-replay-v1"}
	out.Config.SampleInterval = r.sampleInterval
	out.Timeline.EndTime = w.T
	out.Timeline.SampleTimes = r.sampleT

	for _, id := range r.order {
		et := EntityTimeline{ID: id, Name: r.names[id], Team: r.teams[id], Positions: r.positions[id]}
		if t, ok := r.firstDeath[id]; ok {
			et.FirstDeathSet = true
			et.FirstDeath = t
		}
		out.Entities = append(out.Entities, et)
	}

	sortedEvents := append([]Event(nil), r.events...)
	sort.SliceStable(sortedEvents, func(i, j int) bool { return sortedEvents[i].Time < sortedEvents[j].Time })
	out.Events = sortedEvents

	var s Summary
	for _, e := range w.Entities() {
		switch e.Team {
		case "blue":
			s.BlueTotal++
			if e.Alive() {
				s.BlueAlive++
			}
		case "red":
			s.RedTotal++
			if e.Alive() {
				s.RedAlive++
			}
		}
	}
	for _, ev := range sortedEvents {
		switch world.ResultKind(ev.Result) {
		case world.ResultKill:
			s.TotalKills++
		case world.ResultLaunch:
			s.TotalLaunch++
		}
	}
	out.Summary = s
	return out
}
