// Package stage runs the short-lived thrown-object animations. An event
// promoted from an inbox becomes an Interaction with resolved start/end
// pixel coordinates; the stage advances every active interaction on each
// update and retires each one exactly once when its flight completes.
package stage

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Interaction is an active thrown object in flight.
type Interaction struct {
	ID       string
	Kind     string
	FromID   string
	TargetID string

	StartX, StartY float64
	EndX, EndY     float64

	startedAt time.Time
	duration  time.Duration
	onDone    func(id string)
	done      bool
}

// progress returns the flight parameter in [0,1] at the given time.
func (it *Interaction) progress(now time.Time) float64 {
	if it.duration <= 0 {
		return 1
	}
	t := float64(now.Sub(it.startedAt)) / float64(it.duration)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// At returns the interaction's pixel position and orientation at the given
// time. Orientation is only meaningful for planes; tomatoes report 0.
func (it *Interaction) At(now time.Time) (x, y, angle float64) {
	p := it.progress(now)
	switch it.Kind {
	case KindPlane:
		x, y = planeAt(it.StartX, it.StartY, it.EndX, it.EndY, p)
		angle = planeAngle(it.StartX, it.StartY, it.EndX, it.EndY, p)
	default:
		x, y = tomatoAt(it.StartX, it.StartY, it.EndX, it.EndY, p)
	}
	return
}

// Stage holds the active interaction list.
type Stage struct {
	mu     sync.Mutex
	active map[string]*Interaction
}

func New() *Stage {
	return &Stage{active: make(map[string]*Interaction)}
}

// Spawn adds an interaction flying from (sx, sy) to (ex, ey). The id should
// be the promoted event's tag; an empty id gets a fresh one. onDone runs
// exactly once when the flight completes; removal from the active list
// happens before the callback so the entity can never outlive its animation.
func (s *Stage) Spawn(id, kind, fromID, targetID string, sx, sy, ex, ey float64, now time.Time, onDone func(id string)) *Interaction {
	dur := TomatoDuration
	if kind == KindPlane {
		dur = PlaneDuration
	}
	if id == "" {
		id = uuid.NewString()
	}
	it := &Interaction{
		ID:        id,
		Kind:      kind,
		FromID:    fromID,
		TargetID:  targetID,
		StartX:    sx,
		StartY:    sy,
		EndX:      ex,
		EndY:      ey,
		startedAt: now,
		duration:  dur,
		onDone:    onDone,
	}
	s.mu.Lock()
	s.active[it.ID] = it
	s.mu.Unlock()
	return it
}

// Update advances all interactions and retires completed ones. Flights always
// run to completion; there is no external cancellation.
func (s *Stage) Update(now time.Time) {
	s.mu.Lock()
	var finished []*Interaction
	for id, it := range s.active {
		if !it.done && now.Sub(it.startedAt) >= it.duration {
			it.done = true
			delete(s.active, id)
			finished = append(finished, it)
		}
	}
	s.mu.Unlock()

	for _, it := range finished {
		if it.onDone != nil {
			it.onDone(it.ID)
		}
	}
}

// Active returns the number of interactions currently in flight.
func (s *Stage) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// List returns the in-flight interactions, for rendering.
func (s *Stage) List() []*Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Interaction, 0, len(s.active))
	for _, it := range s.active {
		out = append(out, it)
	}
	return out
}
