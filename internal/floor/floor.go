// Package floor is the client-side view-model for one shared floor: it reads
// the presence store every tick, drains the event inboxes, promotes throws
// into active interactions, and drives one walker per avatar. It is the
// consumer half of the single-producer/single-consumer inbox relationship.
//
// A Floor is not goroutine-safe; MoveTo, the throw/poke/message calls and
// Tick all belong to the render loop.
package floor

import (
	"fmt"
	"time"

	"github.com/plazahq/plaza/internal/geom"
	"github.com/plazahq/plaza/internal/motion"
	"github.com/plazahq/plaza/internal/notify"
	"github.com/plazahq/plaza/internal/session"
	"github.com/plazahq/plaza/internal/stage"
)

type Floor struct {
	sess   *session.Session
	selfID string
	width  float64
	height float64
	sink   notify.Sink

	self    *motion.Walker
	remotes map[string]*motion.Walker
	stage   *stage.Stage
}

// New creates a floor view-model for a viewport. The local avatar starts at
// the viewport center.
func New(sess *session.Session, selfID string, width, height float64, sink notify.Sink) *Floor {
	if sink == nil {
		sink = notify.Discard{}
	}
	return &Floor{
		sess:    sess,
		selfID:  selfID,
		width:   width,
		height:  height,
		sink:    sink,
		self:    motion.NewWalker(width/2, height/2, nil),
		remotes: make(map[string]*motion.Walker),
		stage:   stage.New(),
	}
}

// MoveTo commands the local avatar toward a pixel position and reports the
// target to the server in percentage-space. The animation is purely local;
// remote updates never drive the local walker.
func (f *Floor) MoveTo(x, y float64, now time.Time) {
	f.self.MoveTo(x, y, now)
	xPct, yPct := geom.ToPercent(x, y, f.width, f.height)
	f.sess.ReportMove(xPct, yPct)
}

// ThrowTomato lobs a tomato at another participant. The throw appears on
// this client only when the server's broadcast comes back through the inbox.
func (f *Floor) ThrowTomato(targetID string) { f.throw("tomato", targetID) }

// ThrowPlane sends a paper plane at another participant.
func (f *Floor) ThrowPlane(targetID string) { f.throw("plane", targetID) }

func (f *Floor) throw(kind, targetID string) {
	p, ok := f.sess.Store().Get(targetID)
	if !ok {
		return
	}
	f.sess.ReportThrow(kind, targetID, p.X, p.Y)
}

func (f *Floor) Poke(targetID string) {
	f.sess.ReportPoke(targetID)
}

func (f *Floor) Message(targetID, text string) {
	f.sess.ReportMessage(targetID, text)
}

// Tick advances the whole floor: promotes pending events, syncs remote
// walkers with the presence store, and retires finished interactions.
func (f *Floor) Tick(now time.Time) {
	f.promoteThrows(now)
	f.drainNotifications()
	f.syncRemotes(now)

	f.self.Tick(now)
	for _, w := range f.remotes {
		w.Tick(now)
	}
	f.stage.Update(now)
}

// promoteThrows turns inbox events into active interactions. An event whose
// thrower cannot be resolved is dropped; it is never retried.
func (f *Floor) promoteThrows(now time.Time) {
	for _, ev := range f.sess.Throws().Drain() {
		sx, sy, ok := f.resolveOrigin(ev.FromUserID, now)
		if !ok {
			continue
		}
		ex, ey := geom.ToPixels(ev.TargetX, ev.TargetY, f.width, f.height)
		kind := stage.KindTomato
		if ev.Kind == "plane" {
			kind = stage.KindPlane
		}
		f.stage.Spawn(ev.ID, kind, ev.FromUserID, ev.TargetUserID, sx, sy, ex, ey, now, nil)
	}
}

func (f *Floor) drainNotifications() {
	for _, ev := range f.sess.Pokes().Drain() {
		f.sink.Notify(notify.KindInfo, fmt.Sprintf("%s poked you", f.displayName(ev.FromUserID)))
	}
	for _, ev := range f.sess.Messages().Drain() {
		f.sink.Notify(notify.KindInfo, fmt.Sprintf("%s: %s", f.displayName(ev.FromUserID), ev.Text))
	}
}

// syncRemotes keeps one independent walker per remote participant, retargets
// walkers whose participant moved, and drops walkers for departed ones.
func (f *Floor) syncRemotes(now time.Time) {
	seen := make(map[string]bool, len(f.remotes))
	for _, p := range f.sess.Store().List() {
		seen[p.ID] = true
		tx, ty := geom.ToPixels(p.X, p.Y, f.width, f.height)
		w, ok := f.remotes[p.ID]
		if !ok {
			// a newly seen participant appears in place, no walk-in
			f.remotes[p.ID] = motion.NewWalker(tx, ty, nil)
			continue
		}
		cx, cy := w.Target()
		if cx != tx || cy != ty {
			w.MoveTo(tx, ty, now)
		}
	}
	for id := range f.remotes {
		if !seen[id] {
			delete(f.remotes, id)
		}
	}
}

// resolveOrigin finds a thrower's current pixel position: the local session
// for self, the thrower's walker (current interpolated position) when one
// exists, the raw store position otherwise.
func (f *Floor) resolveOrigin(id string, now time.Time) (float64, float64, bool) {
	if id == f.selfID {
		x, y := f.self.Pos(now)
		return x, y, true
	}
	if w, ok := f.remotes[id]; ok {
		x, y := w.Pos(now)
		return x, y, true
	}
	if p, ok := f.sess.Store().Get(id); ok {
		x, y := geom.ToPixels(p.X, p.Y, f.width, f.height)
		return x, y, true
	}
	return 0, 0, false
}

func (f *Floor) displayName(id string) string {
	if p, ok := f.sess.Store().Get(id); ok && p.Name != "" {
		return p.Name
	}
	return id
}

// SelfPos returns the local avatar's interpolated pixel position.
func (f *Floor) SelfPos(now time.Time) (float64, float64) {
	return f.self.Pos(now)
}

// Remote returns the walker for a remote participant, if present.
func (f *Floor) Remote(id string) (*motion.Walker, bool) {
	w, ok := f.remotes[id]
	return w, ok
}

// Stage exposes the active interaction list for rendering.
func (f *Floor) Stage() *stage.Stage {
	return f.stage
}
