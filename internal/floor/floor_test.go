package floor

import (
	"strings"
	"testing"
	"time"

	"github.com/plazahq/plaza/internal/presence"
	"github.com/plazahq/plaza/internal/session"
	"github.com/plazahq/plaza/internal/stage"
)

const (
	vw = 400.0
	vh = 800.0
)

// newTestFloor builds a floor over an unconnected session: reports are
// silently dropped, and inbound events can be injected straight into the
// store and inboxes.
func newTestFloor() (*Floor, *session.Session) {
	s := session.New(session.Config{
		URL:    "ws://localhost:1/floor/lobby",
		Token:  "tok",
		SelfID: "self",
	})
	return New(s, "self", vw, vh, nil), s
}

type recordingSink struct {
	texts []string
}

func (r *recordingSink) Notify(_, text string) { r.texts = append(r.texts, text) }

func TestThrowPromotion(t *testing.T) {
	f, s := newTestFloor()
	now := time.Unix(0, 0)

	s.Store().Upsert(presence.Participant{ID: "u1", Name: "ana", X: 50, Y: 25})
	s.Throws().Put(session.ThrowEvent{
		ID: "ev1", Kind: "tomato", FromUserID: "u1", TargetUserID: "self",
		TargetX: 75, TargetY: 50,
	})

	f.Tick(now)
	if got := f.Stage().Active(); got != 1 {
		t.Fatalf("active = %d, want 1", got)
	}
	it := f.Stage().List()[0]
	if it.ID != "ev1" || it.Kind != stage.KindTomato {
		t.Fatalf("interaction = %+v", it)
	}
	// origin resolved from the thrower's store position, in pixels
	if it.StartX != 50.0/100*vw || it.StartY != 25.0/100*vh {
		t.Fatalf("start = (%v,%v)", it.StartX, it.StartY)
	}
	if it.EndX != 75.0/100*vw || it.EndY != 50.0/100*vh {
		t.Fatalf("end = (%v,%v)", it.EndX, it.EndY)
	}

	// inbox was drained exactly once
	if s.Throws().Len() != 0 {
		t.Fatal("throw inbox not drained")
	}
	// the flight retires on its own
	f.Tick(now.Add(stage.TomatoDuration))
	if got := f.Stage().Active(); got != 0 {
		t.Fatalf("active = %d after flight, want 0", got)
	}
}

func TestUnresolvableThrowerDropped(t *testing.T) {
	f, s := newTestFloor()
	s.Throws().Put(session.ThrowEvent{ID: "ev1", Kind: "tomato", FromUserID: "ghost"})

	f.Tick(time.Unix(0, 0))
	if got := f.Stage().Active(); got != 0 {
		t.Fatalf("active = %d, want dropped event", got)
	}
	// dropped for good, not requeued
	if s.Throws().Len() != 0 {
		t.Fatal("dropped event was retried")
	}
}

func TestSelfThrowResolvesFromLocalSession(t *testing.T) {
	f, s := newTestFloor()
	now := time.Unix(0, 0)

	f.MoveTo(100, 100, now)
	later := now.Add(10 * time.Second) // long past arrival
	s.Throws().Put(session.ThrowEvent{ID: "ev1", Kind: "plane", FromUserID: "self", TargetX: 0, TargetY: 0})

	f.Tick(later)
	it := f.Stage().List()[0]
	if it.StartX != 100 || it.StartY != 100 {
		t.Fatalf("self throw start = (%v,%v), want local position", it.StartX, it.StartY)
	}
	if it.Kind != stage.KindPlane {
		t.Fatalf("kind = %s", it.Kind)
	}
}

func TestRemoteWalkersFollowStore(t *testing.T) {
	f, s := newTestFloor()
	now := time.Unix(0, 0)

	s.Store().Upsert(presence.Participant{ID: "u1", X: 0, Y: 0})
	f.Tick(now)
	w, ok := f.Remote("u1")
	if !ok {
		t.Fatal("no walker created for new participant")
	}
	if x, y := w.Pos(now); x != 0 || y != 0 {
		t.Fatalf("walker spawned at (%v,%v)", x, y)
	}

	s.Store().Move("u1", 50, 50, 1)
	f.Tick(now)
	tx, ty := w.Target()
	if tx != 50.0/100*vw || ty != 50.0/100*vh {
		t.Fatalf("walker target = (%v,%v)", tx, ty)
	}
	if !w.Walking() {
		t.Fatal("walker not walking after retarget")
	}

	s.Store().Remove("u1")
	f.Tick(now)
	if _, ok := f.Remote("u1"); ok {
		t.Fatal("walker survived participant removal")
	}
}

func TestDisconnectPreservesLocalSession(t *testing.T) {
	f, s := newTestFloor()
	now := time.Unix(0, 0)

	s.Store().Upsert(presence.Participant{ID: "u1", X: 10, Y: 10})
	f.MoveTo(120, 80, now)
	settled := now.Add(10 * time.Second)

	s.Disconnect()
	if s.Store().Len() != 0 {
		t.Fatal("presence store not cleared on disconnect")
	}
	x, y := f.SelfPos(settled)
	if x != 120 || y != 80 {
		t.Fatalf("local position = (%v,%v), want (120,80) untouched", x, y)
	}
}

func TestPokesAndMessagesReachTheSink(t *testing.T) {
	sink := &recordingSink{}
	s := session.New(session.Config{URL: "ws://localhost:1/x", Token: "tok", SelfID: "self"})
	f := New(s, "self", vw, vh, sink)

	s.Store().Upsert(presence.Participant{ID: "u1", Name: "ana"})
	s.Pokes().Put(session.PokeEvent{ID: "p1", FromUserID: "u1"})
	s.Messages().Put(session.MessageEvent{ID: "m1", FromUserID: "u2", Text: "hello"})

	f.Tick(time.Unix(0, 0))
	if len(sink.texts) != 2 {
		t.Fatalf("sink got %d notifications", len(sink.texts))
	}
	if !strings.Contains(sink.texts[0], "ana poked you") {
		t.Fatalf("poke text = %q", sink.texts[0])
	}
	// unknown sender falls back to the raw id
	if !strings.Contains(sink.texts[1], "u2: hello") {
		t.Fatalf("message text = %q", sink.texts[1])
	}
}
