package motion

import (
	"sync"
	"time"
)

// Walker wraps an Animator with the state a rendered avatar needs: whether
// the walk cycle is playing, and a completion callback used to stop the gait
// animation when the avatar arrives. One Walker per avatar, local or remote.
type Walker struct {
	mu       sync.Mutex
	anim     *Animator
	walking  bool
	onArrive func()
}

func NewWalker(x, y float64, onArrive func()) *Walker {
	return &Walker{anim: NewAnimator(x, y), onArrive: onArrive}
}

// MoveTo retargets the underlying animator and starts the walk cycle.
func (w *Walker) MoveTo(x, y float64, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.anim.MoveTo(x, y, now)
	w.walking = w.anim.duration > 0
}

// Tick advances the walker's lifecycle. On the tick where the current leg
// completes it fires the arrival callback once and stops the walk cycle.
func (w *Walker) Tick(now time.Time) {
	w.mu.Lock()
	arrived := w.walking && w.anim.Done(now)
	if arrived {
		w.walking = false
	}
	cb := w.onArrive
	w.mu.Unlock()
	if arrived && cb != nil {
		cb()
	}
}

func (w *Walker) Pos(now time.Time) (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.anim.Pos(now)
}

func (w *Walker) Target() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.anim.Target()
}

func (w *Walker) Walking() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.walking
}
