// Package motion animates avatar positions in pixel-space at a constant
// real-world speed, independent of tick rate. The base Animator is a pure
// time function; Walker adds the walk-cycle bookkeeping on top.
package motion

import (
	"time"

	"github.com/plazahq/plaza/internal/geom"
)

// WalkSpeed is the authoritative avatar speed in pixels per second.
const WalkSpeed = 100.0

// Animator interpolates a position from a start point toward a target over a
// duration derived from distance / WalkSpeed. It has a single writer; the
// current position is always read through Pos with an explicit clock value.
type Animator struct {
	startX, startY   float64
	targetX, targetY float64
	startedAt        time.Time
	duration         time.Duration
}

func NewAnimator(x, y float64) *Animator {
	return &Animator{startX: x, startY: y, targetX: x, targetY: y}
}

// MoveTo begins interpolating toward (x, y) at WalkSpeed. When called before
// a previous move completes, the new leg starts from the current interpolated
// position, producing a smooth redirect rather than a jump.
func (a *Animator) MoveTo(x, y float64, now time.Time) {
	cx, cy := a.Pos(now)
	a.startX, a.startY = cx, cy
	a.targetX, a.targetY = x, y
	a.startedAt = now
	dist := geom.Dist(cx, cy, x, y)
	a.duration = time.Duration(dist / WalkSpeed * float64(time.Second))
}

// Pos returns the interpolated position at the given time. Past the end of
// the leg it stays pinned to the target; completion itself is silent.
func (a *Animator) Pos(now time.Time) (float64, float64) {
	if a.duration <= 0 {
		return a.targetX, a.targetY
	}
	t := float64(now.Sub(a.startedAt)) / float64(a.duration)
	if t <= 0 {
		return a.startX, a.startY
	}
	if t >= 1 {
		return a.targetX, a.targetY
	}
	return a.startX + (a.targetX-a.startX)*t, a.startY + (a.targetY-a.startY)*t
}

// Target returns the commanded destination.
func (a *Animator) Target() (float64, float64) {
	return a.targetX, a.targetY
}

// Duration returns the length of the current leg.
func (a *Animator) Duration() time.Duration {
	return a.duration
}

// Done reports whether the current leg has finished.
func (a *Animator) Done(now time.Time) bool {
	return now.Sub(a.startedAt) >= a.duration
}
