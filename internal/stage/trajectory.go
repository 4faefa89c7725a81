package stage

import (
	"math"
	"time"
)

// Trajectory kinds. Both share the same lifecycle; they differ only in the
// path shape and flight time.
const (
	KindTomato = "tomato"
	KindPlane  = "plane"
)

const (
	TomatoDuration = 800 * time.Millisecond
	PlaneDuration  = 1500 * time.Millisecond

	tomatoArcHeight = 120.0
	planeArcHeight  = 40.0
)

// tomatoAt is a short, high-arc lob: linear on x, linear minus a sinusoidal
// arc on y. progress is in [0,1].
func tomatoAt(sx, sy, ex, ey, progress float64) (x, y float64) {
	x = sx + (ex-sx)*progress
	y = sy + (ey-sy)*progress - tomatoArcHeight*math.Sin(math.Pi*progress)
	return
}

// planeAt is a flatter, longer glide with the same parametric form but a
// shallow arc.
func planeAt(sx, sy, ex, ey, progress float64) (x, y float64) {
	x = sx + (ex-sx)*progress
	y = sy + (ey-sy)*progress - planeArcHeight*math.Sin(math.Pi*progress)
	return
}

// planeAngle is the plane's orientation in radians, derived from the
// instantaneous velocity direction along the glide path.
func planeAngle(sx, sy, ex, ey, progress float64) float64 {
	dx := ex - sx
	dy := ey - sy - planeArcHeight*math.Pi*math.Cos(math.Pi*progress)
	return math.Atan2(dy, dx)
}
