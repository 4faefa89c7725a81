// Package geom converts between pixel-space coordinates (viewport dependent,
// used for local rendering) and percentage-space coordinates (viewport
// independent, used on the wire). All functions are pure.
package geom

import "math"

// ToPercent maps a pixel position within a viewport to percentage-space.
// Each axis is clamped to [0,100] independently. A degenerate viewport
// (width or height <= 0) yields (0,0) rather than NaN/Inf.
func ToPercent(x, y, width, height float64) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return clamp(100*x/width, 0, 100), clamp(100*y/height, 0, 100)
}

// ToPixels maps a percentage-space position back to pixel-space. Unclamped;
// callers are responsible for passing a valid viewport.
func ToPixels(xPct, yPct, width, height float64) (float64, float64) {
	return xPct / 100 * width, yPct / 100 * height
}

// Round2 rounds to 2 decimal places. Applied to percentage values before
// transmission, which makes the pixel round-trip lossy at that precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Dist returns the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
