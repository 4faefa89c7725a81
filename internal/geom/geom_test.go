package geom

import (
	"math"
	"testing"
)

func TestToPercentClamps(t *testing.T) {
	cases := []struct {
		x, y, w, h     float64
		wantX, wantY   float64
	}{
		{50, 50, 100, 100, 50, 50},
		{0, 0, 640, 480, 0, 0},
		{640, 480, 640, 480, 100, 100},
		{-20, 50, 100, 100, 0, 50},
		{150, -1, 100, 100, 100, 0},
		{1000, 1000, 100, 100, 100, 100},
	}
	for _, c := range cases {
		gotX, gotY := ToPercent(c.x, c.y, c.w, c.h)
		if gotX != c.wantX || gotY != c.wantY {
			t.Errorf("ToPercent(%v,%v,%v,%v) = (%v,%v), want (%v,%v)",
				c.x, c.y, c.w, c.h, gotX, gotY, c.wantX, c.wantY)
		}
	}
}

func TestToPercentDegenerateViewport(t *testing.T) {
	for _, c := range [][2]float64{{0, 100}, {100, 0}, {0, 0}, {-5, 100}} {
		x, y := ToPercent(42, 42, c[0], c[1])
		if x != 0 || y != 0 {
			t.Fatalf("ToPercent with viewport %vx%v = (%v,%v), want (0,0)", c[0], c[1], x, y)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("degenerate viewport produced NaN/Inf")
		}
	}
}

func TestRoundTrip(t *testing.T) {
	const w, h = 393, 851 // an awkward phone-ish viewport
	for x := 0.0; x <= w; x += 17.3 {
		for y := 0.0; y <= h; y += 23.7 {
			px, py := ToPercent(x, y, w, h)
			gx, gy := ToPixels(Round2(px), Round2(py), w, h)
			// 2-decimal rounding in percentage space bounds the pixel
			// error at 0.005% of the viewport dimension
			if math.Abs(gx-x) > 0.005*w/100+1e-9 || math.Abs(gy-y) > 0.005*h/100+1e-9 {
				t.Fatalf("round-trip (%v,%v) -> (%v,%v)", x, y, gx, gy)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(33.33333); got != 33.33 {
		t.Fatalf("Round2(33.33333) = %v", got)
	}
	if got := Round2(66.666); got != 66.67 {
		t.Fatalf("Round2(66.666) = %v", got)
	}
}

func TestDist(t *testing.T) {
	if got := Dist(0, 0, 300, 400); got != 500 {
		t.Fatalf("Dist = %v, want 500", got)
	}
}
