package camera

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNew(t *testing.T) {
	cam := New(80, 40, 0.01)

	// Should be centered on the lattice origin
	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if x, y := cam.Origin(); x != -40 || y != -20 {
		t.Errorf("expected origin (-40, -20), got (%f, %f)", x, y)
	}
}

func TestNewAtOrigin(t *testing.T) {
	cam := NewAt(12, -7, 64, 32, 0.05)
	if x, y := cam.Origin(); !near(x, 12) || !near(y, -7) {
		t.Errorf("expected origin (12, -7), got (%f, %f)", x, y)
	}
}

func TestScreenToLatticeRoundtrip(t *testing.T) {
	cam := NewAt(100, 50, 128, 72, 0.02)

	testCases := []struct{ sx, sy float64 }{
		{64, 36},  // center
		{0, 0},    // top-left
		{120, 70}, // near bottom-right
	}

	for _, tc := range testCases {
		lx, ly := cam.ScreenToLattice(tc.sx, tc.sy)
		sx, sy := cam.LatticeToScreen(lx, ly)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, lx, ly, sx, sy)
		}
	}

	// Top-left sample is the batch origin scaled by frequency
	lx, ly := cam.ScreenToLattice(0, 0)
	if !near(lx, 100*0.02) || !near(ly, 50*0.02) {
		t.Errorf("top-left lattice point = (%f, %f), want (2, 1)", lx, ly)
	}
}

func TestZoomKeepsCentre(t *testing.T) {
	cam := NewAt(10, 20, 40, 20, 0.01)
	cx, cy := cam.ScreenToLattice(20, 10)

	cam.ZoomBy(0.5)
	if !near(cam.Frequency, 0.005) {
		t.Fatalf("frequency = %v, want 0.005", cam.Frequency)
	}
	if lx, ly := cam.ScreenToLattice(20, 10); !near(lx, cx) || !near(ly, cy) {
		t.Errorf("centre moved from (%f,%f) to (%f,%f)", cx, cy, lx, ly)
	}
}

func TestZoomClamped(t *testing.T) {
	cam := New(10, 10, 1)
	cam.ZoomBy(100)
	if cam.Frequency != cam.MaxFrequency {
		t.Errorf("expected frequency clamped to %f, got %f", cam.MaxFrequency, cam.Frequency)
	}
	cam.SetFrequency(0)
	if cam.Frequency != cam.MinFrequency {
		t.Errorf("expected frequency clamped to %f, got %f", cam.MinFrequency, cam.Frequency)
	}
}

func TestPan(t *testing.T) {
	cam := NewAt(0, 0, 10, 10, 0.1)
	cam.Pan(8, -3)
	if x, y := cam.Origin(); !near(x, 8) || !near(y, -3) {
		t.Errorf("origin after pan = (%f, %f), want (8, -3)", x, y)
	}
}

func TestVisibleBounds(t *testing.T) {
	cam := New(100, 50, 0.1)
	minX, minY, maxX, maxY := cam.VisibleBounds()
	if !near(minX, -5) || !near(maxX, 5) || !near(minY, -2.5) || !near(maxY, 2.5) {
		t.Errorf("bounds = (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}

func TestResizeKeepsCentre(t *testing.T) {
	cam := NewAt(0, 0, 10, 10, 1)
	cam.Resize(20, 30)
	if cam.X != 5 || cam.Y != 5 {
		t.Errorf("centre moved on resize: (%f, %f)", cam.X, cam.Y)
	}
	if x, y := cam.Origin(); x != -5 || y != -10 {
		t.Errorf("origin after resize = (%f, %f), want (-5, -10)", x, y)
	}
}
