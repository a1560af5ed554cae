package telemetry

import (
	"path/filepath"
	"testing"
)

func TestHallOfFame_SortedAndCapped(t *testing.T) {
	hof := NewHallOfFame(3, 1)
	values := []float64{0.5, -0.9, 0.7, 0.1, -0.8}
	for i, v := range values {
		hof.Consider("simplex_2d", []float64{float64(i * 10), 0}, v)
	}

	hall := hof.Entries("simplex_2d")
	if len(hall) != 3 {
		t.Fatalf("hall size = %d, want 3", len(hall))
	}
	want := []float64{-0.9, -0.8, 0.7}
	for i, e := range hall {
		if e.Value != want[i] {
			t.Errorf("entry %d = %v, want %v", i, e.Value, want[i])
		}
	}
	if hof.TopAbs("simplex_2d") != 0.9 {
		t.Errorf("TopAbs = %v, want 0.9", hof.TopAbs("simplex_2d"))
	}
	if hof.Consider("simplex_2d", []float64{100, 0}, 0.2) {
		t.Error("weaker point was added to a full hall")
	}
}

func TestHallOfFame_MergesNearbyPoints(t *testing.T) {
	hof := NewHallOfFame(5, 1)
	hof.Consider("k", []float64{0, 0}, 0.6)

	if hof.Consider("k", []float64{0.5, 0.5}, 0.5) {
		t.Error("weaker nearby point should be rejected")
	}
	if !hof.Consider("k", []float64{0.5, -0.5}, 0.7) {
		t.Error("stronger nearby point should replace the entry")
	}
	if hof.Size("k") != 1 {
		t.Fatalf("size = %d, want 1", hof.Size("k"))
	}
	if got := hof.Entries("k")[0].Point; got[0] != 0.5 || got[1] != -0.5 {
		t.Errorf("point = %v, want the stronger one", got)
	}
}

func TestHallOfFame_SaveLoad(t *testing.T) {
	hof := NewHallOfFame(4, 1)
	hof.Consider("perlin_3d", []float64{1, 2, 3}, 0.95)
	hof.Consider("perlin_3d", []float64{10, 20, 30}, -0.9)
	hof.Consider("simplex_4d", []float64{1, 2, 3, 4}, 0.99)

	path := filepath.Join(t.TempDir(), "hall.json")
	if err := hof.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadHallOfFameFromFile(path, 4, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	keys := loaded.Keys()
	if len(keys) != 2 || keys[0] != "perlin_3d" || keys[1] != "simplex_4d" {
		t.Fatalf("keys = %v", keys)
	}
	if loaded.Size("perlin_3d") != 2 || loaded.TopAbs("simplex_4d") != 0.99 {
		t.Errorf("loaded hall differs: %v", loaded.Entries("perlin_3d"))
	}
	if len(loaded.Entries("simplex_4d")[0].Point) != 4 {
		t.Error("point dimension lost")
	}
}
