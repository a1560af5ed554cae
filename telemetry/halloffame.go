package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"
	"sort"
)

// HallEntry is one extreme sample location.
type HallEntry struct {
	Point []float64 `json:"point"` // World coordinates, one per dimension
	Value float64   `json:"value"`
}

// Abs returns |Value|, the key the hall is sorted by.
func (e HallEntry) Abs() float64 { return math.Abs(e.Value) }

// HallOfFame keeps the most extreme distinct points found per key, where a key
// names a noise type and dimension. Each hall is sorted by descending |value|.
type HallOfFame struct {
	halls     map[string][]HallEntry
	maxSize   int
	minSpread float64 // Points closer than this to an entry are duplicates
}

// NewHallOfFame creates a hall of fame with the given capacity per key.
// Points within minSpread (Chebyshev distance) of an existing entry replace it
// only when they are more extreme.
func NewHallOfFame(maxSize int, minSpread float64) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		halls:     make(map[string][]HallEntry),
		maxSize:   maxSize,
		minSpread: minSpread,
	}
}

// Consider offers a point to the hall for key.
// Returns true if the point was added.
func (hof *HallOfFame) Consider(key string, point []float64, value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	entry := HallEntry{Point: slices.Clone(point), Value: value}
	hall := hof.halls[key]

	// A nearby entry is the same extremum found from another start
	for i, e := range hall {
		if len(e.Point) == len(point) && chebyshev(e.Point, point) < hof.minSpread {
			if entry.Abs() <= e.Abs() {
				return false
			}
			hall = slices.Delete(hall, i, i+1)
			break
		}
	}

	hall, added := hof.insertEntry(hall, entry)
	hof.halls[key] = hall
	return added
}

// insertEntry adds an entry to the hall, maintaining sorted order by |value|.
// If the hall is full, the least extreme entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) ([]HallEntry, bool) {
	// Find insertion point (sorted descending by |value|)
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Abs() < entry.Abs()
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall, false
	}

	// Insert at position
	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	// Trim if over capacity
	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}

	return hall, true
}

// Entries returns the hall for key, most extreme first.
func (hof *HallOfFame) Entries(key string) []HallEntry {
	return hof.halls[key]
}

// Size returns the number of entries for key.
func (hof *HallOfFame) Size(key string) int {
	return len(hof.halls[key])
}

// TopAbs returns the largest |value| recorded for key, or 0 if the hall is empty.
func (hof *HallOfFame) TopAbs(key string) float64 {
	hall := hof.halls[key]
	if len(hall) == 0 {
		return 0
	}
	return hall[0].Abs()
}

// Keys returns every key with at least one entry, sorted.
func (hof *HallOfFame) Keys() []string {
	keys := make([]string, 0, len(hof.halls))
	for k, hall := range hof.halls {
		if len(hall) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON serializes the hall of fame as a map from key to entries.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.halls, "", "  ")
}

// Save writes the hall of fame as JSON to path.
func (hof *HallOfFame) Save(path string) error {
	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write hall of fame: %w", err)
	}
	return nil
}

// LoadHallOfFameFromFile reads a hall of fame JSON file. Capacity grows to fit
// the largest hall in the file.
func LoadHallOfFameFromFile(path string, maxSize int, minSpread float64) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var raw map[string][]HallEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	for _, entries := range raw {
		maxSize = max(maxSize, len(entries))
	}
	hof := NewHallOfFame(maxSize, minSpread)
	for key, entries := range raw {
		for _, e := range entries {
			hof.Consider(key, e.Point, e.Value)
		}
	}
	return hof, nil
}

func chebyshev(a, b []float64) float64 {
	var d float64
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}
