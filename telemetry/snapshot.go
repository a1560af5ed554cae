package telemetry

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pthm-cable/latticenoise/noise"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a generated field and everything needed to regenerate it.
type Snapshot struct {
	Version int `json:"version"`

	Noise      noise.Config    `json:"noise"`
	Type       noise.NoiseType `json:"type"`
	Dimensions int             `json:"dimensions"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Depth      int             `json:"depth"`
	Start      [4]float64      `json:"start"`

	Values []float64 `json:"values"`
}

// Filename returns the file name SaveSnapshot uses.
func (s *Snapshot) Filename() string {
	return fmt.Sprintf("snapshot_%s_%dd_seed%d.json", s.Type, s.Dimensions, s.Noise.Seed)
}

// SaveSnapshot writes a snapshot to dir.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, snapshot.Filename())

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	n, err := snapshot.SampleCount()
	if err != nil {
		return nil, err
	}
	if n != len(snapshot.Values) {
		return nil, fmt.Errorf("snapshot extents give %d samples, file holds %d", n, len(snapshot.Values))
	}

	return &snapshot, nil
}

// SampleCount returns the number of samples the extents describe. Depth only
// counts for 3D and 4D fields.
func (s *Snapshot) SampleCount() (int, error) {
	if s.Dimensions < 2 || s.Dimensions > 4 {
		return 0, fmt.Errorf("snapshot dimensions %d, want 2, 3 or 4", s.Dimensions)
	}
	extents := []int{s.Width, s.Height}
	if s.Dimensions > 2 {
		extents = append(extents, s.Depth)
	}
	n := 1
	for _, e := range extents {
		if e < 0 {
			return 0, fmt.Errorf("snapshot extent %d is negative", e)
		}
		if e != 0 && n > math.MaxInt/e {
			return 0, fmt.Errorf("snapshot extents %v overflow", extents)
		}
		n *= e
	}
	return n, nil
}

// Compare reports how many values differ from the snapshot and the largest
// absolute difference. A length mismatch counts every missing value.
func (s *Snapshot) Compare(values []float64) (mismatches int, maxDiff float64) {
	n := min(len(values), len(s.Values))
	for i := 0; i < n; i++ {
		if values[i] != s.Values[i] {
			mismatches++
			maxDiff = math.Max(maxDiff, math.Abs(values[i]-s.Values[i]))
		}
	}
	mismatches += max(len(values), len(s.Values)) - n
	return mismatches, maxDiff
}
