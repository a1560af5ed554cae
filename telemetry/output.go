package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/latticenoise/config"
)

// SampleRecord is one noise sample with its grid position.
type SampleRecord struct {
	Batch int     `csv:"batch"`
	X     int     `csv:"x"`
	Y     int     `csv:"y"`
	Z     int     `csv:"z"`
	Value float64 `csv:"value"`
}

// csvFile is an output CSV that writes its header with the first record.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func (c *csvFile) write(records any, what string) error {
	if !c.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, c.f); err != nil {
			return fmt.Errorf("writing %s: %w", what, err)
		}
		c.headerWritten = true
		return nil
	}
	// Subsequent writes skip headers
	if err := gocsv.MarshalWithoutHeaders(records, c.f); err != nil {
		return fmt.Errorf("writing %s: %w", what, err)
	}
	return nil
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir     string
	samples *csvFile
	stats   *csvFile
	perf    *csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). samples.csv is only created
// when withSamples is set.
func NewOutputManager(dir string, withSamples bool) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	names := []struct {
		name string
		dst  **csvFile
		skip bool
	}{
		{"samples.csv", &om.samples, !withSamples},
		{"stats.csv", &om.stats, false},
		{"perf.csv", &om.perf, false},
	}
	for _, n := range names {
		if n.skip {
			continue
		}
		f, err := os.Create(filepath.Join(dir, n.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", n.name, err)
		}
		*n.dst = &csvFile{f: f}
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSamples appends sample records to samples.csv.
func (om *OutputManager) WriteSamples(records []SampleRecord) error {
	if om == nil || om.samples == nil || len(records) == 0 {
		return nil
	}
	return om.samples.write(records, "samples")
}

// WriteStats appends a field stats record to stats.csv.
func (om *OutputManager) WriteStats(s FieldStats) error {
	if om == nil {
		return nil
	}
	return om.stats.write([]FieldStats{s}, "stats")
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(s PerfStats, batch int) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{s.ToCSV(batch)}, "perf")
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.samples, om.stats, om.perf} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
