// Headless noise generator: fills the configured grid, logs field statistics
// and writes CSV output.
//
// Usage: go run ./cmd/noisegen -output-dir out -type perlin_fractal -seed 7
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/pthm-cable/latticenoise/config"
	"github.com/pthm-cable/latticenoise/noise"
	"github.com/pthm-cable/latticenoise/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	var noiseType noise.NoiseType
	flag.TextVar(&noiseType, "type", noise.SimplexFractal, "Noise type (overrides config)")
	var seed int32
	flag.Func("seed", "Noise seed, a signed 32-bit integer (overrides config)", func(v string) error {
		var err error
		seed, err = parseSeed(v)
		return err
	})
	dims := flag.Int("dims", 0, "Dimensions 2, 3 or 4 (0 = use config)")
	width := flag.Int("width", 0, "Grid width (0 = use config)")
	height := flag.Int("height", 0, "Grid height (0 = use config)")
	depth := flag.Int("depth", 0, "Grid depth (0 = use config)")
	batches := flag.Int("batches", 1, "Number of batches; each starts one grid width further along x")
	logStats := flag.Bool("log-stats", false, "Output per-batch stats via slog")
	snapshotDir := flag.String("snapshot-dir", "", "Save the first batch as a snapshot in this directory")
	verifyPath := flag.String("verify", "", "Regenerate a snapshot file and compare")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *verifyPath != "" {
		if err := verify(*verifyPath); err != nil {
			slog.Error("verification failed", "error", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Flags only override what was explicitly passed
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "type":
			cfg.Sampling.Type = noiseType
		case "seed":
			cfg.Noise.Seed = seed
		}
	})
	if *dims > 0 {
		cfg.Sampling.Dimensions = *dims
	}
	if *width > 0 {
		cfg.Sampling.Width = *width
	}
	if *height > 0 {
		cfg.Sampling.Height = *height
	}
	if *depth > 0 {
		cfg.Sampling.Depth = *depth
	}
	if err := cfg.Finalize(); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, *outputDir, *batches, *logStats, *snapshotDir); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, outputDir string, batches int, logStats bool, snapshotDir string) error {
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	perf.StartBatch()
	perf.StartPhase(telemetry.PhaseConfigure)
	gen, err := noise.NewGenerator(cfg.Noise)
	if err != nil {
		return err
	}

	output, err := telemetry.NewOutputManager(outputDir, cfg.Telemetry.WriteSamples)
	if err != nil {
		return err
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	slog.Info("generating",
		"type", cfg.Sampling.Type,
		"dimensions", cfg.Sampling.Dimensions,
		"samples", cfg.Derived.SampleCount,
		"batches", batches,
		"seed", cfg.Noise.Seed,
		"output_dir", output.Dir(),
	)

	bookmarks := telemetry.NewBookmarkDetector(cfg.Telemetry.PerfWindow)
	var buf noise.Buffer
	s := cfg.Sampling
	for b := 0; b < batches; b++ {
		if b > 0 {
			perf.StartBatch()
		}
		perf.StartPhase(telemetry.PhaseSample)
		start := [4]float64{s.Start.X + float64(b*s.Width), s.Start.Y, s.Start.Z, s.Start.W}
		values := buf.Resize(cfg.Derived.SampleCount)
		if err := fill(gen, s, start, values); err != nil {
			return err
		}

		perf.StartPhase(telemetry.PhaseStats)
		stats := telemetry.ComputeFieldStats(values, s.Width, cfg.Telemetry.RangeBound)
		stats.Label = fmt.Sprintf("%s_%dd_b%d", s.Type, s.Dimensions, b)

		perf.StartPhase(telemetry.PhaseWrite)
		if err := output.WriteStats(stats); err != nil {
			return err
		}
		if err := output.WriteSamples(sampleRecords(values, b, s.Width, s.Height, cfg.Telemetry.SampleStride)); err != nil {
			return err
		}
		if b == 0 && snapshotDir != "" {
			snap := &telemetry.Snapshot{
				Version:    telemetry.SnapshotVersion,
				Noise:      gen.Config(),
				Type:       s.Type,
				Dimensions: s.Dimensions,
				Width:      s.Width,
				Height:     s.Height,
				Depth:      s.Depth,
				Start:      start,
				Values:     append([]float64(nil), values...),
			}
			path, err := telemetry.SaveSnapshot(snap, snapshotDir)
			if err != nil {
				return err
			}
			slog.Info("snapshot saved", "path", path)
		}
		perf.EndBatch(len(values))

		ps := perf.Stats()
		if err := output.WritePerf(ps, b); err != nil {
			return err
		}
		if logStats {
			slog.Info("batch",
				"batch", b,
				"stats", stats,
				"histogram", telemetry.Histogram(values, 10, -1, 1),
				"perf", ps,
			)
		}
		for _, bm := range bookmarks.Check(b, stats) {
			bm.LogBookmark()
		}
	}

	slog.Info("done", "perf", perf.Stats())
	return nil
}

// fill evaluates one batch starting at start into values.
// parseSeed accepts any int32, in decimal or with a 0x/0o/0b prefix.
func parseSeed(v string) (int32, error) {
	n, err := strconv.ParseInt(v, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("seed must be a signed 32-bit integer: %w", err)
	}
	return int32(n), nil
}

func fill(gen *noise.Generator, s config.SamplingConfig, start [4]float64, values []float64) error {
	switch s.Dimensions {
	case 2:
		return gen.Square2Into(values, s.Type, start[0], start[1], s.Width, s.Height)
	case 3:
		return gen.Cube3Into(values, s.Type, start[0], start[1], start[2], s.Width, s.Height, s.Depth)
	case 4:
		return gen.Cube4Into(values, s.Type, start[0], start[1], start[2], start[3], s.Width, s.Height, s.Depth)
	default:
		return fmt.Errorf("%w: %d dimensions", noise.ErrUnsupportedDimension, s.Dimensions)
	}
}

// sampleRecords converts every stride-th value into a CSV record with its
// grid position.
func sampleRecords(values []float64, batch, width, height, stride int) []telemetry.SampleRecord {
	if stride < 1 {
		stride = 1
	}
	records := make([]telemetry.SampleRecord, 0, (len(values)+stride-1)/stride)
	for i := 0; i < len(values); i += stride {
		records = append(records, telemetry.SampleRecord{
			Batch: batch,
			X:     i % width,
			Y:     (i / width) % height,
			Z:     i / (width * height),
			Value: values[i],
		})
	}
	return records
}

// verify regenerates a saved snapshot and fails on any difference.
func verify(path string) error {
	snap, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}
	gen, err := noise.NewGenerator(snap.Noise)
	if err != nil {
		return err
	}
	s := config.SamplingConfig{
		Type:       snap.Type,
		Dimensions: snap.Dimensions,
		Width:      snap.Width,
		Height:     snap.Height,
		Depth:      snap.Depth,
	}
	n, err := snap.SampleCount()
	if err != nil {
		return err
	}
	values := make([]float64, n)
	if err := fill(gen, s, snap.Start, values); err != nil {
		return err
	}

	mismatches, maxDiff := snap.Compare(values)
	if mismatches > 0 {
		return fmt.Errorf("%d of %d samples differ (max diff %g)", mismatches, len(snap.Values), maxDiff)
	}
	slog.Info("snapshot verified", "path", path, "samples", n)
	return nil
}
