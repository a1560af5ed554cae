// Package main searches for the empirical extremes of every noise kernel with
// Nelder-Mead from many random starting points.
//
// Usage: go run ./cmd/boundsearch -output results
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/latticenoise/config"
	"github.com/pthm-cable/latticenoise/noise"
	"github.com/pthm-cable/latticenoise/rng"
	"github.com/pthm-cable/latticenoise/telemetry"
)

// Result is the largest |value| found for one noise type and dimension.
type Result struct {
	Type        string  `csv:"type"`
	Dimensions  int     `csv:"dimensions"`
	MaxAbs      float64 `csv:"max_abs"`
	Value       float64 `csv:"value"`
	X           float64 `csv:"x"`
	Y           float64 `csv:"y"`
	Z           float64 `csv:"z"`
	W           float64 `csv:"w"`
	Evaluations int     `csv:"evaluations"`
	WithinBound bool    `csv:"within_bound"`
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	outputDir := flag.String("output", "", "Output directory for results.csv (empty = log only)")
	starts := flag.Int("starts", 0, "Random starts per type and dimension (0 = use config)")
	hallPath := flag.String("hall", "", "Hall of fame JSON from an earlier run; its points are searched first")
	hallSize := flag.Int("hall-size", 8, "Distinct extremes kept per type and dimension")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *starts > 0 {
		cfg.Search.Starts = *starts
	}

	// Starts closer than half a lattice cell converge to the same extremum
	spread := 0.5 / cfg.Noise.Frequency
	hof := telemetry.NewHallOfFame(*hallSize, spread)
	if *hallPath != "" {
		hof, err = telemetry.LoadHallOfFameFromFile(*hallPath, *hallSize, spread)
		if err != nil {
			slog.Error("failed to load hall of fame", "error", err)
			os.Exit(1)
		}
		slog.Info("hall of fame loaded", "path", *hallPath, "keys", len(hof.Keys()))
	}

	startTime := time.Now()
	results, err := searchAll(cfg, hof)
	if err != nil {
		slog.Error("search failed", "error", err)
		os.Exit(1)
	}
	for _, r := range results {
		level := slog.LevelInfo
		if !r.WithinBound {
			level = slog.LevelWarn
		}
		slog.Log(context.Background(), level, "extreme",
			"type", r.Type,
			"dimensions", r.Dimensions,
			"max_abs", r.MaxAbs,
			"value", r.Value,
			"evaluations", r.Evaluations,
			"within_bound", r.WithinBound,
		)
	}
	slog.Info("search complete", "results", len(results), "elapsed", time.Since(startTime).String())

	if *outputDir != "" {
		path, err := writeResults(*outputDir, results)
		if err != nil {
			slog.Error("failed to write results", "error", err)
			os.Exit(1)
		}
		hallOut := filepath.Join(*outputDir, "halloffame.json")
		if err := hof.Save(hallOut); err != nil {
			slog.Error("failed to write hall of fame", "error", err)
			os.Exit(1)
		}
		slog.Info("results saved", "path", path, "hall_of_fame", hallOut)
	}
}

// searchAll runs the search for every noise type in every dimension it supports.
// Every local optimum is offered to hof.
func searchAll(cfg *config.Config, hof *telemetry.HallOfFame) ([]Result, error) {
	gen, err := noise.NewGenerator(cfg.Noise)
	if err != nil {
		return nil, err
	}
	src := rng.New(cfg.Search.Seed)

	var results []Result
	for _, t := range noise.NoiseTypes() {
		for dim := 2; dim <= 4; dim++ {
			if !t.Supports(dim) {
				continue
			}
			r, err := search(gen, t, dim, cfg.Search, src, hof)
			if err != nil {
				return nil, fmt.Errorf("%s %dD: %w", t, dim, err)
			}
			r.WithinBound = r.MaxAbs <= cfg.Telemetry.RangeBound
			results = append(results, r)
		}
	}
	return results, nil
}

// search maximises |f| for one noise type and dimension.
func search(gen *noise.Generator, t noise.NoiseType, dim int, sc config.SearchConfig, src *rng.Xoroshiro128Plus, hof *telemetry.HallOfFame) (Result, error) {
	eval, err := evaluator(gen, t, dim)
	if err != nil {
		return Result{}, err
	}

	best := Result{Type: t.String(), Dimensions: dim}
	bestX := make([]float64, dim)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return -math.Abs(eval(x))
		},
	}
	settings := &optimize.Settings{
		MajorIterations: sc.MaxIterations,
		Concurrent:      0,
	}

	// Initial simplex spans about one lattice cell
	step := 1 / gen.Config().Frequency

	key := hallKey(t, dim)
	var starts [][]float64
	for _, e := range hof.Entries(key) {
		if len(e.Point) == dim {
			starts = append(starts, slices.Clone(e.Point))
		}
	}
	for s := 0; s < sc.Starts; s++ {
		x0 := make([]float64, dim)
		for i := range x0 {
			x0[i] = (src.Float64()*2 - 1) * sc.Span
		}
		starts = append(starts, x0)
	}

	for _, x0 := range starts {
		result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{SimplexSize: step})
		if result == nil {
			return best, err
		}
		// Iteration limits end the run with a usable location
		best.Evaluations += result.Stats.FuncEvaluations
		hof.Consider(key, result.X, eval(result.X))
		if v := -result.F; v > best.MaxAbs {
			best.MaxAbs = v
			copy(bestX, result.X)
		}
	}

	best.Value = eval(bestX)
	coords := [4]*float64{&best.X, &best.Y, &best.Z, &best.W}
	for i, v := range bestX {
		*coords[i] = v
	}
	return best, nil
}

// hallKey names the hall of fame entry for a noise type and dimension.
func hallKey(t noise.NoiseType, dim int) string {
	return fmt.Sprintf("%s_%dd", t, dim)
}

// evaluator returns a world-coordinate sampler for t in dim dimensions.
func evaluator(gen *noise.Generator, t noise.NoiseType, dim int) (func([]float64) float64, error) {
	f := gen.Config().Frequency
	switch dim {
	case 2:
		fn, err := gen.Field2(t)
		if err != nil {
			return nil, err
		}
		return func(x []float64) float64 { return fn(x[0]*f, x[1]*f) }, nil
	case 3:
		fn, err := gen.Field3(t)
		if err != nil {
			return nil, err
		}
		return func(x []float64) float64 { return fn(x[0]*f, x[1]*f, x[2]*f) }, nil
	case 4:
		fn, err := gen.Field4(t)
		if err != nil {
			return nil, err
		}
		return func(x []float64) float64 { return fn(x[0]*f, x[1]*f, x[2]*f, x[3]*f) }, nil
	default:
		return nil, fmt.Errorf("%w: %d dimensions", noise.ErrUnsupportedDimension, dim)
	}
}

// writeResults saves results as results.csv in dir.
func writeResults(dir string, results []Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, "results.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating results file: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&results, f); err != nil {
		return "", fmt.Errorf("writing results: %w", err)
	}
	return path, nil
}
