package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldStats summarises one batch of noise samples.
type FieldStats struct {
	Label string `csv:"label"`
	Count int    `csv:"count"`

	// Distribution
	Min  float64 `csv:"min"`
	Max  float64 `csv:"max"`
	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"`
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`

	// Range check against the configured bound
	Bound      float64 `csv:"bound"`
	OutOfRange int     `csv:"out_of_range"`

	// Coherence: mean |v[i+1] - v[i]| between horizontal neighbours
	MeanAbsDelta float64 `csv:"mean_abs_delta"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFieldStats summarises values laid out in rows of rowWidth samples.
// rowWidth <= 0 treats the whole slice as one row. Samples with |v| > bound
// are counted as out of range.
func ComputeFieldStats(values []float64, rowWidth int, bound float64) FieldStats {
	n := len(values)
	s := FieldStats{Count: n, Bound: bound}
	if n == 0 {
		return s
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Mean, s.Std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)

	for _, v := range values {
		if math.Abs(v) > bound {
			s.OutOfRange++
		}
	}

	if rowWidth <= 0 {
		rowWidth = n
	}
	var deltaSum float64
	var pairs int
	for i := 0; i+1 < n; i++ {
		if (i+1)%rowWidth == 0 {
			continue
		}
		deltaSum += math.Abs(values[i+1] - values[i])
		pairs++
	}
	if pairs > 0 {
		s.MeanAbsDelta = deltaSum / float64(pairs)
	}

	return s
}

// Histogram counts values into bins equal-width bins over [lo, hi]. Values
// outside the range land in the first or last bin.
func Histogram(values []float64, bins int, lo, hi float64) []float64 {
	if bins < 1 || !(hi > lo) {
		return nil
	}
	if len(values) == 0 {
		return make([]float64, bins)
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram excludes the upper divider
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = math.Min(math.Max(v, lo), hi)
	}
	sort.Float64s(sorted)

	return stat.Histogram(nil, dividers, sorted, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("count", s.Count),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("mean_abs_delta", s.MeanAbsDelta),
	}
	if s.OutOfRange > 0 {
		attrs = append(attrs, slog.Int("out_of_range", s.OutOfRange))
	}
	if s.Label != "" {
		attrs = append([]slog.Attr{slog.String("label", s.Label)}, attrs...)
	}
	return slog.GroupValue(attrs...)
}
