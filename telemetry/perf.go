package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one timed step of a batch.
type Phase uint8

// Batch phases, in the order a run passes through them.
const (
	PhaseConfigure Phase = iota
	PhaseSample
	PhaseStats
	PhaseWrite
	numPhases
)

var phaseNames = [numPhases]string{"configure", "sample", "stats", "write"}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// PhaseDurations holds one duration per phase.
type PhaseDurations [numPhases]time.Duration

// BatchTiming is the timing of a single batch.
type BatchTiming struct {
	Total   time.Duration
	Samples int
	Phases  PhaseDurations
}

// NsPerSample returns the wall time spent per noise sample.
func (b BatchTiming) NsPerSample() float64 {
	if b.Samples <= 0 {
		return 0
	}
	return float64(b.Total.Nanoseconds()) / float64(b.Samples)
}

// PerfCollector times batch phases and keeps the most recent window of batches.
// Not safe for concurrent use.
type PerfCollector struct {
	window []BatchTiming
	next   int
	filled int

	cur        BatchTiming
	batchStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Preview frame pacing
	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps the last windowSize batches. Sizes below one fall back to 60.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{window: make([]BatchTiming, windowSize)}
}

// StartBatch begins timing a new batch.
func (p *PerfCollector) StartBatch() {
	p.cur = BatchTiming{}
	p.batchStart = time.Now()
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.cur.Phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndBatch closes the batch, which produced samples noise values.
func (p *PerfCollector) EndBatch(samples int) {
	now := time.Now()
	p.closePhase(now)
	p.cur.Total = now.Sub(p.batchStart)
	p.cur.Samples = samples

	p.window[p.next] = p.cur
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

// Last returns the most recently finished batch.
func (p *PerfCollector) Last() (BatchTiming, bool) {
	if p.filled == 0 {
		return BatchTiming{}, false
	}
	return p.window[(p.next+len(p.window)-1)%len(p.window)], true
}

// RecordFrame marks the end of a preview frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats aggregates the batches in the window.
type PerfStats struct {
	Batches int

	AvgBatchDuration time.Duration
	MinBatchDuration time.Duration
	MaxBatchDuration time.Duration

	PhaseAvg PhaseDurations
	PhasePct [numPhases]float64 // share of the average batch

	BatchesPerSecond float64
	SamplesPerSecond float64
	NsPerSample      float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Batches: p.filled, FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var samples int
	var phaseSum PhaseDurations
	for i, b := range p.window[:p.filled] {
		total += b.Total
		samples += b.Samples
		if i == 0 || b.Total < s.MinBatchDuration {
			s.MinBatchDuration = b.Total
		}
		s.MaxBatchDuration = max(s.MaxBatchDuration, b.Total)
		for ph, d := range b.Phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgBatchDuration = total / n
	for ph, d := range phaseSum {
		s.PhaseAvg[ph] = d / n
		if s.AvgBatchDuration > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgBatchDuration) * 100
		}
	}
	if s.AvgBatchDuration > 0 {
		s.BatchesPerSecond = float64(time.Second) / float64(s.AvgBatchDuration)
	}
	if total > 0 {
		s.SamplesPerSecond = float64(samples) / total.Seconds()
	}
	if samples > 0 {
		s.NsPerSample = float64(total.Nanoseconds()) / float64(samples)
	}
	return s
}

// LogValue implements slog.LogValuer. Phases under 0.1% are left out.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("batches", s.Batches),
		slog.Int64("avg_batch_us", s.AvgBatchDuration.Microseconds()),
		slog.Int64("min_batch_us", s.MinBatchDuration.Microseconds()),
		slog.Int64("max_batch_us", s.MaxBatchDuration.Microseconds()),
		slog.Float64("samples_per_sec", s.SamplesPerSecond),
		slog.Float64("ns_per_sample", s.NsPerSample),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Batch         int     `csv:"batch"`
	AvgBatchUS    int64   `csv:"avg_batch_us"`
	MinBatchUS    int64   `csv:"min_batch_us"`
	MaxBatchUS    int64   `csv:"max_batch_us"`
	SamplesPerSec float64 `csv:"samples_per_sec"`
	NsPerSample   float64 `csv:"ns_per_sample"`
	FPS           float64 `csv:"fps"`
	ConfigurePct  float64 `csv:"configure_pct"`
	SamplePct     float64 `csv:"sample_pct"`
	StatsPct      float64 `csv:"stats_pct"`
	WritePct      float64 `csv:"write_pct"`
}

// ToCSV flattens the stats for batch into a CSV row.
func (s PerfStats) ToCSV(batch int) PerfStatsCSV {
	return PerfStatsCSV{
		Batch:         batch,
		AvgBatchUS:    s.AvgBatchDuration.Microseconds(),
		MinBatchUS:    s.MinBatchDuration.Microseconds(),
		MaxBatchUS:    s.MaxBatchDuration.Microseconds(),
		SamplesPerSec: s.SamplesPerSecond,
		NsPerSample:   s.NsPerSample,
		FPS:           s.FPS,
		ConfigurePct:  s.PhasePct[PhaseConfigure],
		SamplePct:     s.PhasePct[PhaseSample],
		StatsPct:      s.PhasePct[PhaseStats],
		WritePct:      s.PhasePct[PhaseWrite],
	}
}
