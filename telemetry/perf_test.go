package telemetry

import (
	"log/slog"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartBatch()
		pc.StartPhase(PhaseConfigure)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseSample)
		time.Sleep(200 * time.Microsecond)
		pc.EndBatch(1000)
	}

	stats := pc.Stats()

	if stats.AvgBatchDuration <= 0 {
		t.Error("expected positive average batch duration")
	}
	if stats.PhaseAvg[PhaseConfigure] < 100*time.Microsecond {
		t.Errorf("configure phase = %v, want at least 100us", stats.PhaseAvg[PhaseConfigure])
	}
	if stats.PhaseAvg[PhaseSample] < 200*time.Microsecond {
		t.Errorf("sample phase = %v, want at least 200us", stats.PhaseAvg[PhaseSample])
	}
	if stats.PhaseAvg[PhaseWrite] != 0 {
		t.Errorf("write phase never ran but took %v", stats.PhaseAvg[PhaseWrite])
	}
	// At least 300us per 1000 samples
	if stats.NsPerSample < 300 {
		t.Errorf("ns per sample = %v, want >= 300", stats.NsPerSample)
	}
	if stats.SamplesPerSecond <= 0 {
		t.Error("expected positive samples per second")
	}
	// 1000 samples in at least 300us each
	if stats.SamplesPerSecond > 1000/300e-6 {
		t.Errorf("samples per second too high: %v", stats.SamplesPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartBatch()
		pc.StartPhase(PhaseSample)
		time.Sleep(10 * time.Microsecond)
		pc.EndBatch(i)
	}

	stats := pc.Stats()

	if stats.AvgBatchDuration <= 0 {
		t.Error("expected positive average batch duration after window filled")
	}
	if stats.BatchesPerSecond <= 0 {
		t.Error("expected positive batches per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartBatch()
		pc.StartPhase(PhaseStats)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseSample)
		time.Sleep(2 * time.Millisecond)
		pc.EndBatch(1)
	}

	stats := pc.Stats()

	if stats.PhasePct[PhaseSample] <= stats.PhasePct[PhaseStats] {
		t.Errorf("expected sample phase (%v%%) > stats phase (%v%%)",
			stats.PhasePct[PhaseSample], stats.PhasePct[PhaseStats])
	}

	row := stats.ToCSV(5)
	if row.Batch != 5 || row.SamplePct != stats.PhasePct[PhaseSample] {
		t.Errorf("unexpected CSV row: %+v", row)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgBatchDuration != 0 {
		t.Error("expected zero avg batch duration for empty collector")
	}
	if stats.Batches != 0 || stats.NsPerSample != 0 || stats.SamplesPerSecond != 0 {
		t.Errorf("expected zero throughput for empty collector, got %+v", stats)
	}
	if _, ok := pc.Last(); ok {
		t.Error("expected no last batch for empty collector")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPerfStats_LogValue(t *testing.T) {
	s := PerfStats{AvgBatchDuration: 2 * time.Millisecond}
	s.PhasePct[PhaseSample] = 95.55
	s.PhasePct[PhaseWrite] = 0.05
	v := s.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %v", v.Kind())
	}

	keys := map[string]bool{}
	for _, a := range v.Group() {
		keys[a.Key] = true
	}
	if !keys["avg_batch_us"] || !keys["sample_pct"] {
		t.Errorf("missing attributes: %v", keys)
	}
	if keys["write_pct"] {
		t.Error("expected phases under 0.1% to be omitted")
	}
}

func TestPerfCollector_LastAndWindow(t *testing.T) {
	pc := NewPerfCollector(3)
	for i := 1; i <= 5; i++ {
		pc.StartBatch()
		pc.StartPhase(PhaseSample)
		pc.EndBatch(i * 10)
	}

	last, ok := pc.Last()
	if !ok || last.Samples != 50 {
		t.Errorf("last batch = %+v, %v; want 50 samples", last, ok)
	}
	if got := pc.Stats().Batches; got != 3 {
		t.Errorf("batches in window = %d, want 3", got)
	}
	if (BatchTiming{Total: time.Microsecond, Samples: 4}).NsPerSample() != 250 {
		t.Error("expected 250ns per sample for 4 samples in 1us")
	}
}

func TestPhaseString(t *testing.T) {
	for ph, want := range map[Phase]string{
		PhaseConfigure: "configure",
		PhaseSample:    "sample",
		PhaseStats:     "stats",
		PhaseWrite:     "write",
		Phase(9):       "unknown",
	} {
		if got := ph.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", uint8(ph), got, want)
		}
	}
}
