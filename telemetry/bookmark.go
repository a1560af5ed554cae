package telemetry

import (
	"fmt"
	"log/slog"
	"math"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkOutOfRange BookmarkType = "out_of_range"
	BookmarkFlatField  BookmarkType = "flat_field"
	BookmarkMeanShift  BookmarkType = "mean_shift"
	BookmarkNewExtreme BookmarkType = "new_extreme"
)

// Thresholds for the batch checks.
const (
	flatStdThreshold = 1e-9
	meanShiftFactor  = 0.5 // Of the rolling average std
)

// Bookmark is a batch worth a closer look.
type Bookmark struct {
	Type        BookmarkType
	Batch       int
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Warn("bookmark",
		"type", string(b.Type),
		"batch", b.Batch,
		"description", b.Description,
	)
}

// BookmarkDetector flags unusual batches against a rolling history of field stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []FieldStats
	historySize int
	historyIdx  int
	historyFull bool

	// Largest |value| seen across all batches
	extreme float64
	batches int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for the mean shift check
	}
	return &BookmarkDetector{
		history:     make([]FieldStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest batch stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(batch int, stats FieldStats) []Bookmark {
	var bookmarks []Bookmark

	if stats.OutOfRange > 0 {
		bookmarks = append(bookmarks, Bookmark{
			Type:  BookmarkOutOfRange,
			Batch: batch,
			Description: fmt.Sprintf("%d of %d samples exceed %.2f (min %.4f, max %.4f)",
				stats.OutOfRange, stats.Count, stats.Bound, stats.Min, stats.Max),
		})
	}

	if stats.Count > 1 && stats.Std < flatStdThreshold {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFlatField,
			Batch:       batch,
			Description: fmt.Sprintf("field is constant at %.4f over %d samples", stats.Mean, stats.Count),
		})
	}

	if b := bd.checkMeanShift(batch, stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	peak := math.Max(math.Abs(stats.Min), math.Abs(stats.Max))
	if bd.batches > 0 && peak > bd.extreme {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkNewExtreme,
			Batch:       batch,
			Description: fmt.Sprintf("new largest |value| %.4f (was %.4f)", peak, bd.extreme),
		})
	}
	bd.extreme = math.Max(bd.extreme, peak)
	bd.batches++

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats FieldStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []FieldStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkMeanShift flags a batch whose mean drifts from the rolling average by
// more than meanShiftFactor rolling standard deviations.
func (bd *BookmarkDetector) checkMeanShift(batch int, stats FieldStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var meanSum, stdSum float64
	for _, h := range history {
		meanSum += h.Mean
		stdSum += h.Std
	}
	avgMean := meanSum / float64(len(history))
	avgStd := stdSum / float64(len(history))
	if avgStd == 0 {
		return nil
	}

	shift := math.Abs(stats.Mean - avgMean)
	if shift > meanShiftFactor*avgStd {
		return &Bookmark{
			Type:        BookmarkMeanShift,
			Batch:       batch,
			Description: fmt.Sprintf("mean %.4f is %.1f std from rolling average %.4f", stats.Mean, shift/avgStd, avgMean),
		}
	}
	return nil
}
