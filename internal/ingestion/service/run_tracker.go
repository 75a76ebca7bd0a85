package service

import (
	"sync"
	"time"

	"github.com/0xquinto/parlay-picker/internal/entity"
)

// RunSnapshot is a point-in-time copy of the run state, safe to read while a
// run is in flight.
type RunSnapshot struct {
	Status            string    `json:"status"`
	StartedAt         time.Time `json:"started_at,omitempty"`
	FinishedAt        time.Time `json:"finished_at,omitempty"`
	Duration          time.Duration `json:"duration_ms,omitempty"`
	Season            int       `json:"season,omitempty"`
	Week              int       `json:"week,omitempty"`
	Message           string    `json:"message,omitempty"`
	Sources           int       `json:"sources"`
	ArticlesProcessed int       `json:"articles_processed"`
	Errors            int       `json:"errors"`
}

// RunTracker owns the mutable state of the current ingestion run. It is an
// injected instance, not a package global, and doubles as the overlap guard:
// TryStart is the only way a run begins, and it refuses while another run is
// in progress.
type RunTracker struct {
	mu   sync.Mutex
	snap RunSnapshot
	now  func() time.Time
}

// NewRunTracker creates a tracker in the idle state.
func NewRunTracker() *RunTracker {
	return &RunTracker{
		snap: RunSnapshot{Status: entity.RunStatusIdle},
		now:  time.Now,
	}
}

// TryStart resets counters and timestamps and moves the tracker to Running.
// It returns false without mutating anything when a run is already in
// progress; overlapping triggers are rejected, never queued.
func (t *RunTracker) TryStart(season, week int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.snap.Status == entity.RunStatusRunning {
		return false
	}

	t.snap = RunSnapshot{
		Status:    entity.RunStatusRunning,
		StartedAt: t.now(),
		Season:    season,
		Week:      week,
	}
	return true
}

// IncrementArticles bumps the processed-article counter.
func (t *RunTracker) IncrementArticles() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.ArticlesProcessed++
}

// IncrementErrors bumps the error counter.
func (t *RunTracker) IncrementErrors() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Errors++
}

// SetSourceCount records how many sources the run will visit.
func (t *RunTracker) SetSourceCount(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Sources = n
}

// MarkSuccess finalizes the run as successful. A zero duration means
// "compute from the recorded start time".
func (t *RunTracker) MarkSuccess(message string, duration time.Duration) {
	t.finalize(entity.RunStatusSuccess, message, duration)
}

// MarkFailed finalizes the run as failed.
func (t *RunTracker) MarkFailed(message string, duration time.Duration) {
	t.finalize(entity.RunStatusFailed, message, duration)
}

// MarkSkipped finalizes the run as skipped.
func (t *RunTracker) MarkSkipped(message string, duration time.Duration) {
	t.finalize(entity.RunStatusSkipped, message, duration)
}

func (t *RunTracker) finalize(status, message string, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.Status = status
	t.snap.FinishedAt = t.now()
	t.snap.Message = message
	if duration > 0 {
		t.snap.Duration = duration
	} else if !t.snap.StartedAt.IsZero() {
		t.snap.Duration = t.snap.FinishedAt.Sub(t.snap.StartedAt)
	}
}

// Snapshot returns an immutable copy of the current run state.
func (t *RunTracker) Snapshot() RunSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}
