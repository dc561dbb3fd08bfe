package application

import (
	"sync"
	"time"

	"github.com/devbush/swiftconvert/internal/domain"
)

// ProgressTracker holds the progress of the submission in flight.
// Readers always get a consistent snapshot.
type ProgressTracker struct {
	mu       sync.Mutex
	progress domain.Progress
	bus      *EventBus
	file     string
}

// NewProgressTracker creates a tracker at initial progress. bus may be nil.
func NewProgressTracker(bus *EventBus) *ProgressTracker {
	return &ProgressTracker{
		progress: domain.InitialProgress(),
		bus:      bus,
	}
}

// Snapshot returns the current progress
func (t *ProgressTracker) Snapshot() domain.Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

// Reset returns to {0, 1} and labels subsequent events with file
func (t *ProgressTracker) Reset(file string) {
	t.update(func(p *domain.Progress) {
		*p = domain.InitialProgress()
	}, file)
}

// SetUpload records transferred bytes as a rounded percentage
func (t *ProgressTracker) SetUpload(sent, total int64) {
	t.update(func(p *domain.Progress) {
		p.UploadProgress = domain.UploadPercent(sent, total)
	}, "")
}

// Complete marks server processing finished
func (t *ProgressTracker) Complete(elapsed time.Duration) {
	t.update(func(p *domain.Progress) {
		p.TranscribeProgress = 100
		p.CompletionTime = elapsed
	}, "")
}

// update applies fn and publishes the new snapshot. Byte counts arrive far
// more often than the rounded percentage moves, so unchanged snapshots are
// not published.
func (t *ProgressTracker) update(fn func(*domain.Progress), file string) {
	t.mu.Lock()
	before := t.progress
	fn(&t.progress)
	if file != "" {
		t.file = file
	}
	snapshot, name := t.progress, t.file
	t.mu.Unlock()

	if t.bus != nil && (snapshot != before || file != "") {
		t.bus.Publish(Event{
			Type:     EventTypeProgress,
			File:     name,
			Progress: snapshot,
		})
	}
}
