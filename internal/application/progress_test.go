package application

import (
	"testing"
	"time"

	"github.com/devbush/swiftconvert/internal/domain"
)

func TestProgressTracker_Phases(t *testing.T) {
	tracker := NewProgressTracker(nil)

	tracker.Reset("a.jpg")
	if got := tracker.Snapshot(); got != domain.InitialProgress() {
		t.Fatalf("after Reset = %+v, want initial", got)
	}

	tracker.SetUpload(50, 100)
	if got := tracker.Snapshot().Combined(); got != 26 {
		t.Errorf("Combined() at half upload = %d, want 26", got)
	}

	tracker.SetUpload(100, 100)
	if got := tracker.Snapshot().Combined(); got != 50 {
		t.Errorf("Combined() after upload = %d, want 50", got)
	}

	tracker.Complete(1500 * time.Millisecond)
	got := tracker.Snapshot()
	if got.Combined() != 100 || got.CompletionTime != 1500*time.Millisecond {
		t.Errorf("after Complete = %+v", got)
	}
}

func TestProgressTracker_PublishesOnlyChanges(t *testing.T) {
	bus := NewEventBus(0)
	tracker := NewProgressTracker(bus)

	tracker.Reset("a.jpg")
	for sent := int64(0); sent <= 1000; sent += 1 {
		tracker.SetUpload(sent, 1000)
	}

	// one reset plus one event per percentage point from 1 to 100
	if got := len(bus.Since(0)); got != 101 {
		t.Errorf("published %d events, want 101", got)
	}
	for _, e := range bus.Since(0) {
		if e.File != "a.jpg" {
			t.Errorf("event file = %q, want a.jpg", e.File)
		}
	}
}
