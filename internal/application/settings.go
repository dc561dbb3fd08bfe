package application

import (
	"sync"

	"github.com/devbush/swiftconvert/internal/domain"
)

// SettingsStore is the shared application state for conversion settings.
// Updates replace the whole value and are pushed to every subscriber.
type SettingsStore struct {
	mu          sync.Mutex
	settings    domain.Settings
	nextID      int
	subscribers []subscriber
}

type subscriber struct {
	id int
	fn func(domain.Settings)
}

// NewSettingsStore creates a store holding initial
func NewSettingsStore(initial domain.Settings) *SettingsStore {
	if initial.KnownUploadedFileTypes == nil {
		initial.KnownUploadedFileTypes = map[domain.FileTypeID]bool{}
	}
	return &SettingsStore{settings: initial.Clone()}
}

// Read returns a copy of the current settings
func (s *SettingsStore) Read() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// Update replaces the settings wholesale. Callers merge partial changes
// into a value obtained from Read first; nothing is validated here.
func (s *SettingsStore) Update(next domain.Settings) {
	if next.KnownUploadedFileTypes == nil {
		next.KnownUploadedFileTypes = map[domain.FileTypeID]bool{}
	}

	s.mu.Lock()
	s.settings = next.Clone()
	snapshot, subs := s.settings.Clone(), s.snapshotSubscribers()
	s.mu.Unlock()

	notify(subs, snapshot)
}

// RecordUploadedFileType marks id as seen in an upload this session
func (s *SettingsStore) RecordUploadedFileType(id domain.FileTypeID) {
	s.mu.Lock()
	if s.settings.KnownUploadedFileTypes[id] {
		s.mu.Unlock()
		return
	}
	s.settings.KnownUploadedFileTypes[id] = true
	snapshot, subs := s.settings.Clone(), s.snapshotSubscribers()
	s.mu.Unlock()

	notify(subs, snapshot)
}

// Subscribe registers fn to be called after every change.
// The returned function removes the subscription.
func (s *SettingsStore) Subscribe(fn func(domain.Settings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *SettingsStore) snapshotSubscribers() []subscriber {
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	return subs
}

// notify runs outside the lock so subscribers may call back into the store
func notify(subs []subscriber, settings domain.Settings) {
	for _, sub := range subs {
		sub.fn(settings.Clone())
	}
}
