package session

import (
	"sync"
	"time"

	"github.com/farescout/fare-search-assistant/internal/infrastructure/timeutil"
)

// Store is an explicit session store keyed by session identifier. Dialogs are
// created lazily on first use and deleted on the terminal transition, so no
// ambient global state survives a completed conversation.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*dialogEntry
	clock   timeutil.Clock

	// maxIdle is how long an untouched dialog survives before Sweep removes
	// it. Zero disables sweeping.
	maxIdle time.Duration
}

// NewStore creates a session store. A nil clock defaults to real time;
// maxIdle <= 0 disables idle sweeping.
func NewStore(clock timeutil.Clock, maxIdle time.Duration) *Store {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Store{
		entries: make(map[string]*dialogEntry),
		clock:   clock,
		maxIdle: maxIdle,
	}
}

// Get returns the dialog for the session, creating an empty one on first use.
func (s *Store) Get(sessionID string) *Dialog {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if ok {
		s.touch(entry)
		return entry.dialog
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock.
	if entry, ok = s.entries[sessionID]; ok {
		entry.touchedAt = s.clock.Now()
		return entry.dialog
	}

	entry = &dialogEntry{dialog: &Dialog{}, touchedAt: s.clock.Now()}
	s.entries[sessionID] = entry
	return entry.dialog
}

// Clear deletes the session's dialog. Called on the terminal transition:
// after a search runs (tickets found or not) or on explicit reset.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes dialogs idle longer than maxIdle and reports how many were
// removed. A no-op when sweeping is disabled.
func (s *Store) Sweep() int {
	if s.maxIdle <= 0 {
		return 0
	}

	cutoff := s.clock.Now().Add(-s.maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.entries {
		if entry.touchedAt.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *Store) touch(entry *dialogEntry) {
	s.mu.Lock()
	entry.touchedAt = s.clock.Now()
	s.mu.Unlock()
}
