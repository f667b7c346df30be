package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/stormwind/internal/weather"
)

// ErrNotFound is returned when no output has been rendered for a location.
var ErrNotFound = errors.New("no weather output for location")

// MemoryStore keeps the rendered outputs of the daemon, oldest first, per
// location. It implements weather.Store.
type MemoryStore struct {
	mu      sync.RWMutex
	outputs map[weather.Location][]weather.Snapshot

	maxHistory int           // <= 0 means unlimited
	maxAge     time.Duration // <= 0 means unlimited

	now func() time.Time
}

// NewMemoryStore creates a store that keeps at most maxHistory snapshots no
// older than maxAge per location.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		outputs:    make(map[weather.Location][]weather.Snapshot),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveSnapshot records a rendered output. Snapshots older than the newest one
// already kept for the location are dropped so history stays ordered.
func (s *MemoryStore) SaveSnapshot(snapshot weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc := snapshot.Location
	history := s.outputs[loc]
	if n := len(history); n > 0 && snapshot.Timestamp.Before(history[n-1].Timestamp) {
		return
	}
	s.outputs[loc] = s.prune(append(history, snapshot))
}

// prune applies retention. The newest snapshot always survives, so the
// daemon keeps serving the last good output while refreshes fail.
func (s *MemoryStore) prune(history []weather.Snapshot) []weather.Snapshot {
	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		keep := sort.Search(len(history)-1, func(i int) bool {
			return !history[i].Timestamp.Before(cutoff)
		})
		history = history[keep:]
	}
	return history
}

// GetLatest returns the most recent output for loc.
func (s *MemoryStore) GetLatest(loc weather.Location) (weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.outputs[loc]
	if len(history) == 0 {
		return weather.Snapshot{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// GetRange returns the outputs for loc rendered between from and to, inclusive.
func (s *MemoryStore) GetRange(loc weather.Location, from, to time.Time) ([]weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.outputs[loc]
	lo := sort.Search(len(history), func(i int) bool { return !history[i].Timestamp.Before(from) })
	hi := sort.Search(len(history), func(i int) bool { return history[i].Timestamp.After(to) })
	if lo >= hi {
		return nil, ErrNotFound
	}
	return append([]weather.Snapshot(nil), history[lo:hi]...), nil
}
