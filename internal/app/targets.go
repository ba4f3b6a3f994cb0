package app

import (
	"sort"
	"sync"
	"time"

	"radar-panel.klederson.com/internal/config"
)

// Target is a tracked radar contact.
type Target struct {
	ID       int
	Range    float64 // meters
	Bearing  float64 // degrees
	LastSeen time.Time
}

// TargetStore is a thread-safe store for tracked targets.
type TargetStore struct {
	mu      sync.RWMutex
	targets map[int]*Target
}

// NewTargetStore creates a new empty TargetStore.
func NewTargetStore() *TargetStore {
	return &TargetStore{
		targets: make(map[int]*Target),
	}
}

// Upsert adds or updates a target. Range of a known target is smoothed
// using EMA; the bearing is taken as reported.
func (s *TargetStore) Upsert(id int, rng, bearing float64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.targets[id]; ok {
		existing.Range = existing.Range*(1-config.TargetSmoothing) + rng*config.TargetSmoothing
		existing.Bearing = bearing
		existing.LastSeen = now
		return
	}

	s.targets[id] = &Target{
		ID:       id,
		Range:    rng,
		Bearing:  bearing,
		LastSeen: now,
	}
}

// Evict removes targets not seen within the timeout duration.
// Returns the number of evicted targets.
func (s *TargetStore) Evict(timeout time.Duration, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-timeout)
	count := 0
	for id, t := range s.targets {
		if t.LastSeen.Before(cutoff) {
			delete(s.targets, id)
			count++
		}
	}
	return count
}

// Snapshot returns a copy of all targets, closest first.
func (s *TargetStore) Snapshot() []Target {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Target, 0, len(s.targets))
	for _, t := range s.targets {
		result = append(result, *t)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Range == result[j].Range {
			return result[i].ID < result[j].ID
		}
		return result[i].Range < result[j].Range
	})
	return result
}

// Count returns the total number of tracked targets.
func (s *TargetStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.targets)
}
