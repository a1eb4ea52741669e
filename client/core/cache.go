package core

import (
	"sort"
	"sync"
)

type partition struct {
	day   Day
	tasks []Task
	stale bool
}

// Store is the client-side cache of last known server state, partitioned by
// scheduling date. It is the only source of a "current full record" before a
// merge. Mutations never write into cached records: a partition is replaced
// wholesale after a refetch, or marked stale by an invalidation.
type Store struct {
	mu           sync.RWMutex
	parts        map[string]*partition
	onInvalidate []func(Day)
}

func NewStore() *Store {
	return &Store{parts: make(map[string]*partition)}
}

// OnInvalidate registers a listener for partition invalidations. Dependent
// aggregates (points total, dashboard stats) subscribe here so they recompute
// after any write that could have touched their inputs.
func (s *Store) OnInvalidate(fn func(Day)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = append(s.onInvalidate, fn)
}

// ReplacePartition installs fetched server state for a day and clears its
// stale flag.
func (s *Store) ReplacePartition(day Day, tasks []Task) {
	cloned := make([]Task, len(tasks))
	for i, t := range tasks {
		cloned[i] = t.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts[day.String()] = &partition{day: day, tasks: cloned}
}

// Partition returns a copy of a day's cached tasks. ok is false when the day
// was never fetched or has been invalidated since.
func (s *Store) Partition(day Day) ([]Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.parts[day.String()]
	if !exists || p.stale {
		return nil, false
	}
	out := make([]Task, len(p.tasks))
	for i, t := range p.tasks {
		out[i] = t.Clone()
	}
	return out, true
}

func (s *Store) Stale(day Day) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, exists := s.parts[day.String()]
	return exists && p.stale
}

// Days lists every partition currently known to the cache, stale or not.
func (s *Store) Days() []Day {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Day, 0, len(s.parts))
	for _, p := range s.parts {
		out = append(out, p.day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Find locates a task by id, looking in the hinted partition first and then
// scanning every known partition. Updates can move a task to another day, so
// a single-partition lookup is unsafe. The scan is linear in cached tasks,
// which stays small for a personal task list.
func (s *Store) Find(id ID, hint Day) (Task, Day, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !hint.IsZero() {
		if p, exists := s.parts[hint.String()]; exists {
			if t, ok := findIn(p.tasks, id); ok {
				return t.Clone(), p.day, true
			}
		}
	}
	for _, p := range s.parts {
		if t, ok := findIn(p.tasks, id); ok {
			return t.Clone(), p.day, true
		}
	}
	return Task{}, Day{}, false
}

func findIn(tasks []Task, id ID) (Task, bool) {
	for _, t := range tasks {
		if t.ID.Equal(id) {
			return t, true
		}
	}
	return Task{}, false
}

// Invalidate marks a day's partition stale and notifies listeners. Marking
// is coarse: the whole partition is refetched rather than patched in place.
func (s *Store) Invalidate(day Day) {
	s.mu.Lock()
	if p, exists := s.parts[day.String()]; exists {
		p.stale = true
	}
	listeners := make([]func(Day), len(s.onInvalidate))
	copy(listeners, s.onInvalidate)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(day)
	}
}

func (s *Store) InvalidateAll() {
	s.mu.Lock()
	days := make([]Day, 0, len(s.parts))
	for _, p := range s.parts {
		p.stale = true
		days = append(days, p.day)
	}
	listeners := make([]func(Day), len(s.onInvalidate))
	copy(listeners, s.onInvalidate)
	s.mu.Unlock()

	for _, day := range days {
		for _, fn := range listeners {
			fn(day)
		}
	}
}
