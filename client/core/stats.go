package core

import "sync"

// Stats is the dashboard summary for one day.
type Stats struct {
	Pending      int
	Completed    int
	FocusMinutes int
	Score        float64
	Target       float64
}

// StatsView is a dependent aggregate over the cache. It memoizes per-day
// stats and drops them whenever the underlying partition is invalidated, so
// a completion or points change is reflected on the next read.
type StatsView struct {
	store  *Store
	target float64

	mu    sync.Mutex
	cache map[string]Stats
}

func NewStatsView(store *Store, dailyTarget float64) *StatsView {
	v := &StatsView{
		store:  store,
		target: dailyTarget,
		cache:  make(map[string]Stats),
	}
	store.OnInvalidate(func(day Day) {
		v.mu.Lock()
		delete(v.cache, day.String())
		v.mu.Unlock()
	})
	return v
}

// For computes the day's stats from the cached partition. ok is false when
// the partition is absent or stale and the caller should refetch first.
func (v *StatsView) For(day Day) (Stats, bool) {
	v.mu.Lock()
	if s, hit := v.cache[day.String()]; hit {
		v.mu.Unlock()
		return s, true
	}
	v.mu.Unlock()

	tasks, ok := v.store.Partition(day)
	if !ok {
		return Stats{}, false
	}

	s := Stats{Target: v.target}
	for _, t := range tasks {
		if t.Done {
			s.Completed++
			s.FocusMinutes += t.ActualTime
			s.Score += t.Points
		} else {
			s.Pending++
		}
	}

	v.mu.Lock()
	v.cache[day.String()] = s
	v.mu.Unlock()
	return s, true
}
