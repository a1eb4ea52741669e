package core_test

import (
	"encoding/json"
	"testing"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/client/core"
)

func day(t *testing.T, s string) core.Day {
	t.Helper()
	d, err := core.ParseDay(s)
	if err != nil {
		t.Fatalf("parse day %q: %v", s, err)
	}
	return d
}

func TestStoreFind_HintedPartitionFirst(t *testing.T) {
	t.Parallel()

	store := core.NewStore()
	d1 := day(t, "2025-01-01")
	store.ReplacePartition(d1, []core.Task{{ID: "1", Name: "write report", Day: d1}})

	got, at, ok := store.Find("1", d1)
	if !ok {
		t.Fatal("expected task to be found")
	}
	if got.Name != "write report" || !at.Equal(d1) {
		t.Fatalf("unexpected result: %+v at %s", got, at)
	}
}

func TestStoreFind_FallsBackToFullScan(t *testing.T) {
	t.Parallel()

	store := core.NewStore()
	d1 := day(t, "2025-01-01")
	d2 := day(t, "2025-01-02")
	store.ReplacePartition(d1, []core.Task{{ID: "1", Name: "write report", Day: d1}})
	store.ReplacePartition(d2, []core.Task{{ID: "2", Name: "review notes", Day: d2}})

	// wrong hint: the task lives on another day
	got, at, ok := store.Find("1", d2)
	if !ok {
		t.Fatal("expected full scan to find the task")
	}
	if got.ID != "1" || !at.Equal(d1) {
		t.Fatalf("unexpected result: %+v at %s", got, at)
	}
}

func TestStoreFind_LooseIDEquality(t *testing.T) {
	t.Parallel()

	// ids arrive as numbers from some paths and strings from others
	var numeric core.ID
	if err := json.Unmarshal([]byte(`7`), &numeric); err != nil {
		t.Fatalf("unmarshal numeric id: %v", err)
	}
	var quoted core.ID
	if err := json.Unmarshal([]byte(`"7"`), &quoted); err != nil {
		t.Fatalf("unmarshal quoted id: %v", err)
	}

	store := core.NewStore()
	d := day(t, "2025-03-03")
	store.ReplacePartition(d, []core.Task{{ID: numeric, Name: "call dentist", Day: d}})

	if _, _, ok := store.Find(quoted, core.Day{}); !ok {
		t.Fatal("expected string form of a numeric id to match")
	}
	if _, _, ok := store.Find(core.NormalizeID("07"), core.Day{}); !ok {
		t.Fatal("expected zero-padded numeric id to match after normalization")
	}
}

func TestStorePartition_HandsOutCopies(t *testing.T) {
	t.Parallel()

	store := core.NewStore()
	d := day(t, "2025-01-01")
	store.ReplacePartition(d, []core.Task{{
		ID:       "1",
		Name:     "plan sprint",
		Day:      d,
		Type:     core.TypeProject,
		SubTasks: []core.SubTask{{ID: "a", Name: "collect topics"}},
	}})

	tasks, ok := store.Partition(d)
	if !ok {
		t.Fatal("expected partition")
	}
	tasks[0].Name = "mutated"
	tasks[0].SubTasks[0].IsCompleted = true

	again, _ := store.Partition(d)
	if again[0].Name != "plan sprint" {
		t.Fatalf("cached record mutated through read copy: %q", again[0].Name)
	}
	if again[0].SubTasks[0].IsCompleted {
		t.Fatal("cached subtask mutated through read copy")
	}
}

func TestStoreInvalidate_MarksStaleAndNotifies(t *testing.T) {
	t.Parallel()

	store := core.NewStore()
	d := day(t, "2025-01-01")
	store.ReplacePartition(d, []core.Task{{ID: "1", Day: d}})

	var notified []core.Day
	store.OnInvalidate(func(day core.Day) { notified = append(notified, day) })

	store.Invalidate(d)

	if !store.Stale(d) {
		t.Fatal("expected partition to be stale")
	}
	if _, ok := store.Partition(d); ok {
		t.Fatal("stale partition must not be readable")
	}
	if len(notified) != 1 || !notified[0].Equal(d) {
		t.Fatalf("expected one notification for %s, got %v", d, notified)
	}

	// a refetch clears the stale flag
	store.ReplacePartition(d, []core.Task{{ID: "1", Day: d}})
	if store.Stale(d) {
		t.Fatal("expected replace to clear stale flag")
	}
}

func TestStoreInvalidateAll(t *testing.T) {
	t.Parallel()

	store := core.NewStore()
	d1 := day(t, "2025-01-01")
	d2 := day(t, "2025-01-02")
	store.ReplacePartition(d1, []core.Task{{ID: "1", Day: d1}})
	store.ReplacePartition(d2, []core.Task{{ID: "2", Day: d2}})

	var notified int
	store.OnInvalidate(func(core.Day) { notified++ })

	store.InvalidateAll()

	if !store.Stale(d1) || !store.Stale(d2) {
		t.Fatal("expected every partition to be stale")
	}
	if notified != 2 {
		t.Fatalf("expected 2 notifications, got %d", notified)
	}
}
