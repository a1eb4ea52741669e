package tests

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/core"
)

type fakeDB struct {
	mu sync.RWMutex

	nextTaskID int64

	tasks    map[int64]core.Task
	subTasks map[string]core.SubTask
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextTaskID: 1,
		tasks:      make(map[int64]core.Task),
		subTasks:   make(map[string]core.SubTask),
	}
}

func cloneTask(t core.Task) core.Task {
	out := t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	out.SubTasks = nil
	return out
}

func (db *fakeDB) Ping(context.Context) error {
	return nil
}

func (db *fakeDB) insertTask(t core.Task) core.Task {
	id := db.nextTaskID
	db.nextTaskID++

	now := time.Now()
	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now

	db.tasks[id] = cloneTask(t)
	return t
}

func (db *fakeDB) CreateTask(_ context.Context, t core.Task) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.insertTask(t), nil
}

func (db *fakeDB) CreateProject(_ context.Context, t core.Task, subTasks []core.SubTask) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	created := db.insertTask(t)
	created.SubTasks = make([]core.SubTask, 0, len(subTasks))
	for _, st := range subTasks {
		st.ID = uuid.NewString()
		st.TaskID = created.ID
		db.subTasks[st.ID] = st
		created.SubTasks = append(created.SubTasks, st)
	}
	return created, nil
}

func (db *fakeDB) attachSubTasks(t core.Task) core.Task {
	for _, st := range db.subTasks {
		if st.TaskID == t.ID {
			t.SubTasks = append(t.SubTasks, st)
		}
	}
	sort.Slice(t.SubTasks, func(i, j int) bool {
		return t.SubTasks[i].Position < t.SubTasks[j].Position
	})
	return t
}

func (db *fakeDB) GetTask(_ context.Context, id int64) (core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return db.attachSubTasks(cloneTask(t)), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (db *fakeDB) ListTasks(_ context.Context, f core.ListTasksFilter) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0, len(db.tasks))
	for _, t := range db.tasks {
		if !sameDay(t.Day, f.Day) {
			continue
		}
		if f.Done != nil && t.Done != *f.Done {
			continue
		}
		out = append(out, db.attachSubTasks(cloneTask(t)))
	}

	// unscheduled tasks sort last, matching the storage ordering
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].StartTime, out[j].StartTime
		if si == "" {
			si = "99"
		}
		if sj == "" {
			sj = "99"
		}
		if si != sj {
			return si < sj
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (db *fakeDB) UpdateTask(_ context.Context, t core.Task) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	current, ok := db.tasks[t.ID]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}

	// the task kind is fixed at creation
	t.Type = current.Type
	t.CreatedAt = current.CreatedAt
	t.UpdatedAt = time.Now()

	db.tasks[t.ID] = cloneTask(t)
	return db.attachSubTasks(cloneTask(t)), nil
}

func (db *fakeDB) DeleteTask(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tasks[id]; !ok {
		return core.ErrTaskNotFound
	}
	delete(db.tasks, id)

	for stID, st := range db.subTasks {
		if st.TaskID == id {
			delete(db.subTasks, stID)
		}
	}
	return nil
}

func (db *fakeDB) UpdateSubTask(_ context.Context, st core.SubTask) (core.SubTask, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	current, ok := db.subTasks[st.ID]
	if !ok {
		return core.SubTask{}, core.ErrSubTaskNotFound
	}

	st.TaskID = current.TaskID
	st.Position = current.Position
	db.subTasks[st.ID] = st
	return st, nil
}

func (db *fakeDB) DeleteSubTask(_ context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.subTasks[id]; !ok {
		return core.ErrSubTaskNotFound
	}
	delete(db.subTasks, id)
	return nil
}

func (db *fakeDB) PointsTotal(context.Context) (float64, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var total float64
	for _, t := range db.tasks {
		if t.Done {
			total += t.Points
		}
	}
	return total, nil
}
