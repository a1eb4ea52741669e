package core_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/client/core"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBackend records writes and echoes them back, standing in for the
// network layer.
type fakeBackend struct {
	mu sync.Mutex

	updateErr    error
	subUpdateErr error

	updatedTasks    []core.Task
	updatedSubTasks []core.SubTask
	deletedTasks    []core.ID
	points          float64
}

func (f *fakeBackend) Ping(context.Context) error { return nil }

func (f *fakeBackend) FetchTasks(context.Context, core.Day) ([]core.Task, error) {
	return nil, nil
}

func (f *fakeBackend) CreateTask(_ context.Context, t core.Task) (core.Task, error) {
	return t, nil
}

func (f *fakeBackend) CreateProject(_ context.Context, t core.Task, subTasks []core.SubTask) (core.Task, error) {
	t.SubTasks = subTasks
	return t, nil
}

func (f *fakeBackend) UpdateTask(_ context.Context, t core.Task) (core.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return core.Task{}, f.updateErr
	}
	f.updatedTasks = append(f.updatedTasks, t.Clone())
	return t, nil
}

func (f *fakeBackend) DeleteTask(_ context.Context, id core.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedTasks = append(f.deletedTasks, id)
	return nil
}

func (f *fakeBackend) UpdateSubTask(_ context.Context, st core.SubTask) (core.SubTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subUpdateErr != nil {
		return core.SubTask{}, f.subUpdateErr
	}
	f.updatedSubTasks = append(f.updatedSubTasks, st)
	return st, nil
}

func (f *fakeBackend) DeleteSubTask(context.Context, core.ID) error { return nil }

func (f *fakeBackend) FetchPoints(context.Context) (float64, error) {
	return f.points, nil
}

func (f *fakeBackend) lastUpdate() (core.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.updatedTasks) == 0 {
		return core.Task{}, false
	}
	return f.updatedTasks[len(f.updatedTasks)-1], true
}
