package core

import "context"

type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend is the persistence collaborator. The client never writes into its
// own cache directly: every mutation goes to the backend and the affected
// cache partitions are refetched through FetchTasks.
type Backend interface {
	Pinger

	FetchTasks(ctx context.Context, day Day) ([]Task, error)
	CreateTask(ctx context.Context, t Task) (Task, error)
	CreateProject(ctx context.Context, t Task, subTasks []SubTask) (Task, error)
	UpdateTask(ctx context.Context, t Task) (Task, error)
	DeleteTask(ctx context.Context, id ID) error
	UpdateSubTask(ctx context.Context, st SubTask) (SubTask, error)
	DeleteSubTask(ctx context.Context, id ID) error
	FetchPoints(ctx context.Context) (float64, error)
}
