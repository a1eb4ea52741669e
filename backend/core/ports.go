package core

import "context"

// DB is the storage port the service delegates to.
type DB interface {
	Ping(ctx context.Context) error

	CreateTask(ctx context.Context, t Task) (Task, error)
	CreateProject(ctx context.Context, t Task, subTasks []SubTask) (Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	ListTasks(ctx context.Context, f ListTasksFilter) ([]Task, error)
	UpdateTask(ctx context.Context, t Task) (Task, error)
	DeleteTask(ctx context.Context, id int64) error

	UpdateSubTask(ctx context.Context, st SubTask) (SubTask, error)
	DeleteSubTask(ctx context.Context, id string) error

	PointsTotal(ctx context.Context) (float64, error)
}
