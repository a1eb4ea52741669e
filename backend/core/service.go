package core

import (
	"context"
	"strings"
)

type Service struct {
	db DB
}

func NewService(db DB) *Service {
	return &Service{db: db}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func validateTask(t Task) error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTaskInvalidArgs
	}
	if t.Day.IsZero() {
		return ErrTaskInvalidArgs
	}
	if t.ExpectedTime < 0 || t.ActualTime < 0 {
		return ErrTaskInvalidArgs
	}
	if !t.Priority.Valid() {
		return ErrTaskInvalidArgs
	}
	if !t.Type.Valid() {
		return ErrTaskInvalidArgs
	}
	return nil
}

func (s *Service) CreateTask(ctx context.Context, t Task) (Task, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Type = TypeRegular
	if err := validateTask(t); err != nil {
		return Task{}, err
	}
	return s.db.CreateTask(ctx, t)
}

func (s *Service) CreateProject(ctx context.Context, t Task, subTasks []SubTask) (Task, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Type = TypeProject
	if err := validateTask(t); err != nil {
		return Task{}, err
	}
	if len(subTasks) == 0 {
		return Task{}, ErrTaskInvalidArgs
	}
	for i := range subTasks {
		subTasks[i].Name = strings.TrimSpace(subTasks[i].Name)
		if subTasks[i].Name == "" {
			return Task{}, ErrTaskInvalidArgs
		}
		subTasks[i].Position = i
	}
	return s.db.CreateProject(ctx, t, subTasks)
}

func (s *Service) GetTask(ctx context.Context, id int64) (Task, error) {
	if id <= 0 {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.GetTask(ctx, id)
}

func (s *Service) ListTasks(ctx context.Context, f ListTasksFilter) ([]Task, error) {
	if f.Day.IsZero() {
		return nil, ErrTaskInvalidArgs
	}
	return s.db.ListTasks(ctx, f)
}

// UpdateTask replaces the full record. The client reconciles partial updates
// into a full record before calling, so no merge happens server-side.
func (s *Service) UpdateTask(ctx context.Context, t Task) (Task, error) {
	if t.ID <= 0 {
		return Task{}, ErrTaskInvalidArgs
	}
	t.Name = strings.TrimSpace(t.Name)
	if err := validateTask(t); err != nil {
		return Task{}, err
	}
	return s.db.UpdateTask(ctx, t)
}

func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrTaskInvalidArgs
	}
	return s.db.DeleteTask(ctx, id)
}

func (s *Service) UpdateSubTask(ctx context.Context, st SubTask) (SubTask, error) {
	if strings.TrimSpace(st.ID) == "" {
		return SubTask{}, ErrTaskInvalidArgs
	}
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return SubTask{}, ErrTaskInvalidArgs
	}
	if st.TimeEstimate < 0 {
		return SubTask{}, ErrTaskInvalidArgs
	}
	return s.db.UpdateSubTask(ctx, st)
}

func (s *Service) DeleteSubTask(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrTaskInvalidArgs
	}
	return s.db.DeleteSubTask(ctx, id)
}

// PointsTotal sums the points of every completed task.
func (s *Service) PointsTotal(ctx context.Context) (float64, error) {
	return s.db.PointsTotal(ctx)
}
