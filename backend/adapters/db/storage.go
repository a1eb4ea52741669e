package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/core"
)

type DB struct {
	log  *slog.Logger
	conn *sqlx.DB
}

func New(log *slog.Logger, address string) (*DB, error) {
	conn, err := sqlx.Connect("pgx", address)
	if err != nil {
		log.Error("connection problem", "address", address, "error", err)
		return nil, err
	}
	return &DB{log: log, conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

const taskColumns = `id, name, COALESCE(description, '') AS description, day,
	COALESCE(start_time, '') AS start_time, COALESCE(end_time, '') AS end_time,
	COALESCE(actual_start_time, '') AS actual_start_time, COALESCE(actual_end_time, '') AS actual_end_time,
	expected_time, actual_time, priority, type, done, points, completed_at, created_at, updated_at`

func (db *DB) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	const q = `
		INSERT INTO tasks(name, description, day, start_time, end_time, expected_time, priority, type)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)
		RETURNING ` + taskColumns + `;`

	var out core.Task
	err := db.conn.GetContext(ctx, &out, q,
		t.Name, strings.TrimSpace(t.Description), t.Day, t.StartTime, t.EndTime,
		t.ExpectedTime, t.Priority, t.Type)
	if err != nil {
		if isCheckViolation(err) {
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		return core.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return out, nil
}

func (db *DB) CreateProject(ctx context.Context, t core.Task, subTasks []core.SubTask) (core.Task, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return core.Task{}, fmt.Errorf("begin project tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT INTO tasks(name, description, day, start_time, end_time, expected_time, priority, type)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)
		RETURNING ` + taskColumns + `;`

	var out core.Task
	err = tx.GetContext(ctx, &out, q,
		t.Name, strings.TrimSpace(t.Description), t.Day, t.StartTime, t.EndTime,
		t.ExpectedTime, t.Priority, t.Type)
	if err != nil {
		if isCheckViolation(err) {
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		return core.Task{}, fmt.Errorf("insert project: %w", err)
	}

	const sq = `
		INSERT INTO subtasks(id, task_id, name, is_completed, time_estimate, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, task_id, name, is_completed, time_estimate, position;`

	out.SubTasks = make([]core.SubTask, 0, len(subTasks))
	for _, st := range subTasks {
		var saved core.SubTask
		err := tx.GetContext(ctx, &saved, sq,
			uuid.NewString(), out.ID, st.Name, st.IsCompleted, st.TimeEstimate, st.Position)
		if err != nil {
			return core.Task{}, fmt.Errorf("insert subtask: %w", err)
		}
		out.SubTasks = append(out.SubTasks, saved)
	}

	if err := tx.Commit(); err != nil {
		return core.Task{}, fmt.Errorf("commit project: %w", err)
	}
	return out, nil
}

func (db *DB) GetTask(ctx context.Context, id int64) (core.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1;`

	var t core.Task
	if err := db.conn.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}
	if err := db.attachSubTasks(ctx, []*core.Task{&t}); err != nil {
		return core.Task{}, err
	}
	return t, nil
}

func (db *DB) ListTasks(ctx context.Context, f core.ListTasksFilter) ([]core.Task, error) {
	var (
		sb   strings.Builder
		args []any
		n    = 1
	)

	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE day = $1`)
	args = append(args, f.Day)
	n++

	if f.Done != nil {
		sb.WriteString(fmt.Sprintf(" AND done = $%d", n))
		args = append(args, *f.Done)
		n++
	}

	sb.WriteString(" ORDER BY COALESCE(start_time, '99') ASC, id ASC")

	var out []core.Task
	if err := db.conn.SelectContext(ctx, &out, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	refs := make([]*core.Task, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	if err := db.attachSubTasks(ctx, refs); err != nil {
		return nil, err
	}
	return out, nil
}

func (db *DB) attachSubTasks(ctx context.Context, tasks []*core.Task) error {
	ids := make([]int64, 0, len(tasks))
	byID := make(map[int64]*core.Task, len(tasks))
	for _, t := range tasks {
		if t.Type != core.TypeProject {
			continue
		}
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}
	if len(ids) == 0 {
		return nil
	}

	q, args, err := sqlx.In(`
		SELECT id, task_id, name, is_completed, time_estimate, position
		FROM subtasks WHERE task_id IN (?) ORDER BY task_id, position;`, ids)
	if err != nil {
		return fmt.Errorf("build subtasks query: %w", err)
	}
	q = db.conn.Rebind(q)

	var subs []core.SubTask
	if err := db.conn.SelectContext(ctx, &subs, q, args...); err != nil {
		return fmt.Errorf("list subtasks: %w", err)
	}
	for _, st := range subs {
		parent := byID[st.TaskID]
		parent.SubTasks = append(parent.SubTasks, st)
	}
	return nil
}

func (db *DB) UpdateTask(ctx context.Context, t core.Task) (core.Task, error) {
	const q = `
		UPDATE tasks
		SET name = $2,
		    description = NULLIF($3, ''),
		    day = $4,
		    start_time = NULLIF($5, ''),
		    end_time = NULLIF($6, ''),
		    actual_start_time = NULLIF($7, ''),
		    actual_end_time = NULLIF($8, ''),
		    expected_time = $9,
		    actual_time = $10,
		    priority = $11,
		    done = $12,
		    points = $13,
		    completed_at = $14,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + taskColumns + `;`

	var out core.Task
	err := db.conn.GetContext(ctx, &out, q,
		t.ID, t.Name, strings.TrimSpace(t.Description), t.Day,
		t.StartTime, t.EndTime, t.ActualStartTime, t.ActualEndTime,
		t.ExpectedTime, t.ActualTime, t.Priority, t.Done, t.Points, t.CompletedAt)
	if err != nil {
		if isCheckViolation(err) {
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("update task: %w", err)
	}
	if err := db.attachSubTasks(ctx, []*core.Task{&out}); err != nil {
		return core.Task{}, err
	}
	return out, nil
}

func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	const q = `DELETE FROM tasks WHERE id = $1`

	res, err := db.conn.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

func (db *DB) UpdateSubTask(ctx context.Context, st core.SubTask) (core.SubTask, error) {
	const q = `
		UPDATE subtasks
		SET name = $2,
		    is_completed = $3,
		    time_estimate = $4
		WHERE id = $1
		RETURNING id, task_id, name, is_completed, time_estimate, position;`

	var out core.SubTask
	if err := db.conn.GetContext(ctx, &out, q, st.ID, st.Name, st.IsCompleted, st.TimeEstimate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.SubTask{}, core.ErrSubTaskNotFound
		}
		return core.SubTask{}, fmt.Errorf("update subtask: %w", err)
	}
	return out, nil
}

func (db *DB) DeleteSubTask(ctx context.Context, id string) error {
	const q = `DELETE FROM subtasks WHERE id = $1`

	res, err := db.conn.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete subtask: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrSubTaskNotFound
	}
	return nil
}

func (db *DB) PointsTotal(ctx context.Context) (float64, error) {
	const q = `SELECT COALESCE(SUM(points), 0) FROM tasks WHERE done;`

	var total float64
	if err := db.conn.GetContext(ctx, &total, q); err != nil {
		return 0, fmt.Errorf("points total: %w", err)
	}
	return total, nil
}

// pg helpers

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
