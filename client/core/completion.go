package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type FlowState int

const (
	StatePending FlowState = iota
	StateAwaitingConfirmation
	StateDone
)

func (s FlowState) String() string {
	switch s {
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateDone:
		return "done"
	default:
		return "pending"
	}
}

// Flow is the completion state machine. A task sits in Pending until the
// user marks it complete (or, for a project, until the last subtask is
// checked off), moves to AwaitingConfirmation while the actual time window
// is collected, and reaches Done only after the backend acknowledges the
// write. Nothing local is marked done before that acknowledgement.
type Flow struct {
	log *slog.Logger
	rec *Reconciler
	now func() time.Time

	awaiting map[ID]Day
}

func NewFlow(log *slog.Logger, rec *Reconciler) *Flow {
	return &Flow{
		log:      log,
		rec:      rec,
		now:      time.Now,
		awaiting: make(map[ID]Day),
	}
}

func (f *Flow) State(t Task) FlowState {
	if t.Done {
		return StateDone
	}
	if _, open := f.awaiting[NormalizeID(string(t.ID))]; open {
		return StateAwaitingConfirmation
	}
	return StatePending
}

// RequestCompletion opens a confirmation for a completion toggle. Requesting
// while already done is rejected; requesting twice is a no-op. A project can
// only reach its confirmation through finished steps: with any step still
// open the request is refused, so the guided flow cannot complete a
// half-finished project.
func (f *Flow) RequestCompletion(t Task, hint Day) error {
	if t.Done {
		return fmt.Errorf("task %s already done: %w", t.ID, ErrBadArguments)
	}
	if t.Type == TypeProject && !t.AllSubTasksDone() {
		return fmt.Errorf("project %s has open steps: %w", t.ID, ErrBadArguments)
	}
	f.awaiting[NormalizeID(string(t.ID))] = hint
	return nil
}

// SubTaskToggled persists a subtask edit and re-evaluates the project's
// auto-completion condition. It returns the merged parent record and whether
// this edit opened a confirmation. The trigger fires once per satisfying
// edit: it does not re-fire while a confirmation is already open. Done
// projects are rejected by the reconciler before any write.
func (f *Flow) SubTaskToggled(ctx context.Context, taskID ID, hint Day, st SubTask) (Task, bool, error) {
	merged, err := f.rec.ReconcileSubTask(ctx, taskID, hint, st)
	if err != nil {
		return Task{}, false, err
	}

	key := NormalizeID(string(merged.ID))
	if _, open := f.awaiting[key]; open {
		if !merged.AllSubTasksDone() {
			// A step was unchecked before confirmation: the project must
			// not complete from the stale trigger.
			delete(f.awaiting, key)
		}
		return merged, false, nil
	}

	if !merged.AllSubTasksDone() {
		return merged, false, nil
	}

	f.awaiting[key] = hint
	f.log.Info("project ready to complete", "id", merged.ID)
	return merged, true, nil
}

// Confirm finalizes a completion. Unedited ends of the actual window default
// to now-expectedTime and now; the realized duration wraps forward across
// midnight; the score is computed before the write is submitted, and the
// resulting patch is handed to the reconciler. On failure the confirmation
// stays open and nothing is marked done.
func (f *Flow) Confirm(ctx context.Context, id ID, actualStart, actualEnd Clock) (Task, error) {
	key := NormalizeID(string(id))
	hint, open := f.awaiting[key]
	if !open {
		return Task{}, fmt.Errorf("no completion pending for task %s: %w", id, ErrBadArguments)
	}

	task, _, ok := f.rec.Store().Find(id, hint)
	if !ok {
		return Task{}, fmt.Errorf("task %s not in cache: %w", id, ErrNotFound)
	}

	now := f.now()
	if actualEnd.IsZero() {
		actualEnd = ClockOf(now)
	}
	if actualStart.IsZero() {
		actualStart = ClockOf(now.Add(-time.Duration(task.ExpectedTime) * time.Minute))
	}

	duration := ActualMinutes(task, actualStart, actualEnd)
	score := ComputeScore(task, duration)

	done := true
	completedAt := now
	patch := TaskPatch{
		Done:            &done,
		ActualTime:      &duration,
		ActualStartTime: &actualStart,
		ActualEndTime:   &actualEnd,
		Points:          &score.Total,
		CompletedAt:     &completedAt,
	}

	updated, err := f.rec.ReconcileUpdate(ctx, id, hint, patch)
	if err != nil {
		return Task{}, err
	}

	delete(f.awaiting, key)
	f.log.Info("task completed",
		"id", updated.ID,
		"actual_minutes", duration,
		"points", score.Total,
		"bonus", score.Bonus,
	)
	return updated, nil
}

// Cancel closes an open confirmation without committing anything.
func (f *Flow) Cancel(id ID) {
	delete(f.awaiting, NormalizeID(string(id)))
}

// Uncomplete flips a done atomic task back to pending from a plain checkbox
// toggle. Completing requires the confirmation dialog to capture the actual
// window; un-completing intentionally does not.
func (f *Flow) Uncomplete(ctx context.Context, id ID, hint Day) (Task, error) {
	task, _, ok := f.rec.Store().Find(id, hint)
	if !ok {
		return Task{}, fmt.Errorf("task %s not in cache: %w", id, ErrNotFound)
	}
	if task.Type == TypeProject {
		return Task{}, fmt.Errorf("project %s must be reopened explicitly: %w", id, ErrBadArguments)
	}
	return f.reset(ctx, id, hint)
}

// Reopen is the explicit escape hatch out of Done for any task type. It is
// not part of the guided flow and callers are expected to gate it behind a
// deliberate user action.
func (f *Flow) Reopen(ctx context.Context, id ID, hint Day) (Task, error) {
	return f.reset(ctx, id, hint)
}

func (f *Flow) reset(ctx context.Context, id ID, hint Day) (Task, error) {
	done := false
	points := 0.0
	actual := 0
	cleared := Clock{}
	var clearedAt time.Time
	patch := TaskPatch{
		Done:            &done,
		Points:          &points,
		ActualTime:      &actual,
		ActualStartTime: &cleared,
		ActualEndTime:   &cleared,
		CompletedAt:     &clearedAt,
	}
	return f.rec.ReconcileUpdate(ctx, id, hint, patch)
}
