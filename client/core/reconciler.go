package core

import (
	"context"
	"fmt"
	"log/slog"
)

// Reconciler merges partial updates into cached full records and persists
// them. It is the single place that raises ErrNotFound/ErrUnavailable; on
// any failure the cache is left exactly as it was.
type Reconciler struct {
	log   *slog.Logger
	store *Store
	api   Backend
}

func NewReconciler(log *slog.Logger, store *Store, api Backend) *Reconciler {
	return &Reconciler{log: log, store: store, api: api}
}

func (r *Reconciler) Store() *Store { return r.store }

// ReconcileUpdate locates the authoritative full record for id, merges the
// patch into it, and submits the result to the backend. hint names the
// partition the update was issued from; a zero hint forces the full scan.
// The record is never synthesized from the patch alone: without a cached
// full record required fields would be missing from the write.
func (r *Reconciler) ReconcileUpdate(ctx context.Context, id ID, hint Day, patch TaskPatch) (Task, error) {
	if patch.IsEmpty() {
		return Task{}, fmt.Errorf("no fields to update: %w", ErrBadArguments)
	}

	cached, day, ok := r.store.Find(id, hint)
	if !ok {
		return Task{}, fmt.Errorf("task %s not in cache: %w", id, ErrNotFound)
	}

	full := patch.Apply(cached)

	updated, err := r.api.UpdateTask(ctx, full)
	if err != nil {
		r.log.Error("update rejected", "id", id, "error", err)
		return Task{}, fmt.Errorf("update task %s: %w", id, err)
	}

	r.invalidateAfterWrite(day, updated.Day)
	return updated, nil
}

// ReconcileDelete removes a task after locating it in the cache, then
// invalidates its partition.
func (r *Reconciler) ReconcileDelete(ctx context.Context, id ID, hint Day) error {
	cached, day, ok := r.store.Find(id, hint)
	if !ok {
		return fmt.Errorf("task %s not in cache: %w", id, ErrNotFound)
	}

	if err := r.api.DeleteTask(ctx, cached.ID); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	r.invalidateAfterWrite(day, day)
	return nil
}

// ReconcileSubTask persists a single subtask edit and returns the parent
// project as it will look after the write. The returned record is what the
// completion flow evaluates its auto-trigger against.
func (r *Reconciler) ReconcileSubTask(ctx context.Context, taskID ID, hint Day, st SubTask) (Task, error) {
	cached, day, ok := r.store.Find(taskID, hint)
	if !ok {
		return Task{}, fmt.Errorf("task %s not in cache: %w", taskID, ErrNotFound)
	}
	if cached.Type != TypeProject {
		return Task{}, fmt.Errorf("task %s has no subtasks: %w", taskID, ErrBadArguments)
	}
	if cached.Done {
		return Task{}, fmt.Errorf("project %s is done, reopen it first: %w", taskID, ErrBadArguments)
	}

	idx := -1
	for i, existing := range cached.SubTasks {
		if existing.ID.Equal(st.ID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Task{}, fmt.Errorf("subtask %s not in cache: %w", st.ID, ErrNotFound)
	}

	st.TaskID = cached.ID
	saved, err := r.api.UpdateSubTask(ctx, st)
	if err != nil {
		return Task{}, fmt.Errorf("update subtask %s: %w", st.ID, err)
	}

	merged := cached.Clone()
	merged.SubTasks[idx] = saved

	r.invalidateAfterWrite(day, day)
	return merged, nil
}

func (r *Reconciler) invalidateAfterWrite(oldDay, newDay Day) {
	r.store.Invalidate(oldDay)
	if !newDay.IsZero() && !newDay.Equal(oldDay) {
		r.store.Invalidate(newDay)
	}
}
