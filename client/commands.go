package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/client/core"
)

func parseDayFlag(s string) (core.Day, error) {
	if s == "" {
		return core.NewDay(time.Now()), nil
	}
	return core.ParseDay(s)
}

func parseClockFlag(s string) (core.Clock, error) {
	return core.ParseClock(s)
}

// loadDay populates the cache partition for a day from the backend.
func (a *app) loadDay(ctx context.Context, day core.Day) ([]core.Task, error) {
	tasks, err := a.api.FetchTasks(ctx, day)
	if err != nil {
		return nil, err
	}
	a.store.ReplacePartition(day, tasks)
	return tasks, nil
}

// refreshStale refetches every partition invalidated by the last write so
// subsequent reads see acknowledged server state.
func (a *app) refreshStale(ctx context.Context) error {
	for _, day := range a.store.Days() {
		if !a.store.Stale(day) {
			continue
		}
		if _, err := a.loadDay(ctx, day); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) printTask(t core.Task) {
	mark := " "
	if t.Done {
		mark = "x"
	}
	fmt.Printf("[%s] %-6s %-24s %s %3dm %s", mark, t.ID, t.Name, t.Priority, t.ExpectedTime, t.Day)
	if t.Done {
		fmt.Printf("  +%.1f pts", t.Points)
	}
	fmt.Println()
	for _, st := range t.SubTasks {
		sm := " "
		if st.IsCompleted {
			sm = "x"
		}
		fmt.Printf("    [%s] %-36s %s\n", sm, st.ID, st.Name)
	}
}

func listCmd(configPath *string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks scheduled for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*configPath)
			day, err := parseDayFlag(date)
			if err != nil {
				return err
			}
			tasks, err := a.loadDay(cmd.Context(), day)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				a.printTask(t)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to list (YYYY-MM-DD, default today)")
	return cmd
}

func addCmd(configPath *string) *cobra.Command {
	var (
		date, start, end, desc, priority string
		expected                         int
	)
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Schedule a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*configPath)
			t, err := buildTask(args[0], date, start, end, desc, priority, expected)
			if err != nil {
				return err
			}
			created, err := a.api.CreateTask(cmd.Context(), t)
			if err != nil {
				return err
			}
			a.printTask(created)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "scheduled day (default today)")
	cmd.Flags().StringVar(&start, "start", "", "planned start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "planned end time (HH:MM)")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&priority, "priority", "medium", "low|medium|high|urgent")
	cmd.Flags().IntVar(&expected, "expected", 30, "planned duration in minutes")
	return cmd
}

func addProjectCmd(configPath *string) *cobra.Command {
	var (
		date, start, end, desc, priority string
		expected                         int
		steps                            []string
	)
	cmd := &cobra.Command{
		Use:   "add-project NAME",
		Short: "Schedule a project with ordered steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(steps) == 0 {
				return fmt.Errorf("a project needs at least one --step: %w", core.ErrBadArguments)
			}
			a := newApp(*configPath)
			t, err := buildTask(args[0], date, start, end, desc, priority, expected)
			if err != nil {
				return err
			}
			t.Type = core.TypeProject
			subs := make([]core.SubTask, 0, len(steps))
			for _, name := range steps {
				subs = append(subs, core.SubTask{Name: name})
			}
			created, err := a.api.CreateProject(cmd.Context(), t, subs)
			if err != nil {
				return err
			}
			a.printTask(created)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "scheduled day (default today)")
	cmd.Flags().StringVar(&start, "start", "", "planned start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "planned end time (HH:MM)")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&priority, "priority", "medium", "low|medium|high|urgent")
	cmd.Flags().IntVar(&expected, "expected", 60, "planned duration in minutes")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "project step name (repeatable, in order)")
	return cmd
}

func buildTask(name, date, start, end, desc, priority string, expected int) (core.Task, error) {
	day, err := parseDayFlag(date)
	if err != nil {
		return core.Task{}, err
	}
	startClock, err := parseClockFlag(start)
	if err != nil {
		return core.Task{}, err
	}
	endClock, err := parseClockFlag(end)
	if err != nil {
		return core.Task{}, err
	}
	p := core.Priority(priority)
	if !p.Valid() {
		return core.Task{}, fmt.Errorf("unknown priority %q: %w", priority, core.ErrBadArguments)
	}
	if expected <= 0 {
		return core.Task{}, fmt.Errorf("expected duration must be positive: %w", core.ErrBadArguments)
	}
	return core.Task{
		Name:         name,
		Description:  desc,
		Day:          day,
		StartTime:    startClock,
		EndTime:      endClock,
		ExpectedTime: expected,
		Priority:     p,
		Type:         core.TypeRegular,
	}, nil
}

// findOrLoad resolves a task id against the cache, fetching the given day's
// partition first so single-shot CLI invocations have something to merge
// against.
func (a *app) findOrLoad(ctx context.Context, id core.ID, date string) (core.Task, core.Day, error) {
	day, err := parseDayFlag(date)
	if err != nil {
		return core.Task{}, core.Day{}, err
	}
	if _, err := a.loadDay(ctx, day); err != nil {
		return core.Task{}, core.Day{}, err
	}
	t, at, ok := a.store.Find(id, day)
	if !ok {
		return core.Task{}, core.Day{}, fmt.Errorf("task %s not found on %s: %w", id, day, core.ErrNotFound)
	}
	return t, at, nil
}

func doneCmd(configPath *string) *cobra.Command {
	var date, start, end string
	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Complete a task, confirming the actual time window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*configPath)
			ctx := cmd.Context()
			id := core.NormalizeID(args[0])

			task, day, err := a.findOrLoad(ctx, id, date)
			if err != nil {
				return err
			}
			if err := a.flow.RequestCompletion(task, day); err != nil {
				return err
			}

			startClock, err := parseClockFlag(start)
			if err != nil {
				return err
			}
			endClock, err := parseClockFlag(end)
			if err != nil {
				return err
			}

			updated, err := a.flow.Confirm(ctx, id, startClock, endClock)
			if err != nil {
				a.flow.Cancel(id)
				return err
			}
			if err := a.refreshStale(ctx); err != nil {
				return err
			}
			fmt.Printf("completed %q: +%.1f points\n", updated.Name, updated.Points)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day the task is scheduled on (default today)")
	cmd.Flags().StringVar(&start, "start", "", "actual start time (HH:MM, default now-expected)")
	cmd.Flags().StringVar(&end, "end", "", "actual end time (HH:MM, default now)")
	return cmd
}

func toggleCmd(configPath *string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a completed task back to pending (no scoring)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*configPath)
			ctx := cmd.Context()
			id := core.NormalizeID(args[0])

			task, day, err := a.findOrLoad(ctx, id, date)
			if err != nil {
				return err
			}
			if !task.Done {
				return fmt.Errorf("task %s is pending; use 'impulse done': %w", id, core.ErrBadArguments)
			}
			if _, err := a.flow.Uncomplete(ctx, id, day); err != nil {
				return err
			}
			return a.refreshStale(ctx)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day the task is scheduled on (default today)")
	return cmd
}

func subCmd(configPath *string) *cobra.Command {
	var (
		date, start, end string
		markDone         bool
		confirm          bool
	)
	cmd := &cobra.Command{
		Use:   "sub TASK_ID SUB_ID",
		Short: "Toggle a project step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*configPath)
			ctx := cmd.Context()
			taskID := core.NormalizeID(args[0])
			subID := core.NormalizeID(args[1])

			task, day, err := a.findOrLoad(ctx, taskID, date)
			if err != nil {
				return err
			}
			if task.Done {
				return fmt.Errorf("project %s is already done: %w", taskID, core.ErrBadArguments)
			}

			st := core.SubTask{ID: subID, IsCompleted: markDone}
			for _, existing := range task.SubTasks {
				if existing.ID.Equal(subID) {
					st = existing
					st.IsCompleted = markDone
					break
				}
			}

			merged, triggered, err := a.flow.SubTaskToggled(ctx, taskID, day, st)
			if err != nil {
				return err
			}
			if err := a.refreshStale(ctx); err != nil {
				return err
			}

			if !triggered {
				return nil
			}
			if !confirm {
				a.flow.Cancel(taskID)
				fmt.Printf("all steps of %q are done; run 'impulse done %s' to complete it\n", merged.Name, taskID)
				return nil
			}

			startClock, err := parseClockFlag(start)
			if err != nil {
				return err
			}
			endClock, err := parseClockFlag(end)
			if err != nil {
				return err
			}
			updated, err := a.flow.Confirm(ctx, taskID, startClock, endClock)
			if err != nil {
				return err
			}
			if err := a.refreshStale(ctx); err != nil {
				return err
			}
			fmt.Printf("completed %q: +%.1f points\n", updated.Name, updated.Points)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day the project is scheduled on (default today)")
	cmd.Flags().BoolVar(&markDone, "done", true, "mark the step completed (false to uncheck)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm project completion if this was the last step")
	cmd.Flags().StringVar(&start, "start", "", "actual start time when confirming (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "actual end time when confirming (HH:MM)")
	return cmd
}

func reopenCmd(configPath *string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "reopen ID",
		Short: "Reopen a completed task, clearing its score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*configPath)
			ctx := cmd.Context()
			id := core.NormalizeID(args[0])

			if _, _, err := a.findOrLoad(ctx, id, date); err != nil {
				return err
			}
			day, _ := parseDayFlag(date)
			if _, err := a.flow.Reopen(ctx, id, day); err != nil {
				return err
			}
			return a.refreshStale(ctx)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day the task is scheduled on (default today)")
	return cmd
}

func rmCmd(configPath *string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*configPath)
			ctx := cmd.Context()
			id := core.NormalizeID(args[0])

			_, day, err := a.findOrLoad(ctx, id, date)
			if err != nil {
				return err
			}
			if err := a.rec.ReconcileDelete(ctx, id, day); err != nil {
				return err
			}
			return a.refreshStale(ctx)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day the task is scheduled on (default today)")
	return cmd
}

func moveCmd(configPath *string) *cobra.Command {
	var date, to string
	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Reschedule a task to another day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return fmt.Errorf("--to is required: %w", core.ErrBadArguments)
			}
			a := newApp(*configPath)
			ctx := cmd.Context()
			id := core.NormalizeID(args[0])

			_, day, err := a.findOrLoad(ctx, id, date)
			if err != nil {
				return err
			}
			target, err := core.ParseDay(to)
			if err != nil {
				return err
			}
			patch := core.TaskPatch{Day: &target}
			if _, err := a.rec.ReconcileUpdate(ctx, id, day, patch); err != nil {
				return err
			}
			return a.refreshStale(ctx)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day the task is currently scheduled on (default today)")
	cmd.Flags().StringVar(&to, "to", "", "target day (YYYY-MM-DD)")
	return cmd
}

func statsCmd(configPath *string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard summary for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*configPath)
			day, err := parseDayFlag(date)
			if err != nil {
				return err
			}
			if _, err := a.loadDay(cmd.Context(), day); err != nil {
				return err
			}
			s, ok := a.stats.For(day)
			if !ok {
				return fmt.Errorf("no cached state for %s: %w", day, core.ErrNotFound)
			}
			fmt.Printf("%s\n", day)
			fmt.Printf("  pending:    %d\n", s.Pending)
			fmt.Printf("  completed:  %d\n", s.Completed)
			fmt.Printf("  focus:      %dm\n", s.FocusMinutes)
			fmt.Printf("  score:      %.1f / %.1f\n", s.Score, s.Target)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to summarize (default today)")
	return cmd
}

func pingCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*configPath)
			if err := a.api.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func pointsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "points",
		Short: "Show the all-time points total",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*configPath)
			total, err := a.api.FetchPoints(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%.1f\n", total)
			return nil
		},
	}
}
