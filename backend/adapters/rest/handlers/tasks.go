package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/adapters/rest"
	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/core"
	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/pkg/res"
)

const dayLayout = "2006-01-02"

func NewCreateTaskHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.TaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := in.ToCore()
		if err != nil {
			rest.WriteErr(w, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		created, err := svc.CreateTask(ctx, t)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, rest.TaskToWire(created), http.StatusCreated)
	}
}

func NewCreateProjectHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateProjectIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := in.ToCore()
		if err != nil {
			rest.WriteErr(w, err)
			return
		}

		subs := make([]core.SubTask, 0, len(in.SubTasks))
		for _, st := range in.SubTasks {
			subs = append(subs, core.SubTask{
				Name:         st.Name,
				IsCompleted:  st.IsCompleted,
				TimeEstimate: st.TimeEstimate,
			})
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		created, err := svc.CreateProject(ctx, t, subs)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, rest.TaskToWire(created), http.StatusCreated)
	}
}

func NewListTasksHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		day, err := time.Parse(dayLayout, q.Get("date"))
		if err != nil {
			res.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		f := core.ListTasksFilter{Day: day}
		if v := q.Get("done"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				res.Error(w, "invalid done", http.StatusBadRequest)
				return
			}
			f.Done = &b
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListTasks(ctx, f)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}

		out := make([]rest.TaskOut, 0, len(items))
		for _, t := range items {
			out = append(out, rest.TaskToWire(t))
		}
		res.Json(w, map[string]any{"tasks": out}, http.StatusOK)
	}
}

func NewUpdateTaskHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil || id <= 0 {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.TaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := in.ToCore()
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		t.ID = id

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		updated, err := svc.UpdateTask(ctx, t)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, rest.TaskToWire(updated), http.StatusOK)
	}
}

func NewDeleteTaskHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil || id <= 0 {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTask(ctx, id); err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, map[string]any{"ok": true}, http.StatusOK)
	}
}
