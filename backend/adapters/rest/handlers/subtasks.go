package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/adapters/rest"
	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/core"
	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/pkg/res"
)

func NewUpdateSubTaskHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.PathValue("id"))
		if id == "" {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.SubTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		updated, err := svc.UpdateSubTask(ctx, core.SubTask{
			ID:           id,
			Name:         in.Name,
			IsCompleted:  in.IsCompleted,
			TimeEstimate: in.TimeEstimate,
		})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, rest.SubTaskToWire(updated), http.StatusOK)
	}
}

func NewDeleteSubTaskHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.PathValue("id"))
		if id == "" {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteSubTask(ctx, id); err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, map[string]any{"ok": true}, http.StatusOK)
	}
}
