package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/core"
)

func Register(mux *http.ServeMux, log *slog.Logger, svc *core.Service, timeout time.Duration) {
	mux.Handle("GET /api/ping", NewPingHandler(log, svc, timeout))

	// tasks
	mux.Handle("GET /api/tasks", NewListTasksHandler(log, svc, timeout))
	mux.Handle("POST /api/tasks", NewCreateTaskHandler(log, svc, timeout))
	mux.Handle("POST /api/projects", NewCreateProjectHandler(log, svc, timeout))
	mux.Handle("PUT /api/tasks/{id}", NewUpdateTaskHandler(log, svc, timeout))
	mux.Handle("DELETE /api/tasks/{id}", NewDeleteTaskHandler(log, svc, timeout))

	// subtasks
	mux.Handle("PUT /api/subtasks/{id}", NewUpdateSubTaskHandler(log, svc, timeout))
	mux.Handle("DELETE /api/subtasks/{id}", NewDeleteSubTaskHandler(log, svc, timeout))

	// aggregates
	mux.Handle("GET /api/points", NewPointsHandler(log, svc, timeout))
}
