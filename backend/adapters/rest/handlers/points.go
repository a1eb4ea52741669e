package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/adapters/rest"
	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/core"
	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/pkg/res"
)

func NewPointsHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		total, err := svc.PointsTotal(ctx)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, map[string]any{"points": total}, http.StatusOK)
	}
}
