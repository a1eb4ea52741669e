package rest

import (
	"errors"
	"net/http"

	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/core"
	"github.com/Mostafa-Elmoalem/Impulse-sub000/backend/pkg/res"
)

func WriteErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrTaskInvalidArgs):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrTaskNotFound), errors.Is(err, core.ErrSubTaskNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	default:
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
