package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

var errBadRequest = errors.New("invalid request")

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, difficulty.ErrNotFound),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrAlreadyAnswered),
		errors.Is(err, session.ErrSessionEnded):
		return http.StatusConflict
	case errors.Is(err, problemgen.ErrInvalidSubmission):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		errors.Is(err, session.ErrInvalidPlan):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "path", r.URL.Path, "error", err)
		msg = "internal error"
	}
	respondJSON(w, status, ErrorResponse{Error: msg})
}
