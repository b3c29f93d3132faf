package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

const maxBodyBytes = 1 << 16

// decode reads a JSON body and validates it. Malformed digits keep their
// ErrInvalidSubmission so they map to 422.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, problemgen.ErrInvalidSubmission) {
			return err
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := h.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// ListLevels handles GET /difficulty/levels.
func (h *Handler) ListLevels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, difficulty.All())
}

// GetLevel handles GET /difficulty/{id}.
func (h *Handler) GetLevel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, fmt.Errorf("%w: level id must be a number", errBadRequest))
		return
	}
	p, err := difficulty.Get(id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// StartSession handles POST /practice/sessions.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	sess, err := h.sessions.Start(r.Context(), req.DifficultyLevelID, req.TotalQuestions)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sessionResponse(sess))
}

// GetSession handles GET /practice/sessions/{id} and returns the summary.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sum, err := h.sessions.Summary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

// NextQuestion handles GET /practice/sessions/{id}/question.
func (h *Handler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.sessions.NextQuestion(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, questionResponse(q))
}

// SubmitAnswer handles POST /practice/sessions/{id}/answers.
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	res, err := h.sessions.SubmitAnswer(r.Context(), chi.URLParam(r, "sessionID"), req.QuestionID, req.submission())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
