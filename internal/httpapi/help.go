package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

const narrationFallbackHeader = "X-Narration-Fallback"

func (h *Handler) question(r *http.Request) (*problemgen.Question, error) {
	return h.sessions.Question(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "questionID"))
}

// Help handles GET .../questions/{qid}/help.
func (h *Handler) Help(w http.ResponseWriter, r *http.Request) {
	q, err := h.question(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, h.tutor.Help(r.Context(), q))
}

// Voice handles GET .../questions/{qid}/voice. It streams audio when
// synthesis succeeded and returns the narration text as JSON otherwise.
func (h *Handler) Voice(w http.ResponseWriter, r *http.Request) {
	q, err := h.question(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	n := h.tutor.Narrate(r.Context(), q)
	w.Header().Set(narrationFallbackHeader, strconv.FormatBool(n.Fallback))
	if len(n.Audio) == 0 {
		respondJSON(w, http.StatusOK, n)
		return
	}
	w.Header().Set("Content-Type", audioContentType(n.Format))
	w.Header().Set("Content-Length", strconv.Itoa(len(n.Audio)))
	w.WriteHeader(http.StatusOK)
	w.Write(n.Audio)
}

func audioContentType(format string) string {
	switch format {
	case "wav":
		return "audio/wav"
	case "opus":
		return "audio/ogg"
	}
	return "audio/mpeg"
}
