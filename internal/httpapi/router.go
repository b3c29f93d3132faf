// Package httpapi exposes difficulty levels and practice sessions over
// JSON/HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"

	"github.com/abhisek/mathdrill/internal/logger"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/tutor"
)

// Options configures the router.
type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// Handler serves the practice API.
type Handler struct {
	sessions *session.Service
	tutor    *tutor.Tutor
	validate *validator.Validate
	log      *logger.Logger
}

// NewHandler creates a Handler. A nil tutor serves scripted help only.
func NewHandler(sessions *session.Service, t *tutor.Tutor, log *logger.Logger) *Handler {
	log = logger.OrNop(log)
	if t == nil {
		t = tutor.New(nil, nil, tutor.DefaultConfig(), log)
	}
	return &Handler{
		sessions: sessions,
		tutor:    t,
		validate: validator.New(),
		log:      log.With("component", "httpapi"),
	}
}

// NewRouter wires middleware and routes.
func NewRouter(h *Handler, opts Options) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{narrationFallbackHeader},
		MaxAge:         300,
	}).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(opts.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/difficulty", func(r chi.Router) {
			r.Get("/levels", h.ListLevels)
			r.Get("/{id}", h.GetLevel)
		})
		r.Route("/practice/sessions", func(r chi.Router) {
			r.Post("/", h.StartSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Get("/question", h.NextQuestion)
				r.Post("/answers", h.SubmitAnswer)
				r.Get("/questions/{questionID}/help", h.Help)
				r.Get("/questions/{questionID}/voice", h.Voice)
			})
		})
	})
	return r
}
