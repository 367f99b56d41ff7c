package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/tierscope/pkg/utils/logging"
	"github.com/secmon-lab/tierscope/pkg/utils/safe"
)

type Server struct {
	router       *chi.Mux
	assessmentUC AssessmentUseCase
	contentUC    ContentUseCase
	maxBodyBytes int64
}

type Options func(*Server)

// WithMaxBodyBytes limits the size of request bodies
func WithMaxBodyBytes(n int64) Options {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

func New(assessmentUC AssessmentUseCase, contentUC ContentUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:       r,
		assessmentUC: assessmentUC,
		contentUC:    contentUC,
		maxBodyBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/assessments", func(r chi.Router) {
		r.Post("/", s.startAssessment)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getAssessment)
			r.Delete("/", s.deleteAssessment)
			r.Post("/answers/{step}", s.selectAnswer)
			r.Post("/infrastructure", s.recordInfrastructure)
			r.Post("/back", s.goBack)
			r.Post("/restart", s.restart)
		})
	})

	r.Route("/api/tiers", func(r chi.Router) {
		r.Get("/", s.listTiers)
		r.Get("/{tier}", s.getTier)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.From(r.Context()).With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := safe.WriteJSON(r.Context(), w, status, v); err != nil {
		writeError(w, r, err)
	}
}
