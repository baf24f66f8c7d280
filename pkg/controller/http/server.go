package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nxtprof/nxtprof/pkg/usecase"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
	"github.com/nxtprof/nxtprof/pkg/utils/safe"
)

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	verifier TokenVerifier
}

type Options func(*Server)

// WithVerifier installs the bearer-token verifier. Without one the server
// runs in no-authn mode and every request acts as an anonymous administrator.
func WithVerifier(v TokenVerifier) Options {
	return func(s *Server) {
		s.verifier = v
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.verifier))

		r.Route("/sync", func(r chi.Router) {
			r.Post("/attendance", s.syncAttendanceHandler)
			r.Post("/learning-points", s.syncLearningPointsHandler)
			r.Post("/today", s.syncTodayHandler)
		})

		r.Route("/sessions/{type}/{date}", func(r chi.Router) {
			r.Get("/", s.getSessionHandler)
			r.Post("/end", s.endSessionHandler)
			r.Post("/finalize", s.finalizeSessionHandler)
			r.Post("/attendance", s.markAttendanceHandler)
			r.Get("/attendance", s.listAttendanceHandler)
		})

		r.Route("/learning-points", func(r chi.Router) {
			r.Post("/", s.createLearningPointHandler)
			r.Get("/", s.listLearningPointsHandler)
			r.Put("/{id}", s.updateLearningPointHandler)
		})

		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", s.giveFeedbackHandler)
			r.Get("/", s.listFeedbackHandler)
			r.Post("/summarize", s.summarizeFeedbackHandler)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", s.listEmployeesHandler)
			r.Post("/", s.saveEmployeeHandler)
			r.Post("/{id}/archive", s.archiveEmployeeHandler)
		})
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

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, []byte(`{"status":"ok"}`))
}
