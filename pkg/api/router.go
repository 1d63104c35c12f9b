package api

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter wires the API routes, the static frontend and the shared middleware
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middlewareChi.Recoverer)
	r.Use(cors.Handler(corsOptions(h.cfg.Server.AllowedOrigins)))

	r.Route("/api", func(ar chi.Router) {
		ar.Use(middlewareChi.Timeout(30 * time.Second))

		ar.Post("/create-room", h.CreateRoom)
		ar.Get("/check-room/{room_code}", h.CheckRoom)

		ar.Post("/submit-time", h.SubmitTime)
		ar.Get("/get-times/{room_code}", h.GetTimes)
		ar.Get("/get-common-times/{room_code}", h.GetCommonTimes)

		ar.Route("/availability", func(av chi.Router) {
			av.Get("/month", h.MonthAvailability)
			av.Post("/batch", h.SetAvailabilityBatch)
			av.Post("/recurring", h.SetRecurringAvailability)
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if dir := h.cfg.Server.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(dir)))
		} else {
			h.logger.Warn("Static directory not found, frontend will not be served", zap.String("dir", dir))
		}
	}

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}
}

// requestLogger logs one line per request with its status and duration
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middlewareChi.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("HTTP request",
				zap.String("request_id", middlewareChi.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
