package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/ariefcatur/restopro-backoffice/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logging.RequestLogger(log), middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// WithTimeout is applied to the API group only; /ws stays open.
func WithTimeout() func(http.Handler) http.Handler {
	return middleware.Timeout(15 * time.Second)
}

// guarded mounts routes behind guard when one is configured.
func guarded(r chi.Router, guard func(http.Handler) http.Handler, fn func(r chi.Router)) {
	r.Group(func(r chi.Router) {
		if guard != nil {
			r.Use(guard)
		}
		fn(r)
	})
}

// Check is one readiness check (db, redis, broker).
type Check func(ctx context.Context) error

// Ready reports 503 with the failing checks when any of them errors.
func Ready(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		failed := map[string]string{}
		for name, c := range checks {
			if err := c(ctx); err != nil {
				failed[name] = err.Error()
			}
		}
		if len(failed) > 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "failed": failed})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
