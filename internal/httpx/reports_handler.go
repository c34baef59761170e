package httpx

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ariefcatur/restopro-backoffice/internal/orders"
	"github.com/ariefcatur/restopro-backoffice/internal/redisx"
	"github.com/ariefcatur/restopro-backoffice/internal/reports"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ActivityReader interface {
	Recent(ctx context.Context, n int) ([]redisx.ActivityEntry, error)
}

type ReportsHandler struct {
	Store *orders.Store
	Feed  ActivityReader // opsional
	Log   *zap.Logger
	Now   func() time.Time
}

func (h *ReportsHandler) Register(r chi.Router) {
	r.Get("/reports", h.report)
	r.Get("/dashboard", h.dashboard)
	r.Get("/dashboard/activity", h.activity)
}

func (h *ReportsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (h *ReportsHandler) report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := reports.ParseRange(q.Get("range"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rep := reports.Build(h.Store.All(), h.now(), reports.Options{
		Range: rng,
		Days:  atoiDefault(q.Get("days"), 7),
		Top:   atoiDefault(q.Get("top"), 4),
	})
	writeJSON(w, http.StatusOK, rep)
}

func (h *ReportsHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	all := h.Store.All()
	writeJSON(w, http.StatusOK, map[string]any{
		"counts":  orders.CountByStatus(all),
		"summary": reports.Summarize(all),
		"date":    h.now().Format("Monday, January 2, 2006"),
	})
}

func (h *ReportsHandler) activity(w http.ResponseWriter, r *http.Request) {
	if h.Feed == nil {
		writeJSON(w, http.StatusOK, []redisx.ActivityEntry{})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	entries, err := h.Feed.Recent(ctx, atoiDefault(r.URL.Query().Get("limit"), 20))
	if err != nil {
		// feed cuma pelengkap, jangan bikin dashboard error
		h.Log.Warn("read activity feed", zap.Error(err))
		writeJSON(w, http.StatusOK, []redisx.ActivityEntry{})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
