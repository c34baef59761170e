package httpx

import (
	"errors"
	"net/http"

	"github.com/ariefcatur/restopro-backoffice/internal/orders"
	"github.com/ariefcatur/restopro-backoffice/internal/payment"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	Store *orders.Store
	Svc   *payment.Service
}

type ProcessPaymentReq struct {
	OrderID string `json:"orderId"`
	Method  string `json:"method"`
}

type ProcessPaymentResp struct {
	Receipt    payment.Receipt `json:"receipt"`
	Idempotent bool            `json:"idempotent"`
}

func (h *PaymentHandler) Register(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Get("/payments/payable", h.payable)
	r.Get("/payments/{orderId}/receipt", h.receipt)
	guarded(r, guard, func(r chi.Router) {
		r.Post("/payments", h.process)
	})
}

func (h *PaymentHandler) payable(w http.ResponseWriter, r *http.Request) {
	list := orders.Search(orders.Payable(h.Store.All()), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, viewsOf(list))
}

func (h *PaymentHandler) process(w http.ResponseWriter, r *http.Request) {
	var req ProcessPaymentReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.OrderID == "" {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}
	method, err := payment.ParseMethod(req.Method)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rc, replayed, err := h.Svc.Process(r.Context(), req.OrderID, method, r.Header.Get("Idempotency-Key"))
	switch {
	case errors.Is(err, orders.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, payment.ErrNotPayable), errors.Is(err, payment.ErrInProgress):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, ProcessPaymentResp{Receipt: rc, Idempotent: replayed})
	}
}

func (h *PaymentHandler) receipt(w http.ResponseWriter, r *http.Request) {
	rc, err := h.Svc.Receipt(chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, rc)
}
