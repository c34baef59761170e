package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ariefcatur/restopro-backoffice/internal/auth"
	"github.com/ariefcatur/restopro-backoffice/internal/events"
	"github.com/ariefcatur/restopro-backoffice/internal/live"
	"github.com/ariefcatur/restopro-backoffice/internal/menu"
	"github.com/ariefcatur/restopro-backoffice/internal/orders"
	"github.com/ariefcatur/restopro-backoffice/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type OrderInserter interface {
	InsertOrder(ctx context.Context, o orders.Order) error
}

type Broadcaster interface {
	Broadcast(msg live.Message)
}

type StatusReader interface {
	Get(ctx context.Context, orderID string) (redisx.CachedStatus, bool, error)
}

type OrdersHandler struct {
	Store     *orders.Store
	Menu      *menu.Catalog
	Repo      OrderInserter // opsional
	Redis     *redis.Client // opsional, idempotency create
	Publisher events.Publisher
	Hub       Broadcaster
	Cache     StatusReader // opsional, fast path GET status
	Service   string
	Log       *zap.Logger
}

type CreateOrderItemReq struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

type CreateOrderReq struct {
	TableID string               `json:"tableId"`
	Items   []CreateOrderItemReq `json:"items"`
}

type CreateOrderResp struct {
	Order      OrderView `json:"order"`
	Idempotent bool      `json:"idempotent"`
}

type UpdateStatusReq struct {
	Status string `json:"status"`
}

type StatusResp struct {
	Order   OrderView `json:"order"`
	Applied bool      `json:"applied"`
}

// OrderView is an order plus everything the details panel derives from it.
type OrderView struct {
	orders.Order
	Totals    orders.Totals `json:"totals"`
	Next      orders.Status `json:"next,omitempty"`
	CanCancel bool          `json:"canCancel"`
}

func viewOf(o orders.Order) OrderView {
	v := OrderView{Order: o, Totals: o.Totals(), CanCancel: orders.CanTransition(o.Status, orders.StatusCancelled)}
	if n, ok := orders.Next(o.Status); ok {
		v.Next = n
	}
	return v
}

func viewsOf(os []orders.Order) []OrderView {
	out := make([]OrderView, 0, len(os))
	for _, o := range os {
		out = append(out, viewOf(o))
	}
	return out
}

func (h *OrdersHandler) Register(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/orders/{id}/status", h.getStatus)
	r.Get("/board", h.board)
	guarded(r, guard, func(r chi.Router) {
		r.Post("/orders", h.createOrder)
		r.Post("/orders/{id}/status", h.updateStatus)
		r.Post("/orders/{id}/advance", h.advance)
	})
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	all := h.Store.All()
	if s := r.URL.Query().Get("status"); s != "" && !strings.EqualFold(s, "All") {
		st, ok := orders.ParseStatus(s)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
		if st == orders.StatusCompleted {
			all = orders.Completed(all)
		} else {
			all = orders.FilterByStatus(all, st)
		}
	}
	all = orders.Search(all, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, viewsOf(all))
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(o))
}

// getStatus: cache Redis dulu, kalau miss baru ke store.
func (h *OrdersHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.Cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		cs, ok, err := h.Cache.Get(ctx, id)
		cancel()
		if err != nil {
			h.Log.Warn("status cache read failed", zap.String("order_id", id), zap.Error(err))
		}
		if ok {
			writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": cs.Status, "updatedAt": cs.UpdatedAt, "source": "cache"})
			return
		}
	}
	o, err := h.Store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": o.ID, "status": o.Status, "source": "store"})
}

func (h *OrdersHandler) board(w http.ResponseWriter, r *http.Request) {
	all := h.Store.All()
	writeJSON(w, http.StatusOK, map[string]any{
		"columns": orders.Kanban(all),
		"counts":  orders.CountByStatus(all),
	})
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	to, ok := orders.ParseStatus(req.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}
	o, applied, err := h.Store.SetStatus(chi.URLParam(r, "id"), to)
	h.logTransition(r, o, applied)
	h.writeTransition(w, o, applied, err)
}

func (h *OrdersHandler) advance(w http.ResponseWriter, r *http.Request) {
	o, applied, err := h.Store.Advance(chi.URLParam(r, "id"))
	h.logTransition(r, o, applied)
	h.writeTransition(w, o, applied, err)
}

func (h *OrdersHandler) logTransition(r *http.Request, o orders.Order, applied bool) {
	if !applied {
		return
	}
	actor := "anonymous"
	if c := auth.ClaimsFromContext(r.Context()); c != nil {
		actor = c.Name
	}
	h.Log.Info("order status set", zap.String("order_id", o.ID), zap.String("status", string(o.Status)), zap.String("by", actor))
}

func (h *OrdersHandler) writeTransition(w http.ResponseWriter, o orders.Order, applied bool, err error) {
	switch {
	case errors.Is(err, orders.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	case !applied:
		// transisi tidak sah = no-op, kirim state sekarang supaya UI re-render
		writeJSON(w, http.StatusConflict, StatusResp{Order: viewOf(o), Applied: false})
	default:
		writeJSON(w, http.StatusOK, StatusResp{Order: viewOf(o), Applied: true})
	}
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.TableID) == "" || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "missing fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Idempotency via Redis: klaim key dulu (SETNX) supaya request kembar tidak dobel
	var claimKey string
	if idemKey := r.Header.Get("Idempotency-Key"); idemKey != "" && h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyIdemOrderCreate, idemKey)
		claimed, existing, err := redisx.ClaimIdem(ctx, h.Redis, key)
		switch {
		case err != nil:
			h.Log.Warn("idempotency claim failed", zap.Error(err))
		case claimed:
			claimKey = key
		case existing == redisx.IdemPending:
			writeError(w, http.StatusConflict, "request with this Idempotency-Key is in progress")
			return
		default:
			if o, err := h.Store.Get(existing); err == nil {
				writeJSON(w, http.StatusOK, CreateOrderResp{Order: viewOf(o), Idempotent: true})
				return
			}
			writeError(w, http.StatusConflict, "Idempotency-Key already used")
			return
		}
	}
	committed := false
	defer func() {
		if claimKey != "" && !committed {
			_ = h.Redis.Del(ctx, claimKey).Err()
		}
	}()

	// harga & nama diambil dari menu, bukan dari client
	items := make([]orders.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		m, err := h.Menu.Get(it.MenuItemID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "menu item not found: "+it.MenuItemID)
			return
		}
		if !m.Available {
			writeError(w, http.StatusBadRequest, "menu item unavailable: "+m.Name)
			return
		}
		items = append(items, orders.OrderItem{ID: m.ID, Name: m.Name, Quantity: it.Quantity, Price: m.Price})
	}

	o, err := orders.NewOrder(newOrderID(), strings.TrimSpace(req.TableID), items, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.Repo != nil {
		if err := h.Repo.InsertOrder(ctx, o); err != nil {
			h.Log.Warn("order document write failed", zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	if err := h.Store.Add(o); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	committed = true
	if claimKey != "" {
		_ = h.Redis.Set(ctx, claimKey, o.ID, redisx.TTLIdempotency).Err()
	}

	payload := orders.OrderCreatedPayload{OrderID: o.ID, TableID: o.TableID, Items: o.Items, TotalAmount: o.TotalAmount}
	if err := events.Emit(ctx, h.Publisher, orders.EventOrderCreated, h.Service, o.ID, middleware.GetReqID(r.Context()), payload); err != nil {
		h.Log.Warn("publish order created failed", zap.String("order_id", o.ID), zap.Error(err))
	}
	if h.Hub != nil {
		h.Hub.Broadcast(live.Message{Type: orders.TopicOrderCreated, Data: o})
	}
	h.Log.Info("order created", zap.String("order_id", o.ID), zap.String("table", o.TableID), zap.Float64("total", o.TotalAmount))

	writeJSON(w, http.StatusCreated, CreateOrderResp{Order: viewOf(o)})
}
