package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ariefcatur/restopro-backoffice/internal/events"
	"github.com/ariefcatur/restopro-backoffice/internal/orders"
	"github.com/ariefcatur/restopro-backoffice/internal/redisx"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrNotPayable    = errors.New("order is not payable")
	ErrInvalidMethod = errors.New("payment method must be Cash or Card")
	ErrInProgress    = errors.New("payment already in progress for this order")
	ErrNoReceipt     = errors.New("receipt not found")
)

type Method string

const (
	MethodCash Method = "Cash"
	MethodCard Method = "Card"
)

func ParseMethod(s string) (Method, error) {
	switch {
	case strings.EqualFold(s, string(MethodCash)):
		return MethodCash, nil
	case strings.EqualFold(s, string(MethodCard)):
		return MethodCard, nil
	}
	return "", ErrInvalidMethod
}

type Receipt struct {
	PaymentRef string             `json:"paymentRef"`
	OrderID    string             `json:"orderId"`
	TableID    string             `json:"tableId"`
	Items      []orders.OrderItem `json:"items"`
	Subtotal   float64            `json:"subtotal"`
	Tax        float64            `json:"tax"`
	Total      float64            `json:"total"`
	Display    orders.Totals      `json:"display"`
	Method     Method             `json:"method"`
	PaidAt     time.Time          `json:"paidAt"`
}

// Service is the payment mock-up: a fixed delay stands in for the processor,
// lalu order di-settle lewat transisi yang sah sampai Completed.
type Service struct {
	Store     *orders.Store
	Redis     *redis.Client // opsional, untuk idempotency key
	Publisher events.Publisher
	Delay     time.Duration
	Service   string
	Log       *zap.Logger

	mu       sync.Mutex
	inflight map[string]bool
	receipts map[string]Receipt
}

// Process charges orderID. With a non-empty idemKey a replay returns the first
// receipt and replayed=true.
func (s *Service) Process(ctx context.Context, orderID string, method Method, idemKey string) (rc Receipt, replayed bool, err error) {
	if method != MethodCash && method != MethodCard {
		return Receipt{}, false, ErrInvalidMethod
	}
	if rc, ok := s.lookupIdem(ctx, idemKey); ok {
		return rc, true, nil
	}

	o, err := s.Store.Get(orderID)
	if err != nil {
		return Receipt{}, false, err
	}
	if !orders.IsPayable(o.Status) {
		return Receipt{}, false, fmt.Errorf("%w: status %s", ErrNotPayable, o.Status)
	}
	if !s.begin(orderID) {
		return Receipt{}, false, ErrInProgress
	}
	defer s.end(orderID)

	// simulasi proses pembayaran
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return Receipt{}, false, ctx.Err()
		}
	}

	// status bisa berubah selama delay, cek lagi
	if o, err = s.Store.Get(orderID); err != nil {
		return Receipt{}, false, err
	}
	if !orders.IsPayable(o.Status) {
		return Receipt{}, false, fmt.Errorf("%w: status %s", ErrNotPayable, o.Status)
	}

	settled, err := s.settle(orderID)
	if err != nil {
		return Receipt{}, false, err
	}

	rc = Receipt{
		PaymentRef: uuid.NewString(),
		OrderID:    settled.ID,
		TableID:    settled.TableID,
		Items:      settled.Items,
		Subtotal:   settled.TotalAmount,
		Tax:        settled.Tax(),
		Total:      settled.GrandTotal(),
		Display:    settled.Totals(),
		Method:     method,
		PaidAt:     time.Now().UTC(),
	}
	s.mu.Lock()
	if s.receipts == nil {
		s.receipts = map[string]Receipt{}
	}
	s.receipts[orderID] = rc
	s.mu.Unlock()

	s.storeIdem(ctx, idemKey, rc)
	payload := orders.PaymentCompletedPayload{
		OrderID: rc.OrderID, TableID: rc.TableID, PaymentRef: rc.PaymentRef, Method: string(method), Amount: rc.Total,
	}
	if err := events.Emit(ctx, s.Publisher, orders.EventPaymentCompleted, s.Service, orderID, "", payload); err != nil {
		s.Log.Warn("publish payment event failed", zap.String("order_id", orderID), zap.Error(err))
	}
	s.Log.Info("payment completed",
		zap.String("order_id", orderID),
		zap.String("method", string(method)),
		zap.String("total", rc.Display.GrandTotal))
	return rc, false, nil
}

// settle walks New→Preparing→Ready→Completed one admissible step at a time.
// It succeeds only when this call applied the final step; an order that
// reached Completed (or Cancelled) some other way is not payable.
func (s *Service) settle(orderID string) (orders.Order, error) {
	for {
		o, applied, err := s.Store.Advance(orderID)
		if err != nil {
			return orders.Order{}, err
		}
		if !applied {
			return orders.Order{}, fmt.Errorf("%w: status %s", ErrNotPayable, o.Status)
		}
		if o.Status == orders.StatusCompleted {
			return o, nil
		}
	}
}

func (s *Service) Receipt(orderID string) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rc, ok := s.receipts[orderID]
	if !ok {
		return Receipt{}, ErrNoReceipt
	}
	return rc, nil
}

func (s *Service) begin(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == nil {
		s.inflight = map[string]bool{}
	}
	if s.inflight[orderID] {
		return false
	}
	s.inflight[orderID] = true
	return true
}

func (s *Service) end(orderID string) {
	s.mu.Lock()
	delete(s.inflight, orderID)
	s.mu.Unlock()
}

func (s *Service) lookupIdem(ctx context.Context, key string) (Receipt, bool) {
	if key == "" || s.Redis == nil {
		return Receipt{}, false
	}
	raw, err := s.Redis.Get(ctx, fmt.Sprintf(redisx.KeyIdemPayment, key)).Bytes()
	if err != nil {
		return Receipt{}, false
	}
	var rc Receipt
	if err := json.Unmarshal(raw, &rc); err != nil {
		return Receipt{}, false
	}
	return rc, true
}

func (s *Service) storeIdem(ctx context.Context, key string, rc Receipt) {
	if key == "" || s.Redis == nil {
		return
	}
	b, _ := json.Marshal(rc)
	if err := s.Redis.Set(ctx, fmt.Sprintf(redisx.KeyIdemPayment, key), b, redisx.TTLIdempotency).Err(); err != nil {
		s.Log.Warn("store payment idempotency failed", zap.Error(err))
	}
}
