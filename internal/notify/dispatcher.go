package notify

import (
	"context"
	"time"

	"github.com/ariefcatur/restopro-backoffice/internal/events"
	"github.com/ariefcatur/restopro-backoffice/internal/live"
	"github.com/ariefcatur/restopro-backoffice/internal/orders"
	"go.uber.org/zap"
)

type Broadcaster interface {
	Broadcast(msg live.Message)
}

type StatusCache interface {
	Put(ctx context.Context, orderID, status string, at time.Time) error
}

type StatusWriter interface {
	UpdateStatus(ctx context.Context, orderID string, from, to orders.Status) error
}

// Dispatcher reacts to every status change in the store. Semua sink opsional;
// kegagalan sink cuma di-log, store tidak pernah di-rollback.
type Dispatcher struct {
	Hub       Broadcaster
	Cache     StatusCache
	Publisher events.Publisher
	Writer    StatusWriter // nil = status tidak ditulis balik ke storage
	Service   string
	Log       *zap.Logger
	Timeout   time.Duration
}

// Attach subscribes the dispatcher to s.
func (d *Dispatcher) Attach(s *orders.Store) {
	s.Subscribe(d.OnStatusChange)
}

func (d *Dispatcher) OnStatusChange(c orders.StatusChange) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := d.Log.With(zap.String("order_id", c.Order.ID), zap.String("from", string(c.From)), zap.String("to", string(c.To)))
	log.Info("order status changed")

	if d.Hub != nil {
		d.Hub.Broadcast(live.Message{Type: orders.TopicOrderStatusChanged, Data: c})
	}
	if d.Writer != nil {
		if err := d.Writer.UpdateStatus(ctx, c.Order.ID, c.From, c.To); err != nil {
			log.Warn("status write-back failed", zap.Error(err))
		}
	}
	if d.Cache != nil {
		if err := d.Cache.Put(ctx, c.Order.ID, string(c.To), c.ChangedAt); err != nil {
			log.Warn("status cache update failed", zap.Error(err))
		}
	}
	payload := orders.OrderStatusChangedPayload{OrderID: c.Order.ID, TableID: c.Order.TableID, From: c.From, To: c.To}
	if err := events.Emit(ctx, d.Publisher, orders.EventOrderStatusChanged, d.Service, c.Order.ID, "", payload); err != nil {
		log.Warn("publish status event failed", zap.Error(err))
	}
}
