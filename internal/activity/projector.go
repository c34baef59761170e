package activity

import (
	"context"
	"encoding/json"
	"fmt"

	kafkax "github.com/ariefcatur/restopro-backoffice/internal/kafka"
	"github.com/ariefcatur/restopro-backoffice/internal/orders"
	"github.com/ariefcatur/restopro-backoffice/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Projector turns order events into dashboard activity lines.
type Projector struct {
	Redis       *redis.Client
	Feed        *redisx.ActivityFeed
	ServiceName string
	Log         *zap.Logger
}

// HandleMessage: dipasang sebagai handler consumer.
func (p *Projector) HandleMessage(ctx context.Context, m kafkago.Message) error {
	// 1) decode envelope
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// pesan rusak tidak akan pernah sukses, commit saja
		p.Log.Warn("drop malformed event", zap.String("topic", m.Topic), zap.Error(err))
		return nil
	}

	// 2) render dulu, event yang tidak dikenal diabaikan
	msg, err := Describe(env)
	if err != nil {
		p.Log.Warn("drop event with bad payload", zap.String("event_id", env.EventID), zap.Error(err))
		return nil
	}
	if msg == "" {
		return nil
	}

	// 3) dedup via Redis (pakai event_id)
	first, err := redisx.FirstSeen(ctx, p.Redis, p.ServiceName, env.EventID)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	// 4) push ke feed
	err = p.Feed.Push(ctx, redisx.ActivityEntry{
		EventID: env.EventID,
		OrderID: env.CorrelationID,
		Message: msg,
		At:      env.OccurredAt,
	})
	if err != nil {
		// lepas dedup key supaya retry dari consumer bisa coba lagi
		_ = p.Redis.Del(ctx, fmt.Sprintf(redisx.KeyDedup, p.ServiceName, env.EventID)).Err()
		return err
	}
	return nil
}

// Describe renders one activity line for env. Unknown event types yield "".
func Describe(env orders.Envelope) (string, error) {
	switch env.EventType {
	case orders.EventOrderCreated:
		pl, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("New order %s from %s ($%s)", pl.OrderID, pl.TableID, orders.FormatMoney(orders.GrandTotal(pl.TotalAmount))), nil
	case orders.EventOrderStatusChanged:
		pl, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Order %s moved from %s to %s", pl.OrderID, pl.From, pl.To), nil
	case orders.EventPaymentCompleted:
		pl, err := kafkax.UnwrapPayload[orders.PaymentCompletedPayload](env.Payload)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Payment for %s received: $%s by %s", pl.OrderID, orders.FormatMoney(pl.Amount), pl.Method), nil
	}
	return "", nil
}
