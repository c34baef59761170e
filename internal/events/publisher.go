package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/ariefcatur/restopro-backoffice/internal/amqpx"
	kafkax "github.com/ariefcatur/restopro-backoffice/internal/kafka"
	"github.com/ariefcatur/restopro-backoffice/internal/orders"
	amqp "github.com/rabbitmq/amqp091-go"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher ships an envelope to whichever broker is configured.
type Publisher interface {
	Publish(ctx context.Context, env orders.Envelope) error
}

type Kafka struct{ P *kafkax.Producer }

func (k Kafka) Publish(ctx context.Context, env orders.Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return k.P.Publish(ctx, orders.TopicFor(env.EventType), orders.PartitionKey(env.CorrelationID), b,
		kafkago.Header{Key: "x-event-type", Value: []byte(env.EventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte(strconv.Itoa(env.EventVersion))},
	)
}

type AMQP struct{ P *amqpx.Publisher }

func (a AMQP) Publish(ctx context.Context, env orders.Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return a.P.Publish(ctx, orders.TopicFor(env.EventType), b, amqp.Table{
		"x-event-type":    env.EventType,
		"x-event-version": int32(env.EventVersion),
	})
}

// Nop drops everything; dipakai kalau EVENT_BROKER=none.
type Nop struct{}

func (Nop) Publish(context.Context, orders.Envelope) error { return nil }

// Emit builds a v1 envelope for payload and publishes it.
func Emit(ctx context.Context, p Publisher, eventType, producer, orderID, traceID string, payload any) error {
	if p == nil {
		return nil
	}
	env, err := orders.NewEnvelope(eventType, producer, orderID, traceID, payload)
	if err != nil {
		return err
	}
	return p.Publish(ctx, env)
}
