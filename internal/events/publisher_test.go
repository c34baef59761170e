package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ariefcatur/restopro-backoffice/internal/orders"
)

type capture struct{ got []orders.Envelope }

func (c *capture) Publish(_ context.Context, env orders.Envelope) error {
	c.got = append(c.got, env)
	return nil
}

func TestEmitBuildsEnvelope(t *testing.T) {
	c := &capture{}
	err := Emit(context.Background(), c, orders.EventOrderStatusChanged, "api", "O1", "req-1",
		orders.OrderStatusChangedPayload{OrderID: "O1", From: orders.StatusNew, To: orders.StatusPreparing})
	if err != nil {
		t.Fatal(err)
	}
	if len(c.got) != 1 {
		t.Fatalf("published %d", len(c.got))
	}
	env := c.got[0]
	if env.EventID == "" || env.EventVersion != 1 || env.CorrelationID != "O1" || env.TraceID != "req-1" {
		t.Fatalf("envelope = %+v", env)
	}
	var p orders.OrderStatusChangedPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil || p.To != orders.StatusPreparing {
		t.Fatalf("payload = %+v, %v", p, err)
	}
	if orders.TopicFor(env.EventType) != orders.TopicOrderStatusChanged {
		t.Fatalf("topic = %s", orders.TopicFor(env.EventType))
	}
}

func TestEmitNilPublisher(t *testing.T) {
	if err := Emit(context.Background(), nil, orders.EventOrderCreated, "api", "O1", "", struct{}{}); err != nil {
		t.Fatal(err)
	}
	if err := (Nop{}).Publish(context.Background(), orders.Envelope{}); err != nil {
		t.Fatal(err)
	}
}
