package orders

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventPaymentCompleted   = "PaymentCompleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "backoffice-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya order_id
	Payload       json.RawMessage `json:"payload"`                  // payload spesifik
}

// NewEnvelope wraps payload as a v1 event correlated to orderID.
func NewEnvelope(eventType, producer, orderID, traceID string, payload any) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		TraceID:       traceID,
		CorrelationID: orderID,
		Payload:       b,
	}, nil
}

// ---- Payload tipe per event ----

type OrderCreatedPayload struct {
	OrderID     string      `json:"order_id"`
	TableID     string      `json:"table_id"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
}

type OrderStatusChangedPayload struct {
	OrderID string `json:"order_id"`
	TableID string `json:"table_id"`
	From    Status `json:"from"`
	To      Status `json:"to"`
}

type PaymentCompletedPayload struct {
	OrderID    string  `json:"order_id"`
	TableID    string  `json:"table_id"`
	PaymentRef string  `json:"payment_ref"`
	Method     string  `json:"method"`
	Amount     float64 `json:"amount"` // grand total, termasuk pajak
}
