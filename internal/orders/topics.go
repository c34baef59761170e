package orders

const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusChanged = "order.status.changed"
	TopicPaymentCompleted   = "payment.completed"
)

var topicByEvent = map[string]string{
	EventOrderCreated:       TopicOrderCreated,
	EventOrderStatusChanged: TopicOrderStatusChanged,
	EventPaymentCompleted:   TopicPaymentCompleted,
}

// TopicFor maps an event type to its topic (kafka) / routing key (amqp).
func TopicFor(eventType string) string {
	if t, ok := topicByEvent[eventType]; ok {
		return t
	}
	return "order.misc"
}

// Partition key = order_id, supaya semua event 1 order maintain urutan.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
