package redisx

import "time"

const (
	// Idempotency create order: idem:order:create:{key} -> order_id
	KeyIdemOrderCreate = "idem:order:create:%s"

	// Idempotency payment: idem:payment:{key} -> receipt JSON
	KeyIdemPayment = "idem:payment:%s"

	// Cache status order: order_status:{order_id} -> {"status": "...", "updated_at": "..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Recent activity feed (LIST, terbaru di kiri)
	KeyActivity = "activity:recent"
)

const ActivityMax = 50

// IdemPending is the placeholder held while the first request for a key runs.
const IdemPending = "pending"

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
