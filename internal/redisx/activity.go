package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type ActivityEntry struct {
	EventID string    `json:"event_id"`
	OrderID string    `json:"order_id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// ActivityFeed is the capped "recent activity" list on the dashboard.
type ActivityFeed struct{ R *redis.Client }

func (f *ActivityFeed) Push(ctx context.Context, e ActivityEntry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = f.R.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, KeyActivity, b)
		p.LTrim(ctx, KeyActivity, 0, ActivityMax-1)
		return nil
	})
	return err
}

func (f *ActivityFeed) Recent(ctx context.Context, n int) ([]ActivityEntry, error) {
	if n <= 0 || n > ActivityMax {
		n = ActivityMax
	}
	raw, err := f.R.LRange(ctx, KeyActivity, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]ActivityEntry, 0, len(raw))
	for _, s := range raw {
		var e ActivityEntry
		if json.Unmarshal([]byte(s), &e) == nil {
			out = append(out, e)
		}
	}
	return out, nil
}
