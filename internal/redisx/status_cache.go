package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type CachedStatus struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusCache keeps the latest status per order for fast GETs from other services.
type StatusCache struct{ R *redis.Client }

func (c *StatusCache) Put(ctx context.Context, orderID, status string, at time.Time) error {
	b, err := json.Marshal(CachedStatus{Status: status, UpdatedAt: at.UTC()})
	if err != nil {
		return err
	}
	return c.R.Set(ctx, fmt.Sprintf(KeyOrderStatus, orderID), b, TTLStatusCache).Err()
}

// Get returns ok=false on a cache miss.
func (c *StatusCache) Get(ctx context.Context, orderID string) (CachedStatus, bool, error) {
	s, err := c.R.Get(ctx, fmt.Sprintf(KeyOrderStatus, orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return CachedStatus{}, false, nil
	}
	if err != nil {
		return CachedStatus{}, false, err
	}
	var cs CachedStatus
	if err := json.Unmarshal([]byte(s), &cs); err != nil {
		return CachedStatus{}, false, err
	}
	return cs, true, nil
}
