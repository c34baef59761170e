package redisx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// FirstSeen marks a dedup key with SETNX; true berarti event ini belum pernah diproses.
func FirstSeen(ctx context.Context, rdb *redis.Client, service, id string) (bool, error) {
	return rdb.SetNX(ctx, fmt.Sprintf(KeyDedup, service, id), "1", TTLDedup).Result()
}

// ClaimIdem reserves key with IdemPending. Kalau key sudah dipegang request
// lain, existing berisi nilainya (IdemPending selama request itu belum selesai).
func ClaimIdem(ctx context.Context, rdb *redis.Client, key string) (claimed bool, existing string, err error) {
	ok, err := rdb.SetNX(ctx, key, IdemPending, TTLIdempotency).Result()
	if err != nil || ok {
		return ok, "", err
	}
	v, err := rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// expired di antara dua call, anggap masih dipegang
		return false, IdemPending, nil
	}
	return false, v, err
}
