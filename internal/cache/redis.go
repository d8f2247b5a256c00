package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shop-location-api/internal/models"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "shoploc:postal:"

// RedisStore keeps candidates as JSON strings with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) Get(ctx context.Context, postalCode string) ([]models.AddressCandidate, bool, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+postalCode).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: redis get: %w", err)
	}

	var candidates []models.AddressCandidate
	if err := json.Unmarshal(val, &candidates); err != nil {
		return nil, false, fmt.Errorf("cache: decode cached candidates: %w", err)
	}
	return candidates, true, nil
}

func (r *RedisStore) Set(ctx context.Context, postalCode string, candidates []models.AddressCandidate) error {
	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("cache: encode candidates: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+postalCode, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
