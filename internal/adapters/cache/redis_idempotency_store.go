package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
	"github.com/viralforge/crowdfund-ledger-service/internal/ports"
)

const idempotencyKeyPrefix = "crowdfund:idem:"

// RedisIdempotencyStore keeps idempotency records in Redis hashes with a TTL
// so replayed requests short-circuit without touching postgres.
type RedisIdempotencyStore struct {
	client *redis.Client
}

func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string, now time.Time) (*ports.IdempotencyRecord, error) {
	data, err := s.client.HGetAll(ctx, idempotencyKeyPrefix+key).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	rec := &ports.IdempotencyRecord{Key: key, RequestHash: data["request_hash"]}
	if raw, ok := data["response_code"]; ok && raw != "" {
		if code, convErr := strconv.Atoi(raw); convErr == nil {
			rec.ResponseCode = code
		}
	}
	if raw, ok := data["response_body"]; ok && raw != "" {
		rec.ResponseBody = []byte(raw)
	}
	if raw, ok := data["expires_at"]; ok && raw != "" {
		if unix, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil {
			rec.ExpiresAt = time.Unix(unix, 0).UTC()
		}
	}
	if !rec.ExpiresAt.IsZero() && now.After(rec.ExpiresAt) {
		_ = s.client.Del(ctx, idempotencyKeyPrefix+key).Err()
		return nil, nil
	}
	return rec, nil
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error {
	redisKey := idempotencyKeyPrefix + key
	ok, err := s.client.HSetNX(ctx, redisKey, "request_hash", requestHash).Result()
	if err != nil {
		return err
	}
	if !ok {
		existing, getErr := s.client.HGet(ctx, redisKey, "request_hash").Result()
		if getErr != nil && getErr != redis.Nil {
			return getErr
		}
		if existing != requestHash {
			return domain.ErrIdempotencyConflict
		}
		return nil
	}
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, redisKey, "expires_at", expiresAt.Unix())
		p.ExpireAt(ctx, redisKey, expiresAt)
		return nil
	})
	return err
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key string, responseCode int, responseBody []byte, at time.Time) error {
	redisKey := idempotencyKeyPrefix + key
	exists, err := s.client.Exists(ctx, redisKey).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return domain.ErrNotFound
	}
	return s.client.HSet(ctx, redisKey,
		"response_code", responseCode,
		"response_body", string(responseBody),
		"completed_at", at.Unix(),
	).Err()
}
