package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Service memoizes optimization results in redis with a short TTL. Results
// are stored as JSON under a key derived from the slate and the full
// request settings.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

func NewService(client *redis.Client, ttl time.Duration) *Service {
	return &Service{client: client, ttl: ttl}
}

func (s *Service) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrMiss
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// SetWithRetry writes with linear backoff. Cache writes are best-effort;
// callers log the returned error instead of failing the request.
func (s *Service) SetWithRetry(ctx context.Context, key string, value interface{}, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = s.Set(ctx, key, value); err == nil {
			return nil
		}
		logrus.Warnf("Cache set failed (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(time.Millisecond * 100 * time.Duration(i+1))
	}
	return err
}

// ResultKey builds the memoization key for one optimize request: slate id
// plus a digest of the canonical settings payload. Identical requests
// inside the TTL window reuse the stored result.
func ResultKey(slateID string, settingsPayload interface{}) (string, error) {
	data, err := json.Marshal(settingsPayload)
	if err != nil {
		return "", fmt.Errorf("failed to hash settings: %w", err)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("optimization:%s:%s", slateID, hex.EncodeToString(sum[:])), nil
}
