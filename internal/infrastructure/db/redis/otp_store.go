package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careloop/booking-platform/internal/api/metrics"
)

// OTPStore holds one-time passwords in Redis with a TTL.
// Key format: otp:<purpose>:<key>
type OTPStore struct {
	client *redis.Client
}

// NewOTPStore creates an OTPStore wrapping the given Redis client.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

// Save stores the code under the purpose-scoped key, replacing any previous
// code for the same key.
func (s *OTPStore) Save(ctx context.Context, purpose, key, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(purpose, key), code, ttl).Err(); err != nil {
		return fmt.Errorf("otp save: %w", err)
	}
	metrics.OTPIssuedTotal.WithLabelValues(purpose).Inc()
	return nil
}

// Verify checks the code and deletes it on success so it cannot be replayed.
// An expired or absent code verifies as false, not as an error.
func (s *OTPStore) Verify(ctx context.Context, purpose, key, code string) (bool, error) {
	k := s.key(purpose, key)

	stored, err := s.client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("otp verify: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	if err := s.client.Del(ctx, k).Err(); err != nil {
		return false, fmt.Errorf("otp consume: %w", err)
	}
	return true, nil
}

func (s *OTPStore) key(purpose, key string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, key)
}
