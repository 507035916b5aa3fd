// Package cache provides the redis-backed read cache. It only ever holds
// derived copies of database state: the database stays the single arbiter
// for every balance decision, and writers invalidate rather than update.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const balanceCacheTTL = 5 * time.Minute

type Service struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func NewService(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{client: client, defaultTTL: defaultTTL}
}

func balanceKey(userID uint) string {
	return fmt.Sprintf("wallet:balance:%d", userID)
}

// GetBalance returns the cached wallet balance, or redis.Nil via error when
// absent.
func (s *Service) GetBalance(ctx context.Context, userID uint) (float64, error) {
	val, err := s.client.Get(ctx, balanceKey(userID)).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(val, 64)
}

// SetBalance caches the wallet balance with a short TTL.
func (s *Service) SetBalance(ctx context.Context, userID uint, balance float64) error {
	return s.client.Set(ctx, balanceKey(userID), strconv.FormatFloat(balance, 'f', -1, 64), balanceCacheTTL).Err()
}

// InvalidateBalance drops the cached balance after any mutation.
func (s *Service) InvalidateBalance(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, balanceKey(userID)).Err()
}

// HealthCheck pings redis.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Service) Close() error {
	return s.client.Close()
}
