// Package cache holds the Redis-backed read cache for latest tracking
// positions. A nil client disables caching and callers fall back to the
// database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"motorent-backend/internal/config"
	"motorent-backend/internal/domain"
	"motorent-backend/internal/logger"
)

// NewRedisClient connects to Redis using the configured address. It returns
// nil when the server cannot be reached so the caller can degrade gracefully.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, position cache disabled", "addr", cfg.Addr, "error", err)
		return nil
	}
	return client
}

const positionTTL = 10 * time.Minute

// PositionCache keeps the most recent location sample per tracked subject.
// All methods are no-ops on a nil client.
type PositionCache struct {
	client *redis.Client
}

func NewPositionCache(client *redis.Client) *PositionCache {
	return &PositionCache{client: client}
}

func positionKey(subjectID int64, kind domain.SubjectKind) string {
	return fmt.Sprintf("position:%s:%d", kind, subjectID)
}

// Put stores the sample as the subject's latest position.
func (c *PositionCache) Put(ctx context.Context, s *domain.LocationSample) {
	if c == nil || c.client == nil {
		return
	}
	body, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, positionKey(s.SubjectID, s.SubjectKind), body, positionTTL).Err(); err != nil {
		logger.SideEffectFailure("position_cache_put", err, "subject_id", s.SubjectID)
	}
}

// Get returns the cached latest sample, or nil on a miss or error.
func (c *PositionCache) Get(ctx context.Context, subjectID int64, kind domain.SubjectKind) *domain.LocationSample {
	if c == nil || c.client == nil {
		return nil
	}
	body, err := c.client.Get(ctx, positionKey(subjectID, kind)).Bytes()
	if err != nil {
		return nil
	}
	var s domain.LocationSample
	if err := json.Unmarshal(body, &s); err != nil {
		return nil
	}
	return &s
}
