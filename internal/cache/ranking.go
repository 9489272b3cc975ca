// Package cache keeps ranked publication pages in Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"plataforma-formacao/internal/domain"
)

type RankingCache interface {
	Get(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams) (*domain.OffsetPage[domain.Publication], bool)
	Set(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams, page domain.OffsetPage[domain.Publication])
	Invalidate(ctx context.Context, forumTopicID uuid.UUID)
}

// Every page of one forum topic lives in a single hash, so one DEL drops them all.
type rankingCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRankingCache returns a cache that silently does nothing when client is nil.
func NewRankingCache(client *redis.Client, ttl time.Duration) RankingCache {
	return &rankingCache{redis: client, ttl: ttl}
}

func rankingKey(forumTopicID uuid.UUID) string {
	return "forum:ranking:" + forumTopicID.String()
}

func pageField(params domain.OffsetParams) string {
	return fmt.Sprintf("%d:%d", params.Limit, params.Offset)
}

func (c *rankingCache) Get(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams) (*domain.OffsetPage[domain.Publication], bool) {
	if c.redis == nil {
		return nil, false
	}

	raw, err := c.redis.HGet(ctx, rankingKey(forumTopicID), pageField(params)).Bytes()
	if err != nil {
		return nil, false
	}

	var page domain.OffsetPage[domain.Publication]
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (c *rankingCache) Set(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams, page domain.OffsetPage[domain.Publication]) {
	if c.redis == nil {
		return
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return
	}

	key := rankingKey(forumTopicID)
	pipe := c.redis.TxPipeline()
	pipe.HSet(ctx, key, pageField(params), raw)
	pipe.Expire(ctx, key, c.ttl)
	_, _ = pipe.Exec(ctx)
}

func (c *rankingCache) Invalidate(ctx context.Context, forumTopicID uuid.UUID) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, rankingKey(forumTopicID)).Err()
}
