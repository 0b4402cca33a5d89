package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// MatchCache is a short-TTL read-through cache over registry match documents.
// Only the placement path uses it; settlement always reads the registry
// directly so finished scores are never stale.
type MatchCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewMatchCache creates a match cache with the given TTL
func NewMatchCache(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *MatchCache {
	return &MatchCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "match_cache").Logger(),
	}
}

func matchKey(id string) string { return "match:" + id }

// Get returns the cached match, or (nil, false) on a miss.
// Cache errors are treated as misses; the registry is the fallback.
func (c *MatchCache) Get(ctx context.Context, id string) (*models.Match, bool) {
	b, err := c.rdb.Get(ctx, matchKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("match_id", id).Msg("cache read failed")
		return nil, false
	}

	var match models.Match
	if err := json.Unmarshal(b, &match); err != nil {
		c.logger.Warn().Err(err).Str("match_id", id).Msg("cache entry corrupt")
		return nil, false
	}
	return &match, true
}

// Set stores a match document with the configured TTL
func (c *MatchCache) Set(ctx context.Context, match *models.Match) {
	b, err := json.Marshal(match)
	if err != nil {
		c.logger.Warn().Err(err).Str("match_id", match.ID).Msg("cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, matchKey(match.ID), b, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("match_id", match.ID).Msg("cache write failed")
	}
}

// Invalidate drops a match from the cache, used after score updates
func (c *MatchCache) Invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, matchKey(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("match_id", id).Msg("cache invalidate failed")
	}
}
