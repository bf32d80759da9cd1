package automod

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/castellan/castellan/internal/database/types"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// CachedRuleSource wraps a RuleSource with a short-lived per-guild Redis
// cache. Rule mutations call Invalidate so moderation picks up changes
// immediately; everything else ages out at the TTL. Cache failures fall
// back to the underlying source.
type CachedRuleSource struct {
	inner  RuleSource
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRuleSource creates a new caching rule source.
func NewCachedRuleSource(
	inner RuleSource, client rueidis.Client, ttl time.Duration, logger *zap.Logger,
) *CachedRuleSource {
	return &CachedRuleSource{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.Named("rule_cache"),
	}
}

// GetEnabledRules returns a guild's enabled rules, serving from cache when
// possible and repopulating it on miss.
func (c *CachedRuleSource) GetEnabledRules(ctx context.Context, guildID uint64) ([]*types.Rule, error) {
	key := cacheKey(guildID)

	data, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	if err == nil {
		var rules []*types.Rule
		if err := sonic.Unmarshal(data, &rules); err == nil {
			return rules, nil
		}

		c.logger.Warn("Failed to decode cached rules, falling back to database",
			zap.Uint64("guildID", guildID),
			zap.Error(err))
	} else if !rueidis.IsRedisNil(err) {
		c.logger.Warn("Rule cache read failed, falling back to database",
			zap.Uint64("guildID", guildID),
			zap.Error(err))
	}

	rules, err := c.inner.GetEnabledRules(ctx, guildID)
	if err != nil {
		return nil, err
	}

	encoded, err := sonic.Marshal(rules)
	if err != nil {
		c.logger.Warn("Failed to encode rules for cache",
			zap.Uint64("guildID", guildID),
			zap.Error(err))

		return rules, nil
	}

	setCmd := c.client.B().Set().Key(key).Value(rueidis.BinaryString(encoded)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, setCmd).Error(); err != nil {
		c.logger.Warn("Rule cache write failed",
			zap.Uint64("guildID", guildID),
			zap.Error(err))
	}

	return rules, nil
}

// Invalidate drops a guild's cached rule set.
func (c *CachedRuleSource) Invalidate(ctx context.Context, guildID uint64) error {
	if err := c.client.Do(ctx, c.client.B().Del().Key(cacheKey(guildID)).Build()).Error(); err != nil {
		return fmt.Errorf("failed to invalidate rule cache: %w", err)
	}

	return nil
}

func cacheKey(guildID uint64) string {
	return fmt.Sprintf("automod:rules:%d", guildID)
}
