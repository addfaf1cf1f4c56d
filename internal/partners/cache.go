package partners

import (
	"context"
	"encoding/json"
	"time"

	"partner-map/internal/logger"
	"partner-map/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "partnermap:provinces"

// 文档注释：Redis 热点缓存包装
// 背景：合作伙伴列表变化慢，多个终端同时打开时避免重复打后端；TTL 可调。
// 约束：rc 为空时直接透传；缓存读写失败不影响主流程，只记录日志。
type CachedSource struct {
	inner Source
	rc    *redis.Client
	ttl   time.Duration
}

func NewCachedSource(inner Source, rc *redis.Client, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedSource{inner: inner, rc: rc, ttl: ttl}
}

func (c *CachedSource) List(ctx context.Context) ([]Province, error) {
	if c.rc == nil {
		return c.inner.List(ctx)
	}
	if s, _ := c.rc.Get(ctx, cacheKey).Result(); s != "" {
		var out []Province
		if err := json.Unmarshal([]byte(s), &out); err == nil {
			metrics.PartnerCacheHitsTotal.Inc()
			return out, nil
		}
	}
	metrics.PartnerCacheMissesTotal.Inc()
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	b, _ := json.Marshal(out)
	if err := c.rc.Set(ctx, cacheKey, string(b), c.ttl).Err(); err != nil {
		logger.L().Warn("partners_cache_set_error", "err", err)
	}
	return out, nil
}

// Invalidate：删除缓存，供文件变更或手动刷新时调用
func (c *CachedSource) Invalidate(ctx context.Context) error {
	if c.rc == nil {
		return nil
	}
	return c.rc.Del(ctx, cacheKey).Err()
}
