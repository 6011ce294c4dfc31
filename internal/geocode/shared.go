package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"relief-api/internal/geo"
	"relief-api/internal/logger"
	"relief-api/internal/metrics"
	"relief-api/internal/postal"
)

// 文档注释：跨副本共享的地理编码层（Redis，可选）
// 背景：多实例部署时各进程缓存互不可见，共享层让一个副本的外呼结果被其他副本复用，进一步减少外部请求。
// 约束：位于进程缓存之后、外部服务之前；Redis 故障只记录日志并按未命中处理，不影响解析结果。
type SharedStage struct {
	Client redis.Cmdable
	TTL    time.Duration
	Prefix string
}

func NewSharedStage(rc redis.Cmdable, ttl time.Duration) *SharedStage {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &SharedStage{Client: rc, TTL: ttl, Prefix: "geocode:"}
}

func (s *SharedStage) Name() string { return "shared" }

func (s *SharedStage) Lookup(ctx context.Context, _ string, key postal.Key) (geo.Coordinate, error) {
	v, err := s.Client.Get(ctx, s.Prefix+string(key)).Result()
	if errors.Is(err, redis.Nil) {
		return geo.Coordinate{}, ErrMiss
	}
	if err != nil {
		metrics.SharedCacheErrorsTotal.Inc()
		return geo.Coordinate{}, err
	}
	var c geo.Coordinate
	if err := json.Unmarshal([]byte(v), &c); err != nil || !c.Valid() {
		logger.L().Warn("geocode_shared_bad_value", "key", key)
		return geo.Coordinate{}, ErrMiss
	}
	return c, nil
}

func (s *SharedStage) Record(ctx context.Context, key postal.Key, c geo.Coordinate) {
	b, _ := json.Marshal(c)
	if err := s.Client.Set(ctx, s.Prefix+string(key), b, s.TTL).Err(); err != nil {
		metrics.SharedCacheErrorsTotal.Inc()
		logger.L().Error("geocode_shared_set_error", "key", key, "err", err)
	}
}
