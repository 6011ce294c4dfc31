// 包 geocode：邮编到坐标的分层解析（静态表 → 进程缓存 → 共享缓存 → 外部服务）
package geocode

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"relief-api/internal/geo"
	"relief-api/internal/logger"
	"relief-api/internal/metrics"
	"relief-api/internal/postal"
)

// 文档注释：分层解析器
// 背景：按代价从低到高依次尝试各层，首个命中即返回；外部服务成功后回写其前面的缓存层。
// 约束：
// - 静态表命中不写缓存；
// - 中间层的错误只记录，继续下一层；全部未命中时返回 *ResolutionError（errors.Is ErrNotFound）；
// - 同一键的并发解析合并为一次链路遍历，避免重复外呼；无部分结果。
type Resolver struct {
	stages []Stage
	group  singleflight.Group
}

func NewResolver(stages ...Stage) *Resolver {
	var list []Stage
	for _, s := range stages {
		if s != nil {
			list = append(list, s)
		}
	}
	return &Resolver{stages: list}
}

// Stages 返回链路中各层名称，按尝试顺序
func (r *Resolver) Stages() []string {
	out := make([]string, 0, len(r.stages))
	for _, s := range r.stages {
		out = append(out, s.Name())
	}
	return out
}

func (r *Resolver) Resolve(ctx context.Context, raw string) (geo.Coordinate, error) {
	key := postal.Normalize(raw)
	if key == "" {
		metrics.ResolveTotal.WithLabelValues("not_found").Inc()
		return geo.Coordinate{}, &ResolutionError{Key: key, Err: ErrMiss}
	}
	t0 := time.Now()
	v, err, shared := r.group.Do(string(key), func() (any, error) {
		// 共享的解析不随任一调用方取消；耗时由外部服务客户端超时约束
		return r.walk(context.WithoutCancel(ctx), raw, key)
	})
	metrics.ResolveDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	if err != nil {
		metrics.ResolveTotal.WithLabelValues("not_found").Inc()
		return geo.Coordinate{}, err
	}
	metrics.ResolveTotal.WithLabelValues("ok").Inc()
	if shared {
		logger.L().Debug("geocode_resolve_shared", "key", key)
	}
	return v.(geo.Coordinate), nil
}

func (r *Resolver) walk(ctx context.Context, raw string, key postal.Key) (geo.Coordinate, error) {
	lastErr := ErrMiss
	for i, s := range r.stages {
		c, err := s.Lookup(ctx, raw, key)
		if err == nil {
			metrics.StageHitsTotal.WithLabelValues(s.Name()).Inc()
			logger.L().Debug("geocode_stage_hit", "stage", s.Name(), "key", key, "lat", c.Lat, "lng", c.Lng)
			r.remember(ctx, i, key, c)
			return c, nil
		}
		if errors.Is(err, ErrMiss) {
			metrics.StageMissesTotal.WithLabelValues(s.Name()).Inc()
			continue
		}
		lastErr = err
		logger.L().Error("geocode_stage_error", "stage", s.Name(), "key", key, "err", err)
	}
	return geo.Coordinate{}, &ResolutionError{Key: key, Err: lastErr}
}

// remember：把第 hit 层的结果写回它之前的可记录层
func (r *Resolver) remember(ctx context.Context, hit int, key postal.Key, c geo.Coordinate) {
	for _, s := range r.stages[:hit] {
		if rec, ok := s.(Recorder); ok {
			rec.Record(ctx, key, c)
		}
	}
}
