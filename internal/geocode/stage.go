package geocode

import (
	"context"

	"relief-api/internal/geo"
	"relief-api/internal/postal"
)

//go:generate mockgen -source=stage.go -destination=mocks/mocks.go -package=mocks Stage,Provider

// 文档注释：解析层统一契约
// 背景：静态表、进程缓存、共享缓存、外部服务按代价递增排成有序链，首个命中即短路。
// 约束：未命中返回 ErrMiss；只有末端的外部服务层会产生真正的失败。
type Stage interface {
	Name() string
	Lookup(ctx context.Context, raw string, key postal.Key) (geo.Coordinate, error)
}

// Recorder 由需要记住后续层结果的层实现（缓存类）
type Recorder interface {
	Record(ctx context.Context, key postal.Key, c geo.Coordinate)
}

// Provider 为外部地理编码服务，raw 为用户原始输入
type Provider interface {
	FetchCoordinate(ctx context.Context, raw string) (geo.Coordinate, error)
}

// StaticStage：固定静态索引；命中结果不写入任何缓存
type StaticStage struct {
	Index *postal.Index
}

func (s *StaticStage) Name() string { return "static" }

func (s *StaticStage) Lookup(_ context.Context, raw string, key postal.Key) (geo.Coordinate, error) {
	if c, ok := s.Index.Lookup(raw); ok {
		return c, nil
	}
	if c, ok := s.Index.Lookup(string(key)); ok {
		return c, nil
	}
	return geo.Coordinate{}, ErrMiss
}

// CacheStage：进程内缓存层，同时记录外部服务的成功结果
type CacheStage struct {
	Cache *Cache
}

func (s *CacheStage) Name() string { return "cache" }

func (s *CacheStage) Lookup(_ context.Context, _ string, key postal.Key) (geo.Coordinate, error) {
	if c, ok := s.Cache.Get(key); ok {
		return c, nil
	}
	return geo.Coordinate{}, ErrMiss
}

func (s *CacheStage) Record(_ context.Context, key postal.Key, c geo.Coordinate) {
	s.Cache.Put(key, c)
}

// ProviderStage：末端外部服务层
type ProviderStage struct {
	Provider Provider
}

func (s *ProviderStage) Name() string { return "provider" }

func (s *ProviderStage) Lookup(ctx context.Context, raw string, _ postal.Key) (geo.Coordinate, error) {
	return s.Provider.FetchCoordinate(ctx, raw)
}
