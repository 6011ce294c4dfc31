// 包 app：服务与 CLI 共用的装配逻辑（仓储选择、解析链构建）
package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"

	"relief-api/internal/config"
	"relief-api/internal/geocode"
	"relief-api/internal/logger"
	"relief-api/internal/migrate"
	"relief-api/internal/nominatim"
	"relief-api/internal/postal"
	"relief-api/internal/store"
	"relief-api/internal/utils"
)

// 文档注释：打开仓储
// 背景：配置了数据库时使用 Postgres 并确保表结构；否则退回进程内仓储（开发环境）。
// 返回：仓储与关闭函数；关闭函数总是非空。
func OpenRepository(ctx context.Context, cfg config.Config) (store.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.L().Info("repository_memory")
		return store.NewMemory(), func() {}, nil
	}
	db, err := utils.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.L().Info("db_open_ok")
	if err := migrate.EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store.AttachDB(db), func() { _ = db.Close() }, nil
}

// 文档注释：构建解析链
// 顺序：静态表 -> 进程内缓存 -> Redis 共享层（rc 非空时）-> Nominatim。
// 约束：外部服务节流器默认使用进程级单例，保证同一进程内所有调用共享间隔。
func BuildResolver(cfg config.Config, rc *redis.Client) *geocode.Resolver {
	th := nominatim.Shared()
	if cfg.MinInterval != th.Interval() {
		th = nominatim.NewThrottle(cfg.MinInterval)
	}
	client := nominatim.NewClient(
		nominatim.WithBaseURL(cfg.NominatimURL),
		nominatim.WithUserAgent(cfg.NominatimUserAgent),
		nominatim.WithRegion(cfg.NominatimRegion),
		nominatim.WithHTTPClient(&http.Client{Timeout: cfg.NominatimTimeout}),
		nominatim.WithThrottle(th),
	)

	stages := []geocode.Stage{
		&geocode.StaticStage{Index: postal.NewTorontoIndex()},
		&geocode.CacheStage{Cache: geocode.NewCache(cfg.CacheSize, cfg.CacheTTL)},
	}
	if rc != nil {
		stages = append(stages, geocode.NewSharedStage(rc, cfg.CacheTTL))
	}
	stages = append(stages, &geocode.ProviderStage{Provider: client})

	r := geocode.NewResolver(stages...)
	logger.L().Debug("geocode_chain", "stages", r.Stages())
	return r
}
