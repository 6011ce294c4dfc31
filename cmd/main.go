// 程序入口：仅负责读取配置、初始化依赖并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"relief-api/internal/api"
	"relief-api/internal/app"
	"relief-api/internal/config"
	"relief-api/internal/locate"
	"relief-api/internal/logger"
	"relief-api/internal/metrics"
	"relief-api/internal/middleware"
	"relief-api/internal/store"
	"relief-api/internal/utils"
	"relief-api/internal/version"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	// 日志初始化
	l := logger.Setup()
	l.Debug("log_init_ok", "commit", version.Commit)

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		l.Error("config_invalid", "err", err)
		os.Exit(1)
	}
	l.Debug("config_api_base", "base", cfg.APIBase)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := app.OpenRepository(ctx, cfg)
	if err != nil {
		l.Error("repository_open_error", "err", err)
		os.Exit(1)
	}
	defer closeRepo()
	if cfg.SeedOnStart {
		if _, err := store.Seed(ctx, repo); err != nil {
			l.Error("seed_error", "err", err)
		}
	}

	var rc *redis.Client
	if cfg.SharedGeocodeCache {
		rc = utils.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		defer rc.Close()
	}

	deps := api.Deps{
		Repo:            repo,
		Resolver:        app.BuildResolver(cfg, rc),
		DefaultRadiusKm: cfg.DefaultRadiusKm,
	}
	// 背景：定位库缺失只影响 /locate，不阻断启动
	if cfg.GeoIPCityPath != "" {
		if loc, err := locate.Open(cfg.GeoIPCityPath); err == nil {
			deps.Locator = loc
			defer loc.Close()
			l.Info("geoip_ready", "path", cfg.GeoIPCityPath)
		} else {
			l.Error("geoip_open_error", "path", cfg.GeoIPCityPath, "err", err)
		}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(logger.AccessMiddleware(l))
	if cfg.RateLimitEnabled {
		r.Use(middleware.RateLimit(middleware.NewTokenBucket(cfg.RateLimitQPS)))
		l.Info("rate_limit_enabled", "qps", cfg.RateLimitQPS)
	}
	r.Handle(cfg.APIBase+"/metrics", metrics.Handler())
	r.Mount(cfg.APIBase, api.BuildRoutes(deps))

	// NOTE: 向前端暴露 API 基础路径，避免硬编码
	r.Get("/config.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("content-type", "application/javascript; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_, _ = w.Write([]byte("window.__API_BASE__='" + cfg.APIBase + "'\n"))
		_, _ = w.Write([]byte("window.__COMMIT_SHA__='" + version.Commit + "'\n"))
	})
	ui := os.Getenv("UI_DIST")
	if ui == "" {
		ui = filepath.Join("ui", "dist")
	}
	if st, err := os.Stat(ui); err == nil && st.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(ui)))
		l.Debug("config_ui_dir", "dir", ui)
	}

	s := &http.Server{Addr: cfg.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	if cfg.TLSEnabled {
		if err := utils.EnsureSelfSignedCert(cfg.TLSCertPath, cfg.TLSKeyPath, "relief-api.local"); err != nil {
			l.Error("tls_cert_error", "err", err)
			os.Exit(1)
		}
		l.Info("listening_tls", "addr", cfg.Addr, "cert", cfg.TLSCertPath)
		err = s.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
	} else {
		l.Info("listening", "addr", cfg.Addr)
		err = s.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("server_error", "err", err)
	}
	l.Info("server_stopped")
}
