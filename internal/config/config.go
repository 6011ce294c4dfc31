// 包 config：进程配置，统一从环境变量读取，main 只做装配
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config 服务与 CLI 共用；未设置的变量回退到默认值
type Config struct {
	Addr    string `validate:"required"`
	APIBase string `validate:"required,startswith=/"`

	// DatabaseURL 为空时使用进程内仓储
	DatabaseURL string
	SeedOnStart bool

	RedisAddr          string
	RedisPass          string
	RedisDB            int `validate:"gte=0"`
	SharedGeocodeCache bool

	NominatimURL       string        `validate:"required,url"`
	NominatimUserAgent string        `validate:"required"`
	NominatimRegion    string        `validate:"required"`
	NominatimTimeout   time.Duration `validate:"gt=0"`

	CacheSize   int           `validate:"gt=0"`
	CacheTTL    time.Duration `validate:"gt=0"`
	MinInterval time.Duration `validate:"gt=0"`

	DefaultRadiusKm float64 `validate:"gt=0"`
	GeoIPCityPath   string

	RateLimitEnabled bool
	RateLimitQPS     int `validate:"gt=0"`

	TLSEnabled  bool
	TLSCertPath string
	TLSKeyPath  string
}

// FromEnv 读取环境变量；数值解析失败时回退默认值，随后由 Validate 兜底
func FromEnv() Config {
	return Config{
		Addr:    str("ADDR", ":8080"),
		APIBase: strings.TrimRight(str("API_BASE", "/api"), "/"),

		DatabaseURL: databaseURL(),
		SeedOnStart: flag("SEED_ON_START", true),

		RedisAddr:          str("REDIS_HOST", "127.0.0.1") + ":" + str("REDIS_PORT", "6379"),
		RedisPass:          os.Getenv("REDIS_PASS"),
		RedisDB:            integer("REDIS_DB", 0),
		SharedGeocodeCache: flag("GEOCODE_SHARED_CACHE", false),

		NominatimURL:       str("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
		NominatimUserAgent: str("NOMINATIM_USER_AGENT", "Relief-Resource-Locator/1.0"),
		NominatimRegion:    str("NOMINATIM_REGION", "Ontario,Canada"),
		NominatimTimeout:   time.Duration(integer("NOMINATIM_TIMEOUT_MS", 10000)) * time.Millisecond,

		CacheSize:   integer("GEOCODE_CACHE_SIZE", 1000),
		CacheTTL:    time.Duration(integer("GEOCODE_CACHE_TTL_S", 86400)) * time.Second,
		MinInterval: time.Duration(integer("GEOCODE_MIN_INTERVAL_MS", 1000)) * time.Millisecond,

		DefaultRadiusKm: float("DEFAULT_RADIUS_KM", 25),
		GeoIPCityPath:   os.Getenv("GEOIP_CITY_PATH"),

		RateLimitEnabled: flag("RATE_LIMIT_ENABLED", false),
		RateLimitQPS:     integer("RATE_LIMIT_QPS", 200),

		TLSEnabled:  flag("TLS_ENABLE", false),
		TLSCertPath: str("TLS_CERT_PATH", "data/certs/server.crt"),
		TLSKeyPath:  str("TLS_KEY_PATH", "data/certs/server.key"),
	}
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// databaseURL：DATABASE_URL 优先；否则仅在显式设置 PG_HOST 时按 PG_* 拼接
func databaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	if os.Getenv("PG_HOST") == "" {
		return ""
	}
	dsn := "postgres://" + str("PG_USER", "postgres")
	if pass := os.Getenv("PG_PASSWORD"); pass != "" {
		dsn += ":" + pass
	}
	dsn += "@" + os.Getenv("PG_HOST") + ":" + str("PG_PORT", "5432") + "/" + str("PG_DB", "relief")
	return dsn + "?sslmode=" + str("PG_SSLMODE", "disable")
}

func str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func flag(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v == "true" || v == "1"
}

func integer(key string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return n
	}
	return def
}

func float(key string, def float64) float64 {
	if n, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64); err == nil {
		return n
	}
	return def
}
