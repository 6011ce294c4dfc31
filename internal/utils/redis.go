package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"relief-api/internal/logger"
)

// 文档注释：打开 Redis 客户端
// 背景：共享地理编码层为可选能力；Ping 失败时返回 nil，调用方按“未启用”处理，服务照常启动。
// 约束：addr 为空直接返回 nil。
func OpenRedis(ctx context.Context, addr, pass string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	rc := redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		logger.L().Error("redis_ping_error", "addr", addr, "err", err)
		_ = rc.Close()
		return nil
	}
	logger.L().Info("redis_ping_ok", "addr", addr, "db", db)
	return rc
}
