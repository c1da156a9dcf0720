/*
 * @Description: 智能缓存工厂，自动选择 Redis 或内存缓存
 * @Author: 安知鱼
 * @Date: 2026-09-22 00:00:00
 * @LastEditTime: 2026-10-05 00:00:00
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/pkg/config"
)

// NewRedisClient 根据配置创建 Redis 客户端。
// 未配置地址或连接失败时返回 nil，由上层降级到内存缓存。
func NewRedisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	log := logger.Named("cache")
	addr := cfg.GetString(config.KeyRedisAddr)
	if addr == "" {
		log.Info("⚠️ Redis 地址未配置，将使用内存缓存")
		return nil
	}

	db, err := strconv.Atoi(cfg.GetString(config.KeyRedisDB))
	if err != nil {
		log.Warn("⚠️ 无效的 Redis.DB 值，将使用内存缓存", zap.String("value", cfg.GetString(config.KeyRedisDB)))
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.GetString(config.KeyRedisPassword),
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ 连接 Redis 失败，将使用内存缓存", zap.String("addr", addr), zap.Int("db", db), zap.Error(err))
		rdb.Close()
		return nil
	}

	log.Info("✅ 成功连接到 Redis", zap.String("addr", addr), zap.Int("db", db))
	return rdb
}

// NewCacheServiceWithFallback 创建带有自动降级功能的缓存服务
// 如果 redisClient 为 nil，自动降级到内存缓存
func NewCacheServiceWithFallback(redisClient *redis.Client) CacheService {
	log := logger.Named("cache")
	if redisClient == nil {
		log.Info("🔄 使用内存缓存服务（Memory Cache）")
		return NewMemoryCacheService()
	}

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("⚠️ Redis 不可用，降级到内存缓存", zap.Error(err))
		return NewMemoryCacheService()
	}

	log.Info("✅ 使用 Redis 缓存服务")
	return NewCacheService(redisClient)
}

// CacheServiceType 缓存服务类型
type CacheServiceType string

const (
	CacheTypeRedis  CacheServiceType = "redis"
	CacheTypeMemory CacheServiceType = "memory"
)

// GetCacheServiceType 获取当前使用的缓存类型
func GetCacheServiceType(svc CacheService) CacheServiceType {
	switch svc.(type) {
	case *redisCacheService:
		return CacheTypeRedis
	default:
		return CacheTypeMemory
	}
}

// StopCacheService 停止缓存服务的后台清理任务（仅内存实现需要）
func StopCacheService(svc CacheService) {
	if m, ok := svc.(*memoryCacheService); ok {
		m.Stop()
	}
}
