// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"smarthub/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client. It stays nil when REDIS_ADDR is empty.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client (REDIS_CACHE_DB).
func InitCache() error {
	if !config.RedisEnabled() {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the generic cache client, or nil when Redis is disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}
