package utils

import (
	"context"
	"log"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/config"

	"github.com/go-redis/redis/v8"
)

var (
	// AuthCacheClient is the dedicated client for bearer-token verdict caching.
	AuthCacheClient *redis.Client
	// StatsCacheClient caches computed funnel ratios.
	StatsCacheClient *redis.Client
)

// InitAuthCache initializes the Redis client for token verdict caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for token verdict caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitStatsCache initializes the Redis client for funnel ratio caching.
func InitStatsCache() {
	StatsCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisStatsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := StatsCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Stats Cache): %v", err)
	}
}

// GetStatsCacheClient returns the Redis client for funnel ratio caching.
func GetStatsCacheClient() *redis.Client {
	if StatsCacheClient == nil {
		InitStatsCache()
	}
	return StatsCacheClient
}
