package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Mostakim52/khuje-nao/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Rate limiting, caching and OTP will be disabled.", err)
		Redis = nil
		return
	}
	log.Println("Connected to Redis successfully")
}

// Rate Limiting
func CheckRateLimit(userId string, limit int, duration time.Duration) (bool, error) {
	key := fmt.Sprintf("rate_limit:%s", userId)
	count, err := Redis.Incr(Ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		Redis.Expire(Ctx, key, duration)
	}

	if count > int64(limit) {
		return false, nil
	}
	return true, nil
}

// OTP store: time-bounded key-value entries keyed by email. Replaces the old
// in-process session dict so codes survive restarts and expire on their own.
func SetOTP(email, code string, ttl time.Duration) error {
	key := fmt.Sprintf("otp:%s", email)
	return Redis.Set(Ctx, key, code, ttl).Err()
}

// GetOTP returns the stored code, or an empty string when expired or absent.
func GetOTP(email string) (string, error) {
	key := fmt.Sprintf("otp:%s", email)
	code, err := Redis.Get(Ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return code, err
}

func DeleteOTP(email string) error {
	return Redis.Del(Ctx, fmt.Sprintf("otp:%s", email)).Err()
}

// Caching. The nil checks cover async writers that race a client teardown.
func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return redis.ErrClosed
	}
	json, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, json, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return redis.ErrClosed
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheInvalidate(pattern string) error {
	if Redis == nil {
		return redis.ErrClosed
	}
	keys, err := Redis.Keys(Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return Redis.Del(Ctx, keys...).Err()
	}
	return nil
}
