package lib

import (
	"sync"

	"spenden/src/config"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// GetRedisClient returns the shared cache client, or nil when REDIS_HOST is
// unset or unparseable. The outcome is decided once; callers treat a nil
// client as "cache disabled".
func GetRedisClient() *redis.Client {
	redisOnce.Do(func() {
		redisHost := config.Get().RedisHost
		opt, err := redis.ParseURL(redisHost)
		if err != nil {
			log.WithError(err).Warn("Error parsing redis connection string, caching disabled")
			return
		}
		redisClient = redis.NewClient(opt)
	})
	return redisClient
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisOnce.Do(func() {})
	redisClient = c
	return redisClient
}
