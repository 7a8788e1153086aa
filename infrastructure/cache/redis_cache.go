package cache

import (
	"context"
	"errors"
	"time"

	"flickr-embed/domain/model"
	"flickr-embed/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache connects to redis at addr and checks the connection.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     username,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"addr": addr, "error": err}).Error("Redis ping failed")
		return client, err
	}
	return client, nil
}

// RedisPhotoCache stores photo metadata as plain redis string values and
// lets redis expire them.
type RedisPhotoCache struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisPhotoCache(client *redis.Client) *RedisPhotoCache {
	return &RedisPhotoCache{client: client, now: time.Now}
}

func (c *RedisPhotoCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// Set uses EXAT for absolute expiries and a relative TTL otherwise. Entries
// that would already be expired are refused with model.ErrEntryExpired.
func (c *RedisPhotoCache) Set(ctx context.Context, key string, value []byte, expiry model.Expiry) error {
	if expiry.Remaining(c.now()) <= 0 {
		return model.ErrEntryExpired
	}
	if !expiry.At.IsZero() {
		return c.client.SetArgs(ctx, key, value, redis.SetArgs{ExpireAt: expiry.At}).Err()
	}
	return c.client.Set(ctx, key, value, expiry.TTL).Err()
}

func (c *RedisPhotoCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
