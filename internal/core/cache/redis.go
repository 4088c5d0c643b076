package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	RDB *redis.Client
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	return errors.Wrap(c.RDB.Ping(ctx).Err(), "redis ping")
}

func (c *Cache) Close() error { return c.RDB.Close() }

// Hit 固定窗口计数：返回窗口内的第几次命中以及窗口剩余时间
func (c *Cache) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	n, err := c.RDB.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, errors.Wrap(err, "redis incr")
	}
	if n == 1 {
		if err := c.RDB.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, errors.Wrap(err, "redis pexpire")
		}
		return n, window, nil
	}
	ttl, err := c.RDB.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, errors.Wrap(err, "redis pttl")
	}
	// 过期时间丢失（上次 INCR 后进程中断）时补设
	if ttl < 0 {
		if err := c.RDB.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, errors.Wrap(err, "redis pexpire")
		}
		ttl = window
	}
	return n, ttl, nil
}
