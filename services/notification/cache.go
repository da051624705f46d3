package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smarthub/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UnreadCache memoizes unread counts per receiver. Failures read as misses.
//
// Every Invalidate bumps the receiver's generation. A count read from the store
// is only cached if the generation taken before the read is still current, so a
// notification written in between can never be hidden by a stale count.
type UnreadCache interface {
	Get(ctx context.Context, rcv models.Receiver) (int64, bool)
	Generation(ctx context.Context, rcv models.Receiver) int64
	Set(ctx context.Context, rcv models.Receiver, n, gen int64)
	Invalidate(ctx context.Context, rcv models.Receiver)
}

type noCache struct{}

func (noCache) Get(context.Context, models.Receiver) (int64, bool) {
	return 0, false
}

func (noCache) Generation(context.Context, models.Receiver) int64 { return 0 }

func (noCache) Set(context.Context, models.Receiver, int64, int64) {}

func (noCache) Invalidate(context.Context, models.Receiver) {}

const (
	unreadKeyPrefix = "unread:"
	// generations outlive any count so a lapsed key cannot repeat a value mid-read.
	generationTTL = time.Hour
	// unknownGeneration never matches a stored generation.
	unknownGeneration = -1
)

func unreadKey(rcv models.Receiver) string {
	return fmt.Sprintf("%s%s:%d", unreadKeyPrefix, rcv.Type, rcv.ID)
}

func generationKey(rcv models.Receiver) string {
	return fmt.Sprintf("%sgen:%s:%d", unreadKeyPrefix, rcv.Type, rcv.ID)
}

// setIfCurrent stores KEYS[1]=ARGV[1] for ARGV[3] ms when KEYS[2] still holds ARGV[2].
var setIfCurrent = redis.NewScript(`
local cur = redis.call('GET', KEYS[2]) or '0'
if cur == ARGV[2] then
	return redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
end
return false
`)

// RedisUnreadCache keeps counts in Redis with a short TTL.
type RedisUnreadCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisUnreadCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisUnreadCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &RedisUnreadCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisUnreadCache) Get(ctx context.Context, rcv models.Receiver) (int64, bool) {
	n, err := c.client.Get(ctx, unreadKey(rcv)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Unread cache read failed", zap.Error(err))
		}
		return 0, false
	}
	return n, true
}

func (c *RedisUnreadCache) Generation(ctx context.Context, rcv models.Receiver) int64 {
	gen, err := c.client.Get(ctx, generationKey(rcv)).Int64()
	switch {
	case errors.Is(err, redis.Nil):
		return 0
	case err != nil:
		c.logger.Warn("Unread cache generation read failed", zap.Error(err))
		return unknownGeneration
	}
	return gen
}

func (c *RedisUnreadCache) Set(ctx context.Context, rcv models.Receiver, n, gen int64) {
	if gen == unknownGeneration {
		return
	}
	keys := []string{unreadKey(rcv), generationKey(rcv)}
	err := setIfCurrent.Run(ctx, c.client, keys, n, gen, c.ttl.Milliseconds()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("Unread cache write failed", zap.Error(err))
	}
}

func (c *RedisUnreadCache) Invalidate(ctx context.Context, rcv models.Receiver) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(rcv))
		pipe.Expire(ctx, generationKey(rcv), generationTTL)
		pipe.Del(ctx, unreadKey(rcv))
		return nil
	})
	if err != nil {
		c.logger.Warn("Unread cache invalidation failed", zap.Error(err))
	}
}
