package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindow prunes expired admissions, checks the cap and records the
// new admission in one atomic step, so two concurrent requests for the same
// key cannot both slip under the limit.
var slidingWindow = redis.NewScript(`
local cutoff = tonumber(ARGV[1]) - tonumber(ARGV[2])
redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", cutoff)
if redis.call("ZCARD", KEYS[1]) >= tonumber(ARGV[3]) then
	return 0
end
redis.call("ZADD", KEYS[1], ARGV[1], ARGV[4])
redis.call("PEXPIRE", KEYS[1], ARGV[2])
return 1
`)

// RedisLimiter keeps the sliding window in a Redis sorted set scored by
// admission time, for deployments where several instances share one budget.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		max:    max,
		window: window,
	}
}

func (r *RedisLimiter) Admit(ctx context.Context, clientKey string) (bool, error) {
	now := time.Now().UnixMilli()
	allowed, err := slidingWindow.Run(ctx, r.client,
		[]string{"throttle:" + clientKey},
		now, r.window.Milliseconds(), r.max, uuid.NewString(),
	).Int()
	if err != nil {
		return false, err
	}
	return allowed == 1, nil
}
