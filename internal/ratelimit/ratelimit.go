// Package ratelimit throttles expensive per-user operations with a Redis
// sliding window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether key may perform one more request.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Removes expired entries, counts, and records the request only if under limit.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local seq_key = KEYS[2]
local now = tonumber(ARGV[1])
local window_ms = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window_ms)
local count = redis.call('ZCARD', key)

if count < limit then
	local seq = redis.call('INCR', seq_key)
	redis.call('ZADD', key, now, now .. ':' .. seq)
	redis.call('PEXPIRE', key, window_ms)
	redis.call('PEXPIRE', seq_key, window_ms)
	return {1, limit - count - 1, 0}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local retry = 0
if #oldest >= 2 then
	retry = tonumber(oldest[2]) + window_ms - now
end
return {0, 0, retry}
`)

// SlidingWindow is a Limiter backed by a sorted set per key.
type SlidingWindow struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewSlidingWindow allows limit requests per key in any window-long interval.
func NewSlidingWindow(client redis.Cmdable, limit int, window time.Duration, prefix string) *SlidingWindow {
	return &SlidingWindow{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
		now:    time.Now,
	}
}

func (l *SlidingWindow) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := l.prefix + key

	res, err := slidingWindowScript.Run(ctx, l.client, []string{redisKey, redisKey + ":seq"},
		l.now().UnixMilli(),
		l.window.Milliseconds(),
		l.limit,
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("unexpected rate limit reply length: %d", len(res))
	}

	d := Decision{
		Allowed:   res[0] == 1,
		Remaining: int(res[1]),
	}
	if !d.Allowed && res[2] > 0 {
		d.RetryAfter = time.Duration(res[2]) * time.Millisecond
	}
	return d, nil
}
