package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrLimiterUnavailable is returned when no Redis client is configured.
var ErrLimiterUnavailable = errors.New("upload limiter unavailable: redis not connected")

// UploadLimiter caps reference uploads per client IP with a Redis sliding window.
// Submissions without a file are not counted.
type UploadLimiter struct {
	client   func() *goredis.Client
	maxCount int
	window   time.Duration
	now      func() time.Time
}

// Lua script for sliding window rate limiting
// KEYS[1] = rate limit key
// ARGV[1] = max count allowed
// ARGV[2] = window size in seconds
// ARGV[3] = current timestamp
// Returns: 1 if allowed, 0 if rate limited
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

// NewUploadLimiter creates an upload rate limiter.
// Default: 10 uploads per hour per IP.
func NewUploadLimiter(client func() *goredis.Client, maxCount int, window time.Duration) *UploadLimiter {
	if maxCount <= 0 {
		maxCount = 10
	}
	if window <= 0 {
		window = time.Hour
	}
	return &UploadLimiter{
		client:   client,
		maxCount: maxCount,
		window:   window,
		now:      time.Now,
	}
}

// AllowUpload reports whether ip may upload another file, and the retry
// delay in seconds when it may not. Without Redis it fails open and returns
// ErrLimiterUnavailable so the caller can log it.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip string) (bool, int, error) {
	var client *goredis.Client
	if ul.client != nil {
		client = ul.client()
	}
	if client == nil {
		return true, 0, ErrLimiterUnavailable
	}

	window := int(ul.window.Seconds())
	key := fmt.Sprintf("rl:upload:ip:%s", ip)
	result, err := client.Eval(ctx, uploadRateLimitScript, []string{key}, ul.maxCount, window, ul.now().Unix()).Result()
	if err != nil {
		// Fail open: a broken limiter must not block contact requests
		return true, 0, fmt.Errorf("upload rate limit check failed: %w", err)
	}

	allowed, ok := result.(int64)
	if !ok {
		return true, 0, errors.New("unexpected result type from upload rate limit script")
	}
	if allowed != 1 {
		return false, window, nil
	}
	return true, 0, nil
}
