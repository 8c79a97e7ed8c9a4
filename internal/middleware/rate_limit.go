package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Token bucket refill in Lua so the read-modify-write stays atomic under
// concurrent requests from the same client.
const tokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'updated_at')
local tokens = tonumber(bucket[1])
local updated_at = tonumber(bucket[2])

if tokens == nil or updated_at == nil then
    tokens = capacity
    updated_at = now
end

local elapsed = math.max(0, now - updated_at)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
local retry_after = 0

if tokens >= requested then
    tokens = tokens - requested
    allowed = 1
else
    retry_after = (requested - tokens) / rate
end

redis.call('HMSET', key, 'tokens', tokens, 'updated_at', now)
redis.call('EXPIRE', key, 86400)

return {allowed, math.floor(tokens), math.ceil(retry_after)}
`

// RateLimit throttles per client IP, qps tokens per second with a burst of
// 2*qps. Fail-open: a dead redis must never block chat traffic.
func RateLimit(redisClient *redis.Client, qps int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rate_limit:chat:" + c.ClientIP()

		capacity := 2 * qps
		rate := float64(qps)
		now := float64(time.Now().UnixNano()) / 1e9

		result, err := redisClient.Eval(
			c.Request.Context(),
			tokenBucketScript,
			[]string{key},
			capacity, rate, now, 1,
		).Result()
		if err != nil {
			log.Printf("rate limiter unavailable (degraded): %v", err)
			c.Next()
			return
		}

		allowed := int64(0)
		remaining := capacity
		retryAfter := 0
		if arr, ok := result.([]any); ok && len(arr) >= 3 {
			if v, ok := arr[0].(int64); ok {
				allowed = v
			}
			if v, ok := arr[1].(int64); ok {
				remaining = int(v)
			}
			if v, ok := arr[2].(int64); ok {
				retryAfter = int(v)
			}
		}

		if allowed == 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(capacity))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(capacity))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
