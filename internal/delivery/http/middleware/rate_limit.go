package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-careerbridge/internal/delivery/http/response"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/logger"
	"go-careerbridge/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// Limit is a fixed-window request budget.
type Limit struct {
	// Bucket names the counter family and becomes part of the redis key.
	Bucket string
	Max    int
	Window time.Duration
	// Key picks who is being counted.
	Key func(*gin.Context) string
}

// APILimit caps every route per client IP.
func APILimit() Limit {
	return Limit{Bucket: "api", Max: 100, Window: time.Minute, Key: ClientIP}
}

// LoginLimit caps login and registration attempts per client IP.
func LoginLimit() Limit {
	return Limit{Bucket: "login", Max: 10, Window: time.Minute, Key: ClientIP}
}

// UploadLimit caps resume and logo uploads per signed-in account, so users
// behind one NAT do not share a budget. It must run after AuthMiddleware.
func UploadLimit() Limit {
	return Limit{Bucket: "upload", Max: 10, Window: time.Minute, Key: CallerID}
}

func ClientIP(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// CallerID keys by the authenticated user, falling back to the IP on
// routes that carry no session.
func CallerID(c *gin.Context) string {
	if id := c.GetString(string(domain.KeyUserID)); id != "" {
		return "user:" + id
	}
	return ClientIP(c)
}

// RateLimit enforces l. Counters are shared through redis when the
// process-wide client is configured and kept in memory otherwise. A redis
// failure degrades to the in-memory counter for that request.
func RateLimit(l Limit) gin.HandlerFunc {
	return rateLimit(l, redis.Client, newMemoryCounter(time.Now))
}

func rateLimit(l Limit, shared func() *goredis.Client, local *memoryCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "cb:rl:" + l.Bucket + ":" + l.Key(c)

		var (
			count   int
			resetAt time.Time
			err     error
		)
		client := shared()
		if client != nil {
			count, resetAt, err = redisHit(c.Request.Context(), client, key, l.Window)
			if err != nil {
				logger.Log.Error("rate limit redis failed, counting in memory", "bucket", l.Bucket, "error", err)
			}
		}
		if client == nil || err != nil {
			count, resetAt = local.hit(key, l.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(l.Max-count, 0)))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > l.Max {
			wait := max(int(resetAt.Sub(local.now()).Round(time.Second).Seconds()), 1)
			c.Header("Retry-After", strconv.Itoa(wait))
			logger.Log.Warn("rate limit exceeded",
				"bucket", l.Bucket,
				"key", l.Key(c),
				"path", c.FullPath(),
				"request_id", c.GetString(string(domain.KeyRequestID)),
			)
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// windowScript bumps the counter and starts its window on the first hit.
// It returns the count and the window's remaining milliseconds.
var windowScript = goredis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

func redisHit(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	res, err := windowScript.Run(ctx, client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, err
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit: unexpected reply %v", res)
	}
	return int(res[0]), time.Now().Add(time.Duration(res[1]) * time.Millisecond), nil
}

type window struct {
	count   int
	resetAt time.Time
}

// memoryCounter is the single-process fallback. Expired windows are swept
// lazily on the next hit after the longest window seen so far.
type memoryCounter struct {
	mu      sync.Mutex
	windows map[string]window
	now     func() time.Time
	sweepAt time.Time
}

func newMemoryCounter(now func() time.Time) *memoryCounter {
	return &memoryCounter{windows: make(map[string]window), now: now}
}

func (m *memoryCounter) hit(key string, span time.Duration) (int, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.After(m.sweepAt) {
		for k, w := range m.windows {
			if !now.Before(w.resetAt) {
				delete(m.windows, k)
			}
		}
		m.sweepAt = now.Add(span)
	}

	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = window{resetAt: now.Add(span)}
	}
	w.count++
	m.windows[key] = w
	return w.count, w.resetAt
}

func (m *memoryCounter) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
