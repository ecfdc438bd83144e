// Package ratelimit throttles gateway clients, either per process with token
// buckets or across gateway replicas with a Redis fixed window.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"shareit/internal/config"
)

type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// New picks the Redis limiter when an address is configured and the local one otherwise.
func New(cfg config.RateLimitConfig) (Limiter, error) {
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		return NewRedisFixedWindow(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisPrefix, cfg.Limit, cfg.Window)
	}
	return NewLocal(cfg.RPS, cfg.Burst)
}

// IdleTTL is how long a client's bucket survives without requests.
const IdleTTL = 10 * time.Minute

// Local keeps one token bucket per key in memory. Buckets idle for IdleTTL are
// dropped during a sweep that runs at most once per IdleTTL.
type Local struct {
	limiters  sync.Map
	rps       rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep atomic.Int64
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

func NewLocal(rps float64, burst int) (*Local, error) {
	if rps <= 0 {
		return nil, errors.New("rate limiter requires positive rps")
	}
	if burst <= 0 {
		burst = 5
	}
	l := &Local{rps: rate.Limit(rps), burst: burst, idle: IdleTTL, now: time.Now}
	l.lastSweep.Store(l.now().UnixNano())
	return l, nil
}

func (l *Local) Allow(_ context.Context, key string) bool {
	now := l.now()
	l.sweep(now)
	b := l.get(normalizeKey(key))
	b.lastSeen.Store(now.UnixNano())
	return b.limiter.Allow()
}

func (l *Local) get(key string) *bucket {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*bucket)
	}
	actual, _ := l.limiters.LoadOrStore(key, &bucket{limiter: rate.NewLimiter(l.rps, l.burst)})
	return actual.(*bucket)
}

func (l *Local) sweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(l.idle) || !l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	cutoff := now.Add(-l.idle).UnixNano()
	l.limiters.Range(func(key, value any) bool {
		if value.(*bucket).lastSeen.Load() < cutoff {
			l.limiters.Delete(key)
		}
		return true
	})
}

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisFixedWindow allows limit requests per key in each window, shared by
// every gateway pointing at the same Redis.
type RedisFixedWindow struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisFixedWindow(addr, password, prefix string, limit int, window time.Duration) (*RedisFixedWindow, error) {
	if limit <= 0 || window <= 0 {
		return nil, errors.New("rate limiter requires positive limit and window")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("rate limiter redis addr is required")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "shareit:ratelimit"
	}
	return &RedisFixedWindow{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

// Allow fails closed: a Redis error denies the request.
func (l *RedisFixedWindow) Allow(ctx context.Context, key string) bool {
	windowMs := l.window.Milliseconds()
	if windowMs <= 0 {
		return true
	}
	slot := l.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, normalizeKey(key), slot)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false
	}
	return count <= int64(l.limit)
}

func (l *RedisFixedWindow) Close() error {
	return l.client.Close()
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "unknown"
	}
	return key
}
