package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	bucketIdleThreshold = 1 * time.Hour
	cleanupInterval     = 30 * time.Minute
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter is a per-IP token bucket protecting the public quote and
// apply routes.
type RateLimiter struct {
	mu          sync.Mutex
	capacity    int
	refillEvery time.Duration
	clients     map[string]*clientBucket
	stopCleanup chan struct{}
	log         *zap.Logger
}

func NewRateLimiter(capacity int, refillEvery time.Duration, log *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		capacity:    capacity,
		refillEvery: refillEvery,
		clients:     make(map[string]*clientBucket),
		stopCleanup: make(chan struct{}),
		log:         log,
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, bucket := range rl.clients {
		if now.Sub(bucket.lastRefill) > bucketIdleThreshold {
			delete(rl.clients, ip)
		}
	}
}

func (rl *RateLimiter) Stop() {
	close(rl.stopCleanup)
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, exists := rl.clients[ip]
	if !exists {
		rl.clients[ip] = &clientBucket{tokens: rl.capacity - 1, lastRefill: now}
		return true
	}

	if now.Sub(bucket.lastRefill) >= rl.refillEvery {
		bucket.tokens = rl.capacity
		bucket.lastRefill = now
	}
	if bucket.tokens <= 0 {
		return false
	}
	bucket.tokens--
	return true
}

// Middleware rejects callers that exhausted their bucket.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, _ := net.SplitHostPort(r.RemoteAddr)
		if !rl.Allow(ip) {
			rl.log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
