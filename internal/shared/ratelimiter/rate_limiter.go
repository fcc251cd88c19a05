// Package ratelimiter は操作の頻度制限を提供します。
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter は固定ウィンドウ方式でキーごとの操作回数を制限します。
type RateLimiter struct {
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count     int
	lastReset time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		buckets:  make(map[string]*bucket),
	}
}

// Allow はキーの操作が上限内かを判定します。
// HTTPリクエストを待たせるわけにはいかないので、ブロックせずに可否だけ返します。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.lastReset) >= rl.interval {
		rl.buckets[key] = &bucket{count: 1, lastReset: now}
		return true
	}

	b.count++
	return b.count <= rl.limit
}

// Middleware はクライアントIP単位で制限するginミドルウェアを返します。
// 上限超過時は429を返します。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
