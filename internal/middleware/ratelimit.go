package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/micropost/internal/metrics"
	"github.com/xxxsen/micropost/internal/pkg/response"
)

type rateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	seen   *expirable.LRU[string, struct{}]
}

// RateLimit allows one request per (client ip, user, route) within window.
// Keys expire with the window; maxKeys bounds memory.
func RateLimit(window time.Duration, maxKeys int) gin.HandlerFunc {
	return newRateLimiter(window, maxKeys).handle
}

func newRateLimiter(window time.Duration, maxKeys int) *rateLimiter {
	l := &rateLimiter{window: window}
	if window > 0 {
		l.seen = expirable.NewLRU[string, struct{}](maxKeys, nil, window)
	}
	return l
}

func (l *rateLimiter) handle(c *gin.Context) {
	if l.window <= 0 {
		c.Next()
		return
	}
	ip := c.ClientIP()
	uid := IdentityFrom(c).UserID()
	if uid == "" {
		uid = "0"
	}
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	key := strings.Join([]string{ip, uid, path}, "|")

	l.mu.Lock()
	limited := l.seen.Contains(key)
	if !limited {
		l.seen.Add(key, struct{}{})
	}
	l.mu.Unlock()

	if limited {
		logutil.GetLogger(c.Request.Context()).Warn("rate limit hit",
			zap.String("ip", ip),
			zap.String("user_id", uid),
			zap.String("path", path),
		)
		metrics.RateLimitedTotal.WithLabelValues(path).Inc()
		response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, http.StatusText(http.StatusTooManyRequests))
		return
	}
	c.Next()
}
