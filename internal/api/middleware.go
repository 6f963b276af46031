package api

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/backoffice-kit/backoffice/internal/config"
	"github.com/backoffice-kit/backoffice/internal/logger"
	"github.com/backoffice-kit/backoffice/internal/metrics"
	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderActorID   = "X-Actor-Id"
	HeaderActorName = "X-Actor-Name"

	ctxRequestID = "requestId"
)

func GinLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("requestId", c.GetString(ctxRequestID)),
		}
		if len(c.Errors) > 0 {
			log.Error("Request error", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		log.Info("Request", fields...)
	}
}

func CorsMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.Cors.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID, X-Actor-Id, X-Actor-Name")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Retry-After")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestID reuses the caller's X-Request-ID or generates one, and echoes
// it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// ActorMiddleware attributes the request to the actor named in the
// X-Actor-Id and X-Actor-Name headers. Without them the system actor is used.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderActorID))
		if id != "" {
			actor := schema.Actor{ID: id, Name: strings.TrimSpace(c.GetHeader(HeaderActorName))}
			c.Request = c.Request.WithContext(schema.WithActor(c.Request.Context(), actor))
		}
		c.Next()
	}
}

// MetricsMiddleware records request count, latency and in-flight requests
// by route template.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.RequestStarted()
		defer m.RequestFinished()

		c.Next()

		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
	now       func() time.Time
	metrics   *metrics.Metrics
	log       *logger.Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int, m *metrics.Metrics, log *logger.Logger) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(rps),
		burst:     burst,
		idleAfter: 3 * time.Minute,
		now:       time.Now,
		metrics:   m,
		log:       log,
	}
}

// limiterFor returns the bucket for ip, creating it if necessary. Idle
// visitors are swept at most once a minute.
func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > time.Minute {
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.idleAfter {
				delete(rl.visitors, key)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if rl.limiterFor(ip).AllowN(rl.now(), 1) {
			c.Next()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RateLimited()
		}
		if rl.log != nil {
			rl.log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
		}

		retryAfter := 1
		if rl.limit > 0 {
			retryAfter = int(math.Ceil(1 / float64(rl.limit)))
		}
		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
			Error:   codeRateLimited,
			Message: fmt.Sprintf("Rate limit exceeded. Maximum %d requests in a burst.", rl.burst),
		})
	}
}
