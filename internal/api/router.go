package api

import (
	"net/http"
	"strings"

	"github.com/backoffice-kit/backoffice/internal/config"
	"github.com/backoffice-kit/backoffice/internal/logger"
	"github.com/backoffice-kit/backoffice/internal/validation"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the middleware chain and every
// owner, audit and health route.
func NewRouter(cfg *config.Config, h *Handler, log *logger.Logger) *gin.Engine {
	validation.Install()
	gin.SetMode(ginMode(cfg))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(GinLogger(log))
	r.Use(CorsMiddleware(cfg))
	if h.Metrics != nil {
		r.Use(MetricsMiddleware(h.Metrics))
	}
	if cfg.RateLimiter.Enabled {
		limiter := NewRateLimiter(cfg.RateLimiter.RequestsPerSecond, cfg.RateLimiter.Burst, h.Metrics, log)
		r.Use(limiter.Middleware())
	}
	r.Use(ActorMiddleware())

	r.GET("/health", h.Health)
	if cfg.Metrics.Enabled && h.Metrics != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(h.Metrics.Handler()))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/owners", h.ListOwners)
		apiGroup.POST("/owners", h.CreateOwner)
		apiGroup.GET("/owners/:id", h.GetOwner)
		apiGroup.PUT("/owners/:id", h.UpdateOwner)
		apiGroup.DELETE("/owners/:id", h.DeleteOwner)
		apiGroup.GET("/ownership/summary", h.OwnershipSummary)
		apiGroup.GET("/audit", h.ListAudit)
	}

	r.NoRoute(func(c *gin.Context) {
		msg := "Route not found"
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			msg = "API route not found"
		}
		c.JSON(http.StatusNotFound, ErrorResponse{Error: codeNotFound, Message: msg})
	})

	return r
}

func ginMode(cfg *config.Config) string {
	switch {
	case cfg.IsProduction():
		return gin.ReleaseMode
	case cfg.Server.RunMode == gin.TestMode:
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
