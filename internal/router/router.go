package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/bizmanager-api/internal/handler/health"
	"github.com/jwalitptl/bizmanager-api/internal/handler/prometheus"
	"github.com/jwalitptl/bizmanager-api/internal/middleware"
	"github.com/jwalitptl/bizmanager-api/pkg/metrics"
)

// Handler mounts a resource's routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// AuthHandler splits its routes between the public and protected groups.
type AuthHandler interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

type RouterConfig struct {
	RateLimit      bool
	RPS            float64
	Burst          int
	AllowedOrigins []string
	RequestTimeout time.Duration
	MetricsPath    string
}

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	authH     AuthHandler
	resources []Handler
	health    *health.Handler
	exporter  *prometheus.Handler
	metrics   *metrics.Metrics
	config    RouterConfig
}

// NewRouter builds the engine with the shared middleware chain. resources
// are mounted behind authentication by Setup.
func NewRouter(
	auth *middleware.AuthMiddleware,
	authH AuthHandler,
	healthH *health.Handler,
	exporter *prometheus.Handler,
	m *metrics.Metrics,
	config RouterConfig,
	resources ...Handler,
) *Router {
	engine := gin.New()

	r := &Router{
		engine:    engine,
		auth:      auth,
		authH:     authH,
		resources: resources,
		health:    healthH,
		exporter:  exporter,
		metrics:   m,
		config:    config,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.metricsMiddleware(),
		middleware.CORS(middleware.DefaultCORSConfig(config.AllowedOrigins)),
		middleware.Timeout(config.RequestTimeout),
	)

	if config.RateLimit {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(config.RPS),
			Burst: config.Burst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	if r.exporter != nil && r.config.MetricsPath != "" {
		r.exporter.RegisterRoutes(r.engine, r.config.MetricsPath)
	}

	api := r.engine.Group("/api")

	r.health.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.authH.RegisterRoutes(api, protected)
	for _, h := range r.resources {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.metrics == nil {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		// unmatched routes share one label to bound cardinality
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		code := c.Writer.Status()
		status := strconv.Itoa(code)

		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		switch {
		case code >= 500:
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path, "server").Inc()
		case code >= 400:
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path, "client").Inc()
		}
	}
}
