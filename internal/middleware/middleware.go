package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
)

// Config holds middleware configuration.
type Config struct {
	Logger *zap.Logger

	CORS *CORSConfig

	RateLimit      rate.Limit
	RateLimitBurst int

	RequestTimeout time.Duration
}

// NewConfig maps the middleware section of the service configuration.
func NewConfig(cfg *config.MiddlewareConfig, logger *zap.Logger) *Config {
	mc := &Config{
		Logger:         logger,
		RateLimit:      rate.Limit(cfg.RateLimit),
		RateLimitBurst: cfg.RateLimitBurst,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	}
	if cfg.EnableCORS {
		mc.CORS = NewCORSConfig(cfg.AllowedOrigins)
	}
	return mc
}

// Chain creates the middleware stack shared by every route, outermost first:
// logger, request id, recovery, CORS. Rate limiting and the request timeout are
// left to Throttle so routes such as provider webhooks can opt out. The returned
// limiter backs Throttle and should be closed on shutdown.
func Chain(config *Config) (func(http.Handler) http.Handler, *RateLimiter) {
	rateLimiter := NewRateLimiter(config.RateLimit, config.RateLimitBurst)

	return func(handler http.Handler) http.Handler {
		h := handler

		if config.CORS != nil {
			h = CORS(config.CORS)(h)
		}

		h = Recovery(config.Logger)(h)

		h = RequestID(h)

		h = Logger(config.Logger)(h)

		return h
	}, rateLimiter
}

// Throttle applies the per-visitor rate limit and then the request timeout.
func Throttle(config *Config, rateLimiter *RateLimiter) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		h := Timeout(config.RequestTimeout)(handler)
		return rateLimiter.Middleware()(h)
	}
}
