package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/straye-as/repair-quote-api/internal/auth"
	"github.com/straye-as/repair-quote-api/internal/config"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"go.uber.org/zap"
)

// RateLimiter applies a per-IP limit before authentication and a per-caller
// limit after it
type RateLimiter struct {
	cfg            *config.RateLimitConfig
	logger         *zap.Logger
	whitelistIPs   map[string]bool
	whitelistPaths []string
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:          cfg,
		logger:       logger,
		whitelistIPs: make(map[string]bool, len(cfg.WhitelistIPs)),
	}
	for _, ip := range cfg.WhitelistIPs {
		rl.whitelistIPs[ip] = true
	}
	rl.whitelistPaths = append(rl.whitelistPaths, cfg.WhitelistPaths...)

	logger.Info("Rate limiter initialized",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
		zap.Strings("whitelist_paths", cfg.WhitelistPaths),
	)

	return rl
}

// LimitByIP limits anonymous traffic by client address. Use before auth.
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	limited := httprate.Limit(
		rl.cfg.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return "ip:" + clientIP(r), nil
		}),
		httprate.WithLimitHandler(rl.exceeded),
	)(next)
	return rl.bypass(next, limited)
}

// LimitByCaller limits authenticated traffic per user id. System callers
// using the API key are not limited. Use after auth.
func (rl *RateLimiter) LimitByCaller(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	limited := httprate.Limit(
		rl.cfg.RequestsPerMinuteAuth,
		time.Minute,
		httprate.WithKeyFuncs(keyByCaller),
		httprate.WithLimitHandler(rl.exceeded),
	)(next)

	return rl.bypass(next, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userCtx, ok := auth.FromContext(r.Context()); ok && userCtx.IsSystem {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	}))
}

func (rl *RateLimiter) bypass(next, limited http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.isPathWhitelisted(r.URL.Path) || rl.whitelistIPs[clientIP(r)] {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

func keyByCaller(r *http.Request) (string, error) {
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		return "user:" + userCtx.UserID.String(), nil
	}
	return "ip:" + clientIP(r), nil
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket address
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// isPathWhitelisted matches exact paths and prefixes written as /prefix/*
func (rl *RateLimiter) isPathWhitelisted(path string) bool {
	for _, wp := range rl.whitelistPaths {
		if wp == path {
			return true
		}
		if prefix, ok := strings.CutSuffix(wp, "/*"); ok && strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) exceeded(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		userID = userCtx.UserID.String()
	}

	rl.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("client_ip", clientIP(r)),
		zap.String("user_id", userID),
	)

	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   "rate_limited",
		Title:  http.StatusText(http.StatusTooManyRequests),
		Status: http.StatusTooManyRequests,
		Detail: "Too many requests. Please try again later.",
	})
}
