package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/straye-as/repair-quote-api/internal/config"
)

// SecurityHeaders returns a middleware that adds security headers to responses.
// The swagger UI needs inline scripts, so it is served without the CSP header.
func SecurityHeaders(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	hsts := ""
	if cfg.EnableHSTS {
		hsts = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
	}

	static := map[string]string{
		"X-Frame-Options":           cfg.FrameOptions,
		"X-XSS-Protection":          cfg.XSSProtection,
		"Referrer-Policy":           cfg.ReferrerPolicy,
		"Permissions-Policy":        cfg.PermissionsPolicy,
		"Strict-Transport-Security": hsts,
	}
	if cfg.ContentTypeNosniff {
		static["X-Content-Type-Options"] = "nosniff"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for name, value := range static {
				if value != "" {
					h.Set(name, value)
				}
			}
			if cfg.ContentSecurityPolicy != "" && !strings.HasPrefix(r.URL.Path, "/swagger/") {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			// quote and estimate data is per user
			if h.Get("Cache-Control") == "" {
				h.Set("Cache-Control", "no-store")
			}

			h.Del("X-Powered-By")
			h.Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}
