package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/config"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"go.uber.org/zap"
)

// Middleware handles authentication for HTTP requests
type Middleware struct {
	jwtValidator *JWTValidator
	apiKey       string
	logger       *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.AuthConfig, logger *zap.Logger) *Middleware {
	return &Middleware{
		jwtValidator: NewJWTValidator(cfg),
		apiKey:       cfg.APIKey,
		logger:       logger,
	}
}

// Authenticate is the main authentication middleware
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Try API key first
		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			if !m.validateAPIKey(apiKey) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userCtx := &UserContext{
				UserID:      uuid.Nil,
				DisplayName: "System",
				Roles:       []domain.Role{domain.RoleAdmin},
				IsSystem:    true,
			}
			m.logger.Debug("request authenticated",
				zap.String("path", r.URL.Path),
				zap.String("auth_type", "api_key"),
			)
			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized: missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "Unauthorized: invalid authorization header format", http.StatusUnauthorized)
			return
		}

		userCtx, err := m.jwtValidator.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		m.logger.Debug("request authenticated",
			zap.String("path", r.URL.Path),
			zap.String("auth_type", "jwt"),
			zap.String("user_id", userCtx.UserID.String()),
			zap.Strings("roles", userCtx.RolesAsStrings()),
		)

		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
	})
}

// RequireRole middleware ensures user has one of the roles. Admins always pass.
func (m *Middleware) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userCtx, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "Forbidden: no user context", http.StatusForbidden)
				return
			}

			if !userCtx.IsAdmin() && !userCtx.HasAnyRole(roles...) {
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}
