package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/straye-as/repair-quote-api/internal/config"
	"go.uber.org/zap"
)

func isDevelopment(environment string) bool {
	return environment == "development" || environment == "local" || environment == ""
}

// CORS returns a CORS middleware configured from the application config.
// Retry-After is always exposed so browser clients can back off on 503 and 429.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	exposed := cfg.ExposedHeaders
	if !contains(exposed, "Retry-After") {
		exposed = append(append([]string{}, exposed...), "Retry-After")
	}

	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   exposed,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	allowAny := func(r *http.Request, origin string) bool { return origin != "" }

	switch {
	case contains(cfg.AllowedOrigins, "*"):
		if !isDevelopment(environment) {
			logger.Warn("CORS configured with wildcard origin in non-development environment",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = allowAny
	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS configured with explicit origins",
			zap.Strings("origins", cfg.AllowedOrigins))
	case isDevelopment(environment):
		options.AllowOriginFunc = allowAny
		logger.Info("CORS configured to allow all origins in development mode")
	default:
		// an empty AllowedOrigins list means "*" to go-chi/cors
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
		logger.Warn("CORS configured with no allowed origins - all cross-origin requests will be denied",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
