package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/straye-as/repair-quote-api/internal/domain"
	"go.uber.org/zap"
)

// Recovery turns a panic in a handler into a 500 problem response
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic while handling request",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.ByteString("stack", debug.Stack()),
				)

				w.Header().Set("Content-Type", "application/problem+json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(domain.APIError{
					Type:   domain.ErrorTypeInternal,
					Title:  http.StatusText(http.StatusInternalServerError),
					Status: http.StatusInternalServerError,
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
