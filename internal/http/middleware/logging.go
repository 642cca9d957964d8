package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/auth"
	"github.com/straye-as/repair-quote-api/internal/logger"
	"go.uber.org/zap"
)

// RequestIDHeader carries the correlation id in both directions
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

type userSlotKey struct{}

// userSlot lets Logging see the caller that authentication resolved further down the chain
type userSlot struct {
	user *auth.UserContext
}

// RequestIDFromContext returns the id assigned by Logging, if any
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int64
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Logging assigns a request id and logs every request once it completes.
// An incoming X-Request-ID is kept when it parses as a UUID.
func Logging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, requestID)
			slot := &userSlot{}
			ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
			r = r.WithContext(context.WithValue(ctx, userSlotKey{}, slot))

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			fields := []zap.Field{
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status_code", rw.statusCode),
				zap.Int64("response_size", rw.written),
				zap.Duration("duration", duration),
			}

			if slot.user != nil {
				fields = append(fields,
					zap.String("user_id", slot.user.UserID.String()),
					zap.Strings("roles", slot.user.RolesAsStrings()),
				)
			}

			reqLog := logger.WithRequest(log, r.Method, r.URL.Path, requestID)
			msg := fmt.Sprintf("%s %-30s -> %3d (%s)", r.Method, r.URL.Path, rw.statusCode, duration.Truncate(time.Microsecond))
			switch {
			case rw.statusCode >= http.StatusInternalServerError:
				reqLog.Error(msg, fields...)
			case rw.statusCode >= http.StatusBadRequest:
				reqLog.Warn(msg, fields...)
			default:
				reqLog.Info(msg, fields...)
			}
		})
	}
}

// CaptureUser records the authenticated caller for the request log. It must
// run after authentication.
func CaptureUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slot, ok := r.Context().Value(userSlotKey{}).(*userSlot); ok {
			if userCtx, ok := auth.FromContext(r.Context()); ok {
				slot.user = userCtx
			}
		}
		next.ServeHTTP(w, r)
	})
}
