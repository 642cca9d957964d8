package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/repair-quote-api/internal/auth"
	"github.com/straye-as/repair-quote-api/internal/config"
	"github.com/straye-as/repair-quote-api/internal/database"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/http/handler"
	"github.com/straye-as/repair-quote-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/straye-as/repair-quote-api/docs" // Import swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	quoteRequestHandler *handler.QuoteRequestHandler
	estimateHandler     *handler.EstimateHandler
	notificationHandler *handler.NotificationHandler
	attachmentHandler   *handler.AttachmentHandler
	adminHandler        *handler.AdminHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	quoteRequestHandler *handler.QuoteRequestHandler,
	estimateHandler *handler.EstimateHandler,
	notificationHandler *handler.NotificationHandler,
	attachmentHandler *handler.AttachmentHandler,
	adminHandler *handler.AdminHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		quoteRequestHandler: quoteRequestHandler,
		estimateHandler:     estimateHandler,
		notificationHandler: notificationHandler,
		attachmentHandler:   attachmentHandler,
		adminHandler:        adminHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Database health check with pool stats
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			writeHealth(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		writeHealth(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Readiness probe
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			writeHealth(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unhealthy",
				"checks": map[string]interface{}{"database": map[string]string{"status": "unhealthy", "error": err.Error()}},
			})
			return
		}
		writeHealth(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"checks": map[string]interface{}{"database": map[string]string{"status": "healthy"}},
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	owner := rt.authMiddleware.RequireRole(domain.RoleOwner)
	center := rt.authMiddleware.RequireRole(domain.RoleCenter)
	admin := rt.authMiddleware.RequireRole(domain.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(middleware.CaptureUser)
		r.Use(rt.rateLimiter.LimitByCaller)

		r.Route("/quote-requests", func(r chi.Router) {
			r.With(owner).Post("/", rt.quoteRequestHandler.Create)
			r.Get("/", rt.quoteRequestHandler.List)
			r.With(center).Get("/open", rt.quoteRequestHandler.ListOpen)
			r.Get("/{id}", rt.quoteRequestHandler.GetByID)
			r.With(owner).Delete("/{id}", rt.quoteRequestHandler.Cancel)
			r.With(center).Post("/{id}/complete", rt.quoteRequestHandler.Complete)
			r.Get("/{id}/history", rt.quoteRequestHandler.History)

			r.With(center).Post("/{id}/estimates", rt.estimateHandler.Submit)
			r.Get("/{id}/estimates", rt.estimateHandler.ListByRequest)
			r.Get("/{id}/estimates/export", rt.estimateHandler.Export)
		})

		r.Route("/estimates", func(r chi.Router) {
			r.Get("/", rt.estimateHandler.ListByCenter)
			r.Get("/{id}", rt.estimateHandler.GetByID)
			r.With(center).Put("/{id}", rt.estimateHandler.Resubmit)
			r.With(owner).Post("/{id}/accept", rt.estimateHandler.Accept)
			r.With(owner).Post("/{id}/reject", rt.estimateHandler.Reject)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", rt.notificationHandler.List)
			r.Get("/count", rt.notificationHandler.GetUnreadCount)
			r.Put("/read-all", rt.notificationHandler.MarkAllAsRead)
			r.Put("/{id}/read", rt.notificationHandler.MarkAsRead)
		})

		r.Route("/attachments", func(r chi.Router) {
			r.With(owner).Post("/", rt.attachmentHandler.Upload)
			r.Get("/{ref}", rt.attachmentHandler.Download)
		})

		r.With(admin).Post("/admin/estimates/sweep", rt.adminHandler.SweepExpired)
	})

	return r
}

func writeHealth(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
