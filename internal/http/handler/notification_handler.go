package handler

import (
	"errors"
	"net/http"

	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/service"
	"go.uber.org/zap"
)

// NotificationHandler serves the caller's in-app inbox
type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

func (h *NotificationHandler) handleError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrNotificationNotFound):
		respondWithError(w, http.StatusNotFound, "Notification not found")
	case errors.Is(err, service.ErrNotificationNotOwned):
		respondWithError(w, http.StatusForbidden, "You do not have access to this notification")
	default:
		handleServiceError(w, h.logger, err, action)
	}
}

// List godoc
// @Summary List notifications
// @Description Get paginated list of notifications for the current user
// @Tags Notifications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param unreadOnly query bool false "Filter to show only unread notifications" default(false)
// @Param type query string false "Filter by event type" Enums(ESTIMATE_SUBMITTED, ESTIMATE_ACCEPTED, ESTIMATE_REJECTED, REQUEST_CANCELLED, REQUEST_COMPLETED)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.NotificationDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unreadOnly") == "true"
	notificationType := r.URL.Query().Get("type")

	if notificationType != "" && !domain.EventType(notificationType).IsValid() {
		respondWithError(w, http.StatusBadRequest, "invalid notification type: must be one of ESTIMATE_SUBMITTED, ESTIMATE_ACCEPTED, ESTIMATE_REJECTED, REQUEST_CANCELLED, REQUEST_COMPLETED")
		return
	}

	result, err := h.notificationService.GetForCurrentUser(r.Context(), queryInt(r, "page"), queryInt(r, "pageSize"), unreadOnly, notificationType)
	if err != nil {
		h.handleError(w, err, "list notifications")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetUnreadCount godoc
// @Summary Get unread notification count
// @Tags Notifications
// @Produce json
// @Success 200 {object} domain.UnreadCountDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /notifications/count [get]
func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.GetUnreadCount(r.Context())
	if err != nil {
		h.handleError(w, err, "get unread count")
		return
	}

	respondJSON(w, http.StatusOK, count)
}

// MarkAsRead godoc
// @Summary Mark notification as read
// @Tags Notifications
// @Param id path string true "Notification ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), id); err != nil {
		h.handleError(w, err, "mark notification as read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllAsRead godoc
// @Summary Mark all notifications as read
// @Tags Notifications
// @Success 204 "No Content"
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationService.MarkAllAsReadForUser(r.Context()); err != nil {
		h.handleError(w, err, "mark all notifications as read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
