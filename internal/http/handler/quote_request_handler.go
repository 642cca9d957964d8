package handler

import (
	"net/http"

	"github.com/straye-as/repair-quote-api/internal/auth"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/mapper"
	"github.com/straye-as/repair-quote-api/internal/service"
	"go.uber.org/zap"
)

// QuoteRequestHandler handles HTTP requests for quote requests
type QuoteRequestHandler struct {
	requestService *service.QuoteRequestService
	logger         *zap.Logger
}

// NewQuoteRequestHandler creates a new QuoteRequestHandler instance
func NewQuoteRequestHandler(requestService *service.QuoteRequestService, logger *zap.Logger) *QuoteRequestHandler {
	return &QuoteRequestHandler{
		requestService: requestService,
		logger:         logger,
	}
}

// canView reports whether the caller may read a request. Centers browse
// requests to bid on them, owners only see their own.
func canView(userCtx *auth.UserContext, qr *domain.QuoteRequest) bool {
	return userCtx.IsAdmin() || userCtx.HasRole(domain.RoleCenter) || userCtx.UserID == qr.OwnerID
}

// Create godoc
// @Summary Create quote request
// @Description Posts a repair need. An owner may have only one request that is not completed or cancelled.
// @Tags QuoteRequests
// @Accept json
// @Produce json
// @Param request body domain.CreateQuoteRequestRequest true "Quote request data"
// @Success 201 {object} domain.QuoteRequestDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Owner already has an open request"
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /quote-requests [post]
func (h *QuoteRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req domain.CreateQuoteRequestRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	qr, err := h.requestService.Create(r.Context(), userCtx.UserID, mapper.ToQuoteRequestDetails(&req))
	if err != nil {
		handleServiceError(w, h.logger, err, "create quote request")
		return
	}

	w.Header().Set("Location", "/api/v1/quote-requests/"+qr.ID.String())
	respondJSON(w, http.StatusCreated, mapper.ToQuoteRequestDTO(qr))
}

// GetByID godoc
// @Summary Get quote request
// @Tags QuoteRequests
// @Produce json
// @Param id path string true "Quote request ID" format(uuid)
// @Success 200 {object} domain.QuoteRequestDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quote-requests/{id} [get]
func (h *QuoteRequestHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	qr, err := h.requestService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get quote request")
		return
	}
	if !canView(userCtx, qr) {
		handleServiceError(w, h.logger, service.ErrForbidden, "get quote request")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuoteRequestDTO(qr))
}

// List godoc
// @Summary List an owner's quote requests
// @Description Newest first. Defaults to the caller; only admins may pass another ownerId.
// @Tags QuoteRequests
// @Produce json
// @Param ownerId query string false "Owner ID" format(uuid)
// @Success 200 {array} domain.QuoteRequestDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /quote-requests [get]
func (h *QuoteRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}
	ownerID, ok := subjectParam(w, r, userCtx, "ownerId")
	if !ok {
		return
	}

	requests, err := h.requestService.ListByOwner(r.Context(), ownerID)
	if err != nil {
		handleServiceError(w, h.logger, err, "list quote requests")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuoteRequestDTOs(requests))
}

// ListOpen godoc
// @Summary Browse open quote requests
// @Description Requests still accepting estimates (OPEN or HAS_OFFERS), newest first
// @Tags QuoteRequests
// @Produce json
// @Param category query string false "Category filter"
// @Param location query string false "Location filter"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.QuoteRequestDTO}
// @Security BearerAuth
// @Router /quote-requests/open [get]
func (h *QuoteRequestHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.requestService.ListOpen(r.Context(), domain.OpenRequestFilter{
		Category: q.Get("category"),
		Location: q.Get("location"),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "pageSize"),
	})
	if err != nil {
		handleServiceError(w, h.logger, err, "list open quote requests")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Cancel godoc
// @Summary Cancel quote request
// @Description Owner cancels the request; every pending estimate on it is rejected
// @Tags QuoteRequests
// @Produce json
// @Param id path string true "Quote request ID" format(uuid)
// @Success 200 {object} domain.QuoteRequestDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Already completed or cancelled"
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /quote-requests/{id} [delete]
func (h *QuoteRequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	qr, err := h.requestService.Cancel(r.Context(), id, userCtx.UserID)
	if err != nil {
		handleServiceError(w, h.logger, err, "cancel quote request")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuoteRequestDTO(qr))
}

// Complete godoc
// @Summary Mark repair done
// @Description The center whose estimate was accepted marks the request completed
// @Tags QuoteRequests
// @Produce json
// @Param id path string true "Quote request ID" format(uuid)
// @Success 200 {object} domain.QuoteRequestDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Request is not confirmed"
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /quote-requests/{id}/complete [post]
func (h *QuoteRequestHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	qr, err := h.requestService.Complete(r.Context(), id, userCtx.UserID)
	if err != nil {
		handleServiceError(w, h.logger, err, "complete quote request")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuoteRequestDTO(qr))
}

// History godoc
// @Summary Status history
// @Description Every status change of the request and its estimates, oldest first
// @Tags QuoteRequests
// @Produce json
// @Param id path string true "Quote request ID" format(uuid)
// @Success 200 {array} domain.StatusTransitionDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quote-requests/{id}/history [get]
func (h *QuoteRequestHandler) History(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	qr, err := h.requestService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get status history")
		return
	}
	if !userCtx.IsAdmin() && userCtx.UserID != qr.OwnerID {
		handleServiceError(w, h.logger, service.ErrForbidden, "get status history")
		return
	}

	history, err := h.requestService.History(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get status history")
		return
	}

	dtos := make([]domain.StatusTransitionDTO, len(history))
	for i := range history {
		dtos[i] = mapper.ToStatusTransitionDTO(&history[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}
