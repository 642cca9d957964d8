package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/export"
	"github.com/straye-as/repair-quote-api/internal/mapper"
	"github.com/straye-as/repair-quote-api/internal/service"
	"go.uber.org/zap"
)

// EstimateHandler handles HTTP requests for estimates
type EstimateHandler struct {
	estimateService *service.EstimateService
	requestService  *service.QuoteRequestService
	exporter        *export.ComparisonExporter
	logger          *zap.Logger
}

// NewEstimateHandler creates a new EstimateHandler instance
func NewEstimateHandler(
	estimateService *service.EstimateService,
	requestService *service.QuoteRequestService,
	exporter *export.ComparisonExporter,
	logger *zap.Logger,
) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
		requestService:  requestService,
		exporter:        exporter,
		logger:          logger,
	}
}

// Submit godoc
// @Summary Submit estimate
// @Description A center submits a priced estimate. totalCost must equal partsCost + laborCost.
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Quote request ID" format(uuid)
// @Param request body domain.EstimateRequest true "Estimate data"
// @Success 201 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError "Validation failed or inconsistent cost"
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Request closed or duplicate pending estimate"
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /quote-requests/{id}/estimates [post]
func (h *EstimateHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.EstimateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	estimate, err := h.estimateService.Submit(r.Context(), requestID, userCtx.UserID, mapper.ToEstimateInput(&req))
	if err != nil {
		handleServiceError(w, h.logger, err, "submit estimate")
		return
	}

	w.Header().Set("Location", "/api/v1/estimates/"+estimate.ID.String())
	respondJSON(w, http.StatusCreated, mapper.ToEstimateDTO(estimate))
}

// ListByRequest godoc
// @Summary List estimates on a request
// @Description Submission order. Owners and admins see every estimate, a center only its own.
// @Tags Estimates
// @Produce json
// @Param id path string true "Quote request ID" format(uuid)
// @Success 200 {array} domain.EstimateDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quote-requests/{id}/estimates [get]
func (h *EstimateHandler) ListByRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	estimates, err := h.estimateService.ListByRequest(r.Context(), requestID)
	if err != nil {
		handleServiceError(w, h.logger, err, "list estimates")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEstimateDTOs(estimates))
}

// Export godoc
// @Summary Export estimate comparison
// @Description Spreadsheet of the estimates the caller may see, one row per estimate
// @Tags Estimates
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Quote request ID" format(uuid)
// @Success 200 {file} file
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quote-requests/{id}/estimates/export [get]
func (h *EstimateHandler) Export(w http.ResponseWriter, r *http.Request) {
	requestID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	estimates, err := h.estimateService.ListByRequest(r.Context(), requestID)
	if err != nil {
		handleServiceError(w, h.logger, err, "export estimates")
		return
	}
	qr, err := h.requestService.GetByID(r.Context(), requestID)
	if err != nil {
		handleServiceError(w, h.logger, err, "export estimates")
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, qr, estimates); err != nil {
		handleServiceError(w, h.logger, err, "export estimates")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(requestID)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// ListByCenter godoc
// @Summary List a center's estimates
// @Description Newest first. Defaults to the caller; only admins may pass another centerId.
// @Tags Estimates
// @Produce json
// @Param centerId query string false "Center ID" format(uuid)
// @Success 200 {array} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates [get]
func (h *EstimateHandler) ListByCenter(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}
	centerID, ok := subjectParam(w, r, userCtx, "centerId")
	if !ok {
		return
	}

	estimates, err := h.estimateService.ListByCenter(r.Context(), centerID)
	if err != nil {
		handleServiceError(w, h.logger, err, "list estimates")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEstimateDTOs(estimates))
}

// GetByID godoc
// @Summary Get estimate
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {object} domain.EstimateDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/{id} [get]
func (h *EstimateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	estimate, err := h.estimateService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get estimate")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEstimateDTO(estimate))
}

// Resubmit godoc
// @Summary Revise estimate
// @Description The submitting center overwrites its pending estimate in place; the ID is kept
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Param request body domain.EstimateRequest true "Estimate data"
// @Success 200 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Estimate is no longer pending"
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/{id} [put]
func (h *EstimateHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.EstimateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	estimate, err := h.estimateService.Resubmit(r.Context(), id, userCtx.UserID, mapper.ToEstimateInput(&req))
	if err != nil {
		handleServiceError(w, h.logger, err, "resubmit estimate")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEstimateDTO(estimate))
}

// Accept godoc
// @Summary Accept estimate
// @Description The owner accepts one estimate. Every other pending estimate is rejected and the request becomes CONFIRMED.
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {object} domain.QuoteRequestDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Estimate not pending, expired, or request already confirmed"
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/{id}/accept [post]
func (h *EstimateHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	qr, err := h.estimateService.Accept(r.Context(), id, userCtx.UserID)
	if err != nil {
		handleServiceError(w, h.logger, err, "accept estimate")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuoteRequestDTO(qr))
}

// Reject godoc
// @Summary Reject estimate
// @Description The owner declines a single estimate. The request keeps its status.
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {object} domain.EstimateDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Security BearerAuth
// @Router /estimates/{id}/reject [post]
func (h *EstimateHandler) Reject(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	estimate, err := h.estimateService.Reject(r.Context(), id, userCtx.UserID)
	if err != nil {
		handleServiceError(w, h.logger, err, "reject estimate")
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToEstimateDTO(estimate))
}
