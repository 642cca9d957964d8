package handler

import (
	"net/http"
	"time"

	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/service"
	"go.uber.org/zap"
)

// AdminHandler exposes operational endpoints for administrators
type AdminHandler struct {
	estimateService *service.EstimateService
	now             func() time.Time
	logger          *zap.Logger
}

func NewAdminHandler(estimateService *service.EstimateService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		estimateService: estimateService,
		now:             time.Now,
		logger:          logger,
	}
}

// SweepExpired godoc
// @Summary Run the expiry sweep now
// @Description Marks every pending estimate past its validity as EXPIRED. Safe to repeat.
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.SweepResultDTO
// @Failure 403 {object} domain.APIError
// @Failure 503 {object} domain.APIError "Some requests were busy; the rest were swept"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/estimates/sweep [post]
func (h *AdminHandler) SweepExpired(w http.ResponseWriter, r *http.Request) {
	ranAt := h.now().UTC()

	expired, err := h.estimateService.SweepExpired(r.Context(), ranAt)
	if err != nil {
		h.logger.Warn("manual expiry sweep incomplete", zap.Int("expired", expired), zap.Error(err))
		handleServiceError(w, h.logger, err, "sweep expired estimates")
		return
	}

	h.logger.Info("manual expiry sweep", zap.Int("expired", expired))
	respondJSON(w, http.StatusOK, domain.SweepResultDTO{
		Expired: expired,
		RanAt:   ranAt.Format(time.RFC3339),
	})
}
