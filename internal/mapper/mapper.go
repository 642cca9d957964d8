package mapper

import (
	"strings"
	"time"

	"github.com/straye-as/repair-quote-api/internal/domain"
)

const isoLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// ToQuoteRequestDetails converts the create request body to the service input
func ToQuoteRequestDetails(req *domain.CreateQuoteRequestRequest) domain.QuoteRequestDetails {
	refs := make([]string, 0, len(req.ImageRefs))
	for _, ref := range req.ImageRefs {
		refs = append(refs, strings.TrimSpace(ref))
	}
	return domain.QuoteRequestDetails{
		Vehicle: domain.VehicleDescriptor{
			Make:    strings.TrimSpace(req.Vehicle.Make),
			Model:   strings.TrimSpace(req.Vehicle.Model),
			Year:    req.Vehicle.Year,
			Mileage: req.Vehicle.Mileage,
		},
		Description: req.Description,
		Category:    strings.TrimSpace(req.Category),
		Location:    strings.TrimSpace(req.Location),
		ImageRefs:   refs,
	}
}

// ToEstimateInput converts a submit/resubmit body to the service input
func ToEstimateInput(req *domain.EstimateRequest) domain.EstimateInput {
	return domain.EstimateInput{
		Cost: domain.CostBreakdown{
			Parts: req.PartsCost,
			Labor: req.LaborCost,
			Total: req.TotalCost,
		},
		Description:  req.Description,
		ProposedDate: req.ProposedDate,
		ValidUntil:   req.ValidUntil,
	}
}

// ToQuoteRequestDTO converts QuoteRequest to QuoteRequestDTO
func ToQuoteRequestDTO(qr *domain.QuoteRequest) domain.QuoteRequestDTO {
	refs := qr.ImageRefs
	if refs == nil {
		refs = []string{}
	}
	return domain.QuoteRequestDTO{
		ID:      qr.ID,
		OwnerID: qr.OwnerID,
		Vehicle: domain.VehicleDTO{
			Make:    qr.Vehicle.Make,
			Model:   qr.Vehicle.Model,
			Year:    qr.Vehicle.Year,
			Mileage: qr.Vehicle.Mileage,
		},
		Description:        qr.Description,
		Category:           qr.Category,
		Location:           qr.Location,
		ImageRefs:          refs,
		Status:             qr.Status,
		AcceptedEstimateID: qr.AcceptedEstimateID,
		CreatedAt:          formatTime(qr.CreatedAt),
		UpdatedAt:          formatTime(qr.UpdatedAt),
		CancelledAt:        formatOptionalTime(qr.CancelledAt),
		CompletedAt:        formatOptionalTime(qr.CompletedAt),
	}
}

// ToQuoteRequestDTOs converts a slice of QuoteRequest
func ToQuoteRequestDTOs(requests []domain.QuoteRequest) []domain.QuoteRequestDTO {
	dtos := make([]domain.QuoteRequestDTO, len(requests))
	for i := range requests {
		dtos[i] = ToQuoteRequestDTO(&requests[i])
	}
	return dtos
}

// ToEstimateDTO converts Estimate to EstimateDTO
func ToEstimateDTO(e *domain.Estimate) domain.EstimateDTO {
	return domain.EstimateDTO{
		ID:        e.ID,
		RequestID: e.RequestID,
		CenterID:  e.CenterID,
		Cost: domain.CostBreakdownDTO{
			Parts: e.Cost.Parts,
			Labor: e.Cost.Labor,
			Total: e.Cost.Total,
		},
		Description:  e.Description,
		ProposedDate: formatTime(e.ProposedDate),
		ValidUntil:   formatTime(e.ValidUntil),
		Status:       e.Status,
		SubmittedAt:  formatTime(e.CreatedAt),
		UpdatedAt:    formatTime(e.UpdatedAt),
	}
}

// ToEstimateDTOs converts a slice of Estimate
func ToEstimateDTOs(estimates []domain.Estimate) []domain.EstimateDTO {
	dtos := make([]domain.EstimateDTO, len(estimates))
	for i := range estimates {
		dtos[i] = ToEstimateDTO(&estimates[i])
	}
	return dtos
}

// ToStatusTransitionDTO converts StatusTransition to StatusTransitionDTO
func ToStatusTransitionDTO(t *domain.StatusTransition) domain.StatusTransitionDTO {
	return domain.StatusTransitionDTO{
		ID:         t.ID,
		EntityType: t.EntityType,
		EntityID:   t.EntityID,
		FromStatus: t.FromStatus,
		ToStatus:   t.ToStatus,
		ActorID:    t.ActorID,
		Reason:     t.Reason,
		ChangedAt:  formatTime(t.ChangedAt),
	}
}

// ToNotificationDTO converts Notification to NotificationDTO
func ToNotificationDTO(notification *domain.Notification) domain.NotificationDTO {
	return domain.NotificationDTO{
		ID:         notification.ID,
		Type:       notification.Type,
		Title:      notification.Title,
		Message:    notification.Message,
		Read:       notification.Read,
		CreatedAt:  formatTime(notification.CreatedAt),
		RequestID:  notification.RequestID,
		EstimateID: notification.EstimateID,
	}
}
