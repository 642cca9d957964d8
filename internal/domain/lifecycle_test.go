package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestQuoteRequestTransitions(t *testing.T) {
	allowed := map[domain.QuoteRequestStatus][]domain.QuoteRequestStatus{
		domain.QuoteRequestStatusOpen:      {domain.QuoteRequestStatusHasOffers, domain.QuoteRequestStatusCancelled},
		domain.QuoteRequestStatusHasOffers: {domain.QuoteRequestStatusConfirmed, domain.QuoteRequestStatusCancelled},
		domain.QuoteRequestStatusConfirmed: {domain.QuoteRequestStatusCompleted, domain.QuoteRequestStatusCancelled},
	}
	all := []domain.QuoteRequestStatus{
		domain.QuoteRequestStatusOpen,
		domain.QuoteRequestStatusHasOffers,
		domain.QuoteRequestStatusConfirmed,
		domain.QuoteRequestStatusCompleted,
		domain.QuoteRequestStatusCancelled,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, domain.CanTransitionQuoteRequest(from, to), "%s -> %s", from, to)

			err := domain.ValidateQuoteRequestTransition(from, to)
			if want {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			}
		}
	}
}

func TestEstimateTransitions(t *testing.T) {
	terminal := []domain.EstimateStatus{
		domain.EstimateStatusAccepted,
		domain.EstimateStatusRejected,
		domain.EstimateStatusExpired,
	}

	for _, to := range terminal {
		assert.NoError(t, domain.ValidateEstimateTransition(domain.EstimateStatusPending, to))
		for _, from := range terminal {
			assert.False(t, domain.CanTransitionEstimate(from, to), "%s -> %s", from, to)
		}
		assert.False(t, domain.CanTransitionEstimate(to, domain.EstimateStatusPending))
	}
	assert.False(t, domain.CanTransitionEstimate(domain.EstimateStatusPending, domain.EstimateStatusPending))
}

func TestTransitionError(t *testing.T) {
	err := domain.ValidateEstimateTransition(domain.EstimateStatusRejected, domain.EstimateStatusAccepted)

	var te *domain.TransitionError
	if assert.True(t, errors.As(err, &te)) {
		assert.Equal(t, domain.EntityTypeEstimate, te.Entity)
		assert.Equal(t, "REJECTED", te.From)
		assert.Equal(t, "ACCEPTED", te.To)
	}
	assert.Contains(t, err.Error(), "cannot move from REJECTED to ACCEPTED")
}

func TestQuoteRequestStatus_Predicates(t *testing.T) {
	tests := []struct {
		status   domain.QuoteRequestStatus
		active   bool
		accepts  bool
		terminal bool
	}{
		{domain.QuoteRequestStatusOpen, true, true, false},
		{domain.QuoteRequestStatusHasOffers, true, true, false},
		{domain.QuoteRequestStatusConfirmed, true, false, false},
		{domain.QuoteRequestStatusCompleted, false, false, true},
		{domain.QuoteRequestStatusCancelled, false, false, true},
		{domain.QuoteRequestStatus("ARCHIVED"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.active, tt.status.IsActive())
			assert.Equal(t, tt.accepts, tt.status.AcceptsEstimates())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestCostBreakdown_IsConsistent(t *testing.T) {
	assert.True(t, domain.CostBreakdown{}.IsConsistent())
	assert.True(t, domain.CostBreakdown{Parts: 120000, Labor: 30000, Total: 150000}.IsConsistent())
	assert.False(t, domain.CostBreakdown{Parts: 120000, Labor: 30000, Total: 150001}.IsConsistent())
	assert.False(t, domain.CostBreakdown{Parts: -5, Labor: 10, Total: 5}.IsConsistent())
}

func TestEstimate_IsExpiredAt(t *testing.T) {
	validUntil := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	e := &domain.Estimate{ValidUntil: validUntil}

	assert.False(t, e.IsExpiredAt(validUntil.Add(-time.Second)))
	assert.False(t, e.IsExpiredAt(validUntil), "still valid at the boundary")
	assert.True(t, e.IsExpiredAt(validUntil.Add(time.Second)))
}

func TestLifecycleEvent_Text(t *testing.T) {
	requestID := uuid.MustParse("3f2c1a9e-0000-4000-8000-000000000001")
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	types := []domain.EventType{
		domain.EventEstimateSubmitted,
		domain.EventEstimateAccepted,
		domain.EventEstimateRejected,
		domain.EventRequestCancelled,
		domain.EventRequestCompleted,
	}
	for _, eventType := range types {
		e := domain.NewLifecycleEvent(eventType, requestID, nil, nil, at)
		assert.True(t, eventType.IsValid())
		assert.NotEqual(t, uuid.Nil, e.ID)
		assert.NotEqual(t, string(eventType), e.Title())
		assert.Contains(t, e.Message(), "3f2c1a9e")
	}

	a := domain.NewLifecycleEvent(domain.EventEstimateSubmitted, requestID, nil, nil, at)
	b := domain.NewLifecycleEvent(domain.EventEstimateSubmitted, requestID, nil, nil, at)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, domain.EventType("UNKNOWN").IsValid())
}
