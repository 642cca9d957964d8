package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRequestService_Create(t *testing.T) {
	f := newFixture(t)
	ownerID := uuid.New()

	qr, err := f.requests.Create(context.Background(), ownerID, details())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, qr.ID)
	assert.Equal(t, ownerID, qr.OwnerID)
	assert.Equal(t, domain.QuoteRequestStatusOpen, qr.Status)
	assert.Equal(t, 1, qr.Version)
	assert.Equal(t, testStart, qr.CreatedAt)
	assert.Equal(t, []string{"quote-images/abc.jpg"}, qr.ImageRefs)

	loaded, err := f.requests.GetByID(context.Background(), qr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kia", loaded.Vehicle.Make)
	assert.Equal(t, []string{"quote-images/abc.jpg"}, loaded.ImageRefs)
}

func TestQuoteRequestService_Create_ValidatesDetails(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		modify func(d *domain.QuoteRequestDetails)
	}{
		{name: "year before 1980", modify: func(d *domain.QuoteRequestDetails) { d.Vehicle.Year = 1979 }},
		{name: "year two ahead", modify: func(d *domain.QuoteRequestDetails) { d.Vehicle.Year = testStart.Year() + 2 }},
		{name: "blank description", modify: func(d *domain.QuoteRequestDetails) { d.Description = "   " }},
		{name: "negative mileage", modify: func(d *domain.QuoteRequestDetails) { d.Vehicle.Mileage = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := details()
			tt.modify(&d)
			_, err := f.requests.Create(context.Background(), uuid.New(), d)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}

	t.Run("boundary years are accepted", func(t *testing.T) {
		for _, year := range []int{1980, testStart.Year() + 1} {
			d := details()
			d.Vehicle.Year = year
			_, err := f.requests.Create(context.Background(), uuid.New(), d)
			assert.NoError(t, err, "year %d", year)
		}
	})
}

func TestQuoteRequestService_DuplicateOpenRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ownerID := uuid.New()

	first := f.createRequest(t, ownerID)

	_, err := f.requests.Create(ctx, ownerID, details())
	assert.ErrorIs(t, err, service.ErrDuplicateOpenRequest)

	var current *domain.QuoteRequest
	t.Run("allowed again after cancel", func(t *testing.T) {
		_, err := f.requests.Cancel(ctx, first.ID, ownerID)
		require.NoError(t, err)

		current, err = f.requests.Create(ctx, ownerID, details())
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, current.ID)
	})

	t.Run("blocked while confirmed, allowed after completion", func(t *testing.T) {
		require.NotNil(t, current)

		centerID := uuid.New()
		estimate := f.submit(t, current.ID, centerID, 1000, 500)
		_, err := f.estimates.Accept(ctx, estimate.ID, ownerID)
		require.NoError(t, err)

		_, err = f.requests.Create(ctx, ownerID, details())
		assert.ErrorIs(t, err, service.ErrDuplicateOpenRequest)

		_, err = f.requests.Complete(ctx, current.ID, centerID)
		require.NoError(t, err)

		_, err = f.requests.Create(ctx, ownerID, details())
		assert.NoError(t, err)
	})
}

func TestQuoteRequestService_ListByOwner_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ownerID := uuid.New()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		qr := f.createRequest(t, ownerID)
		ids = append(ids, qr.ID)
		_, err := f.requests.Cancel(ctx, qr.ID, ownerID)
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}
	f.createRequest(t, uuid.New())

	requests, err := f.requests.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, ids[2], requests[0].ID)
	assert.Equal(t, ids[1], requests[1].ID)
	assert.Equal(t, ids[0], requests[2].ID)
}

func TestQuoteRequestService_GetByID_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.requests.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestQuoteRequestService_Cancel(t *testing.T) {
	t.Run("cascades to pending estimates", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		ownerID := uuid.New()
		centerA, centerB := uuid.New(), uuid.New()

		qr := f.createRequest(t, ownerID)
		e1 := f.submit(t, qr.ID, centerA, 100, 50)
		e2 := f.submit(t, qr.ID, centerB, 200, 10)
		_, err := f.estimates.Reject(ctx, e2.ID, ownerID)
		require.NoError(t, err)
		f.dispatcher.reset()

		cancelled, err := f.requests.Cancel(ctx, qr.ID, ownerID)
		require.NoError(t, err)

		assert.Equal(t, domain.QuoteRequestStatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancelledAt)
		assert.Equal(t, domain.QuoteRequestStatusCancelled, f.requestStatus(t, qr.ID))
		assert.Equal(t, domain.EstimateStatusRejected, f.estimateStatus(t, e1.ID))
		assert.Equal(t, domain.EstimateStatusRejected, f.estimateStatus(t, e2.ID))

		events := f.dispatcher.ofType(domain.EventRequestCancelled)
		require.Len(t, events, 1)
		assert.Equal(t, []uuid.UUID{centerA}, events[0].RecipientIDs, "only centers with a pending estimate are told")
	})

	t.Run("lapsed estimates are expired not rejected", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		ownerID := uuid.New()
		lapsedCenter, liveCenter := uuid.New(), uuid.New()

		qr := f.createRequest(t, ownerID)
		short := f.estimateInput(100, 50)
		short.ValidUntil = f.clock.Now().Add(24 * time.Hour)
		lapsed, err := f.estimates.Submit(ctx, qr.ID, lapsedCenter, short)
		require.NoError(t, err)
		live := f.submit(t, qr.ID, liveCenter, 200, 10)
		f.dispatcher.reset()

		f.clock.Advance(48 * time.Hour)
		_, err = f.requests.Cancel(ctx, qr.ID, ownerID)
		require.NoError(t, err)

		assert.Equal(t, domain.EstimateStatusExpired, f.estimateStatus(t, lapsed.ID))
		assert.Equal(t, domain.EstimateStatusRejected, f.estimateStatus(t, live.ID))

		events := f.dispatcher.ofType(domain.EventRequestCancelled)
		require.Len(t, events, 1)
		assert.Equal(t, []uuid.UUID{liveCenter}, events[0].RecipientIDs)

		history, err := f.requests.History(ctx, qr.ID)
		require.NoError(t, err)
		var expiredRows int
		for _, h := range history {
			if h.ToStatus == string(domain.EstimateStatusExpired) {
				expiredRows++
				assert.Nil(t, h.ActorID)
			}
		}
		assert.Equal(t, 1, expiredRows)
	})

	t.Run("only the owner may cancel", func(t *testing.T) {
		f := newFixture(t)
		qr := f.createRequest(t, uuid.New())

		_, err := f.requests.Cancel(context.Background(), qr.ID, uuid.New())
		assert.ErrorIs(t, err, service.ErrForbidden)
		assert.Equal(t, domain.QuoteRequestStatusOpen, f.requestStatus(t, qr.ID))
	})

	t.Run("terminal request cannot be cancelled again", func(t *testing.T) {
		f := newFixture(t)
		ownerID := uuid.New()
		qr := f.createRequest(t, ownerID)

		_, err := f.requests.Cancel(context.Background(), qr.ID, ownerID)
		require.NoError(t, err)

		_, err = f.requests.Cancel(context.Background(), qr.ID, ownerID)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("confirmed request can be cancelled", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		ownerID := uuid.New()
		qr := f.createRequest(t, ownerID)
		e := f.submit(t, qr.ID, uuid.New(), 10, 10)
		_, err := f.estimates.Accept(ctx, e.ID, ownerID)
		require.NoError(t, err)

		cancelled, err := f.requests.Cancel(ctx, qr.ID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, domain.QuoteRequestStatusCancelled, cancelled.Status)
		assert.Equal(t, domain.EstimateStatusAccepted, f.estimateStatus(t, e.ID))
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.requests.Cancel(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestQuoteRequestService_Complete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ownerID := uuid.New()
	centerID := uuid.New()

	qr := f.createRequest(t, ownerID)
	e := f.submit(t, qr.ID, centerID, 300, 200)

	_, err := f.requests.Complete(ctx, qr.ID, centerID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition, "not confirmed yet")

	_, err = f.estimates.Accept(ctx, e.ID, ownerID)
	require.NoError(t, err)

	_, err = f.requests.Complete(ctx, qr.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrForbidden)

	f.clock.Advance(48 * time.Hour)
	completed, err := f.requests.Complete(ctx, qr.ID, centerID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteRequestStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, f.clock.Now(), *completed.CompletedAt)

	events := f.dispatcher.ofType(domain.EventRequestCompleted)
	require.Len(t, events, 1)
	assert.Equal(t, []uuid.UUID{ownerID}, events[0].RecipientIDs)
	assert.Equal(t, &e.ID, events[0].EstimateID)

	_, err = f.requests.Complete(ctx, qr.ID, centerID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestQuoteRequestService_ListOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	brakes := details()
	brakes.Category = "brakes"
	brakes.Location = "Seoul Gangnam"

	var open []uuid.UUID
	for i := 0; i < 3; i++ {
		qr, err := f.requests.Create(ctx, uuid.New(), brakes)
		require.NoError(t, err)
		open = append(open, qr.ID)
		f.clock.Advance(time.Minute)
	}
	f.createRequest(t, uuid.New()) // engine / Busan

	closedOwner := uuid.New()
	closed, err := f.requests.Create(ctx, closedOwner, brakes)
	require.NoError(t, err)
	_, err = f.requests.Cancel(ctx, closed.ID, closedOwner)
	require.NoError(t, err)

	page, err := f.requests.ListOpen(ctx, domain.OpenRequestFilter{Category: "brakes", Location: "seoul", Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)

	items := page.Data.([]domain.QuoteRequestDTO)
	require.Len(t, items, 2)
	assert.Equal(t, open[2], items[0].ID)
	assert.Equal(t, open[1], items[1].ID)

	all, err := f.requests.ListOpen(ctx, domain.OpenRequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)
}

func TestQuoteRequestService_History(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ownerID := uuid.New()

	qr := f.createRequest(t, ownerID)
	f.clock.Advance(time.Minute)
	e := f.submit(t, qr.ID, uuid.New(), 10, 5)
	f.clock.Advance(time.Minute)
	_, err := f.estimates.Accept(ctx, e.ID, ownerID)
	require.NoError(t, err)

	history, err := f.requests.History(ctx, qr.ID)
	require.NoError(t, err)

	var requestSteps []string
	for _, h := range history {
		if h.EntityType == domain.EntityTypeQuoteRequest {
			requestSteps = append(requestSteps, h.FromStatus+">"+h.ToStatus)
		}
	}
	assert.Equal(t, []string{">OPEN", "OPEN>HAS_OFFERS", "HAS_OFFERS>CONFIRMED"}, requestSteps)

	_, err = f.requests.History(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
