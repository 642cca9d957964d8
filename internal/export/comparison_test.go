package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/straye-as/repair-quote-api/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func estimate(total int64, status domain.EstimateStatus) domain.Estimate {
	e := domain.Estimate{
		RequestID:    uuid.New(),
		CenterID:     uuid.New(),
		Cost:         domain.CostBreakdown{Parts: total, Labor: 0, Total: total},
		Description:  "Replace pads and discs",
		ProposedDate: time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		ValidUntil:   time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return e
}

func TestComparisonExporter_Write(t *testing.T) {
	qr := &domain.QuoteRequest{
		Vehicle: domain.VehicleDescriptor{Make: "Kia", Model: "Sorento", Year: 2021},
		Status:  domain.QuoteRequestStatusHasOffers,
	}
	qr.ID = uuid.New()

	estimates := []domain.Estimate{
		estimate(150000, domain.EstimateStatusPending),
		estimate(120000, domain.EstimateStatusPending),
		estimate(90000, domain.EstimateStatusExpired),
	}

	var buf bytes.Buffer
	err := export.NewComparisonExporter(zap.NewNop()).Write(&buf, qr, estimates)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())

	title, err := f.GetCellValue(export.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Kia Sorento (2021) - HAS_OFFERS", title)

	header, err := f.GetCellValue(export.SheetName, "F3")
	require.NoError(t, err)
	assert.Equal(t, "Total", header)

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, estimates[0].ID.String(), rows[3][0])
	assert.Equal(t, "120000", rows[4][5])
	assert.Equal(t, "EXPIRED", rows[5][2])

	// the cheapest pending estimate is highlighted, not the cheaper expired one
	pendingStyle, err := f.GetCellStyle(export.SheetName, "A5")
	require.NoError(t, err)
	expiredStyle, err := f.GetCellStyle(export.SheetName, "A6")
	require.NoError(t, err)
	assert.NotEqual(t, pendingStyle, expiredStyle)
}

func TestComparisonExporter_Empty(t *testing.T) {
	qr := &domain.QuoteRequest{Status: domain.QuoteRequestStatusOpen}
	qr.ID = uuid.New()

	var buf bytes.Buffer
	require.NoError(t, export.NewComparisonExporter(zap.NewNop()).Write(&buf, qr, nil))
	assert.NotZero(t, buf.Len())
}

func TestFilename(t *testing.T) {
	id := uuid.MustParse("0a1b2c3d-0000-4000-8000-000000000000")
	assert.Equal(t, "estimates-0a1b2c3d.xlsx", export.Filename(id))
}
