// Package export renders estimate comparisons as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/straye-as/repair-quote-api/internal/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SheetName is the name of the single worksheet in the comparison workbook
const SheetName = "Estimates"

// ContentType is the media type of the generated workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []interface{}{
	"Estimate ID", "Center ID", "Status", "Parts", "Labor", "Total",
	"Proposed date", "Valid until", "Submitted at", "Description",
}

// ComparisonExporter writes the estimates of one quote request side by side
type ComparisonExporter struct {
	logger *zap.Logger
}

// NewComparisonExporter creates a new exporter
func NewComparisonExporter(logger *zap.Logger) *ComparisonExporter {
	return &ComparisonExporter{logger: logger}
}

// Filename returns the attachment name for a request's comparison sheet
func Filename(requestID fmt.Stringer) string {
	return fmt.Sprintf("estimates-%s.xlsx", requestID.String()[:8])
}

// Write renders the workbook to w. The cheapest estimate still open for
// acceptance, or the accepted one, is highlighted.
func (e *ComparisonExporter) Write(w io.Writer, qr *domain.QuoteRequest, estimates []domain.Estimate) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	title := fmt.Sprintf("%s %s (%d) - %s", qr.Vehicle.Make, qr.Vehicle.Model, qr.Vehicle.Year, qr.Status)
	if err := f.SetCellValue(SheetName, "A1", title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A3", &headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 3)
	if err := f.SetCellStyle(SheetName, "A3", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create highlight style: %w", err)
	}
	best := bestIndex(estimates)

	for i := range estimates {
		est := &estimates[i]
		row := i + 4
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{
			est.ID.String(),
			est.CenterID.String(),
			string(est.Status),
			est.Cost.Parts,
			est.Cost.Labor,
			est.Cost.Total,
			est.ProposedDate.UTC().Format("2006-01-02"),
			est.ValidUntil.UTC().Format(time.RFC3339),
			est.CreatedAt.UTC().Format(time.RFC3339),
			est.Description,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write estimate row: %w", err)
		}
		if i == best {
			last, _ := excelize.CoordinatesToCellName(len(headers), row)
			if err := f.SetCellStyle(SheetName, cell, last, highlight); err != nil {
				return fmt.Errorf("failed to highlight row: %w", err)
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "B", 38); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(SheetName, "G", "I", 22); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(SheetName, "J", "J", 60); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Debug("Estimate comparison exported",
		zap.String("quote_request_id", qr.ID.String()),
		zap.Int("estimates", len(estimates)),
	)
	return nil
}

// bestIndex returns the accepted estimate if any, otherwise the cheapest pending one, or -1
func bestIndex(estimates []domain.Estimate) int {
	best := -1
	for i := range estimates {
		switch estimates[i].Status {
		case domain.EstimateStatusAccepted:
			return i
		case domain.EstimateStatusPending:
			if best < 0 || estimates[i].Cost.Total < estimates[best].Cost.Total {
				best = i
			}
		}
	}
	return best
}
