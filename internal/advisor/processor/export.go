package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finecho-server/internal/observability"
	"finecho-server/internal/store"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet     = "Calls"
	exportBatchSize = 500
)

var exportHeaders = []string{
	"Call ID",
	"Recorded At",
	"Client",
	"Status",
	"Compliance Status",
	"Compliance Flags",
	"Goals",
	"Language",
	"Analysis Source",
	"Summary",
	"Error",
}

// ExportCalls renders the advisor's calls in the range as an xlsx workbook
func (p *AdvisorProcessor) ExportCalls(ctx context.Context, advisorID uuid.UUID, dateRange DateRange) ([]byte, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "advisor_id", Value: advisorID.String()})

	if err := dateRange.validate(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := styleHeader(f); err != nil {
		return nil, err
	}

	// Calls uploaded while the export runs are left out
	to := dateRange.To
	if to == nil {
		now := time.Now().UTC()
		to = &now
	}

	row := 2
	var cursor *store.CallCursor
	for {
		calls, err := p.store.ListCalls(ctx, store.ListCallsParams{
			AdvisorID: &advisorID,
			From:      dateRange.From,
			To:        to,
			After:     cursor,
			Limit:     exportBatchSize,
		})
		if err != nil {
			p.logger.Error(ctx, "failed to list calls for export", err)
			return nil, err
		}

		for _, call := range calls {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			values := exportRow(call)
			if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
			row++
		}

		if len(calls) < exportBatchSize {
			break
		}
		cursor = store.CursorOf(calls[len(calls)-1])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	p.logger.Info(ctx, fmt.Sprintf("exported %d calls", row-2))
	return buf.Bytes(), nil
}

func styleHeader(f *excelize.File) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(exportSheet, "J", "J", 80); err != nil {
		return fmt.Errorf("failed to size summary column: %w", err)
	}
	return nil
}

func exportRow(call store.Call) []interface{} {
	return []interface{}{
		call.ID.String(),
		call.CreatedAt.UTC().Format(time.RFC3339),
		deref(call.ClientName),
		string(call.Status),
		deref(call.ComplianceStatus),
		strings.Join(call.ComplianceFlags, "; "),
		strings.Join(call.Goals, "; "),
		call.Language,
		deref(call.AnalysisSource),
		call.Summary,
		deref(call.ErrorDetail),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
