// Package xlsx renders audit events as a spreadsheet.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"workorders/internal/core/domain/model/audit"

	"github.com/xuri/excelize/v2"
)

const sheet = "Audit"

var headers = []any{
	"Audit ID", "At", "Actor", "Action", "Entity Type", "Entity ID", "Before", "After", "Correlation ID",
}

// Exporter implements ports.AuditExporter.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (*Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (*Exporter) FileExtension() string {
	return "xlsx"
}

// Export writes one header row and one row per event, in the given order.
func (*Exporter) Export(ctx context.Context, events []*audit.Event) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err = f.SetCellStyle(sheet, "A1", "I1", style); err != nil {
		return nil, err
	}

	for i, e := range events {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		row, err := toRow(e)
		if err != nil {
			return nil, fmt.Errorf("audit event %s: %w", e.ID, err)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 30)
	_ = f.SetColWidth(sheet, "B", "B", 25)
	_ = f.SetColWidth(sheet, "D", "D", 28)
	_ = f.SetColWidth(sheet, "F", "F", 38)
	_ = f.SetColWidth(sheet, "G", "H", 50)

	var buf bytes.Buffer
	if err = f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toRow(e *audit.Event) ([]any, error) {
	before, err := audit.MarshalSnapshot(e.Before)
	if err != nil {
		return nil, err
	}
	after, err := audit.MarshalSnapshot(e.After)
	if err != nil {
		return nil, err
	}
	return []any{
		e.ID,
		e.At.UTC().Format(time.RFC3339Nano),
		e.ActorUserID,
		e.Action.String(),
		e.EntityType,
		e.EntityID,
		deref(before),
		deref(after),
		e.CorrelationID,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
