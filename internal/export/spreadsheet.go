package export

import (
	"context"
	"fmt"
	"io"

	"github.com/hellora/rentbook/internal/domain"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

const TypeSpreadsheet Type = "xlsx"

func init() {
	Register(TypeSpreadsheet, func(opts Options) (Exporter, error) {
		return &SpreadsheetExporter{sheetName: opts.SheetName}, nil
	})
}

var _ Exporter = (*SpreadsheetExporter)(nil)

// SpreadsheetExporter writes the view to a single-sheet xlsx workbook: a header row followed by
// one row per record.
type SpreadsheetExporter struct {
	sheetName string
}

func (s *SpreadsheetExporter) Type() Type {
	return TypeSpreadsheet
}

func (s *SpreadsheetExporter) Extension() string {
	return ".xlsx"
}

func (s *SpreadsheetExporter) Export(ctx context.Context, w io.Writer, view []domain.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), s.sheetName); err != nil {
		return fmt.Errorf("sheet name: %w", err)
	}

	header := lo.ToAnySlice(spreadsheetHeader)
	if err := f.SetSheetRow(s.sheetName, "A1", &header); err != nil {
		return fmt.Errorf("header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := f.SetRowStyle(s.sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, record := range view {
		if err := ctx.Err(); err != nil {
			return err
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := values(record)
		if err := f.SetSheetRow(s.sheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(s.sheetName, "A", "B", 20); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}
