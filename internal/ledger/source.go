package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hellora/rentbook/internal/domain"
	"github.com/hellora/rentbook/internal/log"
	"github.com/xuri/excelize/v2"
)

// Row is a record input read from a source file, along with the line it came from.
type Row struct {
	Line int
	domain.RecordInput
}

var columnAliases = map[string]func(in *domain.RecordInput) *string{
	"tanggal":       func(in *domain.RecordInput) *string { return &in.Timestamp },
	"timestamp":     func(in *domain.RecordInput) *string { return &in.Timestamp },
	"billing":       func(in *domain.RecordInput) *string { return &in.Billing },
	"lamajam":       func(in *domain.RecordInput) *string { return &in.DurationHours },
	"durationhours": func(in *domain.RecordInput) *string { return &in.DurationHours },
	"stik":          func(in *domain.RecordInput) *string { return &in.SnackCount },
	"snackcount":    func(in *domain.RecordInput) *string { return &in.SnackCount },
	"harga":         func(in *domain.RecordInput) *string { return &in.Price },
	"price":         func(in *domain.RecordInput) *string { return &in.Price },
	"cemilan":       func(in *domain.RecordInput) *string { return &in.SnackCharge },
	"snackcharge":   func(in *domain.RecordInput) *string { return &in.SnackCharge },
	"status":        func(in *domain.RecordInput) *string { return &in.Status },
}

// ReadCSV reads record inputs from CSV with a header row. Columns are matched by name
// (Tanggal, Billing, LamaJam, Stik, Harga, Cemilan, Status or their English equivalents),
// ignoring case and spaces, and may appear in any order.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var table [][]string
	var lines []int
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		table = append(table, record)
		lines = append(lines, line)
	}

	return rowsFromTable(table, lines)
}

// ReadSpreadsheet reads record inputs from an xlsx workbook, such as one produced by the xlsx exporter.
// An empty sheet name selects the first sheet.
func ReadSpreadsheet(r io.Reader, sheet string) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("spreadsheet has no sheets")
		}

		sheet = sheets[0]
	}

	table, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	return rowsFromTable(table, nil)
}

// ReadFile picks a reader by file extension (.csv or .xlsx).
func ReadFile(path string, sheet string) ([]Row, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(file)
	case ".xlsx":
		return ReadSpreadsheet(file, sheet)
	default:
		return nil, fmt.Errorf("unsupported input file type: %q", ext)
	}
}

// Load creates a record for every row, stopping at the first one the store rejects.
func Load(ctx context.Context, store *Store, rows []Row) error {
	for _, row := range rows {
		if _, err := store.Create(row.RecordInput); err != nil {
			return fmt.Errorf("line %d: %w", row.Line, err)
		}
	}

	log.FromContext(ctx).DebugContext(ctx, "loaded records",
		slog.Int("record.total", len(rows)),
	)

	return nil
}

// rowsFromTable maps the header row onto record fields. lines holds the source line of each table row;
// when nil, the row's position in the table is used.
func rowsFromTable(table [][]string, lines []int) ([]Row, error) {
	if len(table) == 0 {
		return nil, errors.New("missing header row")
	}

	fields := make([]func(in *domain.RecordInput) *string, len(table[0]))
	found := make(map[string]bool)
	for i, name := range table[0] {
		key := normaliseColumn(name)
		if field, ok := columnAliases[key]; ok {
			fields[i] = field
			found[key] = true
		}
	}

	if !found["billing"] {
		return nil, errors.New("missing column: Billing")
	}

	if !found["harga"] && !found["price"] {
		return nil, errors.New("missing column: Harga")
	}

	rows := make([]Row, 0, len(table)-1)
	for i, cells := range table[1:] {
		if isBlank(cells) {
			continue
		}

		row := Row{Line: i + 2}
		if lines != nil {
			row.Line = lines[i+1]
		}
		for col, cell := range cells {
			if col >= len(fields) || fields[col] == nil {
				continue
			}

			*fields[col](&row.RecordInput) = cell
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func normaliseColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
}

func isBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
