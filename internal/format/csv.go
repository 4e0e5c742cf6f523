package format

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/hellora/rentbook/internal/domain"
)

const FormatTypeCSV FormatType = "csv"

func init() {
	register(FormatTypeCSV, func(w io.Writer) Formatter {
		return &LedgerCSVFormatter{CSVFormatter: NewCSVFormatter(w)}
	})
}

// CSVFormatter provides CSV output functionality for record formatters.
// It wraps the standard csv.Writer.
type CSVFormatter struct {
	writer *csv.Writer
}

// NewCSVFormatter creates a new CSV formatter that writes to the provided io.Writer.
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{
		writer: csv.NewWriter(w),
	}
}

func (f *CSVFormatter) Flush() error {
	f.writer.Flush()

	return f.writer.Error()
}

// LedgerCSVFormatter writes records with the spreadsheet column names, so the output can be
// loaded back as ledger input.
type LedgerCSVFormatter struct {
	*CSVFormatter
}

func (l *LedgerCSVFormatter) WriteHeader() error {
	return l.writer.Write([]string{"Tanggal", "Billing", "LamaJam", "Stik", "Harga", "Cemilan", "Status"})
}

func (l *LedgerCSVFormatter) WriteRecord(r domain.Record) error {
	return l.writer.Write([]string{
		r.Timestamp,
		r.Billing,
		r.DurationHours.String(),
		strconv.Itoa(r.SnackCount),
		strconv.FormatInt(r.Price, 10),
		strconv.FormatInt(r.SnackCharge, 10),
		r.Status.Label(),
	})
}
