package export

import (
	"strconv"

	"github.com/hellora/rentbook/internal/domain"
)

var (
	spreadsheetHeader = []string{"Tanggal", "Billing", "LamaJam", "Stik", "Harga", "Cemilan", "Status"}
	documentHeader    = []string{"Tanggal", "Billing", "Lama Jam", "Stik", "Harga", "Cemilan", "Status"}
)

// cells renders a record in column order for formats that only hold text.
func cells(r domain.Record) []string {
	return []string{
		r.Timestamp,
		r.Billing,
		r.DurationHours.String(),
		strconv.Itoa(r.SnackCount),
		strconv.FormatInt(r.Price, 10),
		strconv.FormatInt(r.SnackCharge, 10),
		r.Status.Label(),
	}
}

// values renders a record in column order, keeping numbers numeric.
func values(r domain.Record) []any {
	return []any{
		r.Timestamp,
		r.Billing,
		r.DurationHours.InexactFloat64(),
		r.SnackCount,
		r.Price,
		r.SnackCharge,
		r.Status.Label(),
	}
}
