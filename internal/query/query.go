// Package query derives filtered views and revenue aggregates from ledger records.
// Every function is pure: inputs are never modified.
package query

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hellora/rentbook/internal/domain"
	"github.com/hellora/rentbook/internal/util/sliceutil"
	"github.com/samber/lo"
)

const (
	StatusAll   = "All"
	statusSemua = "Semua"
)

var datePrefixPattern = regexp.MustCompile(`^[0-9-]+$`)

// Filters is the search state of the transaction table.
type Filters struct {
	// Search is matched case-insensitively against the billing label. Empty matches everything.
	Search string `json:"search"`
	// Status is All (or empty) or a payment status understood by domain.ParsePaymentStatus.
	Status string `json:"status"`
	// Date is a timestamp prefix, usually a YYYY-MM-DD day. Empty matches everything.
	Date string `json:"date"`
}

func (f Filters) Validate(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, &f,
		validation.Field(&f.Status, validation.By(func(value any) error {
			s, _ := value.(string)
			if matchesAllStatuses(s) {
				return nil
			}

			if _, err := domain.ParsePaymentStatus(s); err != nil {
				return errors.New("must be All, Paid or Unpaid")
			}

			return nil
		})),
		validation.Field(&f.Date, validation.Match(datePrefixPattern).Error("must be a date prefix such as 2025-09 or 2025-09-21")),
	)
}

// Filter returns the records that match every filter, in their original order.
func Filter(records []domain.Record, f Filters) []domain.Record {
	search := strings.ToLower(f.Search)
	allStatuses := matchesAllStatuses(f.Status)
	status, statusErr := domain.ParsePaymentStatus(f.Status)

	return lo.Filter(records, func(r domain.Record, _ int) bool {
		if !strings.Contains(strings.ToLower(r.Billing), search) {
			return false
		}

		if !allStatuses && (statusErr != nil || r.Status != status) {
			return false
		}

		return strings.HasPrefix(r.Timestamp, f.Date)
	})
}

func Totals(view []domain.Record) domain.Totals {
	price := lo.SumBy(view, func(r domain.Record) int64 { return r.Price })
	snack := lo.SumBy(view, func(r domain.Record) int64 { return r.SnackCharge })

	return domain.Totals{
		Price: price,
		Snack: snack,
		Grand: price + snack,
	}
}

// DailyAggregates sums revenue per date. Dates appear in the order they are first seen in the view,
// not chronologically; use SortByDate for a chronological series.
func DailyAggregates(view []domain.Record) []domain.DailyAggregate {
	groups := sliceutil.GroupOrdered(view, domain.Record.Date)

	return lo.Map(groups, func(g sliceutil.Group[string, domain.Record], _ int) domain.DailyAggregate {
		return domain.DailyAggregate{
			Date:  g.Key,
			Total: lo.SumBy(g.Items, domain.Record.Revenue),
		}
	})
}

// WeeklyTotal sums the daily totals. The result covers whatever dates the view spans,
// which is a calendar week only if the filters made it one.
func WeeklyTotal(aggregates []domain.DailyAggregate) int64 {
	return lo.SumBy(aggregates, func(a domain.DailyAggregate) int64 { return a.Total })
}

// SortByDate returns a copy of the aggregates ordered by date key.
func SortByDate(aggregates []domain.DailyAggregate) []domain.DailyAggregate {
	sorted := slices.Clone(aggregates)
	slices.SortStableFunc(sorted, func(a, b domain.DailyAggregate) int {
		return strings.Compare(a.Date, b.Date)
	})

	return sorted
}

func matchesAllStatuses(status string) bool {
	status = strings.TrimSpace(status)
	return status == "" || strings.EqualFold(status, StatusAll) || strings.EqualFold(status, statusSemua)
}
