package query_test

import (
	"testing"

	"github.com/hellora/rentbook/internal/domain"
	"github.com/hellora/rentbook/internal/query"
	"github.com/hellora/rentbook/internal/util/testutil"
	"github.com/stretchr/testify/require"
)

func ids(records []domain.Record) []int {
	result := make([]int, 0, len(records))
	for _, r := range records {
		result = append(result, r.ID)
	}

	return result
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		filters     query.Filters
		expectedIDs []int
	}{
		"empty filters match all": {
			filters:     query.Filters{},
			expectedIDs: []int{1, 2, 3},
		},
		"search is case insensitive substring": {
			filters:     query.Filters{Search: "BILLING"},
			expectedIDs: []int{1, 2},
		},
		"search matches inside label": {
			filters:     query.Filters{Search: "ng 2"},
			expectedIDs: []int{2},
		},
		"status all": {
			filters:     query.Filters{Status: "All"},
			expectedIDs: []int{1, 2, 3},
		},
		"status semua": {
			filters:     query.Filters{Status: "Semua"},
			expectedIDs: []int{1, 2, 3},
		},
		"status unpaid": {
			filters:     query.Filters{Status: "Unpaid"},
			expectedIDs: []int{3},
		},
		"status by indonesian label": {
			filters:     query.Filters{Status: "Sudah Bayar"},
			expectedIDs: []int{1, 2},
		},
		"unknown status matches nothing": {
			filters:     query.Filters{Status: "Later"},
			expectedIDs: []int{},
		},
		"date prefix day": {
			filters:     query.Filters{Date: "2025-09-21"},
			expectedIDs: []int{1, 3},
		},
		"date prefix month": {
			filters:     query.Filters{Date: "2025-09"},
			expectedIDs: []int{1, 2, 3},
		},
		"all filters combined": {
			filters:     query.Filters{Search: "billing", Status: "Paid", Date: "2025-09-21"},
			expectedIDs: []int{1},
		},
		"no match": {
			filters:     query.Filters{Date: "2024"},
			expectedIDs: []int{},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			records := testutil.Records(t)
			before := testutil.CloneRecords(records)

			view := query.Filter(records, test.filters)

			require.Equal(t, test.expectedIDs, ids(view))
			require.Equal(t, before, records)
		})
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	t.Parallel()

	filters := []query.Filters{
		{},
		{Search: "billing"},
		{Status: "Unpaid"},
		{Date: "2025-09-21", Status: "All"},
		{Search: "vip", Status: "Paid"},
	}

	for _, f := range filters {
		once := query.Filter(testutil.Records(t), f)
		twice := query.Filter(once, f)

		require.Equal(t, once, twice)
	}
}

func TestFiltersValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		filters        query.Filters
		expectedErrMsg string
	}{
		"empty":            {filters: query.Filters{}},
		"all fields valid": {filters: query.Filters{Search: "x", Status: "Belum Bayar", Date: "2025-09-21"}},
		"bad status": {
			filters:        query.Filters{Status: "Later"},
			expectedErrMsg: "status: must be All, Paid or Unpaid.",
		},
		"bad date": {
			filters:        query.Filters{Date: "21/09/2025"},
			expectedErrMsg: "date: must be a date prefix such as 2025-09 or 2025-09-21.",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := test.filters.Validate(t.Context())

			if test.expectedErrMsg != "" {
				require.EqualError(t, err, test.expectedErrMsg)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestTotals(t *testing.T) {
	t.Parallel()

	t.Run("sums view", func(t *testing.T) {
		t.Parallel()

		totals := query.Totals(testutil.Records(t))

		require.Equal(t, domain.Totals{Price: 47500, Snack: 17000, Grand: 64500}, totals)
	})

	t.Run("empty view is zero", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, domain.Totals{}, query.Totals(nil))
	})
}

func TestDailyAggregates(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		records  []domain.Record
		expected []domain.DailyAggregate
	}{
		"first occurrence order": {
			records: []domain.Record{
				{Timestamp: "2025-09-22 09:31", Price: 7500, SnackCharge: 5000},
				{Timestamp: "2025-09-21 09:12", Price: 10000},
				{Timestamp: "2025-09-22 20:00", Price: 500},
			},
			expected: []domain.DailyAggregate{
				{Date: "2025-09-22", Total: 13000},
				{Date: "2025-09-21", Total: 10000},
			},
		},
		"malformed timestamp is its own key": {
			records: []domain.Record{
				{Timestamp: "kemarin", Price: 1000},
				{Timestamp: "kemarin", Price: 1000, SnackCharge: 1},
			},
			expected: []domain.DailyAggregate{
				{Date: "kemarin", Total: 2001},
			},
		},
		"empty view": {
			records:  []domain.Record{},
			expected: []domain.DailyAggregate{},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, test.expected, query.DailyAggregates(test.records))
		})
	}
}

func TestWeeklyTotal(t *testing.T) {
	t.Parallel()

	aggregates := []domain.DailyAggregate{
		{Date: "2025-09-21", Total: 10000},
		{Date: "2025-09-22", Total: 12500},
	}

	require.Equal(t, int64(22500), query.WeeklyTotal(aggregates))
	require.Zero(t, query.WeeklyTotal(nil))
}

func TestSortByDate(t *testing.T) {
	t.Parallel()

	aggregates := []domain.DailyAggregate{
		{Date: "2025-09-22", Total: 1},
		{Date: "2025-09-01", Total: 2},
		{Date: "2025-09-10", Total: 3},
	}

	sorted := query.SortByDate(aggregates)

	require.Equal(t, []domain.DailyAggregate{
		{Date: "2025-09-01", Total: 2},
		{Date: "2025-09-10", Total: 3},
		{Date: "2025-09-22", Total: 1},
	}, sorted)
	require.Equal(t, "2025-09-22", aggregates[0].Date)
}

func TestGrandTotalMatchesDailyAggregates(t *testing.T) {
	t.Parallel()

	filters := []query.Filters{
		{},
		{Status: "Paid"},
		{Date: "2025-09-21"},
		{Search: "nothing matches this"},
	}

	for _, f := range filters {
		view := query.Filter(testutil.Records(t), f)

		require.Equal(t, query.Totals(view).Grand, query.WeeklyTotal(query.DailyAggregates(view)))
	}
}

func TestTwoRecordExample(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		{ID: 1, Billing: "A", Price: 10000, SnackCharge: 0, Timestamp: "2025-01-01 10:00"},
		{ID: 2, Billing: "B", Price: 5000, SnackCharge: 2000, Timestamp: "2025-01-01 11:00"},
	}

	view := query.Filter(records, query.Filters{Status: query.StatusAll})

	require.Equal(t, records, view)
	require.Equal(t, domain.Totals{Price: 15000, Snack: 2000, Grand: 17000}, query.Totals(view))
	require.Equal(t, []domain.DailyAggregate{{Date: "2025-01-01", Total: 17000}}, query.DailyAggregates(view))
}
