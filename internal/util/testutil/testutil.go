package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/hellora/rentbook/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// TestDataPath returns the path of a file under the package's testdata directory, failing the test if it does not exist.
func TestDataPath(t *testing.T, filename string) string {
	t.Helper()

	path := filepath.Clean(filepath.Join("testdata", filename))

	_, err := os.Stat(path)
	require.NoError(t, err, "test data file %s must exist", filename)

	return path
}

func LoadTestDataFile(t *testing.T, filename string) []byte {
	t.Helper()

	b, err := os.ReadFile(TestDataPath(t, filename))
	require.NoError(t, err)

	return b
}

func MustParse[T any](t *testing.T, input string, fn func(string) (T, error)) T {
	t.Helper()

	result, err := fn(input)
	require.NoError(t, err)
	return result
}

// Records returns the two sample sessions the ledger starts with, plus a third unpaid one on the first day.
func Records(t *testing.T) []domain.Record {
	t.Helper()

	return []domain.Record{
		{
			ID:            1,
			Timestamp:     "2025-09-21 09:12",
			Billing:       "Billing 1",
			DurationHours: MustParse(t, "2", decimal.NewFromString),
			Price:         10000,
			Status:        domain.StatusPaid,
		},
		{
			ID:            2,
			Timestamp:     "2025-09-22 09:31",
			Billing:       "Billing 2",
			DurationHours: MustParse(t, "1.5", decimal.NewFromString),
			SnackCount:    1,
			Price:         7500,
			SnackCharge:   5000,
			Status:        domain.StatusPaid,
		},
		{
			ID:            3,
			Timestamp:     "2025-09-21 20:05",
			Billing:       "VIP Room",
			DurationHours: MustParse(t, "3", decimal.NewFromString),
			SnackCount:    2,
			Price:         30000,
			SnackCharge:   12000,
			Status:        domain.StatusUnpaid,
		},
	}
}

// CloneRecords copies records so a test can compare a view before and after an operation.
func CloneRecords(records []domain.Record) []domain.Record {
	return slices.Clone(records)
}
