package export_test

import (
	"bytes"
	"fmt"
	"regexp"
	"testing"

	"github.com/hellora/rentbook/internal/domain"
	"github.com/hellora/rentbook/internal/export"
	"github.com/hellora/rentbook/internal/util/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func exportDocument(t *testing.T, opts export.Options, view []domain.Record) []byte {
	t.Helper()

	exporter, err := export.NewExporter(t.Context(), export.TypeDocument, opts)
	require.NoError(t, err)

	buffer := bytes.NewBuffer(nil)
	require.NoError(t, exporter.Export(t.Context(), buffer, view))

	return buffer.Bytes()
}

// pageObject matches a page dictionary but not the /Pages tree root.
var pageObject = regexp.MustCompile(`/Type /Page\b`)

func sessions(n int) []domain.Record {
	view := make([]domain.Record, 0, n)
	for i := range n {
		view = append(view, domain.Record{
			ID:            i + 1,
			Timestamp:     fmt.Sprintf("2025-09-%02d 10:00", i%28+1),
			Billing:       fmt.Sprintf("Billing %d", i+1),
			DurationHours: decimal.NewFromInt(1),
			Price:         5000,
			Status:        domain.StatusPaid,
		})
	}

	return view
}

func uncompressedOptions() export.Options {
	opts := export.DefaultOptions()
	opts.DisableCompression = true
	return opts
}

func TestDocumentExporter(t *testing.T) {
	t.Parallel()

	t.Run("writes title, table and signatures", func(t *testing.T) {
		t.Parallel()

		output := exportDocument(t, uncompressedOptions(), testutil.Records(t))

		require.True(t, bytes.HasPrefix(output, []byte("%PDF-")))
		require.Contains(t, string(output), "(Laporan Transaksi Hellora Game Corner)")
		require.Contains(t, string(output), "(Lama Jam)")
		require.Contains(t, string(output), "(VIP Room)")
		require.Contains(t, string(output), "(Belum Bayar)")
		require.Contains(t, string(output), "(Mengetahui: Olifinia Aziza               Persetujuan: Raihani Zahra Anindika)")
	})

	t.Run("uses configured title and signatories", func(t *testing.T) {
		t.Parallel()

		opts := uncompressedOptions()
		opts.Title = "Laporan Mingguan"
		opts.AcknowledgedBy = "Kasir"
		opts.ApprovedBy = "Pemilik"

		output := string(exportDocument(t, opts, testutil.Records(t)))

		require.Contains(t, output, "(Laporan Mingguan)")
		require.Contains(t, output, "(Mengetahui: Kasir               Persetujuan: Pemilik)")
	})

	t.Run("empty view renders head only table", func(t *testing.T) {
		t.Parallel()

		output := string(exportDocument(t, uncompressedOptions(), nil))

		require.Equal(t, 1, bytes.Count([]byte(output), []byte("(Tanggal)")))
		require.Contains(t, output, "(Mengetahui: ")
	})

	t.Run("repeats head row on every page", func(t *testing.T) {
		t.Parallel()

		output := exportDocument(t, uncompressedOptions(), sessions(100))

		require.Greater(t, bytes.Count(output, []byte("(Tanggal)")), 1)
		require.Contains(t, string(output), "(Billing 100)")
	})

	t.Run("footer placement", func(t *testing.T) {
		t.Parallel()

		// 32 rows fill the first page down to its bottom margin.
		tests := map[string]struct {
			rows          int
			expectedPages int
		}{
			"footer fits below last row": {
				rows:          31,
				expectedPages: 1,
			},
			"footer moves to a new page": {
				rows:          32,
				expectedPages: 2,
			},
		}
		for name, test := range tests {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				output := exportDocument(t, uncompressedOptions(), sessions(test.rows))

				require.Len(t, pageObject.FindAll(output, -1), test.expectedPages)
				require.Equal(t, 1, bytes.Count(output, []byte("(Tanggal)")))
				require.Equal(t, 1, bytes.Count(output, []byte("(Mengetahui: Olifinia Aziza               Persetujuan: Raihani Zahra Anindika)")))
				require.Contains(t, string(output), fmt.Sprintf("(Billing %d)", test.rows))
			})
		}
	})

	t.Run("compressed by default", func(t *testing.T) {
		t.Parallel()

		output := exportDocument(t, export.DefaultOptions(), testutil.Records(t))

		require.True(t, bytes.HasPrefix(output, []byte("%PDF-")))
		require.NotContains(t, string(output), "(VIP Room)")
	})

	t.Run("does not modify view", func(t *testing.T) {
		t.Parallel()

		view := testutil.Records(t)
		before := testutil.CloneRecords(view)

		exportDocument(t, export.DefaultOptions(), view)

		require.Equal(t, before, view)
	})
}
