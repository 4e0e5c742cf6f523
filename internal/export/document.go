package export

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/hellora/rentbook/internal/domain"
)

const (
	TypeDocument Type = "pdf"

	pageMargin    = 14.0
	titleX        = 10.0
	titleY        = 10.0
	tableTop      = 16.0
	rowHeight     = 8.0
	footerSpacing = 10.0
	fontFamily    = "Helvetica"
)

// Column widths in mm; they add up to the printable width of an A4 page.
var documentColumnWidths = []float64{32, 40, 20, 14, 26, 26, 24}

func init() {
	Register(TypeDocument, func(opts Options) (Exporter, error) {
		return &DocumentExporter{
			title:              opts.Title,
			footer:             fmt.Sprintf("Mengetahui: %s               Persetujuan: %s", opts.AcknowledgedBy, opts.ApprovedBy),
			disableCompression: opts.DisableCompression,
		}, nil
	})
}

var _ Exporter = (*DocumentExporter)(nil)

// DocumentExporter writes the view as an A4 PDF report: a title line, a table whose head row is
// repeated on every page, and the signature line just below the last row.
type DocumentExporter struct {
	title              string
	footer             string
	disableCompression bool
}

func (d *DocumentExporter) Type() Type {
	return TypeDocument
}

func (d *DocumentExporter) Extension() string {
	return ".pdf"
}

func (d *DocumentExporter) Export(ctx context.Context, w io.Writer, view []domain.Record) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetCompression(!d.disableCompression)
	pdf.SetTitle(d.title, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()
	bottom := pageHeight - pageMargin

	pdf.AddPage()
	pdf.SetFont(fontFamily, "", 14)
	pdf.Text(titleX, titleY, tr(d.title))

	pdf.SetXY(pageMargin, tableTop)
	d.writeHead(pdf)

	pdf.SetFont(fontFamily, "", 10)
	for i, record := range view {
		if err := ctx.Err(); err != nil {
			return err
		}

		if pdf.GetY()+rowHeight > bottom {
			pdf.AddPage()
			d.writeHead(pdf)
			pdf.SetFont(fontFamily, "", 10)
		}

		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for col, text := range cells(record) {
			width := documentColumnWidths[col]
			pdf.CellFormat(width, rowHeight, tr(fitText(pdf, text, width)), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	footerY := pdf.GetY() + footerSpacing
	if footerY > bottom {
		pdf.AddPage()
		footerY = pageMargin + footerSpacing
	}

	pdf.SetFont(fontFamily, "", 10)
	pdf.Text(titleX, footerY, tr(d.footer))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

func (d *DocumentExporter) writeHead(pdf *fpdf.Fpdf) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)

	for col, title := range documentHeader {
		pdf.CellFormat(documentColumnWidths[col], rowHeight, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(rowHeight)

	pdf.SetTextColor(0, 0, 0)
}

// fitText shortens text with an ellipsis until it fits inside a cell of the given width.
func fitText(pdf *fpdf.Fpdf, text string, width float64) string {
	const padding = 2.0

	if pdf.GetStringWidth(text) <= width-padding {
		return text
	}

	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width-padding {
		runes = runes[:len(runes)-1]
	}

	return string(runes) + "..."
}
