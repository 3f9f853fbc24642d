package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/Farmab/outgoing/internal/summary"
)

const (
	PDFFileName = "summary.pdf"
	PDFMIME     = "application/pdf"
)

// SummaryToPDF renders the grouped summary as a printable document: one line
// per aggregation row, then the filtered and grand totals. fontPath may point
// at a Unicode TTF (product and branch names are Kurdish); when it is absent
// the built-in Helvetica is used and non-Latin characters degrade.
func SummaryToPDF(s summary.Summary, fontPath string) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	font := "Helvetica"
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err == nil {
			pdf.AddUTF8Font("unicode", "", fontPath)
			font = "unicode"
		}
	}
	pdf.SetFont(font, "", 12)

	pdf.CellFormat(190, 10, "Ice Cream Outgoing Summary", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	for _, row := range s.Rows {
		line := fmt.Sprintf("%s - %s (%s, %s): %s qty, %s %s",
			row.Branch, row.Product, row.Category, row.Unit,
			summary.FormatAmount(row.Quantity), summary.FormatAmount(row.TotalPrice), row.Currency)
		pdf.CellFormat(190, 10, line, "", 1, "L", false, 0, "")
	}

	pdf.Ln(5)
	pdf.CellFormat(190, 10, "Total Price of Filtered Items: "+summary.FormatAmount(s.FilteredTotal), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 10, "Grand Total Across All Items: "+summary.FormatAmount(s.GrandTotal), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
