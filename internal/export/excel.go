// Package export renders record snapshots and summaries into downloadable
// documents.
package export

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/Farmab/outgoing/internal/models"
)

const (
	ExcelFileName = "ice_cream_outgoing.xlsx"
	ExcelMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var excelHeader = []string{"Date", "Product", "Type", "Branch", "Unit", "Quantity", "Unit Price", "Total Price", "Currency", "Note"}

// RecordsToExcel renders the full record snapshot as a single-sheet workbook
// with the fixed column order of the data table.
func RecordsToExcel(records []models.OutgoingRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range excelHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, rec := range records {
		values := []interface{}{
			rec.Date.Format(models.DateLayout),
			rec.Product,
			rec.Category,
			rec.Branch,
			rec.Unit,
			rec.Quantity.InexactFloat64(),
			rec.UnitPrice.InexactFloat64(),
			rec.TotalPrice.InexactFloat64(),
			string(rec.Currency),
			rec.Note,
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}
