package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"presyo/internal"
	"presyo/internal/util"
)

func ExportRecordsToXLSX(rows []internal.RecordExportRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"record_no", "category", "commodity", "specification", "origin", "unit", "price"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.RecordNo)
		set(2, row.Category)
		set(3, row.Commodity)
		set(4, util.DerefString(row.Specification))
		set(5, row.Origin)
		set(6, row.Unit)
		set(7, util.DerefFloat(row.Price))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
