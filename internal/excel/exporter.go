// Package excel writes progress reports as spreadsheets.
package excel

import (
	"fmt"
	"time"

	"github.com/example/radbot/internal/catalog"
	"github.com/example/radbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet the report is written to
const SheetName = "Progress"

var header = []string{"ID", "Name", "Radical", "Pinyin", "Meaning", "Box", "Learned", "Correct", "Wrong", "Last reviewed", "Due"}

// ExportProgress writes one row per radical with its scheduling state to
// an .xlsx file at path
func ExportProgress(path string, state models.ProgressState) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %v", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %v", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return err
		}
	}

	for row, r := range catalog.All() {
		rec := state.ByID[r.ID]
		lastReviewed := ""
		if rec.LastReviewed != nil {
			lastReviewed = rec.LastReviewed.Format(time.RFC3339)
		}
		values := []interface{}{
			r.ID, r.Name, r.Radical, r.Pinyin, r.Meaning,
			rec.Box, rec.Learned, rec.Correct, rec.Wrong,
			lastReviewed, rec.Due.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %v", err)
	}
	return nil
}
