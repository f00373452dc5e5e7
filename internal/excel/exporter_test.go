package excel

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/example/radbot/internal/catalog"
	"github.com/example/radbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

func TestExportProgress(t *testing.T) {
	due := time.Date(2024, 3, 22, 0, 0, 0, 0, time.Local)
	byID := make(map[int]models.ProgressRecord)
	for _, id := range catalog.IDs() {
		byID[id] = models.ProgressRecord{Box: 1, Due: due}
	}
	rec := byID[14]
	rec.Box = 4
	rec.Learned = true
	rec.Correct = 9
	byID[14] = rec

	state := models.ProgressState{ByID: byID, Settings: models.DefaultSettings()}
	path := filepath.Join(t.TempDir(), "report.xlsx")

	if err := ExportProgress(path, state); err != nil {
		t.Fatalf("ExportProgress failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen report: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	if len(rows) != catalog.Size()+1 {
		t.Fatalf("report has %d rows, want %d", len(rows), catalog.Size()+1)
	}
	if rows[0][0] != "ID" || rows[0][5] != "Box" {
		t.Errorf("unexpected header row: %v", rows[0])
	}

	// Row for radical 14 carries its progress
	row := rows[14]
	if row[0] != "14" {
		t.Fatalf("row 14 id = %q", row[0])
	}
	if row[5] != strconv.Itoa(4) {
		t.Errorf("row 14 box = %q, want 4", row[5])
	}
	if row[7] != "9" {
		t.Errorf("row 14 correct = %q, want 9", row[7])
	}
}
