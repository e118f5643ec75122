// internal/export/export.go

// Package export builds Excel workbooks of intake submissions for
// agency reporting. Workbooks are either streamed to the caller or
// saved under the configured export directory.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"acord-intake/internal/common/logger"
	"acord-intake/internal/models"
)

const submissionsSheet = "Submissions"
const coverageSheet = "Coverage Summary"

type Exporter struct {
	dir    string
	logger logger.Logger
}

func NewExporter(dir string, log logger.Logger) *Exporter {
	return &Exporter{
		dir:    dir,
		logger: log.WithFields(map[string]interface{}{"component": "export"}),
	}
}

// BuildSubmissionsWorkbook renders one row per submission plus a
// coverage tally sheet. formCounts maps submission id to the number of
// generated forms and may be nil.
func (e *Exporter) BuildSubmissionsWorkbook(submissions []*models.Submission, formCounts map[string]int) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", submissionsSheet)

	headers := []string{
		"Submission ID", "Status", "Client Type", "Business Name", "DBA",
		"FEIN", "Contact", "Email", "Phone", "State",
		"Coverage Types", "Forms", "Created At", "Submitted At",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(submissionsSheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(submissionsSheet, 1, 1, headerStyle)

	coverageCounts := map[string]int{}
	coverageOrder := []string{}

	for i, sub := range submissions {
		row := i + 2
		contact := strings.TrimSpace(sub.Contact.FirstName + " " + sub.Contact.LastName)

		f.SetCellValue(submissionsSheet, fmt.Sprintf("A%d", row), sub.ID)
		f.SetCellValue(submissionsSheet, fmt.Sprintf("B%d", row), string(sub.Status))
		f.SetCellValue(submissionsSheet, fmt.Sprintf("C%d", row), string(sub.ClientType))
		f.SetCellValue(submissionsSheet, fmt.Sprintf("D%d", row), sub.Business.LegalName)
		f.SetCellValue(submissionsSheet, fmt.Sprintf("E%d", row), sub.Business.DBA)
		f.SetCellValue(submissionsSheet, fmt.Sprintf("F%d", row), sub.Business.FEIN)
		f.SetCellValue(submissionsSheet, fmt.Sprintf("G%d", row), contact)
		f.SetCellValue(submissionsSheet, fmt.Sprintf("H%d", row), sub.Contact.Email)
		f.SetCellValue(submissionsSheet, fmt.Sprintf("I%d", row), sub.Contact.Phone)
		f.SetCellValue(submissionsSheet, fmt.Sprintf("J%d", row), sub.Business.Address.State)
		f.SetCellValue(submissionsSheet, fmt.Sprintf("K%d", row), strings.Join(sub.CoverageTypes, ", "))
		if formCounts != nil {
			f.SetCellValue(submissionsSheet, fmt.Sprintf("L%d", row), formCounts[sub.ID])
		}
		f.SetCellValue(submissionsSheet, fmt.Sprintf("M%d", row), sub.CreatedAt)
		f.SetCellValue(submissionsSheet, fmt.Sprintf("N%d", row), sub.SubmittedAt)

		for _, ct := range sub.CoverageTypes {
			if _, seen := coverageCounts[ct]; !seen {
				coverageOrder = append(coverageOrder, ct)
			}
			coverageCounts[ct]++
		}
	}

	f.NewSheet(coverageSheet)
	f.SetCellValue(coverageSheet, "A1", "Coverage Type")
	f.SetCellValue(coverageSheet, "B1", "Submissions")
	f.SetRowStyle(coverageSheet, 1, 1, headerStyle)

	for i, ct := range coverageOrder {
		row := i + 2
		f.SetCellValue(coverageSheet, fmt.Sprintf("A%d", row), ct)
		f.SetCellValue(coverageSheet, fmt.Sprintf("B%d", row), coverageCounts[ct])
	}

	f.SetColWidth(submissionsSheet, "A", "A", 38)
	f.SetColWidth(submissionsSheet, "B", "C", 14)
	f.SetColWidth(submissionsSheet, "D", "H", 28)
	f.SetColWidth(submissionsSheet, "I", "N", 18)
	f.SetColWidth(coverageSheet, "A", "A", 28)

	return f, nil
}

// Filename returns the timestamped name for an export file.
func Filename(now time.Time) string {
	return fmt.Sprintf("submissions-export-%s.xlsx", now.UTC().Format("20060102-150405"))
}

// SaveToDir writes the workbook under the export directory and returns
// the full path.
func (e *Exporter) SaveToDir(f *excelize.File, filename string) (string, error) {
	if e.dir == "" {
		return "", fmt.Errorf("no export directory configured")
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(e.dir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	e.logger.Info("submissions exported", map[string]interface{}{
		"path": path,
	})
	return path, nil
}
