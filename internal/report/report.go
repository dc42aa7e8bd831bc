// Package report serializes read-only result sets into Excel
// workbooks. It never mutates the store.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inpredservice11-beep/instruments/internal/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoIssues is returned when there is nothing to export.
var ErrNoIssues = errors.New("failed to generate report, no active issues were provided")

const uncategorized = "Uncategorized"

// Generator holds the state for the Excel report generation process.
type Generator struct {
	file *excelize.File
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		file: excelize.NewFile(),
	}
}

// GenerateActiveIssuesReport builds an Excel workbook of the open
// issuances, one sheet per tool category, and returns it as a buffer.
func GenerateActiveIssuesReport(issues []models.ActiveIssue, now time.Time) (*bytes.Buffer, error) {
	var err error

	if len(issues) == 0 {
		return nil, ErrNoIssues
	}

	issuesByCategory := make(map[string][]models.ActiveIssue)
	for _, issue := range issues {
		category := issue.Category
		if category == "" {
			category = uncategorized
		}
		issuesByCategory[category] = append(issuesByCategory[category], issue)
	}

	gen := NewGenerator()
	defer gen.file.Close()

	if err = gen.addSheets(issuesByCategory, now); err != nil {
		return nil, fmt.Errorf("failed to add sheets: %w", err)
	}

	// setup first sheet as active
	gen.file.SetActiveSheet(0)

	// delete default sheet
	if sheetIndex, _ := gen.file.GetSheetIndex("Sheet1"); sheetIndex != -1 {
		if err = gen.file.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to delete default sheet 'Sheet1': %w", err)
		}
	}

	buffer, err := gen.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write data from saved file: %w", err)
	}

	return buffer, nil
}

// addSheets creates one sheet per category and fills it with the
// category's open issuances.
func (g *Generator) addSheets(issuesByCategory map[string][]models.ActiveIssue, now time.Time) error {
	var err error
	headerIndex := 2

	for category, issuesInCategory := range issuesByCategory {
		sheetName := truncateSheetName(category)

		if _, err = g.file.NewSheet(sheetName); err != nil {
			return fmt.Errorf("failed to generate new sheet '%s': %w", sheetName, err)
		}

		if err = g.setupSheet(sheetName, len(issuesInCategory)); err != nil {
			return fmt.Errorf("failed to setup sheet '%s': %w", sheetName, err)
		}

		// Fill data
		for i, issue := range issuesInCategory {
			if err = g.addRow(sheetName, i+headerIndex, issue, now); err != nil {
				return fmt.Errorf("failed to add row '%d': %w", i+headerIndex, err)
			}
		}
	}
	return nil
}

// setupSheet initializes the specified sheet with headers, styles, and
// column widths.
func (g *Generator) setupSheet(sheetName string, rowCount int) error {
	var err error

	// Style creating
	headerStyle, err := g.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create new style: %w", err)
	}

	// Headers creating
	rowHeight := 20
	headers := []string{
		"Tool", "Inventory No.", "Employee", "Address", "Issued", "Expected return", "Days in use", "Overdue",
	}
	if err = g.file.SetRowHeight(sheetName, 1, float64(rowHeight)); err != nil {
		return fmt.Errorf("failed to set row height for headers: %w", err)
	}
	if err = g.file.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to set sheet row for headers: %w", err)
	}
	if err = g.file.SetCellStyle(sheetName, "A1", "H1", headerStyle); err != nil {
		return fmt.Errorf("failed to set cell style for headers: %w", err)
	}

	// Setup width column
	widths := map[string]float64{
		"A": 35, "B": 16, "C": 30, "D": 25, "E": 14, "F": 16, "G": 12, "H": 10, //nolint:mnd // const values for row width
	}
	for col, width := range widths {
		if err = g.file.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	// Add table
	if err = g.file.AddTable(sheetName, &excelize.Table{
		Range:     fmt.Sprintf("A1:H%d", rowCount+1),
		Name:      "table_" + strings.ReplaceAll(sheetName, " ", ""),
		StyleName: "TableStyleMedium9",
	}); err != nil {
		return fmt.Errorf("failed to add table: %w", err)
	}

	return nil
}

// addRow adds a new row to the specified sheet with the details of the
// given issuance.
func (g *Generator) addRow(sheetName string, rowNum int, issue models.ActiveIssue, now time.Time) error {
	overdue := ""
	if models.IsOverdue(issue.ExpectedReturn, now) {
		overdue = "yes"
	}
	rowData := []interface{}{
		issue.ToolName,
		issue.InventoryNumber,
		issue.EmployeeName,
		issue.AddressName,
		issue.IssuedAt.Format("02.01.2006"),
		issue.ExpectedReturn.Format("02.01.2006"),
		models.DaysInUse(issue.IssuedAt, now),
		overdue,
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)

	if err := g.file.SetSheetRow(sheetName, cell, &rowData); err != nil {
		return fmt.Errorf("failed to set sheet row: %w", err)
	}

	return nil
}

// truncateSheetName truncates the given sheet name to the 31-rune
// limit Excel imposes on sheet names.
func truncateSheetName(name string) string {
	if utf8.RuneCountInString(name) > 31 {
		runes := []rune(name)
		return string(runes[:31])
	}
	return name
}
