package report_test

import (
	"testing"
	"time"

	"github.com/inpredservice11-beep/instruments/internal/models"
	"github.com/inpredservice11-beep/instruments/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateActiveIssuesReport(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	testIssues := []models.ActiveIssue{
		{
			ID: 1, ToolName: "Drill", InventoryNumber: "INV-001", Category: "Power tools",
			EmployeeName: "Ivanov I.I.", IssuedAt: now.AddDate(0, 0, -3),
			ExpectedReturn: now.AddDate(0, 0, 4),
		},
		{
			ID: 2, ToolName: "Ladder", InventoryNumber: "INV-002", Category: "Access equipment",
			EmployeeName: "Petrov P.P.", IssuedAt: now.AddDate(0, 0, -10),
			ExpectedReturn: now.AddDate(0, 0, -2),
		},
		{
			ID: 3, ToolName: "Grinder", InventoryNumber: "INV-003", Category: "Power tools",
			EmployeeName: "Sidorov S.S.", IssuedAt: now.AddDate(0, 0, -1),
			ExpectedReturn: now.AddDate(0, 0, 6),
		},
	}

	t.Run("successful report generation", func(t *testing.T) {
		buffer, err := report.GenerateActiveIssuesReport(testIssues, now)

		require.NoError(t, err)
		assert.NotNil(t, buffer)

		f, err := excelize.OpenReader(buffer)
		require.NoError(t, err)
		defer f.Close()

		sheetList := f.GetSheetList()
		assert.ElementsMatch(t, []string{"Power tools", "Access equipment"}, sheetList)

		headerVal, err := f.GetCellValue("Power tools", "A1")
		require.NoError(t, err)
		assert.Equal(t, "Tool", headerVal)

		toolVal, err := f.GetCellValue("Power tools", "A2")
		require.NoError(t, err)
		assert.Equal(t, "Drill", toolVal)

		// The overdue ladder is flagged and carries its days in use.
		overdueVal, err := f.GetCellValue("Access equipment", "H2")
		require.NoError(t, err)
		assert.Equal(t, "yes", overdueVal)

		daysVal, err := f.GetCellValue("Access equipment", "G2")
		require.NoError(t, err)
		assert.Equal(t, "10", daysVal)
	})

	t.Run("empty category goes to the fallback sheet", func(t *testing.T) {
		buffer, err := report.GenerateActiveIssuesReport([]models.ActiveIssue{
			{ID: 4, ToolName: "Tape", InventoryNumber: "INV-004", EmployeeName: "Ivanov I.I.",
				IssuedAt: now.AddDate(0, 0, -1), ExpectedReturn: now.AddDate(0, 0, 1)},
		}, now)

		require.NoError(t, err)

		f, err := excelize.OpenReader(buffer)
		require.NoError(t, err)
		defer f.Close()

		assert.Contains(t, f.GetSheetList(), "Uncategorized")
	})

	t.Run("no issues found", func(t *testing.T) {
		buffer, err := report.GenerateActiveIssuesReport(nil, now)

		require.Error(t, err)
		assert.Nil(t, buffer)
		require.ErrorIs(t, err, report.ErrNoIssues)
	})
}
