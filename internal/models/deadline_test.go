package models_test

import (
	"testing"
	"time"

	"github.com/inpredservice11-beep/instruments/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIsOverdue(t *testing.T) {
	t.Parallel()
	today := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

	t.Run("deadline today is not overdue", func(t *testing.T) {
		t.Parallel()
		deadline := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
		assert.False(t, models.IsOverdue(deadline, today))
	})

	t.Run("deadline yesterday is overdue", func(t *testing.T) {
		t.Parallel()
		deadline := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
		assert.True(t, models.IsOverdue(deadline, today))
	})

	t.Run("deadline tomorrow is not overdue", func(t *testing.T) {
		t.Parallel()
		deadline := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)
		assert.False(t, models.IsOverdue(deadline, today))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		t.Parallel()
		// Deadline later in the day than "now" still compares by date only.
		deadline := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
		assert.False(t, models.IsOverdue(deadline, today))
	})
}

func TestDaysInUse(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("issued earlier today is zero days", func(t *testing.T) {
		t.Parallel()
		issued := now.Add(-6 * time.Hour)
		assert.Equal(t, 0, models.DaysInUse(issued, now))
	})

	t.Run("floors partial days", func(t *testing.T) {
		t.Parallel()
		issued := now.Add(-47 * time.Hour)
		assert.Equal(t, 1, models.DaysInUse(issued, now))
	})

	t.Run("exact multiple of a day", func(t *testing.T) {
		t.Parallel()
		issued := now.AddDate(0, 0, -7)
		assert.Equal(t, 7, models.DaysInUse(issued, now))
	})

	t.Run("future issue timestamp clamps to zero", func(t *testing.T) {
		t.Parallel()
		issued := now.Add(time.Hour)
		assert.Equal(t, 0, models.DaysInUse(issued, now))
	})
}

func TestDaysLeft(t *testing.T) {
	t.Parallel()
	today := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, models.DaysLeft(today, today))
	assert.Equal(t, 1, models.DaysLeft(today.AddDate(0, 0, 1), today))
	assert.Equal(t, -3, models.DaysLeft(today.AddDate(0, 0, -3), today))
}

func TestOverdueDays(t *testing.T) {
	t.Parallel()
	today := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, models.OverdueDays(today, today))
	assert.Equal(t, 0, models.OverdueDays(today.AddDate(0, 0, 2), today))
	assert.Equal(t, 4, models.OverdueDays(today.AddDate(0, 0, -4), today))
}

func TestStatusValidity(t *testing.T) {
	t.Parallel()

	for _, status := range []models.ToolStatus{
		models.ToolAvailable, models.ToolIssued, models.ToolInRepair, models.ToolWrittenOff,
	} {
		assert.True(t, status.Valid(), "expected %q to be valid", status)
		assert.NotEmpty(t, status.Label())
	}
	assert.False(t, models.ToolStatus("broken").Valid())

	for _, status := range []models.EmployeeStatus{
		models.EmployeeActive, models.EmployeeOnLeave, models.EmployeeOnSickLeave,
		models.EmployeeTerminated, models.EmployeeBusinessTrip,
	} {
		assert.True(t, status.Valid(), "expected %q to be valid", status)
		assert.NotEmpty(t, status.Label())
	}
	assert.False(t, models.EmployeeStatus("retired").Valid())

	assert.True(t, models.IssuanceOpen.Valid())
	assert.True(t, models.IssuanceReturned.Valid())
	assert.False(t, models.IssuanceStatus("lost").Valid())

	assert.True(t, models.OperationIssue.Valid())
	assert.True(t, models.OperationReturn.Valid())
	assert.False(t, models.Operation("repair").Valid())
}
