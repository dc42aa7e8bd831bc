package repository_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/inpredservice11-beep/instruments/internal/models"
	"github.com/inpredservice11-beep/instruments/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGeneralStats(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("error - query failed", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.GeneralStatsSQL)).WillReturnError(assert.AnError)

		_, err = repo.GetGeneralStats(ctx)

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to query general stats")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - headline counters", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.GeneralStatsSQL)).
			WillReturnRows(pgxmock.NewRows([]string{
				"total", "available", "issued", "in_repair", "written_off",
				"active_employees", "active_issues", "overdue_issues", "history_entries",
			}).AddRow(42, 30, 8, 3, 1, 15, 8, 2, 120))

		stats, err := repo.GetGeneralStats(ctx)

		require.NoError(t, err)
		assert.Equal(t, 42, stats.TotalTools)
		assert.Equal(t, 8, stats.IssuedTools)
		assert.Equal(t, 2, stats.OverdueIssues)
		assert.Equal(t, 120, stats.HistoryEntries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUsageTime(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("error - no returned issuances yet", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.UsageTimeSQL)).
			WillReturnRows(pgxmock.NewRows([]string{"count", "avg", "min", "max"}).
				AddRow(0, float64(0), 0, 0))

		_, err = repo.GetUsageTime(ctx)

		require.Error(t, err)
		require.ErrorIs(t, err, repository.ErrNoData)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - aggregate over returned records", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.UsageTimeSQL)).
			WillReturnRows(pgxmock.NewRows([]string{"count", "avg", "min", "max"}).
				AddRow(12, 4.5, 1, 14))

		stats, err := repo.GetUsageTime(ctx)

		require.NoError(t, err)
		assert.Equal(t, 12, stats.ReturnedCount)
		assert.InDelta(t, 4.5, stats.AverageDays, 0.001)
		assert.Equal(t, 1, stats.MinDays)
		assert.Equal(t, 14, stats.MaxDays)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTopEmployees(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("success - ranked by volume", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.TopEmployeesSQL)).
			WithArgs(5).
			WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "total", "active", "overdue"}).
				AddRow(int64(20), "Ivanov I.I.", 14, 2, 1).
				AddRow(int64(21), "Petrov P.P.", 9, 0, 0))

		usages, err := repo.GetTopEmployees(ctx, 5)

		require.NoError(t, err)
		require.Len(t, usages, 2)
		assert.Equal(t, "Ivanov I.I.", usages[0].FullName)
		assert.Equal(t, 14, usages[0].TotalIssues)
		assert.Equal(t, 1, usages[0].OverdueIssues)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetCategoryStats(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("success - per-category breakdown", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.CategoryStatsSQL)).
			WillReturnRows(pgxmock.NewRows([]string{
				"category", "total", "available", "issued", "in_repair", "written_off",
			}).AddRow("Power tools", 10, 6, 3, 1, 0))

		stats, err := repo.GetCategoryStats(ctx)

		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.Equal(t, "Power tools", stats[0].Category)
		assert.Equal(t, 10, stats[0].Total)
		assert.Equal(t, 3, stats[0].Issued)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIssuesByMonth(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("success - monthly buckets", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		may := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
		june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta(repository.IssuesByMonthSQL)).
			WillReturnRows(pgxmock.NewRows([]string{"month", "count"}).
				AddRow(may, 7).
				AddRow(june, 11))

		counts, err := repo.IssuesByMonth(ctx)

		require.NoError(t, err)
		require.Len(t, counts, 2)
		assert.Equal(t, may, counts[0].Month)
		assert.Equal(t, 7, counts[0].Count)
		assert.Equal(t, 11, counts[1].Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIssuesByAddress(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("success - missing address groups under fallback", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.IssuesByAddressSQL)).
			WillReturnRows(pgxmock.NewRows([]string{"name", "count"}).
				AddRow("Main site", 18).
				AddRow("No address", 4))

		counts, err := repo.IssuesByAddress(ctx)

		require.NoError(t, err)
		require.Len(t, counts, 2)
		assert.Equal(t, "No address", counts[1].AddressName)
		assert.Equal(t, 4, counts[1].Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestToolsByStatus(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("success - counts per status", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta(repository.ToolsByStatusSQL)).
			WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
				AddRow(models.ToolAvailable, 30).
				AddRow(models.ToolIssued, 8))

		counts, err := repo.ToolsByStatus(ctx)

		require.NoError(t, err)
		require.Len(t, counts, 2)
		assert.Equal(t, models.ToolAvailable, counts[0].Status)
		assert.Equal(t, 30, counts[0].Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
