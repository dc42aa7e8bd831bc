package repository

import (
	"context"
	"fmt"

	"github.com/inpredservice11-beep/instruments/internal/models"
)

// The aggregate SQL lives in exported consts so tests can match it
// verbatim. Overdue is always the same date-only predicate:
// expected_return < CURRENT_DATE.

const GeneralStatsSQL = `
SELECT
    (SELECT count(*) FROM tools),
    (SELECT count(*) FROM tools WHERE status = 'available'),
    (SELECT count(*) FROM tools WHERE status = 'issued'),
    (SELECT count(*) FROM tools WHERE status = 'in_repair'),
    (SELECT count(*) FROM tools WHERE status = 'written_off'),
    (SELECT count(*) FROM employees WHERE status = 'active'),
    (SELECT count(*) FROM issuances WHERE status = 'issued'),
    (SELECT count(*) FROM issuances WHERE status = 'issued' AND expected_return < CURRENT_DATE),
    (SELECT count(*) FROM history)
`

const CategoryStatsSQL = `
SELECT category,
       count(*),
       count(*) FILTER (WHERE status = 'available'),
       count(*) FILTER (WHERE status = 'issued'),
       count(*) FILTER (WHERE status = 'in_repair'),
       count(*) FILTER (WHERE status = 'written_off')
FROM tools
GROUP BY category
ORDER BY category
`

const TopEmployeesSQL = `
SELECT e.id, e.full_name,
       count(i.id),
       count(i.id) FILTER (WHERE i.status = 'issued'),
       count(i.id) FILTER (WHERE i.status = 'issued' AND i.expected_return < CURRENT_DATE)
FROM employees e
JOIN issuances i ON i.employee_id = e.id
WHERE e.status = 'active'
GROUP BY e.id, e.full_name
ORDER BY count(i.id) DESC, e.full_name
LIMIT $1
`

const MostUsedToolsSQL = `
SELECT t.id, t.name, t.inventory_number,
       count(h.id),
       count(h.id) FILTER (WHERE h.operation = 'issue'),
       count(h.id) FILTER (WHERE h.operation = 'return')
FROM tools t
JOIN history h ON h.tool_id = t.id
GROUP BY t.id, t.name, t.inventory_number
ORDER BY count(h.id) DESC, t.name
LIMIT $1
`

const UsageTimeSQL = `
SELECT count(*),
       COALESCE(avg(EXTRACT(EPOCH FROM (returned_at - issued_at)) / 86400), 0),
       COALESCE(min(floor(EXTRACT(EPOCH FROM (returned_at - issued_at)) / 86400))::int, 0),
       COALESCE(max(floor(EXTRACT(EPOCH FROM (returned_at - issued_at)) / 86400))::int, 0)
FROM issuances
WHERE status = 'returned'
`

const IssuesByMonthSQL = `
SELECT date_trunc('month', issued_at), count(*)
FROM issuances
WHERE issued_at >= date_trunc('month', now()) - INTERVAL '11 months'
GROUP BY 1
ORDER BY 1
`

const ReturnsByMonthSQL = `
SELECT date_trunc('month', returned_at), count(*)
FROM issuances
WHERE returned_at IS NOT NULL
  AND returned_at >= date_trunc('month', now()) - INTERVAL '11 months'
GROUP BY 1
ORDER BY 1
`

const ActiveByDaySQL = `
SELECT d::date, count(i.id)
FROM generate_series(CURRENT_DATE - INTERVAL '29 days', CURRENT_DATE, '1 day') AS d
LEFT JOIN issuances i
    ON i.issued_at::date <= d::date
   AND (i.returned_at IS NULL OR i.returned_at::date >= d::date)
GROUP BY d::date
ORDER BY d::date
`

const IssuesByAddressSQL = `
SELECT COALESCE(a.name, 'No address'), count(*)
FROM issuances i
LEFT JOIN addresses a ON a.id = i.address_id
WHERE i.issued_at >= now() - INTERVAL '6 months'
GROUP BY 1
ORDER BY count(*) DESC
`

const OverdueByCategorySQL = `
SELECT t.category, count(*)
FROM issuances i
JOIN tools t ON t.id = i.tool_id
WHERE i.status = 'issued' AND i.expected_return < CURRENT_DATE
GROUP BY t.category
ORDER BY count(*) DESC
`

const ToolsByStatusSQL = `
SELECT status, count(*)
FROM tools
GROUP BY status
ORDER BY status
`

// GetGeneralStats returns the headline counters for the dashboard.
func (r *Repository) GetGeneralStats(ctx context.Context) (models.GeneralStats, error) {
	var stats models.GeneralStats
	err := r.db.QueryRow(ctx, GeneralStatsSQL).Scan(
		&stats.TotalTools, &stats.AvailableTools, &stats.IssuedTools,
		&stats.InRepairTools, &stats.WrittenOffTools,
		&stats.ActiveEmployees, &stats.ActiveIssues, &stats.OverdueIssues,
		&stats.HistoryEntries,
	)
	if err != nil {
		return models.GeneralStats{}, fmt.Errorf("failed to query general stats: %w", err)
	}

	return stats, nil
}

// GetCategoryStats returns the per-category breakdown split by status.
func (r *Repository) GetCategoryStats(ctx context.Context) ([]models.CategoryStat, error) {
	rows, err := r.db.Query(ctx, CategoryStatsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query category stats: %w", err)
	}
	defer rows.Close()

	var stats []models.CategoryStat
	for rows.Next() {
		var stat models.CategoryStat
		err = rows.Scan(&stat.Category, &stat.Total, &stat.Available, &stat.Issued, &stat.InRepair, &stat.WrittenOff)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category stat row: %w", err)
		}
		stats = append(stats, stat)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category stat rows: %w", err)
	}

	return stats, nil
}

// GetTopEmployees ranks active employees by all-time issuance volume.
// Only employees with at least one issuance appear (inner join).
func (r *Repository) GetTopEmployees(ctx context.Context, limit int) ([]models.EmployeeUsage, error) {
	rows, err := r.db.Query(ctx, TopEmployeesSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top employees: %w", err)
	}
	defer rows.Close()

	var usages []models.EmployeeUsage
	for rows.Next() {
		var usage models.EmployeeUsage
		err = rows.Scan(&usage.EmployeeID, &usage.FullName, &usage.TotalIssues, &usage.ActiveIssues, &usage.OverdueIssues)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee usage row: %w", err)
		}
		usages = append(usages, usage)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee usage rows: %w", err)
	}

	return usages, nil
}

// GetMostUsedTools ranks tools by audit-log volume. Only tools with at
// least one history entry appear (inner join).
func (r *Repository) GetMostUsedTools(ctx context.Context, limit int) ([]models.ToolUsage, error) {
	rows, err := r.db.Query(ctx, MostUsedToolsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query most used tools: %w", err)
	}
	defer rows.Close()

	var usages []models.ToolUsage
	for rows.Next() {
		var usage models.ToolUsage
		err = rows.Scan(&usage.ToolID, &usage.Name, &usage.InventoryNumber,
			&usage.TotalOperations, &usage.Issues, &usage.Returns)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool usage row: %w", err)
		}
		usages = append(usages, usage)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tool usage rows: %w", err)
	}

	return usages, nil
}

// GetUsageTime aggregates loan duration over returned records. When no
// record has ever been returned it fails with ErrNoData instead of
// fabricating a zero-filled aggregate.
func (r *Repository) GetUsageTime(ctx context.Context) (models.UsageTimeStats, error) {
	var stats models.UsageTimeStats
	err := r.db.QueryRow(ctx, UsageTimeSQL).Scan(
		&stats.ReturnedCount, &stats.AverageDays, &stats.MinDays, &stats.MaxDays,
	)
	if err != nil {
		return models.UsageTimeStats{}, fmt.Errorf("failed to query usage time: %w", err)
	}

	if stats.ReturnedCount == 0 {
		return models.UsageTimeStats{}, ErrNoData
	}

	return stats, nil
}

// IssuesByMonth counts issuances bucketed by calendar month over the
// trailing twelve months.
func (r *Repository) IssuesByMonth(ctx context.Context) ([]models.MonthCount, error) {
	return r.queryMonthCounts(ctx, IssuesByMonthSQL)
}

// ReturnsByMonth counts returns bucketed by calendar month over the
// trailing twelve months.
func (r *Repository) ReturnsByMonth(ctx context.Context) ([]models.MonthCount, error) {
	return r.queryMonthCounts(ctx, ReturnsByMonthSQL)
}

func (r *Repository) queryMonthCounts(ctx context.Context, sql string) ([]models.MonthCount, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query month counts: %w", err)
	}
	defer rows.Close()

	var counts []models.MonthCount
	for rows.Next() {
		var count models.MonthCount
		if err = rows.Scan(&count.Month, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan month count row: %w", err)
		}
		counts = append(counts, count)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read month count rows: %w", err)
	}

	return counts, nil
}

// ActiveByDay returns the day-by-day count of issuances that were open
// on each day of the trailing 30-day window.
func (r *Repository) ActiveByDay(ctx context.Context) ([]models.DayCount, error) {
	rows, err := r.db.Query(ctx, ActiveByDaySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query active by day: %w", err)
	}
	defer rows.Close()

	var counts []models.DayCount
	for rows.Next() {
		var count models.DayCount
		if err = rows.Scan(&count.Day, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan day count row: %w", err)
		}
		counts = append(counts, count)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read day count rows: %w", err)
	}

	return counts, nil
}

// IssuesByAddress counts issuances per address over the trailing six
// months. Issuances without an address group under "No address".
func (r *Repository) IssuesByAddress(ctx context.Context) ([]models.AddressCount, error) {
	rows, err := r.db.Query(ctx, IssuesByAddressSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues by address: %w", err)
	}
	defer rows.Close()

	var counts []models.AddressCount
	for rows.Next() {
		var count models.AddressCount
		if err = rows.Scan(&count.AddressName, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan address count row: %w", err)
		}
		counts = append(counts, count)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read address count rows: %w", err)
	}

	return counts, nil
}

// OverdueByCategory counts currently-overdue open issuances per tool category.
func (r *Repository) OverdueByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	rows, err := r.db.Query(ctx, OverdueByCategorySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue by category: %w", err)
	}
	defer rows.Close()

	var counts []models.CategoryCount
	for rows.Next() {
		var count models.CategoryCount
		if err = rows.Scan(&count.Category, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count row: %w", err)
		}
		counts = append(counts, count)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category count rows: %w", err)
	}

	return counts, nil
}

// ToolsByStatus counts tools per status.
func (r *Repository) ToolsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	rows, err := r.db.Query(ctx, ToolsByStatusSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query tools by status: %w", err)
	}
	defer rows.Close()

	var counts []models.StatusCount
	for rows.Next() {
		var count models.StatusCount
		if err = rows.Scan(&count.Status, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count row: %w", err)
		}
		counts = append(counts, count)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status count rows: %w", err)
	}

	return counts, nil
}
