package models

import "time"

// GeneralStats is the dashboard headline: totals across the whole store.
type GeneralStats struct {
	TotalTools       int // All tools regardless of status
	AvailableTools   int // Tools with status available
	IssuedTools      int // Tools with status issued
	InRepairTools    int // Tools with status in_repair
	WrittenOffTools  int // Tools with status written_off
	ActiveEmployees  int // Employees with status active
	ActiveIssues     int // Open issuance records
	OverdueIssues    int // Open issuances past their expected return date
	HistoryEntries   int // Cumulative audit-log size
}

// CategoryStat is the per-category tool breakdown split by status.
type CategoryStat struct {
	Category   string
	Total      int
	Available  int
	Issued     int
	InRepair   int
	WrittenOff int
}

// EmployeeUsage ranks an active employee by issuance volume.
type EmployeeUsage struct {
	EmployeeID    int64
	FullName      string
	TotalIssues   int // All-time issuance count
	ActiveIssues  int // Currently open
	OverdueIssues int // Currently open and overdue
}

// ToolUsage ranks a tool by audit-log volume.
type ToolUsage struct {
	ToolID          int64
	Name            string
	InventoryNumber string
	TotalOperations int
	Issues          int
	Returns         int
}

// UsageTimeStats aggregates loan duration over returned records only.
// ReturnedCount is the sample size the other fields were computed from.
type UsageTimeStats struct {
	AverageDays   float64
	MinDays       int
	MaxDays       int
	ReturnedCount int
}

// MonthCount is one calendar-month bucket of a time series.
type MonthCount struct {
	Month time.Time
	Count int
}

// DayCount is one day bucket of a time series.
type DayCount struct {
	Day   time.Time
	Count int
}

// AddressCount is the issuance volume for one address.
type AddressCount struct {
	AddressName string
	Count       int
}

// CategoryCount is a per-category count (e.g. overdue records).
type CategoryCount struct {
	Category string
	Count    int
}

// StatusCount is a per-status tool count.
type StatusCount struct {
	Status ToolStatus
	Count  int
}
