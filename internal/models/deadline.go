package models

import "time"

// hoursPerDay is used for the floor-of-real-days arithmetic below.
const hoursPerDay = 24

// IsOverdue reports whether a deadline has passed: the expected return
// date is strictly before today. The comparison is date-only, the
// time-of-day component of both arguments is ignored. Every overdue
// check in the system (statistics, returns view, notifier) goes
// through this predicate.
func IsOverdue(expectedReturn, today time.Time) bool {
	return dateOf(expectedReturn).Before(dateOf(today))
}

// DaysInUse returns the floor of the real-valued day difference between
// issuedAt and now. An issuance opened earlier today reports 0.
//
// Note this is deliberately a different base than IsOverdue: days in use
// counts elapsed 24-hour periods while overdue compares calendar dates.
// The two disagree at the margins and operators rely on both as-is.
func DaysInUse(issuedAt, now time.Time) int {
	diff := now.Sub(issuedAt)
	if diff < 0 {
		return 0
	}
	return int(diff.Hours() / hoursPerDay)
}

// DaysLeft returns the number of calendar days from today until the
// expected return date. Zero means the deadline is today, negative
// values mean the deadline has passed.
func DaysLeft(expectedReturn, today time.Time) int {
	return int(dateOf(expectedReturn).Sub(dateOf(today)).Hours() / hoursPerDay)
}

// OverdueDays returns how many calendar days past the deadline the
// record is. Zero when the record is not overdue.
func OverdueDays(expectedReturn, today time.Time) int {
	if !IsOverdue(expectedReturn, today) {
		return 0
	}
	return -DaysLeft(expectedReturn, today)
}

// dateOf truncates a timestamp to midnight UTC of its calendar date.
func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
