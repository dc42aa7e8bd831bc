package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/inpredservice11-beep/instruments/internal/models"
	"github.com/jackc/pgx/v5"
)

// Issue opens a new issuance for a tool. The status check, the issuance
// insert, the tool flip and the history entry are one transaction: no
// partial state is ever observable. On success it returns the id of the
// new issuance record.
//
// Fails with ErrToolNotFound when the tool does not exist and with
// ErrToolUnavailable (wrapping the current status) when it is not
// available for issue. A missing employee or address id maps to its
// NotFound sentinel.
func (r *Repository) Issue(ctx context.Context, params IssueParams) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var status models.ToolStatus
	err = tx.QueryRow(ctx, SelectToolForIssueSQL, params.ToolID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrToolNotFound
		}
		return 0, fmt.Errorf("failed to check tool status: %w", err)
	}

	if status != models.ToolAvailable {
		return 0, fmt.Errorf("%w: current status is %q", ErrToolUnavailable, status.Label())
	}

	var employeeExists bool
	if err = tx.QueryRow(ctx, SelectEmployeeExistsSQL, params.EmployeeID).Scan(&employeeExists); err != nil {
		return 0, fmt.Errorf("failed to check employee: %w", err)
	}
	if !employeeExists {
		return 0, ErrEmployeeNotFound
	}

	if params.AddressID != nil {
		var addressExists bool
		if err = tx.QueryRow(ctx, SelectAddressExistsSQL, *params.AddressID).Scan(&addressExists); err != nil {
			return 0, fmt.Errorf("failed to check address: %w", err)
		}
		if !addressExists {
			return 0, ErrAddressNotFound
		}
	}

	var issuanceID int64
	err = tx.QueryRow(ctx, InsertIssuanceSQL,
		params.ToolID, params.EmployeeID, params.AddressID,
		params.ExpectedReturn, params.Notes, params.IssuedBy,
	).Scan(&issuanceID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert issuance: %w", err)
	}

	if _, err = tx.Exec(ctx, SetToolStatusSQL, params.ToolID, models.ToolIssued); err != nil {
		return 0, fmt.Errorf("failed to update tool status: %w", err)
	}

	_, err = tx.Exec(ctx, InsertHistorySQL,
		models.OperationIssue, issuanceID, params.ToolID, params.EmployeeID, params.IssuedBy, params.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert history entry: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit issue transaction: %w", err)
	}

	return issuanceID, nil
}

// Return closes an open issuance: sets the return timestamp, merges the
// caller's notes, flips the tool back to available and appends the
// history entry, all in one transaction.
//
// Fails with ErrIssuanceNotFound when the record does not exist and
// with ErrAlreadyReturned when it is already closed.
func (r *Repository) Return(ctx context.Context, issuanceID int64, notes, returnedBy string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var toolID, employeeID int64
	var status models.IssuanceStatus
	err = tx.QueryRow(ctx, SelectIssuanceForReturnSQL, issuanceID).Scan(&toolID, &employeeID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrIssuanceNotFound
		}
		return fmt.Errorf("failed to check issuance status: %w", err)
	}

	if status != models.IssuanceOpen {
		return ErrAlreadyReturned
	}

	if _, err = tx.Exec(ctx, CloseIssuanceSQL, issuanceID, notes); err != nil {
		return fmt.Errorf("failed to close issuance: %w", err)
	}

	if _, err = tx.Exec(ctx, SetToolStatusSQL, toolID, models.ToolAvailable); err != nil {
		return fmt.Errorf("failed to update tool status: %w", err)
	}

	_, err = tx.Exec(ctx, InsertHistorySQL,
		models.OperationReturn, issuanceID, toolID, employeeID, returnedBy, notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit return transaction: %w", err)
	}

	return nil
}

// BatchReturn applies Return to every id, best-effort: each item runs in
// its own transaction and a failure on one never blocks the rest. The
// caller receives one outcome per id, in input order.
func (r *Repository) BatchReturn(
	ctx context.Context,
	issuanceIDs []int64,
	notes, returnedBy string,
) []ReturnOutcome {
	outcomes := make([]ReturnOutcome, 0, len(issuanceIDs))
	for _, id := range issuanceIDs {
		outcomes = append(outcomes, ReturnOutcome{
			IssuanceID: id,
			Err:        r.Return(ctx, id, notes, returnedBy),
		})
	}
	return outcomes
}

// ActiveIssues lists every open issuance joined with its tool, employee
// and optional address, newest first.
func (r *Repository) ActiveIssues(ctx context.Context) ([]models.ActiveIssue, error) {
	rows, err := r.db.Query(ctx, SelectActiveIssuesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query active issues: %w", err)
	}
	defer rows.Close()

	return scanActiveIssues(rows)
}

// ActiveIssuesForReturn lists the same set ordered oldest-issued-first,
// annotated with whole days in use and the overdue flag.
func (r *Repository) ActiveIssuesForReturn(ctx context.Context) ([]models.ReturnCandidate, error) {
	rows, err := r.db.Query(ctx, SelectActiveIssuesForReturnSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues for return: %w", err)
	}
	defer rows.Close()

	issues, err := scanActiveIssues(rows)
	if err != nil {
		return nil, err
	}

	now := r.now()
	candidates := make([]models.ReturnCandidate, 0, len(issues))
	for _, issue := range issues {
		candidates = append(candidates, models.ReturnCandidate{
			ActiveIssue: issue,
			DaysInUse:   models.DaysInUse(issue.IssuedAt, now),
			Overdue:     models.IsOverdue(issue.ExpectedReturn, now),
		})
	}

	return candidates, nil
}

// History returns the most recent audit-log entries, newest first.
func (r *Repository) History(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	rows, err := r.db.Query(ctx, SelectHistorySQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var entry models.HistoryEntry
		err = rows.Scan(
			&entry.ID, &entry.Operation, &entry.IssuanceID, &entry.ToolID,
			&entry.EmployeeID, &entry.PerformedAt, &entry.PerformedBy, &entry.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return entries, nil
}

// scanActiveIssues reads the joined active-issue row shape shared by
// both list queries.
func scanActiveIssues(rows pgx.Rows) ([]models.ActiveIssue, error) {
	var issues []models.ActiveIssue
	for rows.Next() {
		var issue models.ActiveIssue
		err := rows.Scan(
			&issue.ID, &issue.ToolID, &issue.ToolName, &issue.InventoryNumber, &issue.Category,
			&issue.EmployeeID, &issue.EmployeeName, &issue.AddressName,
			&issue.IssuedAt, &issue.ExpectedReturn, &issue.IssuedBy, &issue.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan active issue row: %w", err)
		}
		issues = append(issues, issue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read active issue rows: %w", err)
	}

	return issues, nil
}
