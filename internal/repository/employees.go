package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inpredservice11-beep/instruments/internal/models"
	"github.com/inpredservice11-beep/instruments/internal/search"
	"github.com/jackc/pgx/v5"
)

// CreateEmployee inserts a new employee and returns its id.
func (r *Repository) CreateEmployee(ctx context.Context, employee models.Employee) (int64, error) {
	if strings.TrimSpace(employee.FullName) == "" {
		return 0, ErrEmptyName
	}
	if !employee.Status.Valid() {
		return 0, ErrInvalidStatus
	}

	var employeeID int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO employees (full_name, position, department, phone, email, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		employee.FullName, employee.Position, employee.Department,
		employee.Phone, employee.Email, employee.Status,
	).Scan(&employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert employee: %w", err)
	}

	return employeeID, nil
}

// UpdateEmployee updates an employee record.
func (r *Repository) UpdateEmployee(ctx context.Context, employee models.Employee) error {
	if strings.TrimSpace(employee.FullName) == "" {
		return ErrEmptyName
	}
	if !employee.Status.Valid() {
		return ErrInvalidStatus
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE employees
		SET full_name = $2, position = $3, department = $4, phone = $5, email = $6, status = $7
		WHERE id = $1`,
		employee.ID, employee.FullName, employee.Position, employee.Department,
		employee.Phone, employee.Email, employee.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// DeleteEmployee removes an employee. An employee holding an open
// issuance cannot be deleted.
func (r *Repository) DeleteEmployee(ctx context.Context, employeeID int64) error {
	var hasOpen bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM issuances WHERE employee_id = $1 AND status = 'issued')`, employeeID,
	).Scan(&hasOpen)
	if err != nil {
		return fmt.Errorf("failed to check open issuances: %w", err)
	}
	if hasOpen {
		return ErrEmployeeHasOpenIssue
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}

// GetEmployeeByID fetches one employee.
func (r *Repository) GetEmployeeByID(ctx context.Context, employeeID int64) (models.Employee, error) {
	var employee models.Employee
	err := r.db.QueryRow(ctx, `
		SELECT id, full_name, position, department, phone, email, status, created_at
		FROM employees WHERE id = $1`, employeeID,
	).Scan(
		&employee.ID, &employee.FullName, &employee.Position, &employee.Department,
		&employee.Phone, &employee.Email, &employee.Status, &employee.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, ErrEmployeeNotFound
		}
		return models.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee, nil
}

// ListEmployees returns employees whose name, position or department
// matches the query, case-insensitively. An empty query lists everyone.
// The match runs in Go with both sides case-folded so it stays
// collation-independent, same as the tool search.
func (r *Repository) ListEmployees(ctx context.Context, query string) ([]models.Employee, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, full_name, position, department, phone, email, status, created_at
		FROM employees
		ORDER BY full_name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	needle := search.Normalize(query)

	var employees []models.Employee
	for rows.Next() {
		var employee models.Employee
		err = rows.Scan(
			&employee.ID, &employee.FullName, &employee.Position, &employee.Department,
			&employee.Phone, &employee.Email, &employee.Status, &employee.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		if !search.Contains(employee.FullName, needle) &&
			!search.Contains(employee.Position, needle) &&
			!search.Contains(employee.Department, needle) {
			continue
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee rows: %w", err)
	}

	return employees, nil
}
