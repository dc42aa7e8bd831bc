package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inpredservice11-beep/instruments/internal/models"
	"github.com/inpredservice11-beep/instruments/internal/search"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// mapToolConstraint translates postgres unique violations on the tools
// table into the user-facing validation sentinels.
func mapToolConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "barcode") {
		return ErrDuplicateBarcode
	}
	return ErrDuplicateInventoryNumber
}

// barcodeValue converts the empty barcode string into NULL so the
// uniqueness constraint only applies when a barcode is present.
func barcodeValue(barcode string) any {
	if barcode == "" {
		return nil
	}
	return barcode
}

// CreateTool inserts a new tool with status available and returns its id.
func (r *Repository) CreateTool(ctx context.Context, tool models.Tool) (int64, error) {
	if strings.TrimSpace(tool.Name) == "" {
		return 0, ErrEmptyName
	}
	if strings.TrimSpace(tool.InventoryNumber) == "" {
		return 0, ErrEmptyInventoryNumber
	}

	var toolID int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO tools (name, description, inventory_number, serial_number, category, status, photo_path, barcode)
		VALUES ($1, $2, $3, $4, $5, 'available', $6, $7)
		RETURNING id`,
		tool.Name, tool.Description, tool.InventoryNumber, tool.SerialNumber,
		tool.Category, tool.PhotoPath, barcodeValue(tool.Barcode),
	).Scan(&toolID)
	if err != nil {
		if mapped := mapToolConstraint(err); mapped != err {
			return 0, mapped
		}
		return 0, fmt.Errorf("failed to insert tool: %w", err)
	}

	return toolID, nil
}

// UpdateTool updates the descriptive fields of a tool. Status is not
// touched here: available/issued transitions belong to the engine and
// repair/write-off flags go through MarkToolStatus.
func (r *Repository) UpdateTool(ctx context.Context, tool models.Tool) error {
	if strings.TrimSpace(tool.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(tool.InventoryNumber) == "" {
		return ErrEmptyInventoryNumber
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE tools
		SET name = $2, description = $3, inventory_number = $4, serial_number = $5,
		    category = $6, photo_path = $7, barcode = $8
		WHERE id = $1`,
		tool.ID, tool.Name, tool.Description, tool.InventoryNumber,
		tool.SerialNumber, tool.Category, tool.PhotoPath, barcodeValue(tool.Barcode),
	)
	if err != nil {
		if mapped := mapToolConstraint(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update tool: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrToolNotFound
	}

	return nil
}

// MarkToolStatus moves a tool to in_repair, written_off or back to
// available. It refuses the issued status (engine territory) and any
// change while the tool has an open issuance.
func (r *Repository) MarkToolStatus(ctx context.Context, toolID int64, status models.ToolStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if status == models.ToolIssued {
		return ErrStatusManagedByEngine
	}

	var current models.ToolStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM tools WHERE id = $1`, toolID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrToolNotFound
		}
		return fmt.Errorf("failed to check tool status: %w", err)
	}
	if current == models.ToolIssued {
		return ErrToolHasOpenIssue
	}

	if _, err = r.db.Exec(ctx, SetToolStatusSQL, toolID, status); err != nil {
		return fmt.Errorf("failed to mark tool status: %w", err)
	}

	return nil
}

// DeleteTool removes a tool. A tool with an open issuance cannot be
// deleted; closed issuances and history entries keep their references.
func (r *Repository) DeleteTool(ctx context.Context, toolID int64) error {
	var hasOpen bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM issuances WHERE tool_id = $1 AND status = 'issued')`, toolID,
	).Scan(&hasOpen)
	if err != nil {
		return fmt.Errorf("failed to check open issuances: %w", err)
	}
	if hasOpen {
		return ErrToolHasOpenIssue
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM tools WHERE id = $1`, toolID)
	if err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrToolNotFound
	}

	return nil
}

// GetToolByID fetches one tool.
func (r *Repository) GetToolByID(ctx context.Context, toolID int64) (models.Tool, error) {
	var tool models.Tool
	var barcode *string
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, inventory_number, serial_number, category, status, photo_path, barcode, created_at
		FROM tools WHERE id = $1`, toolID,
	).Scan(
		&tool.ID, &tool.Name, &tool.Description, &tool.InventoryNumber, &tool.SerialNumber,
		&tool.Category, &tool.Status, &tool.PhotoPath, &barcode, &tool.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Tool{}, ErrToolNotFound
		}
		return models.Tool{}, fmt.Errorf("failed to get tool: %w", err)
	}
	if barcode != nil {
		tool.Barcode = *barcode
	}

	return tool, nil
}

// ListTools returns tools matching the filter, ordered by name.
// Category and status narrow the SQL; the text query is matched in Go
// with both sides case-folded, so SQL collation settings (which decide
// what LOWER does to Cyrillic) never affect the result.
func (r *Repository) ListTools(ctx context.Context, filter ToolFilter) ([]models.Tool, error) {
	query := `
		SELECT id, name, description, inventory_number, serial_number, category, status, photo_path, barcode, created_at
		FROM tools`
	var conditions []string
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()

	needle := search.Normalize(filter.Query)

	var tools []models.Tool
	for rows.Next() {
		var tool models.Tool
		var barcode *string
		err = rows.Scan(
			&tool.ID, &tool.Name, &tool.Description, &tool.InventoryNumber, &tool.SerialNumber,
			&tool.Category, &tool.Status, &tool.PhotoPath, &barcode, &tool.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool row: %w", err)
		}
		if barcode != nil {
			tool.Barcode = *barcode
		}
		if !search.Contains(tool.Name, needle) &&
			!search.Contains(tool.InventoryNumber, needle) &&
			!search.Contains(tool.Barcode, needle) {
			continue
		}
		tools = append(tools, tool)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tool rows: %w", err)
	}

	return tools, nil
}
