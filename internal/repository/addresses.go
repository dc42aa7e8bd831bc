package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/inpredservice11-beep/instruments/internal/models"
)

// CreateAddress inserts a new address and returns its id. The short
// name is required.
func (r *Repository) CreateAddress(ctx context.Context, address models.Address) (int64, error) {
	if strings.TrimSpace(address.Name) == "" {
		return 0, ErrEmptyName
	}

	var addressID int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO addresses (name, full_address) VALUES ($1, $2) RETURNING id`,
		address.Name, address.FullAddress,
	).Scan(&addressID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert address: %w", err)
	}

	return addressID, nil
}

// UpdateAddress updates an address record.
func (r *Repository) UpdateAddress(ctx context.Context, address models.Address) error {
	if strings.TrimSpace(address.Name) == "" {
		return ErrEmptyName
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE addresses SET name = $2, full_address = $3 WHERE id = $1`,
		address.ID, address.Name, address.FullAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}

	return nil
}

// DeleteAddress removes an address. An address referenced by an open
// issuance cannot be deleted.
func (r *Repository) DeleteAddress(ctx context.Context, addressID int64) error {
	var hasOpen bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM issuances WHERE address_id = $1 AND status = 'issued')`, addressID,
	).Scan(&hasOpen)
	if err != nil {
		return fmt.Errorf("failed to check open issuances: %w", err)
	}
	if hasOpen {
		return ErrAddressHasOpenIssue
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, addressID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}

	return nil
}

// ListAddresses returns every address ordered by name.
func (r *Repository) ListAddresses(ctx context.Context) ([]models.Address, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, full_address FROM addresses ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var address models.Address
		if err = rows.Scan(&address.ID, &address.Name, &address.FullAddress); err != nil {
			return nil, fmt.Errorf("failed to scan address row: %w", err)
		}
		addresses = append(addresses, address)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read address rows: %w", err)
	}

	return addresses, nil
}
