package repository_test

import (
	"testing"

	"github.com/inpredservice11-beep/instruments/internal/models"
	"github.com/inpredservice11-beep/instruments/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertAddress = `INSERT INTO addresses \(name, full_address\) VALUES \(\$1, \$2\) RETURNING id`

const selectOpenIssuanceForAddress = `SELECT EXISTS \(SELECT 1 FROM issuances WHERE address_id = \$1 AND status = 'issued'\)`

const deleteAddress = `DELETE FROM addresses WHERE id = \$1`

func TestCreateAddress(t *testing.T) {
	t.Parallel()
	ctx := t.Context()

	t.Run("error - empty name", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		_, err = repo.CreateAddress(ctx, models.Address{FullAddress: "Lenina st. 1"})

		require.ErrorIs(t, err, repository.ErrEmptyName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - create address", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(insertAddress).
			WithArgs("Main site", "Lenina st. 1").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

		addressID, err := repo.CreateAddress(ctx, models.Address{Name: "Main site", FullAddress: "Lenina st. 1"})

		require.NoError(t, err)
		assert.Equal(t, int64(7), addressID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteAddress(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	addressID := int64(7)

	t.Run("error - address referenced by an open issuance", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(selectOpenIssuanceForAddress).
			WithArgs(addressID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		err = repo.DeleteAddress(ctx, addressID)

		require.ErrorIs(t, err, repository.ErrAddressHasOpenIssue)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - address not found", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(selectOpenIssuanceForAddress).
			WithArgs(addressID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(deleteAddress).
			WithArgs(addressID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err = repo.DeleteAddress(ctx, addressID)

		require.ErrorIs(t, err, repository.ErrAddressNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - delete address", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock)

		mock.ExpectQuery(selectOpenIssuanceForAddress).
			WithArgs(addressID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(deleteAddress).
			WithArgs(addressID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err = repo.DeleteAddress(ctx, addressID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
