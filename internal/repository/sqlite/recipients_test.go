package sqlite_test

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/platea/sector-monitor/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRepository_Integration_Recipients walks a recipient through the
// full register, unregister and re-register lifecycle.
func TestRepository_Integration_Recipients(t *testing.T) {
	repo := newTestDB(t)
	ctx := t.Context()

	const phone = "+573001234567"
	registeredAt := time.Now().UTC().Add(-24 * time.Hour)

	t.Run("lookup_unknown_phone", func(t *testing.T) {
		_, err := repo.RecipientByPhone(ctx, phone)
		require.ErrorIs(t, err, repository.ErrRecipientNotFound)
	})

	t.Run("deactivate_unknown_phone", func(t *testing.T) {
		err := repo.DeactivateRecipient(ctx, phone)
		require.ErrorIs(t, err, repository.ErrRecipientNotFound)
	})

	t.Run("create_and_lookup", func(t *testing.T) {
		require.NoError(t, repo.CreateRecipient(ctx, phone, registeredAt))

		recipient, err := repo.RecipientByPhone(ctx, phone)
		require.NoError(t, err)
		assert.Equal(t, phone, recipient.Phone)
		assert.True(t, recipient.Active)
		assert.WithinDuration(t, registeredAt, recipient.RegisteredAt, time.Second)
	})

	t.Run("duplicate_create_fails", func(t *testing.T) {
		err := repo.CreateRecipient(ctx, phone, time.Now())
		require.Error(t, err, "phone is the primary key")
	})

	t.Run("deactivate_keeps_row", func(t *testing.T) {
		require.NoError(t, repo.DeactivateRecipient(ctx, phone))

		recipient, err := repo.RecipientByPhone(ctx, phone)
		require.NoError(t, err)
		assert.False(t, recipient.Active)
		assert.WithinDuration(t, registeredAt, recipient.RegisteredAt, time.Second,
			"deactivation must not touch registered_at")

		phones, err := repo.ActiveRecipients(ctx)
		require.NoError(t, err)
		assert.Empty(t, phones)
	})

	t.Run("reactivate_refreshes_registration", func(t *testing.T) {
		reregisteredAt := time.Now().UTC()
		require.NoError(t, repo.ReactivateRecipient(ctx, phone, reregisteredAt))

		recipient, err := repo.RecipientByPhone(ctx, phone)
		require.NoError(t, err)
		assert.True(t, recipient.Active)
		assert.WithinDuration(t, reregisteredAt, recipient.RegisteredAt, time.Second)
	})

	t.Run("active_list_and_count", func(t *testing.T) {
		require.NoError(t, repo.CreateRecipient(ctx, "+573009876543", time.Now().UTC()))

		phones, err := repo.ActiveRecipients(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{phone, "+573009876543"}, phones)

		count, err := repo.CountActiveRecipients(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestRepository_Recipients_Failures(t *testing.T) {
	ctx := t.Context()

	t.Run("lookup_query_error", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectQuery("SELECT phone, registered_at").WillReturnError(errors.New("db connection lost"))

		_, err := repo.RecipientByPhone(ctx, "+573001234567")

		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrRecipientNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reactivate_unknown_phone", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectExec("UPDATE recipients SET active = 1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ReactivateRecipient(ctx, "+573001234567", time.Now())

		require.ErrorIs(t, err, repository.ErrRecipientNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create_exec_error", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		expectedErr := errors.New("database is locked")
		mock.ExpectExec("INSERT INTO recipients").WillReturnError(expectedErr)

		err := repo.CreateRecipient(ctx, "+573001234567", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), expectedErr.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
