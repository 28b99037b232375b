package sqlite_test

import (
	"errors"
	"testing"
	"time"

	"github.com/platea/sector-monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRepository_Integration_Deliveries covers the delivery audit log and
// the recency lookup that backs alert deduplication.
func TestRepository_Integration_Deliveries(t *testing.T) {
	repo := newTestDB(t)
	ctx := t.Context()

	const message = "Hay cambios en la plataforma"
	now := time.Now().UTC()

	t.Run("no_deliveries_yet", func(t *testing.T) {
		recent, err := repo.HasRecentDelivery(ctx, message, now.Add(-5*time.Minute))
		require.NoError(t, err)
		assert.False(t, recent)
	})

	t.Run("log_and_detect_recent", func(t *testing.T) {
		require.NoError(t, repo.LogDelivery(ctx, models.DeliveryLog{
			Phone:     "+573001234567",
			Message:   message,
			Timestamp: now.Add(-time.Minute),
			Success:   true,
		}))

		recent, err := repo.HasRecentDelivery(ctx, message, now.Add(-5*time.Minute))
		require.NoError(t, err)
		assert.True(t, recent)
	})

	t.Run("old_delivery_is_outside_window", func(t *testing.T) {
		recent, err := repo.HasRecentDelivery(ctx, message, now.Add(-30*time.Second))
		require.NoError(t, err)
		assert.False(t, recent)
	})

	t.Run("failed_delivery_never_counts", func(t *testing.T) {
		require.NoError(t, repo.LogDelivery(ctx, models.DeliveryLog{
			Phone:     "+573009876543",
			Message:   "otro mensaje",
			Timestamp: now,
			Success:   false,
			ErrorText: "carrier rejected",
		}))

		recent, err := repo.HasRecentDelivery(ctx, "otro mensaje", now.Add(-5*time.Minute))
		require.NoError(t, err)
		assert.False(t, recent)
	})

	t.Run("message_text_is_the_dedup_key", func(t *testing.T) {
		recent, err := repo.HasRecentDelivery(ctx, "mensaje distinto", now.Add(-5*time.Minute))
		require.NoError(t, err)
		assert.False(t, recent)
	})

	t.Run("recent_list_newest_first", func(t *testing.T) {
		entries, err := repo.RecentDeliveries(ctx, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "+573009876543", entries[0].Phone)
		assert.Equal(t, "carrier rejected", entries[0].ErrorText)
		assert.Equal(t, "+573001234567", entries[1].Phone)
		assert.True(t, entries[1].Success)
	})

	t.Run("count_successful", func(t *testing.T) {
		count, err := repo.CountSuccessfulDeliveries(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestRepository_Deliveries_Failures(t *testing.T) {
	ctx := t.Context()

	t.Run("log_exec_error", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		expectedErr := errors.New("db connection lost")
		mock.ExpectExec("INSERT INTO delivery_logs").WillReturnError(expectedErr)

		err := repo.LogDelivery(ctx, models.DeliveryLog{Phone: "+573001234567", Message: "m"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), expectedErr.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("recent_lookup_query_error", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("disk I/O error"))

		_, err := repo.HasRecentDelivery(ctx, "m", time.Now())

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
