package sqlite_test

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/platea/sector-monitor/internal/models"
	"github.com/platea/sector-monitor/internal/repository"
	"github.com/platea/sector-monitor/internal/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Integration Tests (using a real temporary database)
// =============================================================================

// newTestDB is a helper function that creates a temporary database for a test.
func newTestDB(t *testing.T) sqlite.Interface {
	t.Helper()

	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, err := sqlite.NewRepository(t.Context(), logger, dbPath)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		if err = repo.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return repo
}

// newMockedRepo creates a repository with a mocked database connection for testing failures.
func newMockedRepo(t *testing.T) (*sqlite.Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := sqlite.NewForTest(mockDB)

	t.Cleanup(func() { mockDB.Close() })

	return repo, mock
}

// TestRepository_Integration_EventLifecycle simulates registering,
// refreshing and listing events against a real SQLite database.
func TestRepository_Integration_EventLifecycle(t *testing.T) {
	repo := newTestDB(t)
	ctx := t.Context()

	event := models.Event{ID: "pq23", URL: "https://tickets.example/event/pq23", Name: "Event PQ23"}

	t.Run("touch_unknown_event", func(t *testing.T) {
		err := repo.TouchEvent(ctx, "pq23", time.Now())
		require.ErrorIs(t, err, repository.ErrEventNotFound)
	})

	t.Run("upsert_first_time", func(t *testing.T) {
		require.NoError(t, repo.UpsertEvent(ctx, event))

		events, err := repo.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "pq23", events[0].ID)
		assert.Equal(t, event.URL, events[0].URL)
		assert.True(t, events[0].LastChecked.IsZero(), "new event must have no last_checked")
	})

	t.Run("upsert_refreshes_url_and_name", func(t *testing.T) {
		updated := event
		updated.URL = "https://tickets.example/event/pq23-moved"
		updated.Name = "Event PQ23 (rescheduled)"
		require.NoError(t, repo.UpsertEvent(ctx, updated))

		events, err := repo.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 1, "upsert must not duplicate the row")
		assert.Equal(t, updated.URL, events[0].URL)
		assert.Equal(t, updated.Name, events[0].Name)
	})

	t.Run("touch_sets_last_checked", func(t *testing.T) {
		checkedAt := time.Now().UTC()
		require.NoError(t, repo.TouchEvent(ctx, "pq23", checkedAt))

		events, err := repo.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.WithinDuration(t, checkedAt, events[0].LastChecked, time.Second)
	})

	t.Run("list_orders_by_id", func(t *testing.T) {
		require.NoError(t, repo.UpsertEvent(ctx, models.Event{ID: "aa01", URL: "https://tickets.example/event/aa01"}))

		events, err := repo.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "aa01", events[0].ID)
		assert.Equal(t, "pq23", events[1].ID)
	})
}

// =============================================================================
// Unit Tests (using sqlmock for failure scenarios)
// =============================================================================

func TestRepository_Events_Failures(t *testing.T) {
	ctx := t.Context()

	t.Run("upsert_exec_error", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		expectedErr := errors.New("db connection lost")
		mock.ExpectExec("INSERT INTO events").WillReturnError(expectedErr)

		err := repo.UpsertEvent(ctx, models.Event{ID: "pq23"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), expectedErr.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("touch_exec_error", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		expectedErr := errors.New("database is locked")
		mock.ExpectExec("UPDATE events SET last_checked").WillReturnError(expectedErr)

		err := repo.TouchEvent(ctx, "pq23", time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), expectedErr.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list_query_error", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectQuery("SELECT event_id, url, name").WillReturnError(errors.New("disk I/O error"))

		_, err := repo.ListEvents(ctx)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
