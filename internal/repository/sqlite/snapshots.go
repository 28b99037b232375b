package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/platea/sector-monitor/internal/models"
	"github.com/platea/sector-monitor/internal/repository"
)

// SaveSnapshot appends a new availability snapshot for an event. Sector
// identifiers are stored as a JSON array.
func (r *Repository) SaveSnapshot(ctx context.Context, snapshot models.Snapshot) error {
	const opn = "repository.sqlite.SaveSnapshot"

	sectorsData, err := json.Marshal(snapshot.Sectors)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal sectors: %w", opn, err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO snapshots (event_id, sectors_data, timestamp) VALUES (?, ?, ?)",
		snapshot.EventID, string(sectorsData), snapshot.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// LatestSnapshot returns the most recent snapshot for an event, i.e. the
// one with the latest capture timestamp. Returns repository.ErrSnapshotNotFound
// when the event has never been observed.
func (r *Repository) LatestSnapshot(ctx context.Context, eventID string) (*models.Snapshot, error) {
	const opn = "repository.sqlite.LatestSnapshot"

	var (
		snapshot    models.Snapshot
		sectorsData string
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT event_id, sectors_data, timestamp FROM snapshots
		WHERE event_id = ? ORDER BY timestamp DESC, id DESC LIMIT 1`, eventID,
	).Scan(&snapshot.EventID, &sectorsData, &snapshot.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	if err = json.Unmarshal([]byte(sectorsData), &snapshot.Sectors); err != nil {
		return nil, fmt.Errorf("%s: failed to unmarshal sectors: %w", opn, err)
	}

	return &snapshot, nil
}

// CountSnapshots returns the total number of stored snapshots.
func (r *Repository) CountSnapshots(ctx context.Context) (int, error) {
	const opn = "repository.sqlite.CountSnapshots"

	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", opn, err)
	}

	return count, nil
}
