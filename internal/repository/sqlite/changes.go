package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/platea/sector-monitor/internal/models"
)

// RecordChange appends a change record for newly available sectors.
func (r *Repository) RecordChange(ctx context.Context, change models.ChangeRecord) error {
	const opn = "repository.sqlite.RecordChange"

	newSectors, err := json.Marshal(change.NewSectors)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal new sectors: %w", opn, err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO change_logs (event_id, new_sectors, timestamp, sms_sent) VALUES (?, ?, ?, ?)",
		change.EventID, string(newSectors), change.Timestamp.UTC(), change.SMSSent,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// RecentChanges returns the most recent change records, newest first.
func (r *Repository) RecentChanges(ctx context.Context, limit int) ([]models.ChangeRecord, error) {
	const opn = "repository.sqlite.RecentChanges"

	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id, new_sectors, timestamp, sms_sent FROM change_logs
		ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var changes []models.ChangeRecord
	for rows.Next() {
		var (
			change     models.ChangeRecord
			newSectors string
		)
		if err = rows.Scan(&change.EventID, &newSectors, &change.Timestamp, &change.SMSSent); err != nil {
			return nil, fmt.Errorf("%s: failed to scan change record: %w", opn, err)
		}
		if err = json.Unmarshal([]byte(newSectors), &change.NewSectors); err != nil {
			return nil, fmt.Errorf("%s: failed to unmarshal new sectors: %w", opn, err)
		}
		changes = append(changes, change)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return changes, nil
}

// CountChanges returns the total number of recorded changes.
func (r *Repository) CountChanges(ctx context.Context) (int, error) {
	const opn = "repository.sqlite.CountChanges"

	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM change_logs").Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", opn, err)
	}

	return count, nil
}
