package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/platea/sector-monitor/internal/models"
	"github.com/platea/sector-monitor/internal/repository"
)

// UpsertEvent inserts a monitored event or refreshes its URL and name if
// the id is already registered. Called once per event at startup.
func (r *Repository) UpsertEvent(ctx context.Context, event models.Event) error {
	const opn = "repository.sqlite.UpsertEvent"

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (event_id, url, name, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(event_id) DO UPDATE SET url = excluded.url, name = excluded.name`,
		event.ID, event.URL, event.Name, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// TouchEvent updates the last-checked timestamp for an event after a
// completed monitoring cycle.
func (r *Repository) TouchEvent(ctx context.Context, eventID string, checkedAt time.Time) error {
	const opn = "repository.sqlite.TouchEvent"

	res, err := r.db.ExecContext(ctx,
		"UPDATE events SET last_checked = ? WHERE event_id = ?", checkedAt.UTC(), eventID)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", opn, repository.ErrEventNotFound)
	}

	return nil
}

// ListEvents returns all registered events ordered by id.
func (r *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	const opn = "repository.sqlite.ListEvents"

	rows, err := r.db.QueryContext(ctx,
		"SELECT event_id, url, name, last_checked, created_at FROM events ORDER BY event_id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			event       models.Event
			lastChecked *time.Time
		)
		if err = rows.Scan(&event.ID, &event.URL, &event.Name, &lastChecked, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: failed to scan event: %w", opn, err)
		}
		if lastChecked != nil {
			event.LastChecked = *lastChecked
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return events, nil
}
