package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/platea/sector-monitor/internal/models"
)

// LogDelivery appends one delivery attempt row. Dry-run attempts are
// logged the same way as real ones.
func (r *Repository) LogDelivery(ctx context.Context, entry models.DeliveryLog) error {
	const opn = "repository.sqlite.LogDelivery"

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO delivery_logs (phone, message, timestamp, success, error_text) VALUES (?, ?, ?, ?, ?)",
		entry.Phone, entry.Message, entry.Timestamp.UTC(), entry.Success, entry.ErrorText,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// HasRecentDelivery reports whether a successful delivery of the exact
// message text exists since the cutoff time, regardless of recipient.
func (r *Repository) HasRecentDelivery(ctx context.Context, message string, since time.Time) (bool, error) {
	const opn = "repository.sqlite.HasRecentDelivery"

	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM delivery_logs
		WHERE message = ? AND success = 1 AND timestamp > ?`,
		message, since.UTC(),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%s: %w", opn, err)
	}

	return count > 0, nil
}

// RecentDeliveries returns the most recent delivery attempts, newest first.
func (r *Repository) RecentDeliveries(ctx context.Context, limit int) ([]models.DeliveryLog, error) {
	const opn = "repository.sqlite.RecentDeliveries"

	rows, err := r.db.QueryContext(ctx, `
		SELECT phone, message, timestamp, success, error_text FROM delivery_logs
		ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var entries []models.DeliveryLog
	for rows.Next() {
		var (
			entry     models.DeliveryLog
			errorText *string
		)
		if err = rows.Scan(&entry.Phone, &entry.Message, &entry.Timestamp, &entry.Success, &errorText); err != nil {
			return nil, fmt.Errorf("%s: failed to scan delivery log: %w", opn, err)
		}
		if errorText != nil {
			entry.ErrorText = *errorText
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return entries, nil
}

// CountSuccessfulDeliveries returns the number of successful delivery rows.
func (r *Repository) CountSuccessfulDeliveries(ctx context.Context) (int, error) {
	const opn = "repository.sqlite.CountSuccessfulDeliveries"

	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM delivery_logs WHERE success = 1").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opn, err)
	}

	return count, nil
}
