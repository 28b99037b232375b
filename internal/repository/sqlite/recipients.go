package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/platea/sector-monitor/internal/models"
	"github.com/platea/sector-monitor/internal/repository"
)

// RecipientByPhone returns the record for a normalized phone number,
// active or not. Returns repository.ErrRecipientNotFound when no row exists.
func (r *Repository) RecipientByPhone(ctx context.Context, phone string) (*models.Recipient, error) {
	const opn = "repository.sqlite.RecipientByPhone"

	var recipient models.Recipient
	err := r.db.QueryRowContext(ctx,
		"SELECT phone, registered_at, active FROM recipients WHERE phone = ?", phone,
	).Scan(&recipient.Phone, &recipient.RegisteredAt, &recipient.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return &recipient, nil
}

// CreateRecipient inserts a new active recipient row.
func (r *Repository) CreateRecipient(ctx context.Context, phone string, registeredAt time.Time) error {
	const opn = "repository.sqlite.CreateRecipient"

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO recipients (phone, registered_at, active) VALUES (?, ?, 1)",
		phone, registeredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// ReactivateRecipient flips an inactive recipient back on and refreshes
// its registration timestamp.
func (r *Repository) ReactivateRecipient(ctx context.Context, phone string, registeredAt time.Time) error {
	const opn = "repository.sqlite.ReactivateRecipient"

	res, err := r.db.ExecContext(ctx,
		"UPDATE recipients SET active = 1, registered_at = ? WHERE phone = ?",
		registeredAt.UTC(), phone,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", opn, repository.ErrRecipientNotFound)
	}

	return nil
}

// DeactivateRecipient flips a recipient off. The row is kept for audit
// history; registered_at is left untouched.
func (r *Repository) DeactivateRecipient(ctx context.Context, phone string) error {
	const opn = "repository.sqlite.DeactivateRecipient"

	res, err := r.db.ExecContext(ctx,
		"UPDATE recipients SET active = 0 WHERE phone = ?", phone)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", opn, repository.ErrRecipientNotFound)
	}

	return nil
}

// ActiveRecipients returns the phone numbers of all active recipients.
func (r *Repository) ActiveRecipients(ctx context.Context) ([]string, error) {
	const opn = "repository.sqlite.ActiveRecipients"

	rows, err := r.db.QueryContext(ctx,
		"SELECT phone FROM recipients WHERE active = 1 ORDER BY registered_at")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}
	defer rows.Close()

	var phones []string
	for rows.Next() {
		var phone string
		if err = rows.Scan(&phone); err != nil {
			return nil, fmt.Errorf("%s: failed to scan phone: %w", opn, err)
		}
		phones = append(phones, phone)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return phones, nil
}

// CountActiveRecipients returns the number of active recipients.
func (r *Repository) CountActiveRecipients(ctx context.Context) (int, error) {
	const opn = "repository.sqlite.CountActiveRecipients"

	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipients WHERE active = 1").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opn, err)
	}

	return count, nil
}
