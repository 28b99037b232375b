// Package alerts decides whether a detected change is worth telling the
// audience about, and fans the notification out over SMS.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/platea/sector-monitor/internal/models"
	"github.com/platea/sector-monitor/internal/repository"
	"github.com/platea/sector-monitor/internal/repository/sqlite"
)

// AlertMessage is the fixed body sent for every change alert. Keeping it
// constant is what makes the text-keyed deduplication work.
const AlertMessage = "Hay cambios en la plataforma"

// Skip reasons reported in BatchResult.
const (
	SkipReasonDeduplication = "deduplication"
	SkipReasonNoPhones      = "no_phones"
)

var (
	// ErrNotConfigured is returned when the delivery transport has no credentials.
	ErrNotConfigured = errors.New("SMS service not configured")

	// ErrInvalidPhone is returned for an address that fails E.164 validation.
	ErrInvalidPhone = errors.New("invalid phone number format, use E.164 format (+573001234567)")

	// ErrAlreadyRegistered is returned when the address is registered and active.
	ErrAlreadyRegistered = errors.New("phone number already registered and active")
)

// Dispatcher owns the alert pipeline: configuration gate, deduplication
// gate, recipient gate, and the per-recipient fan-out. It also exposes
// the recipient lifecycle operations for the admin surface.
type Dispatcher struct {
	log                *slog.Logger
	repo               sqlite.AlertRepository
	sender             Sender
	dedupWindow        time.Duration
	defaultCountryCode string
}

// NewDispatcher creates a Dispatcher. A nil sender means the transport
// is not configured: every send attempt fails fast at the first gate.
func NewDispatcher(
	log *slog.Logger,
	repo sqlite.AlertRepository,
	sender Sender,
	dedupWindow time.Duration,
	defaultCountryCode string,
) *Dispatcher {
	return &Dispatcher{
		log:                log,
		repo:               repo,
		sender:             sender,
		dedupWindow:        dedupWindow,
		defaultCountryCode: defaultCountryCode,
	}
}

// IsConfigured reports whether the delivery transport is usable.
func (d *Dispatcher) IsConfigured() bool {
	return d.sender != nil
}

// SendChangeAlert runs one notification batch for newly available
// sectors. The deduplication gate is keyed on message text and recency
// alone, not on the triggering event: a second event going live inside
// the window is suppressed as well.
func (d *Dispatcher) SendChangeAlert(ctx context.Context, eventID string, newSectors []string, dryRun bool) models.BatchResult {
	const opn = "alerts.SendChangeAlert"
	log := d.log.With("op", opn, "event_id", eventID)

	if !d.IsConfigured() {
		log.ErrorContext(ctx, "SMS service not configured. Cannot send alerts.")
		return models.BatchResult{Success: false, Err: ErrNotConfigured.Error()}
	}

	skip, err := d.shouldSkipDueToDeduplication(ctx)
	if err != nil {
		// A dedup lookup failure is not worth dropping the alert for.
		log.ErrorContext(ctx, "Deduplication check failed, proceeding with send", "error", err)
	}
	if skip {
		log.InfoContext(ctx, "Skipping SMS alert due to recent identical alert")
		return models.BatchResult{Success: true, Skipped: true, SkipReason: SkipReasonDeduplication}
	}

	phones, err := d.repo.ActiveRecipients(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load active recipients", "error", err)
		phones = nil
	}
	if len(phones) == 0 {
		log.WarnContext(ctx, "No active phone numbers registered for alerts")
		return models.BatchResult{Success: true, Skipped: true, SkipReason: SkipReasonNoPhones}
	}

	log.InfoContext(ctx, "Sending SMS alerts", "phones", len(phones), "new_sectors", newSectors)

	result := models.BatchResult{
		Success:     true,
		TotalPhones: len(phones),
		DryRun:      dryRun,
	}

	for _, phone := range phones {
		if dryRun {
			log.InfoContext(ctx, "[DRY RUN] Would send SMS", "to", phone, "message", AlertMessage)
			d.logAttempt(ctx, phone, true, "")
			result.SentCount++
			continue
		}

		if sendErr := d.sender.Send(ctx, phone, AlertMessage); sendErr != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", phone, sendErr.Error()))
			d.logAttempt(ctx, phone, false, sendErr.Error())
			log.ErrorContext(ctx, "Failed to send SMS", "to", phone, "error", sendErr)
			continue
		}

		result.SentCount++
		d.logAttempt(ctx, phone, true, "")
		log.InfoContext(ctx, "SMS sent successfully", "to", phone)
	}

	log.InfoContext(ctx, "SMS alert batch completed",
		"sent", result.SentCount, "failed", result.FailedCount)

	return result
}

// shouldSkipDueToDeduplication checks for a successful delivery of the
// exact alert text inside the trailing deduplication window.
func (d *Dispatcher) shouldSkipDueToDeduplication(ctx context.Context) (bool, error) {
	cutoff := time.Now().UTC().Add(-d.dedupWindow)

	found, err := d.repo.HasRecentDelivery(ctx, AlertMessage, cutoff)
	if err != nil {
		return false, fmt.Errorf("deduplication lookup: %w", err)
	}

	return found, nil
}

// logAttempt appends a delivery attempt row. Attempt logging is
// best-effort: a persistence failure is logged and swallowed so it never
// interrupts the batch.
func (d *Dispatcher) logAttempt(ctx context.Context, phone string, success bool, errorText string) {
	entry := models.DeliveryLog{
		Phone:     phone,
		Message:   AlertMessage,
		Timestamp: time.Now().UTC(),
		Success:   success,
		ErrorText: errorText,
	}

	if err := d.repo.LogDelivery(ctx, entry); err != nil {
		d.log.ErrorContext(ctx, "Failed to log SMS attempt", "to", phone, "error", err)
	}
}

// RegisterPhone validates and registers a destination address. An
// inactive record for the same canonical address is reactivated instead
// of creating a duplicate row. Returns the normalized address.
func (d *Dispatcher) RegisterPhone(ctx context.Context, phone string) (string, error) {
	const opn = "alerts.RegisterPhone"

	normalized, ok := ValidatePhone(phone, d.defaultCountryCode)
	if !ok {
		return phone, ErrInvalidPhone
	}

	existing, err := d.repo.RecipientByPhone(ctx, normalized)
	switch {
	case err == nil:
		if existing.Active {
			return normalized, ErrAlreadyRegistered
		}
		if err = d.repo.ReactivateRecipient(ctx, normalized, time.Now().UTC()); err != nil {
			return normalized, fmt.Errorf("%s: %w", opn, err)
		}
		d.log.InfoContext(ctx, "Phone number reactivated", "phone", normalized)
		return normalized, nil

	case errors.Is(err, repository.ErrRecipientNotFound):
		if err = d.repo.CreateRecipient(ctx, normalized, time.Now().UTC()); err != nil {
			return normalized, fmt.Errorf("%s: %w", opn, err)
		}
		d.log.InfoContext(ctx, "Phone number registered", "phone", normalized)
		return normalized, nil

	default:
		return normalized, fmt.Errorf("%s: %w", opn, err)
	}
}

// UnregisterPhone deactivates a destination address. The row is kept for
// audit history.
func (d *Dispatcher) UnregisterPhone(ctx context.Context, phone string) (string, error) {
	const opn = "alerts.UnregisterPhone"

	normalized, ok := ValidatePhone(phone, d.defaultCountryCode)
	if !ok {
		return phone, ErrInvalidPhone
	}

	if err := d.repo.DeactivateRecipient(ctx, normalized); err != nil {
		if errors.Is(err, repository.ErrRecipientNotFound) {
			return normalized, repository.ErrRecipientNotFound
		}
		return normalized, fmt.Errorf("%s: %w", opn, err)
	}

	d.log.InfoContext(ctx, "Phone number unregistered", "phone", normalized)

	return normalized, nil
}

// ActiveRecipientCount returns the number of active recipients, or zero
// when the lookup fails.
func (d *Dispatcher) ActiveRecipientCount(ctx context.Context) int {
	count, err := d.repo.CountActiveRecipients(ctx)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to count recipients", "error", err)
		return 0
	}

	return count
}
