package sqlite

import (
	"context"
	"time"

	"github.com/platea/sector-monitor/internal/models"
)

// EventRepository covers the monitored-event lifecycle.
type EventRepository interface {
	UpsertEvent(ctx context.Context, event models.Event) error
	TouchEvent(ctx context.Context, eventID string, checkedAt time.Time) error
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// SnapshotRepository covers availability snapshot history.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snapshot models.Snapshot) error
	LatestSnapshot(ctx context.Context, eventID string) (*models.Snapshot, error)
	CountSnapshots(ctx context.Context) (int, error)
}

// ChangeRepository covers change record bookkeeping.
type ChangeRepository interface {
	RecordChange(ctx context.Context, change models.ChangeRecord) error
	RecentChanges(ctx context.Context, limit int) ([]models.ChangeRecord, error)
	CountChanges(ctx context.Context) (int, error)
}

// RecipientRepository covers the alert recipient lifecycle.
type RecipientRepository interface {
	RecipientByPhone(ctx context.Context, phone string) (*models.Recipient, error)
	CreateRecipient(ctx context.Context, phone string, registeredAt time.Time) error
	ReactivateRecipient(ctx context.Context, phone string, registeredAt time.Time) error
	DeactivateRecipient(ctx context.Context, phone string) error
	ActiveRecipients(ctx context.Context) ([]string, error)
	CountActiveRecipients(ctx context.Context) (int, error)
}

// DeliveryRepository covers the append-only delivery attempt log.
type DeliveryRepository interface {
	LogDelivery(ctx context.Context, entry models.DeliveryLog) error
	HasRecentDelivery(ctx context.Context, message string, since time.Time) (bool, error)
	RecentDeliveries(ctx context.Context, limit int) ([]models.DeliveryLog, error)
	CountSuccessfulDeliveries(ctx context.Context) (int, error)
}

// MonitorRepository is the persistence surface one monitoring cycle needs.
type MonitorRepository interface {
	EventRepository
	SnapshotRepository
	ChangeRepository
}

// AlertRepository is the persistence surface the alert dispatcher needs.
type AlertRepository interface {
	RecipientRepository
	DeliveryRepository
}

// Interface is the full persistence surface consumed by the service layer.
type Interface interface {
	EventRepository
	SnapshotRepository
	ChangeRepository
	RecipientRepository
	DeliveryRepository
}
