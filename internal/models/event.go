package models

import "time"

// Event is one monitored remote resource with its own snapshot history.
type Event struct {
	ID          string
	URL         string
	Name        string
	LastChecked time.Time
	CreatedAt   time.Time
}

// Snapshot is the full set of canonical sector identifiers judged
// available at one observation instant. Immutable once written.
type Snapshot struct {
	EventID   string
	Sectors   []string
	Timestamp time.Time
}

// ChangeRecord is written once per cycle that yields newly available sectors.
type ChangeRecord struct {
	EventID    string
	NewSectors []string
	Timestamp  time.Time
	SMSSent    bool
}
