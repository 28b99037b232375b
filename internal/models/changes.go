package models

import "time"

// ChangeInfo - comparison result between two sector snapshots.
type ChangeInfo struct {
	NewSectors       []string
	RemovedSectors   []string
	UnchangedSectors []string
	HasChanges       bool
	TotalPrevious    int
	TotalCurrent     int
	Timestamp        time.Time
}

// CycleResult - outcome of one monitoring cycle for a single event.
type CycleResult struct {
	EventID         string
	Success         bool
	SectorsFound    int
	ChangesDetected bool
	NewSectors      []string
	SMSSent         bool
	Err             error
}
