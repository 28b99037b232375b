package models

import "time"

// Recipient is a registered alert destination. Rows are never hard-deleted;
// unregistration flips Active off to preserve the audit history.
type Recipient struct {
	Phone        string
	RegisteredAt time.Time
	Active       bool
}

// DeliveryLog is one append-only delivery attempt row, including dry-run
// attempts. Used for audit and for deduplication lookups.
type DeliveryLog struct {
	Phone     string
	Message   string
	Timestamp time.Time
	Success   bool
	ErrorText string
}

// BatchResult summarizes one fan-out delivery attempt across all active
// recipients. Success stays true on partial per-recipient failures; it is
// false only when the transport is not configured at all.
type BatchResult struct {
	Success     bool
	Skipped     bool
	SkipReason  string
	TotalPhones int
	SentCount   int
	FailedCount int
	Errors      []string
	DryRun      bool
	Err         string
}
