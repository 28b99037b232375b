// Package repository defines the sentinel errors shared by all storage
// implementations.
package repository

import "errors"

var (
	// ErrSnapshotNotFound is returned when an event has no stored snapshot yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrRecipientNotFound is returned when a phone number has no record.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrEventNotFound is returned when an event id is not registered.
	ErrEventNotFound = errors.New("event not found")
)
