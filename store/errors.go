package store

import "errors"

var (
	// ErrValidation rejects bad input before any mutation is applied.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConsistency signals more than one cash row linked to the same source
	// record. The upsert discipline makes this impossible; if it ever shows up
	// a prior bug corrupted the ledger and we fail loudly instead of guessing
	// which row to update.
	ErrConsistency = errors.New("ledger consistency violation")
)
