package entity

import "errors"

var (
	// ErrNotFound is returned when a referenced user does not resolve.
	ErrNotFound = errors.New("resource not found")

	// ErrQuotaExceeded is returned when a free account submits a swipe
	// beyond its daily allowance. Detected before any state is mutated.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrAlreadyExists is returned for duplicate sign-ups and repeated
	// premium upgrades. The match uniqueness race never surfaces as this
	// error; the match insert does nothing on conflict.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrTransactionFailure wraps any unexpected store failure inside the
	// swipe transaction. The transaction is rolled back, so a caller may
	// safely retry.
	ErrTransactionFailure = errors.New("transaction failure")
)
