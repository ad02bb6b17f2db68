package repositories

import "errors"

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate is returned by CreateInvitation when a pending request
	// already exists for the same child and recipient email.
	ErrDuplicate = errors.New("duplicate pending request")

	// ErrNotPending is returned when a request has already left the
	// pending state; accepted and rejected are terminal.
	ErrNotPending = errors.New("request is not pending")
)
