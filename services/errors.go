package services

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New("not allowed to perform this action")

	ErrDuplicateInvitation = errors.New("a pending invitation already exists for this recipient")
	ErrRequestNotFound     = errors.New("connection request not found")
	ErrRequestNotPending   = errors.New("connection request has already been resolved")
	ErrChildNotFound       = errors.New("child profile not found")
	ErrSessionNotFound     = errors.New("session not found")

	ErrInvalidConnectionType = errors.New("connection type must be specialist or parent")
	ErrInvalidDecision       = errors.New("decision must be accepted or rejected")
)
