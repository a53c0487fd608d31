package domain

import "errors"

var (
	// ErrNotFound reports that a collaborator has no such object.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable reports a network failure, timeout or server error from a
	// collaborator. These are retryable, unlike cryptographic failures.
	ErrUnavailable = errors.New("service unavailable")
	// ErrNotMember reports that the caller holds no usable wrapped key for a room.
	ErrNotMember = errors.New("not a member of this room")
)
