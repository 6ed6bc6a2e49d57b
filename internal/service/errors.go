package service

import "errors"

var (
	// ErrMissingUser rejects a submission without a user identity.
	ErrMissingUser = errors.New("user is required")
	// ErrMissingLocation rejects a submission without a position fix.
	ErrMissingLocation = errors.New("location is required")
	// ErrNotAdmin rejects a status change by a principal without the admin
	// capability, regardless of what the transport layer already checked.
	ErrNotAdmin = errors.New("admin capability required")
	// ErrInvalidTransition rejects any status change on a record that is
	// already approved or rejected, and any target status other than
	// approved/rejected.
	ErrInvalidTransition = errors.New("invalid status transition")
)
