// Package repository defines error types that are reused across
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto HTTP statuses: a missing class becomes 404 while a full
// class or a repeated booking becomes 400.
package repository

import "errors"

// ErrClassNotFound is returned when a class does not exist or has
// already started.  The two cases are intentionally indistinguishable
// so that callers cannot probe whether an expired class ever existed.
// Handlers should translate this into an HTTP 404 response.
var ErrClassNotFound = errors.New("class not found")

// ErrNoSlotsAvailable is returned when a class has no remaining
// capacity at the moment of the atomic decrement.  Handlers should
// translate this into an HTTP 400 response.
var ErrNoSlotsAvailable = errors.New("no slots available")

// ErrDuplicateBooking is returned when a booking for the same
// (class, email) pair already exists.  Handlers should translate
// this into an HTTP 400 response.
var ErrDuplicateBooking = errors.New("duplicate booking")
