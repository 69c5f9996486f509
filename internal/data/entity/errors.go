package entity

import "errors"

// Caller-visible failure kinds. Wrap with fmt.Errorf("%w: ...") to attach details.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrItemUnavailable   = errors.New("item is not available for booking")
	ErrBookingOverlap    = errors.New("booking overlaps an existing reservation")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownState      = errors.New("unknown state")

	// ErrForbidden is used by the item directory for ownership violations.
	// Bookings hide the same condition behind ErrBookingNotFound instead.
	ErrForbidden  = errors.New("forbidden")
	ErrEmailTaken = errors.New("email already registered")
)
