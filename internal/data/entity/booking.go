package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

// validTransitions is the approval state machine. APPROVED and REJECTED are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusWaiting:  {BookingStatusApproved, BookingStatusRejected},
	BookingStatusApproved: {},
	BookingStatusRejected: {},
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

type Booking struct {
	Base
	Start    time.Time     `db:"start_date"`
	End      time.Time     `db:"end_date"`
	BookerID uuid.UUID     `db:"booker_id"`
	Status   BookingStatus `db:"status"`

	// Item is loaded with the booking; the booking never mutates it.
	Item Item
}

// NewBooking builds a WAITING booking of item by booker.
func NewBooking(bookerID uuid.UUID, item Item, start, end, now time.Time) *Booking {
	return &Booking{
		Base: Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Start:    start,
		End:      end,
		BookerID: bookerID,
		Status:   BookingStatusWaiting,
		Item:     item,
	}
}

// Overlaps reports whether the candidate interval conflicts with b.
//
// The comparison is asymmetric: a candidate starting exactly at b.End is free,
// but a candidate ending exactly at b.Start conflicts. Rejected bookings never conflict.
func (b *Booking) Overlaps(start, end time.Time) bool {
	if b.Status == BookingStatusRejected {
		return false
	}
	return start.Before(b.End) && !end.Before(b.Start)
}

// Decide returns the status an owner's decision leads to.
func (b *Booking) Decide(approve bool) (BookingStatus, error) {
	target := BookingStatusRejected
	if approve {
		target = BookingStatusApproved
	}
	if !b.Status.CanTransitionTo(target) {
		return b.Status, fmt.Errorf("%w: booking %s already decided", ErrInvalidTransition, b.ID)
	}
	return target, nil
}

// IsOwner reports whether userID owns the booked item.
func (b *Booking) IsOwner(userID uuid.UUID) bool {
	return b.Item.IsOwnedBy(userID)
}

// IsVisibleTo reports whether userID is the booker or the item owner.
func (b *Booking) IsVisibleTo(userID uuid.UUID) bool {
	return b.BookerID == userID || b.IsOwner(userID)
}
