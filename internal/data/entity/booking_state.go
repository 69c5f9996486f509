package entity

import "fmt"

// BookingState is a listing-time classification, derived from status and the clock.
type BookingState string

const (
	BookingStateAll      BookingState = "ALL"
	BookingStateCurrent  BookingState = "CURRENT"
	BookingStatePast     BookingState = "PAST"
	BookingStateFuture   BookingState = "FUTURE"
	BookingStateWaiting  BookingState = "WAITING"
	BookingStateRejected BookingState = "REJECTED"
)

var bookingStates = map[BookingState]struct{}{
	BookingStateAll:      {},
	BookingStateCurrent:  {},
	BookingStatePast:     {},
	BookingStateFuture:   {},
	BookingStateWaiting:  {},
	BookingStateRejected: {},
}

// ParseBookingState converts a raw token. An empty token means ALL.
func ParseBookingState(raw string) (BookingState, error) {
	if raw == "" {
		return BookingStateAll, nil
	}
	state := BookingState(raw)
	if _, ok := bookingStates[state]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownState, raw)
	}
	return state, nil
}
