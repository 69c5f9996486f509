package usecase

import (
	"time"

	"shareit/internal/data/entity"
	"shareit/internal/data/repository"
)

// stateFilter narrows a listing to one logical state, evaluated against now.
type stateFilter func(filter *repository.BookingFilter, now time.Time)

var stateFilters = map[entity.BookingState]stateFilter{
	entity.BookingStateAll: func(*repository.BookingFilter, time.Time) {},
	entity.BookingStatePast: func(f *repository.BookingFilter, now time.Time) {
		f.EndBefore = &now
	},
	entity.BookingStateFuture: func(f *repository.BookingFilter, now time.Time) {
		f.StartAfter = &now
	},
	entity.BookingStateCurrent: func(f *repository.BookingFilter, now time.Time) {
		f.ActiveAt = &now
	},
	entity.BookingStateWaiting: func(f *repository.BookingFilter, _ time.Time) {
		status := entity.BookingStatusWaiting
		f.Status = &status
	},
	entity.BookingStateRejected: func(f *repository.BookingFilter, _ time.Time) {
		status := entity.BookingStatusRejected
		f.Status = &status
	},
}
