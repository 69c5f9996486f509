package repository

import (
	"shareit/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Item    ItemRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Item:    NewItemRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
