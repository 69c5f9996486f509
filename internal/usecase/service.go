package usecase

import (
	"time"

	"shareit/internal/data/repository"

	"go.uber.org/zap"
)

// Clock returns the current time. Services never call time.Now directly.
type Clock func() time.Time

type Service struct {
	User    UserService
	Item    ItemService
	Booking BookingService
}

func NewService(repo *repository.Repository, clock Clock, log *zap.Logger) *Service {
	return &Service{
		User:    NewUserService(repo.User, clock, log),
		Item:    NewItemService(repo, clock, log),
		Booking: NewBookingService(repo, clock, log),
	}
}
