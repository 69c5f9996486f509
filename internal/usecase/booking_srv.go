package usecase

import (
	"context"
	"errors"
	"fmt"

	"shareit/internal/data/entity"
	"shareit/internal/data/repository"
	"shareit/internal/dto/request"
	"shareit/internal/dto/response"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, actorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	DecideBooking(ctx context.Context, actorID, bookingID uuid.UUID, approve bool) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*response.BookingResponse, error)

	// Listings are sorted by start, latest first.
	ListBookerBookings(ctx context.Context, actorID uuid.UUID, query *request.BookingListQuery) ([]*response.BookingResponse, error)
	ListOwnerBookings(ctx context.Context, actorID uuid.UUID, query *request.BookingListQuery) ([]*response.BookingResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	now  Clock
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, clock Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		now:  clock,
		log:  log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves an item for the actor. Checks run in a fixed order so
// that the reported error is deterministic when several conditions hold at once.
func (s *bookingService) CreateBooking(ctx context.Context, actorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid item ID %s", utils.ErrValidation, req.ItemID)
	}

	now := s.now()
	if req.Start.Before(now) {
		return nil, fmt.Errorf("%w: start must not be in the past", utils.ErrValidation)
	}

	// 1. booker
	if _, err := s.findUser(ctx, actorID); err != nil {
		return nil, err
	}

	// 2. item
	item, err := s.repo.Item.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find item %s: %w", itemID, err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrItemNotFound, itemID)
	}

	// 3. availability
	if !item.Available {
		s.log.Warn("Booking of unavailable item rejected",
			zap.String("item_id", itemID.String()),
			zap.String("booker_id", actorID.String()),
		)
		return nil, fmt.Errorf("%w: %s", entity.ErrItemUnavailable, itemID)
	}

	// 4. owners cannot book their own items; reported as a missing item.
	if item.IsOwnedBy(actorID) {
		s.log.Warn("Self booking rejected",
			zap.String("item_id", itemID.String()),
			zap.String("owner_id", actorID.String()),
		)
		return nil, fmt.Errorf("%w: %s", entity.ErrItemNotFound, itemID)
	}

	// 5 and 6. overlap check and insert happen atomically in storage.
	booking := entity.NewBooking(actorID, *item, req.Start, req.End, now)
	if err := s.repo.Booking.CreateIfNoOverlap(ctx, booking); err != nil {
		if errors.Is(err, entity.ErrBookingOverlap) || errors.Is(err, entity.ErrItemNotFound) {
			s.log.Warn("Booking rejected", zap.Error(err), zap.String("item_id", itemID.String()))
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("item_id", itemID.String()),
		zap.String("booker_id", actorID.String()),
		zap.Time("start", booking.Start),
		zap.Time("end", booking.End),
	)

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) DecideBooking(ctx context.Context, actorID, bookingID uuid.UUID, approve bool) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}

	// Non-owners cannot learn that the booking exists.
	if booking == nil || !booking.IsOwner(actorID) {
		return nil, fmt.Errorf("%w: %s", entity.ErrBookingNotFound, bookingID)
	}

	target, err := booking.Decide(approve)
	if err != nil {
		s.log.Warn("Booking already decided",
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(booking.Status)),
		)
		return nil, err
	}

	now := s.now()
	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, booking.Status, target, now); err != nil {
		if errors.Is(err, entity.ErrInvalidTransition) {
			s.log.Warn("Booking decided concurrently", zap.String("booking_id", bookingID.String()))
			return nil, err
		}
		return nil, fmt.Errorf("update booking status %s: %w", bookingID, err)
	}

	booking.Status = target
	booking.UpdatedAt = now

	s.log.Info("Booking decided",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", string(target)),
		zap.String("owner_id", actorID.String()),
	)

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}

	if booking == nil || !booking.IsVisibleTo(actorID) {
		return nil, fmt.Errorf("%w: %s", entity.ErrBookingNotFound, bookingID)
	}

	return response.BookingToResponse(booking), nil
}

func (s *bookingService) ListBookerBookings(ctx context.Context, actorID uuid.UUID, query *request.BookingListQuery) ([]*response.BookingResponse, error) {
	if _, err := s.findUser(ctx, actorID); err != nil {
		return nil, err
	}

	filter, page, err := s.listingFilter(query)
	if err != nil {
		return nil, err
	}
	filter.BookerID = &actorID

	bookings, err := s.repo.Booking.FindBy(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list bookings of booker %s: %w", actorID, err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) ListOwnerBookings(ctx context.Context, actorID uuid.UUID, query *request.BookingListQuery) ([]*response.BookingResponse, error) {
	if _, err := s.findUser(ctx, actorID); err != nil {
		return nil, err
	}

	filter, page, err := s.listingFilter(query)
	if err != nil {
		return nil, err
	}

	itemIDs, err := s.repo.Item.FindIDsByOwner(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("find items of owner %s: %w", actorID, err)
	}
	if len(itemIDs) == 0 {
		return []*response.BookingResponse{}, nil
	}
	filter.ItemIDs = itemIDs

	bookings, err := s.repo.Booking.FindBy(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list bookings of owner %s: %w", actorID, err)
	}

	return response.BookingsToResponse(bookings), nil
}

// listingFilter resolves the requested state and page into a storage filter.
func (s *bookingService) listingFilter(query *request.BookingListQuery) (repository.BookingFilter, *utils.Page, error) {
	var filter repository.BookingFilter
	if query == nil {
		query = &request.BookingListQuery{}
	}

	state, err := entity.ParseBookingState(query.State)
	if err != nil {
		return filter, nil, err
	}

	page, err := utils.PageFromParams(query.From, query.Size)
	if err != nil {
		return filter, nil, err
	}

	stateFilters[state](&filter, s.now())
	return filter, page, nil
}

func (s *bookingService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUserNotFound, id)
	}
	return user, nil
}
