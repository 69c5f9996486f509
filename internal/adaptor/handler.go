package adaptor

import (
	"errors"
	"fmt"
	"net/http"

	"shareit/internal/data/entity"
	"shareit/internal/usecase"
	"shareit/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	User    *UserHandler
	Item    *ItemHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User:    NewUserHandler(service.User, log),
		Item:    NewItemHandler(service.Item, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// handleServiceError maps an error kind to its HTTP status.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrItemNotFound),
		errors.Is(err, entity.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, utils.ErrValidation),
		errors.Is(err, utils.ErrInvalidPagination),
		errors.Is(err, entity.ErrUnknownState),
		errors.Is(err, entity.ErrItemUnavailable),
		errors.Is(err, entity.ErrInvalidTransition):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, entity.ErrBookingOverlap),
		errors.Is(err, entity.ErrEmailTaken):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, entity.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a UUID", utils.ErrValidation, name)
	}
	return id, nil
}
