package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"shareit/internal/dto/request"
	"shareit/internal/dto/response"
	"shareit/internal/usecase"
	"shareit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type listFunc func(ctx context.Context, actorID uuid.UUID, query *request.BookingListQuery) ([]*response.BookingResponse, error)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Actor required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// DecideBooking handles PATCH /bookings/{bookingId}?approved=true|false
func (h *BookingHandler) DecideBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Actor required")
		return
	}

	bookingID, err := uuidParam(r, "bookingId")
	if err != nil {
		handleServiceError(h.log, w, err, "decide booking")
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		handleServiceError(h.log, w, fmt.Errorf("%w: approved must be true or false", utils.ErrValidation), "decide booking")
		return
	}

	booking, err := h.service.DecideBooking(r.Context(), userID, bookingID, approved)
	if err != nil {
		handleServiceError(h.log, w, err, "decide booking")
		return
	}

	utils.ResponseSuccess(w, "Booking decided", booking)
}

// GetBooking handles GET /bookings/{bookingId}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Actor required")
		return
	}

	bookingID, err := uuidParam(r, "bookingId")
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	booking, err := h.service.GetBooking(r.Context(), userID, bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ListBookerBookings handles GET /bookings?state=&from=&size=
func (h *BookingHandler) ListBookerBookings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "list booker bookings", h.service.ListBookerBookings)
}

// ListOwnerBookings handles GET /bookings/owner?state=&from=&size=
func (h *BookingHandler) ListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "list owner bookings", h.service.ListOwnerBookings)
}

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request, operation string, fetch listFunc) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Actor required")
		return
	}

	query, err := request.ParseListQuery(r.URL.Query())
	if err != nil {
		handleServiceError(h.log, w, err, operation)
		return
	}

	bookings, err := fetch(r.Context(), userID, query)
	if err != nil {
		handleServiceError(h.log, w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
