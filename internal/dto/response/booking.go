package response

import (
	"time"

	"shareit/internal/data/entity"
)

type BookingResponse struct {
	ID        string               `json:"id"`
	Start     time.Time            `json:"start"`
	End       time.Time            `json:"end"`
	Status    entity.BookingStatus `json:"status"`
	Booker    BookerResponse       `json:"booker"`
	Item      BookedItemResponse   `json:"item"`
	CreatedAt time.Time            `json:"created_at"`
}

type BookerResponse struct {
	ID string `json:"id"`
}

type BookedItemResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:     booking.ID.String(),
		Start:  booking.Start,
		End:    booking.End,
		Status: booking.Status,
		Booker: BookerResponse{ID: booking.BookerID.String()},
		Item: BookedItemResponse{
			ID:      booking.Item.ID.String(),
			Name:    booking.Item.Name,
			OwnerID: booking.Item.OwnerID.String(),
		},
		CreatedAt: booking.CreatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, BookingToResponse(booking))
	}
	return result
}
