package request

import "time"

type CreateBookingRequest struct {
	ItemID string    `json:"item_id" validate:"required,uuid"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required,gtfield=Start"`
}
