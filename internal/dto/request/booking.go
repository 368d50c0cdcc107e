package request

import "time"

type CreateBookingRequest struct {
	ParkingLotID   string    `json:"parking_lot_id" validate:"required,uuid4"`
	ParkingSpaceID string    `json:"parking_space_id" validate:"required"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	PriceType      string    `json:"price_type" validate:"required,oneof=hourly daily monthly"`
	Duration       int       `json:"duration" validate:"required,min=1"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
