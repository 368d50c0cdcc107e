package response

import (
	"time"

	"parking-booking/internal/data/entity"
)

type BookingResponse struct {
	ID             string               `json:"id"`
	BookingCode    string               `json:"booking_code"`
	UserID         string               `json:"user_id"`
	ParkingLotID   string               `json:"parking_lot_id"`
	ParkingLotName string               `json:"parking_lot_name,omitempty"`
	ParkingSpaceID string               `json:"parking_space_id"`
	SpotNumber     string               `json:"spot_number,omitempty"`
	StartTime      time.Time            `json:"start_time"`
	EndTime        time.Time            `json:"end_time"`
	Status         entity.BookingStatus `json:"status"`
	TotalPrice     int                  `json:"total_price"`
	CreatedAt      time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:             booking.ID.String(),
		BookingCode:    booking.BookingCode,
		UserID:         booking.UserID.String(),
		ParkingLotID:   booking.ParkingLotID.String(),
		ParkingSpaceID: booking.ParkingSpaceID,
		StartTime:      booking.StartTime,
		EndTime:        booking.EndTime,
		Status:         booking.Status,
		TotalPrice:     booking.TotalPrice,
		CreatedAt:      booking.CreatedAt,
	}
}
