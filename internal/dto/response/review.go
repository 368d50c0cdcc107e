package response

import (
	"time"

	"parking-booking/internal/data/entity"
)

type ReviewResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ParkingLotID string    `json:"parking_lot_id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID.String(),
		UserID:       review.UserID.String(),
		ParkingLotID: review.ParkingLotID.String(),
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreatedAt,
	}
}
