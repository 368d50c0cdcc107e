package request

type CreateReviewRequest struct {
	ParkingLotID string  `json:"parking_lot_id" validate:"required,uuid4"`
	Rating       int     `json:"rating" validate:"required,min=1,max=5"`
	Comment      *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}
