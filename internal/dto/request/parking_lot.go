package request

type SlotInput struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=available occupied reserved"`
}

type RowInput struct {
	Prefix string      `json:"prefix" validate:"required,min=1,max=5"`
	Slots  []SlotInput `json:"slots" validate:"required,min=1,dive"`
}

type LayoutInput struct {
	Name string     `json:"name" validate:"required,min=1,max=100"`
	Rows []RowInput `json:"rows" validate:"required,min=1,dive"`
}

type CreateParkingLotRequest struct {
	Name         string        `json:"name" validate:"required,min=2,max=100"`
	Address      string        `json:"address" validate:"required,min=5,max=255"`
	Latitude     string        `json:"latitude" validate:"required,latitude"`
	Longitude    string        `json:"longitude" validate:"required,longitude"`
	PricePerHour int           `json:"price_per_hour" validate:"required,min=1"`
	Description  *string       `json:"description,omitempty"`
	OpeningHour  string        `json:"opening_hour" validate:"required"`
	ClosingHour  string        `json:"closing_hour" validate:"required"`
	Images       []string      `json:"images,omitempty" validate:"omitempty,dive,url"`
	Layouts      []LayoutInput `json:"layouts" validate:"required,min=1,dive"`
}

type UpdateParkingLotRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Address      *string  `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
	PricePerHour *int     `json:"price_per_hour,omitempty" validate:"omitempty,min=1"`
	Description  *string  `json:"description,omitempty"`
	OpeningHour  *string  `json:"opening_hour,omitempty"`
	ClosingHour  *string  `json:"closing_hour,omitempty"`
	Images       []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

type CreateLayoutRequest struct {
	ParkingLotID string     `json:"parking_lot_id" validate:"required,uuid4"`
	Name         string     `json:"name" validate:"required,min=1,max=100"`
	Rows         []RowInput `json:"rows" validate:"required,min=1,dive"`
}

type UpdateLayoutRequest struct {
	Name *string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Rows []RowInput `json:"rows,omitempty" validate:"omitempty,min=1,dive"`
}

type UpdateSpaceStatusRequest struct {
	SpaceID string `json:"space_id" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=available occupied reserved"`
}
