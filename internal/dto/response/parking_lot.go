package response

import (
	"time"

	"parking-booking/internal/data/entity"
)

type ParkingLotResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Latitude       string    `json:"latitude"`
	Longitude      string    `json:"longitude"`
	TotalSpots     int       `json:"total_spots"`
	AvailableSpots int       `json:"available_spots"`
	PricePerHour   int       `json:"price_per_hour"`
	Description    *string   `json:"description,omitempty"`
	OpeningHour    string    `json:"opening_hour"`
	ClosingHour    string    `json:"closing_hour"`
	OwnerID        string    `json:"owner_id"`
	Images         []string  `json:"images,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type LayoutResponse struct {
	ID           string             `json:"id"`
	ParkingLotID string             `json:"parking_lot_id"`
	Name         string             `json:"name"`
	Rows         []entity.LayoutRow `json:"rows"`
}

// SpaceViewResponse adalah flattened view satu slot untuk display & selection
type SpaceViewResponse struct {
	ID         string `json:"id"`          // composite SpaceRef, e.g. "0_1_2"
	SpotNumber string `json:"spot_number"` // e.g. "A3"
	Zone       string `json:"zone"`        // layout name
	Status     string `json:"status"`
}

func ParkingLotToResponse(lot *entity.ParkingLot) ParkingLotResponse {
	return ParkingLotResponse{
		ID:             lot.ID.String(),
		Name:           lot.Name,
		Address:        lot.Address,
		Latitude:       lot.Latitude,
		Longitude:      lot.Longitude,
		TotalSpots:     lot.TotalSpots,
		AvailableSpots: lot.AvailableSpots,
		PricePerHour:   lot.PricePerHour,
		Description:    lot.Description,
		OpeningHour:    lot.OpeningHour,
		ClosingHour:    lot.ClosingHour,
		OwnerID:        lot.OwnerID.String(),
		Images:         lot.Images,
		CreatedAt:      lot.CreatedAt,
	}
}

func LayoutToResponse(layout *entity.ParkingLayout) LayoutResponse {
	return LayoutResponse{
		ID:           layout.ID.String(),
		ParkingLotID: layout.ParkingLotID.String(),
		Name:         layout.Name,
		Rows:         layout.Rows,
	}
}
