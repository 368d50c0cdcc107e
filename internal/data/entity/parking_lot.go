package entity

import "github.com/google/uuid"

type ParkingLot struct {
	Base
	Name           string    `db:"name"`
	Address        string    `db:"address"`
	Latitude       string    `db:"latitude"`  // decimal string, e.g. "10.7769"
	Longitude      string    `db:"longitude"` // decimal string, e.g. "106.7009"
	TotalSpots     int       `db:"total_spots"`
	AvailableSpots int       `db:"available_spots"` // cached count, recomputed on every slot mutation
	PricePerHour   int       `db:"price_per_hour"`
	Description    *string   `db:"description"`
	OpeningHour    string    `db:"opening_hour"` // "06:00"
	ClosingHour    string    `db:"closing_hour"` // "22:00"
	OwnerID        uuid.UUID `db:"owner_id"`
	Images         []string  `db:"images"`
}
