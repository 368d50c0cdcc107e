package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	BaseSimple
	UserID       uuid.UUID `db:"user_id"`
	ParkingLotID uuid.UUID `db:"parking_lot_id"`
	Rating       int       `db:"rating"` // 1-5
	Comment      *string   `db:"comment"`
}
