package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether s is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from s
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type Booking struct {
	Base
	BookingCode    string        `db:"booking_code"`
	UserID         uuid.UUID     `db:"user_id"`
	ParkingLotID   uuid.UUID     `db:"parking_lot_id"`
	ParkingSpaceID string        `db:"parking_space_id"` // composite SpaceRef, e.g. "0_1_2"
	StartTime      time.Time     `db:"start_time"`
	EndTime        time.Time     `db:"end_time"`
	Status         BookingStatus `db:"status"`
	TotalPrice     int           `db:"total_price"`
}
