package repository

import (
	"parking-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	ParkingLot ParkingLotRepository
	Layout     LayoutRepository
	Booking    BookingRepository
	Review     ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		ParkingLot: NewParkingLotRepository(db, log),
		Layout:     NewLayoutRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		Review:     NewReviewRepository(db, log),
	}
}
