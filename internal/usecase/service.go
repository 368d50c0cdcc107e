package usecase

import (
	"parking-booking/internal/data/repository"
	"parking-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service menggabungkan semua service untuk dependency injection
type Service struct {
	Auth    AuthService
	Parking ParkingService
	Booking BookingService
	Review  ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	// Satu locker dipakai bersama: mutasi slot dari booking dan dari
	// manajemen layout harus saling serialize per lot
	locks := newLotLocker()

	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Parking: NewParkingService(repo, locks, log),
		Booking: NewBookingService(repo, locks, log),
		Review:  NewReviewService(repo, log),
	}
}
