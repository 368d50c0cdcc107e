package wire

import (
	"parking-booking/internal/adaptor"
	"parking-booking/internal/data/repository"
	"parking-booking/pkg/middleware"
	"parking-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	// Group routes that require authentication
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Create new booking (authenticated users only)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// PATCH /api/bookings/{id}/status - Status transition
		// (authorization dicek di service: user cancel-only, owner bebas)
		r.Patch("/api/bookings/{id}/status", bookingHandler.UpdateBookingStatus)
	})

	// ==================== OWNER ROUTES ====================
	r.Route("/api/owner/parking-lots/{id}/bookings", func(r chi.Router) {
		// Require both authentication AND owner role
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Owner(log))

		// GET /api/owner/parking-lots/{id}/bookings - Bookings for owned lot
		r.Get("/", bookingHandler.GetLotBookings)
	})
}
