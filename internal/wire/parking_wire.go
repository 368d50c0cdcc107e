package wire

import (
	"parking-booking/internal/adaptor"
	"parking-booking/internal/data/repository"
	"parking-booking/pkg/middleware"
	"parking-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireParking(
	r chi.Router,
	parkingHandler *adaptor.ParkingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Discovery: list lot, detail, layout, dan flattened spaces (tanpa auth)
	r.Get("/api/parking-lots", parkingHandler.GetParkingLots)
	r.Get("/api/parking-lots/{id}", parkingHandler.GetParkingLot)
	r.Get("/api/parking-lots/{id}/layouts", parkingHandler.GetLotLayouts)
	r.Get("/api/layouts/{id}", parkingHandler.GetLayout)
	r.Get("/api/parking-lots/{id}/spaces", parkingHandler.GetLotSpaces)

	// ==================== OWNER ROUTES ====================
	r.Route("/api/owner", func(r chi.Router) {
		// Require both authentication AND owner role
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Owner(log))

		// Parking lot management
		r.Get("/parking-lots", parkingHandler.GetOwnerParkingLots)
		r.Post("/parking-lots", parkingHandler.CreateParkingLot)
		r.Put("/parking-lots/{id}", parkingHandler.UpdateParkingLot)

		// Manual spot status override (occupied/available/reserved)
		r.Patch("/parking-lots/{id}/spaces", parkingHandler.UpdateSpaceStatus)

		// Layout management
		r.Post("/layouts", parkingHandler.CreateLayout)
		r.Put("/layouts/{id}", parkingHandler.UpdateLayout)
	})
}
