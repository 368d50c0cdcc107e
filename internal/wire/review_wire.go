package wire

import (
	"parking-booking/internal/adaptor"
	"parking-booking/internal/data/repository"
	"parking-booking/pkg/middleware"
	"parking-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/parking-lots/{id}/reviews", reviewHandler.GetLotReviews)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).Post("/api/reviews", reviewHandler.CreateReview)
}
