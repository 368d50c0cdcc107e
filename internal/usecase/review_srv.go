package usecase

import (
	"context"
	"fmt"
	"time"

	"parking-booking/internal/data/entity"
	"parking-booking/internal/data/repository"
	"parking-booking/internal/dto/request"
	"parking-booking/internal/dto/response"
	"parking-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	GetLotReviews(ctx context.Context, lotID string) ([]response.ReviewResponse, error)
	CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) GetLotReviews(ctx context.Context, lotID string) ([]response.ReviewResponse, error) {
	lotUUID, err := uuid.Parse(lotID)
	if err != nil {
		return nil, fmt.Errorf("invalid parking lot ID format %s: %w", lotID, err)
	}

	lot, err := s.repo.ParkingLot.FindByID(ctx, lotUUID)
	if err != nil || lot == nil {
		return nil, fmt.Errorf("parking lot %s not found", lotID)
	}

	reviews, err := s.repo.Review.FindByLotID(ctx, lotUUID)
	if err != nil {
		s.log.Error("Failed to get reviews", zap.Error(err), zap.String("parking_lot_id", lotID))
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review)
	}

	return reviewResponses, nil
}

func (s *reviewService) CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	lotUUID, err := uuid.Parse(req.ParkingLotID)
	if err != nil {
		return nil, fmt.Errorf("invalid parking lot ID format %s: %w", req.ParkingLotID, err)
	}

	// Validate lot exists
	lot, err := s.repo.ParkingLot.FindByID(ctx, lotUUID)
	if err != nil {
		s.log.Error("Failed to get parking lot", zap.Error(err), zap.String("parking_lot_id", req.ParkingLotID))
		return nil, fmt.Errorf("get parking lot: %w", err)
	}
	if lot == nil {
		return nil, fmt.Errorf("parking lot %s not found", req.ParkingLotID)
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:       userUUID,
		ParkingLotID: lotUUID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("parking_lot_id", req.ParkingLotID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("parking_lot_id", req.ParkingLotID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}
