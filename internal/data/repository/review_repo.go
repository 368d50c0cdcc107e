package repository

import (
	"context"
	"fmt"

	"parking-booking/internal/data/entity"
	"parking-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByLotID(ctx context.Context, lotID uuid.UUID) ([]*entity.Review, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, parking_lot_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.ParkingLotID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("parking_lot_id", review.ParkingLotID.String()),
			zap.String("user_id", review.UserID.String()),
		)
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByLotID(ctx context.Context, lotID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, user_id, parking_lot_id, rating, comment, created_at
		FROM reviews
		WHERE parking_lot_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, lotID)
	if err != nil {
		r.log.Error("Failed to find reviews by lot ID",
			zap.Error(err),
			zap.String("parking_lot_id", lotID.String()),
		)
		return nil, fmt.Errorf("find reviews by lot ID %s: %w", lotID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ParkingLotID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}
