package repository

import (
	"context"
	"fmt"

	"parking-booking/internal/data/entity"
	"parking-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ParkingLotRepository interface {
	Create(ctx context.Context, lot *entity.ParkingLot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingLot, error)
	FindAll(ctx context.Context) ([]*entity.ParkingLot, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.ParkingLot, error)
	Update(ctx context.Context, lot *entity.ParkingLot) error

	// UpdateAvailableSpots menyimpan hasil hitung ulang agregat
	UpdateAvailableSpots(ctx context.Context, lotID uuid.UUID, availableSpots int) error
}

type parkingLotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewParkingLotRepository(db database.PgxIface, log *zap.Logger) ParkingLotRepository {
	return &parkingLotRepository{
		db:  db,
		log: log.With(zap.String("repository", "parking_lot")),
	}
}

func (r *parkingLotRepository) Create(ctx context.Context, lot *entity.ParkingLot) error {
	query := `
		INSERT INTO parking_lots (id, name, address, latitude, longitude, total_spots, available_spots,
		                          price_per_hour, description, opening_hour, closing_hour, owner_id, images,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		lot.ID,
		lot.Name,
		lot.Address,
		lot.Latitude,
		lot.Longitude,
		lot.TotalSpots,
		lot.AvailableSpots,
		lot.PricePerHour,
		lot.Description,
		lot.OpeningHour,
		lot.ClosingHour,
		lot.OwnerID,
		lot.Images,
		lot.CreatedAt,
		lot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create parking lot",
			zap.Error(err),
			zap.String("name", lot.Name),
			zap.String("owner_id", lot.OwnerID.String()),
		)
		return fmt.Errorf("create parking lot %s: %w", lot.Name, err)
	}

	return nil
}

func (r *parkingLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingLot, error) {
	query := `
		SELECT id, name, address, latitude, longitude, total_spots, available_spots,
		       price_per_hour, description, opening_hour, closing_hour, owner_id, images,
		       created_at, updated_at
		FROM parking_lots
		WHERE id = $1
	`

	var lot entity.ParkingLot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lot.ID,
		&lot.Name,
		&lot.Address,
		&lot.Latitude,
		&lot.Longitude,
		&lot.TotalSpots,
		&lot.AvailableSpots,
		&lot.PricePerHour,
		&lot.Description,
		&lot.OpeningHour,
		&lot.ClosingHour,
		&lot.OwnerID,
		&lot.Images,
		&lot.CreatedAt,
		&lot.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find parking lot by ID",
			zap.Error(err),
			zap.String("parking_lot_id", id.String()),
		)
		return nil, fmt.Errorf("find parking lot by ID %s: %w", id.String(), err)
	}

	return &lot, nil
}

func (r *parkingLotRepository) FindAll(ctx context.Context) ([]*entity.ParkingLot, error) {
	query := `
		SELECT id, name, address, latitude, longitude, total_spots, available_spots,
		       price_per_hour, description, opening_hour, closing_hour, owner_id, images,
		       created_at, updated_at
		FROM parking_lots
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find parking lots", zap.Error(err))
		return nil, fmt.Errorf("find parking lots: %w", err)
	}
	defer rows.Close()

	return scanParkingLots(rows, r.log)
}

func (r *parkingLotRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.ParkingLot, error) {
	query := `
		SELECT id, name, address, latitude, longitude, total_spots, available_spots,
		       price_per_hour, description, opening_hour, closing_hour, owner_id, images,
		       created_at, updated_at
		FROM parking_lots
		WHERE owner_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to find parking lots by owner",
			zap.Error(err),
			zap.String("owner_id", ownerID.String()),
		)
		return nil, fmt.Errorf("find parking lots by owner %s: %w", ownerID.String(), err)
	}
	defer rows.Close()

	return scanParkingLots(rows, r.log)
}

func (r *parkingLotRepository) Update(ctx context.Context, lot *entity.ParkingLot) error {
	query := `
		UPDATE parking_lots
		SET name = $2, address = $3, latitude = $4, longitude = $5, total_spots = $6,
		    available_spots = $7, price_per_hour = $8, description = $9, opening_hour = $10,
		    closing_hour = $11, images = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		lot.ID,
		lot.Name,
		lot.Address,
		lot.Latitude,
		lot.Longitude,
		lot.TotalSpots,
		lot.AvailableSpots,
		lot.PricePerHour,
		lot.Description,
		lot.OpeningHour,
		lot.ClosingHour,
		lot.Images,
		lot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update parking lot",
			zap.Error(err),
			zap.String("parking_lot_id", lot.ID.String()),
		)
		return fmt.Errorf("update parking lot %s: %w", lot.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("parking lot %s not found", lot.ID.String())
	}

	return nil
}

func (r *parkingLotRepository) UpdateAvailableSpots(ctx context.Context, lotID uuid.UUID, availableSpots int) error {
	query := `UPDATE parking_lots SET available_spots = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, lotID, availableSpots)
	if err != nil {
		r.log.Error("Failed to update available spots",
			zap.Error(err),
			zap.String("parking_lot_id", lotID.String()),
			zap.Int("available_spots", availableSpots),
		)
		return fmt.Errorf("update available spots for lot %s: %w", lotID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("parking lot %s not found", lotID.String())
	}

	return nil
}

func scanParkingLots(rows pgx.Rows, log *zap.Logger) ([]*entity.ParkingLot, error) {
	var lots []*entity.ParkingLot
	for rows.Next() {
		var lot entity.ParkingLot
		err := rows.Scan(
			&lot.ID,
			&lot.Name,
			&lot.Address,
			&lot.Latitude,
			&lot.Longitude,
			&lot.TotalSpots,
			&lot.AvailableSpots,
			&lot.PricePerHour,
			&lot.Description,
			&lot.OpeningHour,
			&lot.ClosingHour,
			&lot.OwnerID,
			&lot.Images,
			&lot.CreatedAt,
			&lot.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan parking lot row", zap.Error(err))
			return nil, fmt.Errorf("scan parking lot row: %w", err)
		}
		lots = append(lots, &lot)
	}

	return lots, nil
}
