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

type LayoutRepository interface {
	Create(ctx context.Context, layout *entity.ParkingLayout) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingLayout, error)

	// FindByLotID mengembalikan layout terurut created_at; urutan ini yang
	// dipakai SpaceRef untuk addressing slot.
	FindByLotID(ctx context.Context, lotID uuid.UUID) ([]*entity.ParkingLayout, error)

	UpdateRows(ctx context.Context, layoutID uuid.UUID, rows []entity.LayoutRow) error
	UpdateName(ctx context.Context, layoutID uuid.UUID, name string) error
}

type layoutRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLayoutRepository(db database.PgxIface, log *zap.Logger) LayoutRepository {
	return &layoutRepository{
		db:  db,
		log: log.With(zap.String("repository", "layout")),
	}
}

func (r *layoutRepository) Create(ctx context.Context, layout *entity.ParkingLayout) error {
	query := `
		INSERT INTO parking_layouts (id, parking_lot_id, name, rows, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		layout.ID,
		layout.ParkingLotID,
		layout.Name,
		layout.Rows,
		layout.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create layout",
			zap.Error(err),
			zap.String("parking_lot_id", layout.ParkingLotID.String()),
			zap.String("name", layout.Name),
		)
		return fmt.Errorf("create layout %s: %w", layout.Name, err)
	}

	return nil
}

func (r *layoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingLayout, error) {
	query := `
		SELECT id, parking_lot_id, name, rows, created_at
		FROM parking_layouts
		WHERE id = $1
	`

	var layout entity.ParkingLayout
	err := r.db.QueryRow(ctx, query, id).Scan(
		&layout.ID,
		&layout.ParkingLotID,
		&layout.Name,
		&layout.Rows,
		&layout.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find layout by ID",
			zap.Error(err),
			zap.String("layout_id", id.String()),
		)
		return nil, fmt.Errorf("find layout by ID %s: %w", id.String(), err)
	}

	return &layout, nil
}

func (r *layoutRepository) FindByLotID(ctx context.Context, lotID uuid.UUID) ([]*entity.ParkingLayout, error) {
	query := `
		SELECT id, parking_lot_id, name, rows, created_at
		FROM parking_layouts
		WHERE parking_lot_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, lotID)
	if err != nil {
		r.log.Error("Failed to find layouts by lot ID",
			zap.Error(err),
			zap.String("parking_lot_id", lotID.String()),
		)
		return nil, fmt.Errorf("find layouts by lot ID %s: %w", lotID.String(), err)
	}
	defer rows.Close()

	var layouts []*entity.ParkingLayout
	for rows.Next() {
		var layout entity.ParkingLayout
		err := rows.Scan(
			&layout.ID,
			&layout.ParkingLotID,
			&layout.Name,
			&layout.Rows,
			&layout.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan layout row", zap.Error(err))
			return nil, fmt.Errorf("scan layout row: %w", err)
		}
		layouts = append(layouts, &layout)
	}

	return layouts, nil
}

func (r *layoutRepository) UpdateRows(ctx context.Context, layoutID uuid.UUID, rows []entity.LayoutRow) error {
	query := `UPDATE parking_layouts SET rows = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, layoutID, rows)
	if err != nil {
		r.log.Error("Failed to update layout rows",
			zap.Error(err),
			zap.String("layout_id", layoutID.String()),
		)
		return fmt.Errorf("update layout %s rows: %w", layoutID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("layout %s not found", layoutID.String())
	}

	return nil
}

func (r *layoutRepository) UpdateName(ctx context.Context, layoutID uuid.UUID, name string) error {
	query := `UPDATE parking_layouts SET name = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, layoutID, name)
	if err != nil {
		r.log.Error("Failed to update layout name",
			zap.Error(err),
			zap.String("layout_id", layoutID.String()),
		)
		return fmt.Errorf("update layout %s name: %w", layoutID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("layout %s not found", layoutID.String())
	}

	return nil
}
