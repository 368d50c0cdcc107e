package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"parking-booking/internal/data/entity"
	"parking-booking/internal/data/repository"
	"parking-booking/internal/dto/request"
	"parking-booking/internal/dto/response"
	"parking-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ParkingService interface {
	// Public endpoints
	GetParkingLots(ctx context.Context) ([]response.ParkingLotResponse, error)
	GetParkingLot(ctx context.Context, lotID string) (*response.ParkingLotResponse, error)
	GetLotLayouts(ctx context.Context, lotID string) ([]response.LayoutResponse, error)
	GetLayout(ctx context.Context, layoutID string) (*response.LayoutResponse, error)
	GetLotSpaces(ctx context.Context, lotID string) ([]response.SpaceViewResponse, error)

	// Owner endpoints
	CreateParkingLot(ctx context.Context, ownerID string, req *request.CreateParkingLotRequest) (*response.ParkingLotResponse, error)
	UpdateParkingLot(ctx context.Context, ownerID, lotID string, req *request.UpdateParkingLotRequest) (*response.ParkingLotResponse, error)
	GetOwnerParkingLots(ctx context.Context, ownerID string) ([]response.ParkingLotResponse, error)
	CreateLayout(ctx context.Context, ownerID string, req *request.CreateLayoutRequest) (*response.LayoutResponse, error)
	UpdateLayout(ctx context.Context, ownerID, layoutID string, req *request.UpdateLayoutRequest) (*response.LayoutResponse, error)
	UpdateSpaceStatus(ctx context.Context, ownerID, lotID string, req *request.UpdateSpaceStatusRequest) (*response.SpaceViewResponse, error)
}

type parkingService struct {
	repo  *repository.Repository
	locks *lotLocker
	log   *zap.Logger
}

func NewParkingService(repo *repository.Repository, locks *lotLocker, log *zap.Logger) ParkingService {
	return &parkingService{
		repo:  repo,
		locks: locks,
		log:   log.With(zap.String("service", "parking")),
	}
}

func (s *parkingService) GetParkingLots(ctx context.Context) ([]response.ParkingLotResponse, error) {
	lots, err := s.repo.ParkingLot.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get parking lots", zap.Error(err))
		return nil, fmt.Errorf("get parking lots: %w", err)
	}

	lotResponses := make([]response.ParkingLotResponse, len(lots))
	for i, lot := range lots {
		lotResponses[i] = response.ParkingLotToResponse(lot)
	}

	s.log.Info("Parking lots retrieved", zap.Int("count", len(lots)))
	return lotResponses, nil
}

func (s *parkingService) GetParkingLot(ctx context.Context, lotID string) (*response.ParkingLotResponse, error) {
	lotUUID, err := uuid.Parse(lotID)
	if err != nil {
		return nil, fmt.Errorf("invalid parking lot ID format %s: %w", lotID, err)
	}

	lot, err := s.repo.ParkingLot.FindByID(ctx, lotUUID)
	if err != nil {
		s.log.Error("Failed to get parking lot", zap.Error(err), zap.String("parking_lot_id", lotID))
		return nil, fmt.Errorf("get parking lot: %w", err)
	}
	if lot == nil {
		return nil, fmt.Errorf("parking lot %s not found", lotID)
	}

	resp := response.ParkingLotToResponse(lot)
	return &resp, nil
}

func (s *parkingService) GetOwnerParkingLots(ctx context.Context, ownerID string) ([]response.ParkingLotResponse, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID format %s: %w", ownerID, err)
	}

	lots, err := s.repo.ParkingLot.FindByOwnerID(ctx, ownerUUID)
	if err != nil {
		s.log.Error("Failed to get owner parking lots", zap.Error(err), zap.String("owner_id", ownerID))
		return nil, fmt.Errorf("get owner parking lots: %w", err)
	}

	lotResponses := make([]response.ParkingLotResponse, len(lots))
	for i, lot := range lots {
		lotResponses[i] = response.ParkingLotToResponse(lot)
	}

	return lotResponses, nil
}

func (s *parkingService) CreateParkingLot(ctx context.Context, ownerID string, req *request.CreateParkingLotRequest) (*response.ParkingLotResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create parking lot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID format %s: %w", ownerID, err)
	}

	// Build layout entities dari input, default status available
	layouts := make([]*entity.ParkingLayout, len(req.Layouts))
	now := time.Now()
	for i, layoutInput := range req.Layouts {
		rows, err := buildLayoutRows(layoutInput.Rows)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", layoutInput.Name, err)
		}
		layouts[i] = &entity.ParkingLayout{
			ID:   uuid.New(),
			Name: layoutInput.Name,
			Rows: rows,
			// created_at berurutan supaya urutan layout stabil saat dibaca ulang
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
	}

	// Total & available spots dihitung dari layout, bukan dari input
	totalSpots := 0
	for _, layout := range layouts {
		for _, row := range layout.Rows {
			totalSpots += len(row.Slots)
		}
	}
	availableSpots := entity.CountAvailableSlots(layouts)

	lot := &entity.ParkingLot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:           req.Name,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		TotalSpots:     totalSpots,
		AvailableSpots: availableSpots,
		PricePerHour:   req.PricePerHour,
		Description:    req.Description,
		OpeningHour:    req.OpeningHour,
		ClosingHour:    req.ClosingHour,
		OwnerID:        ownerUUID,
		Images:         req.Images,
	}

	if err := s.repo.ParkingLot.Create(ctx, lot); err != nil {
		s.log.Error("Failed to create parking lot", zap.Error(err), zap.String("owner_id", ownerID))
		return nil, fmt.Errorf("create parking lot: %w", err)
	}

	for _, layout := range layouts {
		layout.ParkingLotID = lot.ID
		if err := s.repo.Layout.Create(ctx, layout); err != nil {
			s.log.Error("Failed to create layout",
				zap.Error(err),
				zap.String("parking_lot_id", lot.ID.String()),
				zap.String("layout_name", layout.Name),
			)
			return nil, fmt.Errorf("create layout %s: %w", layout.Name, err)
		}
	}

	s.log.Info("Parking lot created",
		zap.String("parking_lot_id", lot.ID.String()),
		zap.String("name", lot.Name),
		zap.String("owner_id", ownerID),
		zap.Int("total_spots", totalSpots),
		zap.Int("layouts", len(layouts)),
	)

	resp := response.ParkingLotToResponse(lot)
	return &resp, nil
}

func (s *parkingService) UpdateParkingLot(ctx context.Context, ownerID, lotID string, req *request.UpdateParkingLotRequest) (*response.ParkingLotResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update parking lot validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	lot, err := s.findOwnedLot(ctx, ownerID, lotID)
	if err != nil {
		return nil, err
	}

	// Partial update: hanya field yang dikirim
	if req.Name != nil {
		lot.Name = *req.Name
	}
	if req.Address != nil {
		lot.Address = *req.Address
	}
	if req.PricePerHour != nil {
		lot.PricePerHour = *req.PricePerHour
	}
	if req.Description != nil {
		lot.Description = req.Description
	}
	if req.OpeningHour != nil {
		lot.OpeningHour = *req.OpeningHour
	}
	if req.ClosingHour != nil {
		lot.ClosingHour = *req.ClosingHour
	}
	if req.Images != nil {
		lot.Images = req.Images
	}
	lot.UpdatedAt = time.Now()

	if err := s.repo.ParkingLot.Update(ctx, lot); err != nil {
		s.log.Error("Failed to update parking lot", zap.Error(err), zap.String("parking_lot_id", lotID))
		return nil, fmt.Errorf("update parking lot: %w", err)
	}

	s.log.Info("Parking lot updated",
		zap.String("parking_lot_id", lotID),
		zap.String("owner_id", ownerID),
	)

	resp := response.ParkingLotToResponse(lot)
	return &resp, nil
}

func (s *parkingService) GetLotLayouts(ctx context.Context, lotID string) ([]response.LayoutResponse, error) {
	lotUUID, err := uuid.Parse(lotID)
	if err != nil {
		return nil, fmt.Errorf("invalid parking lot ID format %s: %w", lotID, err)
	}

	lot, err := s.repo.ParkingLot.FindByID(ctx, lotUUID)
	if err != nil || lot == nil {
		return nil, fmt.Errorf("parking lot %s not found", lotID)
	}

	layouts, err := s.repo.Layout.FindByLotID(ctx, lotUUID)
	if err != nil {
		s.log.Error("Failed to get layouts", zap.Error(err), zap.String("parking_lot_id", lotID))
		return nil, fmt.Errorf("get layouts: %w", err)
	}

	layoutResponses := make([]response.LayoutResponse, len(layouts))
	for i, layout := range layouts {
		layoutResponses[i] = response.LayoutToResponse(layout)
	}

	return layoutResponses, nil
}

func (s *parkingService) GetLayout(ctx context.Context, layoutID string) (*response.LayoutResponse, error) {
	layoutUUID, err := uuid.Parse(layoutID)
	if err != nil {
		return nil, fmt.Errorf("invalid layout ID format %s: %w", layoutID, err)
	}

	layout, err := s.repo.Layout.FindByID(ctx, layoutUUID)
	if err != nil {
		s.log.Error("Failed to get layout", zap.Error(err), zap.String("layout_id", layoutID))
		return nil, fmt.Errorf("get layout: %w", err)
	}
	if layout == nil {
		return nil, fmt.Errorf("layout %s not found", layoutID)
	}

	resp := response.LayoutToResponse(layout)
	return &resp, nil
}

func (s *parkingService) GetLotSpaces(ctx context.Context, lotID string) ([]response.SpaceViewResponse, error) {
	lotUUID, err := uuid.Parse(lotID)
	if err != nil {
		return nil, fmt.Errorf("invalid parking lot ID format %s: %w", lotID, err)
	}

	lot, err := s.repo.ParkingLot.FindByID(ctx, lotUUID)
	if err != nil || lot == nil {
		return nil, fmt.Errorf("parking lot %s not found", lotID)
	}

	layouts, err := s.repo.Layout.FindByLotID(ctx, lotUUID)
	if err != nil {
		s.log.Error("Failed to get layouts", zap.Error(err), zap.String("parking_lot_id", lotID))
		return nil, fmt.Errorf("get layouts: %w", err)
	}

	// Flatten semua slot jadi satu list dengan composite ID
	var spaces []response.SpaceViewResponse
	for layoutIdx, layout := range layouts {
		for rowIdx, row := range layout.Rows {
			for slotIdx, slot := range row.Slots {
				ref := entity.SpaceRef{LayoutIdx: layoutIdx, RowIdx: rowIdx, SlotIdx: slotIdx}
				spaces = append(spaces, response.SpaceViewResponse{
					ID:         ref.String(),
					SpotNumber: slot.ID,
					Zone:       layout.Name,
					Status:     string(slot.Status),
				})
			}
		}
	}

	// Sort by angka di spot number: A2 sebelum A10
	sort.SliceStable(spaces, func(i, j int) bool {
		return entity.SlotNumericSuffix(spaces[i].SpotNumber) < entity.SlotNumericSuffix(spaces[j].SpotNumber)
	})

	return spaces, nil
}

func (s *parkingService) CreateLayout(ctx context.Context, ownerID string, req *request.CreateLayoutRequest) (*response.LayoutResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create layout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	lot, err := s.findOwnedLot(ctx, ownerID, req.ParkingLotID)
	if err != nil {
		return nil, err
	}

	rows, err := buildLayoutRows(req.Rows)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", req.Name, err)
	}

	// Serialize dengan booking di lot yang sama karena agregat ikut berubah
	unlock := s.locks.Lock(lot.ID)
	defer unlock()

	layout := &entity.ParkingLayout{
		ID:           uuid.New(),
		ParkingLotID: lot.ID,
		Name:         req.Name,
		Rows:         rows,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Layout.Create(ctx, layout); err != nil {
		s.log.Error("Failed to create layout", zap.Error(err), zap.String("parking_lot_id", req.ParkingLotID))
		return nil, fmt.Errorf("create layout: %w", err)
	}

	if err := s.recountLotSpots(ctx, lot.ID); err != nil {
		s.log.Warn("Failed to recount spots after layout create", zap.Error(err))
		// Continue anyway
	}

	s.log.Info("Layout created",
		zap.String("layout_id", layout.ID.String()),
		zap.String("parking_lot_id", req.ParkingLotID),
		zap.String("name", layout.Name),
	)

	resp := response.LayoutToResponse(layout)
	return &resp, nil
}

func (s *parkingService) UpdateLayout(ctx context.Context, ownerID, layoutID string, req *request.UpdateLayoutRequest) (*response.LayoutResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update layout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	layoutUUID, err := uuid.Parse(layoutID)
	if err != nil {
		return nil, fmt.Errorf("invalid layout ID format %s: %w", layoutID, err)
	}

	layout, err := s.repo.Layout.FindByID(ctx, layoutUUID)
	if err != nil {
		s.log.Error("Failed to get layout", zap.Error(err), zap.String("layout_id", layoutID))
		return nil, fmt.Errorf("get layout: %w", err)
	}
	if layout == nil {
		return nil, fmt.Errorf("layout %s not found", layoutID)
	}

	if _, err := s.findOwnedLot(ctx, ownerID, layout.ParkingLotID.String()); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(layout.ParkingLotID)
	defer unlock()

	if req.Name != nil {
		if err := s.repo.Layout.UpdateName(ctx, layoutUUID, *req.Name); err != nil {
			s.log.Error("Failed to update layout name", zap.Error(err), zap.String("layout_id", layoutID))
			return nil, fmt.Errorf("update layout name: %w", err)
		}
		layout.Name = *req.Name
	}

	if req.Rows != nil {
		rows, err := buildLayoutRows(req.Rows)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", layout.Name, err)
		}
		if err := s.repo.Layout.UpdateRows(ctx, layoutUUID, rows); err != nil {
			s.log.Error("Failed to update layout rows", zap.Error(err), zap.String("layout_id", layoutID))
			return nil, fmt.Errorf("update layout rows: %w", err)
		}
		layout.Rows = rows

		if err := s.recountLotSpots(ctx, layout.ParkingLotID); err != nil {
			s.log.Warn("Failed to recount spots after layout update", zap.Error(err))
			// Continue anyway
		}
	}

	s.log.Info("Layout updated",
		zap.String("layout_id", layoutID),
		zap.String("parking_lot_id", layout.ParkingLotID.String()),
	)

	resp := response.LayoutToResponse(layout)
	return &resp, nil
}

func (s *parkingService) UpdateSpaceStatus(ctx context.Context, ownerID, lotID string, req *request.UpdateSpaceStatusRequest) (*response.SpaceViewResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update space status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	newStatus := entity.SpaceStatus(req.Status)
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("invalid spot status %q", req.Status)
	}

	ref, err := entity.ParseSpaceRef(req.SpaceID)
	if err != nil {
		return nil, fmt.Errorf("invalid space ID %s: %w", req.SpaceID, err)
	}

	lot, err := s.findOwnedLot(ctx, ownerID, lotID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(lot.ID)
	defer unlock()

	layouts, err := s.repo.Layout.FindByLotID(ctx, lot.ID)
	if err != nil {
		s.log.Error("Failed to get layouts", zap.Error(err), zap.String("parking_lot_id", lotID))
		return nil, fmt.Errorf("get layouts: %w", err)
	}

	layout, slot, err := entity.ResolveSlot(layouts, ref)
	if err != nil {
		return nil, fmt.Errorf("space %s: %w", req.SpaceID, err)
	}

	slot.Status = newStatus
	if err := s.repo.Layout.UpdateRows(ctx, layout.ID, layout.Rows); err != nil {
		s.log.Error("Failed to update slot status",
			zap.Error(err),
			zap.String("parking_lot_id", lotID),
			zap.String("space_id", req.SpaceID),
		)
		return nil, fmt.Errorf("update slot status: %w", err)
	}

	available := entity.CountAvailableSlots(layouts)
	if err := s.repo.ParkingLot.UpdateAvailableSpots(ctx, lot.ID, available); err != nil {
		s.log.Error("Failed to update available spots", zap.Error(err), zap.String("parking_lot_id", lotID))
		return nil, fmt.Errorf("update available spots: %w", err)
	}

	s.log.Info("Spot status updated",
		zap.String("parking_lot_id", lotID),
		zap.String("space_id", req.SpaceID),
		zap.String("spot_number", slot.ID),
		zap.String("status", string(newStatus)),
		zap.Int("available_spots", available),
	)

	return &response.SpaceViewResponse{
		ID:         ref.String(),
		SpotNumber: slot.ID,
		Zone:       layout.Name,
		Status:     string(slot.Status),
	}, nil
}

// ==================== HELPER METHODS ====================

// findOwnedLot memuat lot dan memastikan lot tersebut milik owner
func (s *parkingService) findOwnedLot(ctx context.Context, ownerID, lotID string) (*entity.ParkingLot, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID format %s: %w", ownerID, err)
	}

	lotUUID, err := uuid.Parse(lotID)
	if err != nil {
		return nil, fmt.Errorf("invalid parking lot ID format %s: %w", lotID, err)
	}

	lot, err := s.repo.ParkingLot.FindByID(ctx, lotUUID)
	if err != nil {
		s.log.Error("Failed to get parking lot", zap.Error(err), zap.String("parking_lot_id", lotID))
		return nil, fmt.Errorf("get parking lot: %w", err)
	}
	if lot == nil {
		return nil, fmt.Errorf("parking lot %s not found", lotID)
	}

	if lot.OwnerID != ownerUUID {
		return nil, fmt.Errorf("not authorized to manage this parking lot")
	}

	return lot, nil
}

// buildLayoutRows mengubah row input jadi entity rows. Status kosong
// default ke available, status tak dikenal ditolak.
func buildLayoutRows(inputs []request.RowInput) ([]entity.LayoutRow, error) {
	rows := make([]entity.LayoutRow, len(inputs))
	for i, rowInput := range inputs {
		slots := make([]entity.LayoutSlot, len(rowInput.Slots))
		for j, slotInput := range rowInput.Slots {
			status := entity.SpaceStatusAvailable
			if slotInput.Status != "" {
				status = entity.SpaceStatus(slotInput.Status)
				if !status.IsValid() {
					return nil, fmt.Errorf("invalid spot status %q for slot %s", slotInput.Status, slotInput.ID)
				}
			}
			slots[j] = entity.LayoutSlot{ID: slotInput.ID, Status: status}
		}
		rows[i] = entity.LayoutRow{Prefix: rowInput.Prefix, Slots: slots}
	}
	return rows, nil
}

// recountLotSpots menghitung ulang total & available spots dari layout,
// dipanggil di dalam lock lot setelah struktur layout berubah.
func (s *parkingService) recountLotSpots(ctx context.Context, lotID uuid.UUID) error {
	layouts, err := s.repo.Layout.FindByLotID(ctx, lotID)
	if err != nil {
		return fmt.Errorf("get layouts: %w", err)
	}

	lot, err := s.repo.ParkingLot.FindByID(ctx, lotID)
	if err != nil || lot == nil {
		return fmt.Errorf("parking lot %s not found", lotID.String())
	}

	totalSpots := 0
	for _, layout := range layouts {
		for _, row := range layout.Rows {
			totalSpots += len(row.Slots)
		}
	}

	lot.TotalSpots = totalSpots
	lot.AvailableSpots = entity.CountAvailableSlots(layouts)
	lot.UpdatedAt = time.Now()

	if err := s.repo.ParkingLot.Update(ctx, lot); err != nil {
		return fmt.Errorf("update parking lot: %w", err)
	}

	return nil
}
