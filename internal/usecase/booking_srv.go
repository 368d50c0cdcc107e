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

type BookingService interface {
	// Public endpoints (butuh auth)
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBookingStatus(ctx context.Context, actorID, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)

	// Owner endpoints
	GetLotBookings(ctx context.Context, ownerID, lotID string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo  *repository.Repository
	locks *lotLocker
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, locks *lotLocker, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		locks: locks,
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Parse IDs
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	lotID, err := uuid.Parse(req.ParkingLotID)
	if err != nil {
		return nil, fmt.Errorf("invalid parking lot ID format %s: %w", req.ParkingLotID, err)
	}

	ref, err := entity.ParseSpaceRef(req.ParkingSpaceID)
	if err != nil {
		return nil, fmt.Errorf("invalid parking space ID %s: %w", req.ParkingSpaceID, err)
	}

	// Serialize seluruh critical section per lot: cek status slot, tulis
	// booking, ubah slot, hitung ulang agregat
	unlock := s.locks.Lock(lotID)
	defer unlock()

	// Validate lot exists
	lot, err := s.repo.ParkingLot.FindByID(ctx, lotID)
	if err != nil {
		s.log.Error("Failed to get parking lot", zap.Error(err), zap.String("parking_lot_id", req.ParkingLotID))
		return nil, fmt.Errorf("get parking lot: %w", err)
	}
	if lot == nil {
		return nil, fmt.Errorf("parking lot %s not found", req.ParkingLotID)
	}

	// Resolve slot dari layout lot
	layouts, err := s.repo.Layout.FindByLotID(ctx, lotID)
	if err != nil {
		s.log.Error("Failed to get layouts", zap.Error(err), zap.String("parking_lot_id", req.ParkingLotID))
		return nil, fmt.Errorf("get layouts: %w", err)
	}

	layout, slot, err := entity.ResolveSlot(layouts, ref)
	if err != nil {
		return nil, fmt.Errorf("space %s: %w", req.ParkingSpaceID, err)
	}

	// At-most-one active occupancy per slot: hanya "available" yang bisa dibooking
	if slot.Status != entity.SpaceStatusAvailable {
		return nil, fmt.Errorf("spot %s is not available", slot.ID)
	}

	// Calculate total price server-side
	totalPrice, err := CalculateTotalPrice(lot.PricePerHour, PriceType(req.PriceType), req.Duration)
	if err != nil {
		return nil, fmt.Errorf("calculate price: %w", err)
	}

	// Create booking entity
	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingCode:    utils.GenerateBookingCode(),
		UserID:         userUUID,
		ParkingLotID:   lotID,
		ParkingSpaceID: ref.String(),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Status:         entity.BookingStatusPending,
		TotalPrice:     totalPrice,
	}

	// Save booking
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("parking_lot_id", req.ParkingLotID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Flip slot status ke reserved
	slot.Status = entity.SpaceStatusReserved
	if err := s.repo.Layout.UpdateRows(ctx, layout.ID, layout.Rows); err != nil {
		// Rollback: hapus booking supaya tidak ada partial write
		s.repo.Booking.Delete(ctx, booking.ID)
		return nil, fmt.Errorf("update slot status: %w", err)
	}

	// Hitung ulang agregat available_spots di critical section yang sama
	available := entity.CountAvailableSlots(layouts)
	if err := s.repo.ParkingLot.UpdateAvailableSpots(ctx, lotID, available); err != nil {
		// Rollback: kembalikan slot dan hapus booking
		slot.Status = entity.SpaceStatusAvailable
		s.repo.Layout.UpdateRows(ctx, layout.ID, layout.Rows)
		s.repo.Booking.Delete(ctx, booking.ID)
		return nil, fmt.Errorf("update available spots: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_code", booking.BookingCode),
		zap.String("user_id", userID),
		zap.String("parking_space_id", booking.ParkingSpaceID),
		zap.String("spot_number", slot.ID),
		zap.Int("total_price", totalPrice),
		zap.Int("available_spots", available),
	)

	resp := response.BookingToResponse(booking)
	resp.ParkingLotName = lot.Name
	resp.SpotNumber = slot.ID
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	// Parse user ID
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	limit := req.Limit()
	offset := req.Offset()

	// Get bookings
	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	// Get total count
	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	// Convert to response
	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = s.buildBookingResponse(ctx, booking)
	}

	s.log.Info("User bookings retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetLotBookings(ctx context.Context, ownerID, lotID string) ([]response.BookingResponse, error) {
	// Parse IDs
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner ID format %s: %w", ownerID, err)
	}

	lotUUID, err := uuid.Parse(lotID)
	if err != nil {
		return nil, fmt.Errorf("invalid parking lot ID format %s: %w", lotID, err)
	}

	// Validate lot exists and belongs to owner
	lot, err := s.repo.ParkingLot.FindByID(ctx, lotUUID)
	if err != nil || lot == nil {
		return nil, fmt.Errorf("parking lot %s not found", lotID)
	}

	if lot.OwnerID != ownerUUID {
		return nil, fmt.Errorf("not authorized to view bookings for this parking lot")
	}

	bookings, err := s.repo.Booking.FindByLotID(ctx, lotUUID)
	if err != nil {
		s.log.Error("Failed to get lot bookings",
			zap.Error(err),
			zap.String("parking_lot_id", lotID),
		)
		return nil, fmt.Errorf("get lot bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := response.BookingToResponse(booking)
		resp.ParkingLotName = lot.Name
		bookingResponses[i] = resp
	}

	return bookingResponses, nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, actorID, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	newStatus := entity.BookingStatus(req.Status)
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("invalid booking status %q", req.Status)
	}

	// Parse IDs
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid actor ID format %s: %w", actorID, err)
	}

	bookingUUID, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	// Transisi cancelled menyentuh slot, jadi seluruh transisi diserialisasi per lot
	unlock := s.locks.Lock(booking.ParkingLotID)
	defer unlock()

	// Terminal states: tidak ada transisi keluar dari completed/cancelled
	if booking.Status.IsTerminal() {
		return nil, fmt.Errorf("booking status is %s, cannot change", booking.Status)
	}

	lot, err := s.repo.ParkingLot.FindByID(ctx, booking.ParkingLotID)
	if err != nil || lot == nil {
		return nil, fmt.Errorf("parking lot %s not found", booking.ParkingLotID.String())
	}

	// Authorization: user pemilik booking hanya boleh cancel, owner lot boleh semua
	if actorUUID == booking.UserID {
		if newStatus != entity.BookingStatusCancelled {
			return nil, fmt.Errorf("users can only cancel their own bookings")
		}
	} else if lot.OwnerID != actorUUID {
		return nil, fmt.Errorf("not authorized to update this booking")
	}

	// Update booking status
	if err := s.repo.Booking.UpdateStatus(ctx, bookingUUID, newStatus); err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("status", string(newStatus)),
		)
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	// Cancellation membebaskan slot dan memperbarui agregat. Kalau gagal,
	// status booking dikembalikan supaya cancel dan pembebasan slot selalu
	// jalan berdua atau tidak sama sekali.
	if newStatus == entity.BookingStatusCancelled {
		if err := s.releaseBookedSlot(ctx, booking); err != nil {
			s.log.Error("Failed to release slot after cancellation",
				zap.Error(err),
				zap.String("booking_id", bookingID),
				zap.String("parking_space_id", booking.ParkingSpaceID),
			)
			// Rollback: kembalikan status booking sebelumnya
			if rbErr := s.repo.Booking.UpdateStatus(ctx, bookingUUID, booking.Status); rbErr != nil {
				s.log.Error("Failed to revert booking status",
					zap.Error(rbErr),
					zap.String("booking_id", bookingID),
					zap.String("status", string(booking.Status)),
				)
			}
			return nil, fmt.Errorf("release slot: %w", err)
		}
	}

	booking.Status = newStatus
	booking.UpdatedAt = time.Now()

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("booking_code", booking.BookingCode),
		zap.String("status", string(newStatus)),
		zap.String("actor_id", actorID),
	)

	resp := response.BookingToResponse(booking)
	resp.ParkingLotName = lot.Name
	return &resp, nil
}

// ==================== HELPER METHODS ====================

// releaseBookedSlot mengembalikan slot booking ke available dan menghitung
// ulang agregat. Harus dipanggil di dalam lock lot.
func (s *bookingService) releaseBookedSlot(ctx context.Context, booking *entity.Booking) error {
	ref, err := entity.ParseSpaceRef(booking.ParkingSpaceID)
	if err != nil {
		return fmt.Errorf("parse space ref %s: %w", booking.ParkingSpaceID, err)
	}

	layouts, err := s.repo.Layout.FindByLotID(ctx, booking.ParkingLotID)
	if err != nil {
		return fmt.Errorf("get layouts: %w", err)
	}

	layout, slot, err := entity.ResolveSlot(layouts, ref)
	if err != nil {
		return fmt.Errorf("resolve slot: %w", err)
	}

	slot.Status = entity.SpaceStatusAvailable
	if err := s.repo.Layout.UpdateRows(ctx, layout.ID, layout.Rows); err != nil {
		return fmt.Errorf("update slot status: %w", err)
	}

	available := entity.CountAvailableSlots(layouts)
	if err := s.repo.ParkingLot.UpdateAvailableSpots(ctx, booking.ParkingLotID, available); err != nil {
		return fmt.Errorf("update available spots: %w", err)
	}

	s.log.Debug("Slot released",
		zap.String("parking_space_id", booking.ParkingSpaceID),
		zap.String("spot_number", slot.ID),
		zap.Int("available_spots", available),
	)

	return nil
}

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking) response.BookingResponse {
	resp := response.BookingToResponse(booking)

	// Get lot name
	lot, _ := s.repo.ParkingLot.FindByID(ctx, booking.ParkingLotID)
	if lot != nil {
		resp.ParkingLotName = lot.Name
	}

	// Get spot number dari layout
	if ref, err := entity.ParseSpaceRef(booking.ParkingSpaceID); err == nil {
		layouts, _ := s.repo.Layout.FindByLotID(ctx, booking.ParkingLotID)
		if _, slot, err := entity.ResolveSlot(layouts, ref); err == nil {
			resp.SpotNumber = slot.ID
		}
	}

	return resp
}
