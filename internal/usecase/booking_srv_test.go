package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"parking-booking/internal/data/entity"
	"parking-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLot(ownerID uuid.UUID, available int) *entity.ParkingLot {
	return &entity.ParkingLot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:           "Central Parking",
		Address:        "Jl. Sudirman No. 1",
		Latitude:       "-6.2088",
		Longitude:      "106.8456",
		TotalSpots:     10,
		AvailableSpots: available,
		PricePerHour:   20000,
		OpeningHour:    "06:00",
		ClosingHour:    "22:00",
		OwnerID:        ownerID,
	}
}

// testLayouts: satu layout, 2 baris x 5 slot, semua available
func testLayouts(lotID uuid.UUID) []*entity.ParkingLayout {
	rows := make([]entity.LayoutRow, 2)
	for i, prefix := range []string{"A", "B"} {
		slots := make([]entity.LayoutSlot, 5)
		for j := range slots {
			slots[j] = entity.LayoutSlot{
				ID:     fmt.Sprintf("%s%d", prefix, j+1),
				Status: entity.SpaceStatusAvailable,
			}
		}
		rows[i] = entity.LayoutRow{Prefix: prefix, Slots: slots}
	}

	return []*entity.ParkingLayout{
		{
			ID:           uuid.New(),
			ParkingLotID: lotID,
			Name:         "Ground Floor",
			Rows:         rows,
			CreatedAt:    time.Now(),
		},
	}
}

func validBookingRequest(lotID uuid.UUID, spaceID string) *request.CreateBookingRequest {
	start := time.Now().Add(time.Hour)
	return &request.CreateBookingRequest{
		ParkingLotID:   lotID.String(),
		ParkingSpaceID: spaceID,
		StartTime:      start,
		EndTime:        start.Add(3 * time.Hour),
		PriceType:      "hourly",
		Duration:       3,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	ownerID := uuid.New()
	userID := uuid.New()
	lot := testLot(ownerID, 10)
	layouts := testLayouts(lot.ID)

	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)
	mocks.Booking.On("Create", mock.Anything, mock.Anything).Return(nil)
	mocks.Layout.On("UpdateRows", mock.Anything, layouts[0].ID, mock.Anything).Return(nil)
	mocks.ParkingLot.On("UpdateAvailableSpots", mock.Anything, lot.ID, 9).Return(nil)

	req := validBookingRequest(lot.ID, "0_0_2")
	resp, err := svc.CreateBooking(context.Background(), userID.String(), req)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, "0_0_2", resp.ParkingSpaceID)
	assert.Equal(t, "A3", resp.SpotNumber)
	assert.Equal(t, 60000, resp.TotalPrice) // 20000 x 3 jam
	assert.NotEmpty(t, resp.BookingCode)

	// Slot tereservasi dan agregat dihitung ulang dari layout
	assert.Equal(t, entity.SpaceStatusReserved, layouts[0].Rows[0].Slots[2].Status)
	mocks.ParkingLot.AssertCalled(t, "UpdateAvailableSpots", mock.Anything, lot.ID, 9)
}

func TestCreateBooking_SpotNotAvailable(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	lot := testLot(uuid.New(), 9)
	layouts := testLayouts(lot.ID)
	layouts[0].Rows[0].Slots[2].Status = entity.SpaceStatusReserved

	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)

	req := validBookingRequest(lot.ID, "0_0_2")
	resp, err := svc.CreateBooking(context.Background(), uuid.New().String(), req)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "not available")

	// Conflict tidak boleh menulis apa pun
	mocks.Booking.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mocks.Layout.AssertNotCalled(t, "UpdateRows", mock.Anything, mock.Anything, mock.Anything)
	mocks.ParkingLot.AssertNotCalled(t, "UpdateAvailableSpots", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_OccupiedSpotNotBookable(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	lot := testLot(uuid.New(), 9)
	layouts := testLayouts(lot.ID)
	layouts[0].Rows[1].Slots[0].Status = entity.SpaceStatusOccupied

	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)

	req := validBookingRequest(lot.ID, "0_1_0")
	_, err := svc.CreateBooking(context.Background(), uuid.New().String(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
	mocks.Booking.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_LotNotFound(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	lotID := uuid.New()
	mocks.ParkingLot.On("FindByID", mock.Anything, lotID).Return(nil, nil)

	req := validBookingRequest(lotID, "0_0_0")
	_, err := svc.CreateBooking(context.Background(), uuid.New().String(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateBooking_InvalidSpaceID(t *testing.T) {
	_, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	req := validBookingRequest(uuid.New(), "0_0")
	_, err := svc.CreateBooking(context.Background(), uuid.New().String(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestCreateBooking_SpaceRefOutOfRange(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	lot := testLot(uuid.New(), 10)
	layouts := testLayouts(lot.ID)

	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)

	// Row 7 tidak ada
	req := validBookingRequest(lot.ID, "0_7_0")
	_, err := svc.CreateBooking(context.Background(), uuid.New().String(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	mocks.Booking.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_RollbackOnSlotWriteFailure(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	lot := testLot(uuid.New(), 10)
	layouts := testLayouts(lot.ID)

	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)
	mocks.Booking.On("Create", mock.Anything, mock.Anything).Return(nil)
	mocks.Layout.On("UpdateRows", mock.Anything, layouts[0].ID, mock.Anything).Return(errors.New("db down"))
	mocks.Booking.On("Delete", mock.Anything, mock.Anything).Return(nil)

	req := validBookingRequest(lot.ID, "0_0_0")
	_, err := svc.CreateBooking(context.Background(), uuid.New().String(), req)

	require.Error(t, err)
	// Booking yang sudah tertulis harus dihapus lagi
	mocks.Booking.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}

func testBooking(userID, lotID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	start := time.Now().Add(time.Hour)
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		BookingCode:    "PARK-20260831-120000-0001",
		UserID:         userID,
		ParkingLotID:   lotID,
		ParkingSpaceID: "0_0_2",
		StartTime:      start,
		EndTime:        start.Add(3 * time.Hour),
		Status:         status,
		TotalPrice:     60000,
	}
}

func TestUpdateBookingStatus_UserCancelsOwnBooking(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	ownerID := uuid.New()
	userID := uuid.New()
	lot := testLot(ownerID, 9)
	layouts := testLayouts(lot.ID)
	layouts[0].Rows[0].Slots[2].Status = entity.SpaceStatusReserved
	booking := testBooking(userID, lot.ID, entity.BookingStatusPending)

	mocks.Booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Booking.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusCancelled).Return(nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)
	mocks.Layout.On("UpdateRows", mock.Anything, layouts[0].ID, mock.Anything).Return(nil)
	mocks.ParkingLot.On("UpdateAvailableSpots", mock.Anything, lot.ID, 10).Return(nil)

	resp, err := svc.UpdateBookingStatus(context.Background(), userID.String(), booking.ID.String(),
		&request.UpdateBookingStatusRequest{Status: "cancelled"})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)

	// Cancel membebaskan slot dan mengembalikan agregat
	assert.Equal(t, entity.SpaceStatusAvailable, layouts[0].Rows[0].Slots[2].Status)
	mocks.ParkingLot.AssertCalled(t, "UpdateAvailableSpots", mock.Anything, lot.ID, 10)
}

func TestUpdateBookingStatus_CancelRevertedWhenSlotReleaseFails(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	userID := uuid.New()
	lot := testLot(uuid.New(), 9)
	layouts := testLayouts(lot.ID)
	layouts[0].Rows[0].Slots[2].Status = entity.SpaceStatusReserved
	booking := testBooking(userID, lot.ID, entity.BookingStatusPending)

	mocks.Booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Booking.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusCancelled).Return(nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)
	mocks.Layout.On("UpdateRows", mock.Anything, layouts[0].ID, mock.Anything).Return(errors.New("db down"))
	mocks.Booking.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusPending).Return(nil)

	resp, err := svc.UpdateBookingStatus(context.Background(), userID.String(), booking.ID.String(),
		&request.UpdateBookingStatusRequest{Status: "cancelled"})

	require.Error(t, err)
	assert.Nil(t, resp)

	// Slot gagal dibebaskan, jadi status booking harus dikembalikan
	mocks.Booking.AssertCalled(t, "UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusPending)
	mocks.ParkingLot.AssertNotCalled(t, "UpdateAvailableSpots", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBookingStatus_UserCannotConfirm(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	userID := uuid.New()
	lot := testLot(uuid.New(), 9)
	booking := testBooking(userID, lot.ID, entity.BookingStatusPending)

	mocks.Booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), userID.String(), booking.ID.String(),
		&request.UpdateBookingStatusRequest{Status: "confirmed"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "can only cancel")
	mocks.Booking.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBookingStatus_OwnerConfirms(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	ownerID := uuid.New()
	lot := testLot(ownerID, 9)
	booking := testBooking(uuid.New(), lot.ID, entity.BookingStatusPending)

	mocks.Booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Booking.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusConfirmed).Return(nil)

	resp, err := svc.UpdateBookingStatus(context.Background(), ownerID.String(), booking.ID.String(),
		&request.UpdateBookingStatusRequest{Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)

	// Confirm bukan cancel, slot tidak disentuh
	mocks.Layout.AssertNotCalled(t, "UpdateRows", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBookingStatus_StrangerForbidden(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	lot := testLot(uuid.New(), 9)
	booking := testBooking(uuid.New(), lot.ID, entity.BookingStatusPending)

	mocks.Booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), uuid.New().String(), booking.ID.String(),
		&request.UpdateBookingStatusRequest{Status: "cancelled"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authorized")
	mocks.Booking.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBookingStatus_TerminalStateRejected(t *testing.T) {
	for _, status := range []entity.BookingStatus{entity.BookingStatusCompleted, entity.BookingStatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			mocks, repo := newMockRepos()
			svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

			ownerID := uuid.New()
			lot := testLot(ownerID, 9)
			booking := testBooking(uuid.New(), lot.ID, status)

			mocks.Booking.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
			mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)

			_, err := svc.UpdateBookingStatus(context.Background(), ownerID.String(), booking.ID.String(),
				&request.UpdateBookingStatusRequest{Status: "confirmed"})

			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot")
			mocks.Booking.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateBookingStatus_NotFound(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	bookingID := uuid.New()
	mocks.Booking.On("FindByID", mock.Anything, bookingID).Return(nil, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), uuid.New().String(), bookingID.String(),
		&request.UpdateBookingStatusRequest{Status: "cancelled"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetUserBookings_Paginated(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	userID := uuid.New()
	lot := testLot(uuid.New(), 9)
	layouts := testLayouts(lot.ID)
	bookings := []*entity.Booking{
		testBooking(userID, lot.ID, entity.BookingStatusPending),
		testBooking(userID, lot.ID, entity.BookingStatusConfirmed),
	}

	mocks.Booking.On("FindByUserID", mock.Anything, userID, 10, 0).Return(bookings, nil)
	mocks.Booking.On("CountByUserID", mock.Anything, userID).Return(int64(12), nil)
	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)

	resp, err := svc.GetUserBookings(context.Background(), userID.String(),
		&request.PaginatedRequest{Page: 1, PerPage: 10})

	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(12), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.Equal(t, "Central Parking", resp.Data[0].ParkingLotName)
	assert.Equal(t, "A3", resp.Data[0].SpotNumber)
}

// Lifecycle: 10 slot, 2 occupied saat init -> 8 available. Booking satu slot
// -> 7. Cancel booking itu -> kembali 8 dan slot available lagi.
func TestBookingLifecycle_AggregateFollowsSlots(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	ownerID := uuid.New()
	userID := uuid.New()
	lot := testLot(ownerID, 8)
	layouts := testLayouts(lot.ID)
	layouts[0].Rows[0].Slots[0].Status = entity.SpaceStatusOccupied
	layouts[0].Rows[1].Slots[4].Status = entity.SpaceStatusOccupied
	require.Equal(t, 8, entity.CountAvailableSlots(layouts))

	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)
	mocks.Booking.On("Create", mock.Anything, mock.Anything).Return(nil)
	mocks.Layout.On("UpdateRows", mock.Anything, layouts[0].ID, mock.Anything).Return(nil)
	mocks.ParkingLot.On("UpdateAvailableSpots", mock.Anything, lot.ID, mock.Anything).Return(nil)

	resp, err := svc.CreateBooking(context.Background(), userID.String(), validBookingRequest(lot.ID, "0_0_1"))
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, 7, entity.CountAvailableSlots(layouts))
	mocks.ParkingLot.AssertCalled(t, "UpdateAvailableSpots", mock.Anything, lot.ID, 7)

	bookingID := uuid.MustParse(resp.ID)
	created := &entity.Booking{
		Base:           entity.Base{ID: bookingID},
		BookingCode:    resp.BookingCode,
		UserID:         userID,
		ParkingLotID:   lot.ID,
		ParkingSpaceID: resp.ParkingSpaceID,
		Status:         entity.BookingStatusPending,
	}
	mocks.Booking.On("FindByID", mock.Anything, bookingID).Return(created, nil)
	mocks.Booking.On("UpdateStatus", mock.Anything, bookingID, entity.BookingStatusCancelled).Return(nil)

	cancelResp, err := svc.UpdateBookingStatus(context.Background(), userID.String(), resp.ID,
		&request.UpdateBookingStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, cancelResp.Status)
	assert.Equal(t, entity.SpaceStatusAvailable, layouts[0].Rows[0].Slots[1].Status)
	assert.Equal(t, 8, entity.CountAvailableSlots(layouts))
	mocks.ParkingLot.AssertCalled(t, "UpdateAvailableSpots", mock.Anything, lot.ID, 8)
}

func TestGetLotBookings_OwnerOnly(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewBookingService(repo, newLotLocker(), zap.NewNop())

	lot := testLot(uuid.New(), 9)
	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)

	_, err := svc.GetLotBookings(context.Background(), uuid.New().String(), lot.ID.String())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authorized")
	mocks.Booking.AssertNotCalled(t, "FindByLotID", mock.Anything, mock.Anything)
}
