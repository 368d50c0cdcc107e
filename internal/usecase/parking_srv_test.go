package usecase

import (
	"context"
	"testing"

	"parking-booking/internal/data/entity"
	"parking-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validLotRequest() *request.CreateParkingLotRequest {
	return &request.CreateParkingLotRequest{
		Name:         "Central Parking",
		Address:      "Jl. Sudirman No. 1",
		Latitude:     "-6.2088",
		Longitude:    "106.8456",
		PricePerHour: 20000,
		OpeningHour:  "06:00",
		ClosingHour:  "22:00",
		Layouts: []request.LayoutInput{
			{
				Name: "Ground Floor",
				Rows: []request.RowInput{
					{Prefix: "A", Slots: []request.SlotInput{{ID: "A1"}, {ID: "A2"}, {ID: "A3"}}},
					{Prefix: "B", Slots: []request.SlotInput{{ID: "B1"}, {ID: "B2", Status: "occupied"}}},
				},
			},
		},
	}
}

func TestCreateParkingLot_ComputesSpotCounts(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	mocks.ParkingLot.On("Create", mock.Anything, mock.Anything).Return(nil)
	mocks.Layout.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateParkingLot(context.Background(), uuid.New().String(), validLotRequest())

	require.NoError(t, err)
	// 5 slot total, B2 occupied jadi hanya 4 yang available
	assert.Equal(t, 5, resp.TotalSpots)
	assert.Equal(t, 4, resp.AvailableSpots)
	mocks.Layout.AssertNumberOfCalls(t, "Create", 1)
}

func TestCreateParkingLot_RejectsUnknownSlotStatus(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	req := validLotRequest()
	req.Layouts[0].Rows[0].Slots[0].Status = "broken"

	_, err := svc.CreateParkingLot(context.Background(), uuid.New().String(), req)

	require.Error(t, err)
	mocks.ParkingLot.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateParkingLot_PartialUpdate(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	ownerID := uuid.New()
	lot := testLot(ownerID, 10)

	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.ParkingLot.On("Update", mock.Anything, lot).Return(nil)

	newPrice := 25000
	resp, err := svc.UpdateParkingLot(context.Background(), ownerID.String(), lot.ID.String(),
		&request.UpdateParkingLotRequest{PricePerHour: &newPrice})

	require.NoError(t, err)
	assert.Equal(t, 25000, resp.PricePerHour)
	assert.Equal(t, "Central Parking", resp.Name) // field lain tidak berubah
}

func TestUpdateParkingLot_NonOwnerForbidden(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	lot := testLot(uuid.New(), 10)
	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)

	name := "Hijacked"
	_, err := svc.UpdateParkingLot(context.Background(), uuid.New().String(), lot.ID.String(),
		&request.UpdateParkingLotRequest{Name: &name})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authorized")
	mocks.ParkingLot.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetLotSpaces_FlattenedAndSorted(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	lot := testLot(uuid.New(), 3)
	layouts := []*entity.ParkingLayout{
		{
			ID:           uuid.New(),
			ParkingLotID: lot.ID,
			Name:         "Ground Floor",
			Rows: []entity.LayoutRow{
				{Prefix: "A", Slots: []entity.LayoutSlot{
					{ID: "A10", Status: entity.SpaceStatusAvailable},
					{ID: "A2", Status: entity.SpaceStatusOccupied},
					{ID: "A1", Status: entity.SpaceStatusAvailable},
				}},
			},
		},
	}

	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)

	spaces, err := svc.GetLotSpaces(context.Background(), lot.ID.String())

	require.NoError(t, err)
	require.Len(t, spaces, 3)

	// Sort numerik: A1, A2, A10 (bukan leksikografis A1, A10, A2)
	assert.Equal(t, "A1", spaces[0].SpotNumber)
	assert.Equal(t, "A2", spaces[1].SpotNumber)
	assert.Equal(t, "A10", spaces[2].SpotNumber)

	// Composite ID tetap menunjuk posisi asli di layout
	assert.Equal(t, "0_0_2", spaces[0].ID)
	assert.Equal(t, "0_0_1", spaces[1].ID)
	assert.Equal(t, "0_0_0", spaces[2].ID)
	assert.Equal(t, "occupied", spaces[1].Status)
	assert.Equal(t, "Ground Floor", spaces[0].Zone)
}

func TestUpdateSpaceStatus_OwnerOverride(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	ownerID := uuid.New()
	lot := testLot(ownerID, 10)
	layouts := testLayouts(lot.ID)

	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)
	mocks.Layout.On("UpdateRows", mock.Anything, layouts[0].ID, mock.Anything).Return(nil)
	mocks.ParkingLot.On("UpdateAvailableSpots", mock.Anything, lot.ID, 9).Return(nil)

	resp, err := svc.UpdateSpaceStatus(context.Background(), ownerID.String(), lot.ID.String(),
		&request.UpdateSpaceStatusRequest{SpaceID: "0_1_3", Status: "occupied"})

	require.NoError(t, err)
	assert.Equal(t, "occupied", resp.Status)
	assert.Equal(t, "B4", resp.SpotNumber)
	assert.Equal(t, entity.SpaceStatusOccupied, layouts[0].Rows[1].Slots[3].Status)
}

func TestUpdateSpaceStatus_NonOwnerForbidden(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	lot := testLot(uuid.New(), 10)
	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)

	_, err := svc.UpdateSpaceStatus(context.Background(), uuid.New().String(), lot.ID.String(),
		&request.UpdateSpaceStatusRequest{SpaceID: "0_0_0", Status: "occupied"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authorized")
	mocks.Layout.AssertNotCalled(t, "UpdateRows", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateLayout_RecountsLotSpots(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	ownerID := uuid.New()
	lot := testLot(ownerID, 10)

	mocks.ParkingLot.On("FindByID", mock.Anything, lot.ID).Return(lot, nil)
	mocks.Layout.On("Create", mock.Anything, mock.Anything).Return(nil)
	// Setelah create, recount membaca semua layout: 10 + 2 slot baru
	layouts := testLayouts(lot.ID)
	layouts = append(layouts, &entity.ParkingLayout{
		ID:           uuid.New(),
		ParkingLotID: lot.ID,
		Name:         "Basement",
		Rows: []entity.LayoutRow{
			{Prefix: "C", Slots: []entity.LayoutSlot{
				{ID: "C1", Status: entity.SpaceStatusAvailable},
				{ID: "C2", Status: entity.SpaceStatusAvailable},
			}},
		},
	})
	mocks.Layout.On("FindByLotID", mock.Anything, lot.ID).Return(layouts, nil)
	mocks.ParkingLot.On("Update", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateLayout(context.Background(), ownerID.String(), &request.CreateLayoutRequest{
		ParkingLotID: lot.ID.String(),
		Name:         "Basement",
		Rows: []request.RowInput{
			{Prefix: "C", Slots: []request.SlotInput{{ID: "C1"}, {ID: "C2"}}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Basement", resp.Name)
	assert.Equal(t, 12, lot.TotalSpots)
	assert.Equal(t, 12, lot.AvailableSpots)
}

func TestGetLayout(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	layouts := testLayouts(uuid.New())
	mocks.Layout.On("FindByID", mock.Anything, layouts[0].ID).Return(layouts[0], nil)

	resp, err := svc.GetLayout(context.Background(), layouts[0].ID.String())

	require.NoError(t, err)
	assert.Equal(t, "Ground Floor", resp.Name)
	assert.Len(t, resp.Rows, 2)
}

func TestGetLayout_NotFound(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	layoutID := uuid.New()
	mocks.Layout.On("FindByID", mock.Anything, layoutID).Return(nil, nil)

	_, err := svc.GetLayout(context.Background(), layoutID.String())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetLayout_InvalidID(t *testing.T) {
	_, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	_, err := svc.GetLayout(context.Background(), "bukan-uuid")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestGetParkingLot_NotFound(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewParkingService(repo, newLotLocker(), zap.NewNop())

	lotID := uuid.New()
	mocks.ParkingLot.On("FindByID", mock.Anything, lotID).Return(nil, nil)

	_, err := svc.GetParkingLot(context.Background(), lotID.String())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
