package usecase

import (
	"context"

	"parking-booking/internal/data/entity"
	"parking-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories
type MockUserRepo struct{ mock.Mock }
type MockSessionRepo struct{ mock.Mock }
type MockParkingLotRepo struct{ mock.Mock }
type MockLayoutRepo struct{ mock.Mock }
type MockBookingRepo struct{ mock.Mock }
type MockReviewRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *MockSessionRepo) Revoke(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockParkingLotRepo) Create(ctx context.Context, lot *entity.ParkingLot) error {
	return m.Called(ctx, lot).Error(0)
}

func (m *MockParkingLotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ParkingLot), args.Error(1)
}

func (m *MockParkingLotRepo) FindAll(ctx context.Context) ([]*entity.ParkingLot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ParkingLot), args.Error(1)
}

func (m *MockParkingLotRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entity.ParkingLot, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ParkingLot), args.Error(1)
}

func (m *MockParkingLotRepo) Update(ctx context.Context, lot *entity.ParkingLot) error {
	return m.Called(ctx, lot).Error(0)
}

func (m *MockParkingLotRepo) UpdateAvailableSpots(ctx context.Context, lotID uuid.UUID, availableSpots int) error {
	return m.Called(ctx, lotID, availableSpots).Error(0)
}

func (m *MockLayoutRepo) Create(ctx context.Context, layout *entity.ParkingLayout) error {
	return m.Called(ctx, layout).Error(0)
}

func (m *MockLayoutRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ParkingLayout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ParkingLayout), args.Error(1)
}

func (m *MockLayoutRepo) FindByLotID(ctx context.Context, lotID uuid.UUID) ([]*entity.ParkingLayout, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ParkingLayout), args.Error(1)
}

func (m *MockLayoutRepo) UpdateRows(ctx context.Context, layoutID uuid.UUID, rows []entity.LayoutRow) error {
	return m.Called(ctx, layoutID, rows).Error(0)
}

func (m *MockLayoutRepo) UpdateName(ctx context.Context, layoutID uuid.UUID, name string) error {
	return m.Called(ctx, layoutID, name).Error(0)
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *MockBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepo) FindByLotID(ctx context.Context, lotID uuid.UUID) ([]*entity.Booking, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	return m.Called(ctx, bookingID, status).Error(0)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepo) FindByLotID(ctx context.Context, lotID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Review), args.Error(1)
}

// mockRepos bundles all mocks behind the Repository grouping struct
type mockRepos struct {
	User       *MockUserRepo
	Session    *MockSessionRepo
	ParkingLot *MockParkingLotRepo
	Layout     *MockLayoutRepo
	Booking    *MockBookingRepo
	Review     *MockReviewRepo
}

func newMockRepos() (*mockRepos, *repository.Repository) {
	mocks := &mockRepos{
		User:       new(MockUserRepo),
		Session:    new(MockSessionRepo),
		ParkingLot: new(MockParkingLotRepo),
		Layout:     new(MockLayoutRepo),
		Booking:    new(MockBookingRepo),
		Review:     new(MockReviewRepo),
	}

	repo := &repository.Repository{
		User:       mocks.User,
		Session:    mocks.Session,
		ParkingLot: mocks.ParkingLot,
		Layout:     mocks.Layout,
		Booking:    mocks.Booking,
		Review:     mocks.Review,
	}

	return mocks, repo
}
