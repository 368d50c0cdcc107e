package usecase

import (
	"context"
	"testing"
	"time"

	"parking-booking/internal/data/entity"
	"parking-booking/internal/dto/request"
	"parking-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
}

func TestRegister_Success(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	mocks.User.On("FindByUsername", mock.Anything, "budi").Return(nil, nil)
	mocks.User.On("FindByEmail", mock.Anything, "budi@example.com").Return(nil, nil)
	mocks.User.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "budi",
		Password: "rahasia123",
		FullName: "Budi Santoso",
		Email:    "budi@example.com",
		Role:     "owner",
	})

	require.NoError(t, err)
	assert.Equal(t, "budi", resp.User.Username)
	assert.Equal(t, "owner", resp.User.Role)
	assert.Empty(t, resp.Token) // register tidak langsung login
}

func TestRegister_DefaultsToUserRole(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	mocks.User.On("FindByUsername", mock.Anything, "sari").Return(nil, nil)
	mocks.User.On("FindByEmail", mock.Anything, "sari@example.com").Return(nil, nil)
	mocks.User.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "sari",
		Password: "rahasia123",
		FullName: "Sari Dewi",
		Email:    "sari@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "user", resp.User.Role)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	existing := &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "budi"}
	mocks.User.On("FindByUsername", mock.Anything, "budi").Return(existing, nil)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "budi",
		Password: "rahasia123",
		FullName: "Budi Santoso",
		Email:    "lain@example.com",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already")
	mocks.User.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	hash, err := utils.HashPassword("rahasia123")
	require.NoError(t, err)

	user := &entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Username:     "budi",
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}
	mocks.User.On("FindByUsername", mock.Anything, "budi").Return(user, nil)
	mocks.Session.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "budi",
		Password: "rahasia123",
	}, "test-agent", "127.0.0.1")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *resp.ExpiresAt, time.Minute)
}

func TestLogin_WrongPassword(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	hash, err := utils.HashPassword("rahasia123")
	require.NoError(t, err)

	user := &entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Username:     "budi",
		PasswordHash: hash,
	}
	mocks.User.On("FindByUsername", mock.Anything, "budi").Return(user, nil)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Username: "budi",
		Password: "salah",
	}, "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid username or password")
	mocks.Session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_UnknownUserSameMessage(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	mocks.User.On("FindByUsername", mock.Anything, "hantu").Return(nil, nil)

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Username: "hantu",
		Password: "apapun",
	}, "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid username or password")
}

func TestLogout(t *testing.T) {
	mocks, repo := newMockRepos()
	svc := NewAuthService(repo, testConfig(), zap.NewNop())

	mocks.Session.On("Revoke", mock.Anything, "token-123").Return(nil)

	err := svc.Logout(context.Background(), "token-123")

	require.NoError(t, err)
	mocks.Session.AssertCalled(t, "Revoke", mock.Anything, "token-123")
}
