package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/ports"
	"github.com/driveline/driveline/internal/service/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

type MockPasswordService struct {
	mock.Mock
}

func (m *MockPasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) ComparePassword(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(claims ports.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateAccessToken(token string) (*ports.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.TokenClaims), args.Error(1)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockRateLimiter) Increment(ctx context.Context, key string, window time.Duration) error {
	args := m.Called(ctx, key, window)
	return args.Error(0)
}

func (m *MockRateLimiter) IsBlocked(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockRateLimiter) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	args := m.Called(ctx, key, duration, reason)
	return args.Error(0)
}

func newAuthUseCase(adminRepo *MockAdminRepository, passwords *MockPasswordService, tokens *MockTokenService, limiter *MockRateLimiter) *AuthUseCase {
	return NewAuthUseCase(adminRepo, passwords, tokens, limiter, logger.Noop(), 5, 15*time.Minute, time.Hour)
}

func testAdmin() *domain.Admin {
	return &domain.Admin{
		ID:           "admin-1",
		Email:        "admin@example.com",
		Name:         "Admin",
		PasswordHash: "$2a$10$hash",
		Role:         "admin",
	}
}

func TestAuthUseCase_Login(t *testing.T) {
	adminRepo := &MockAdminRepository{}
	passwords := &MockPasswordService{}
	tokens := &MockTokenService{}
	limiter := &MockRateLimiter{}
	uc := newAuthUseCase(adminRepo, passwords, tokens, limiter)

	limiter.On("IsBlocked", mock.Anything, "login:1.2.3.4").Return(false, nil)
	limiter.On("CheckLimit", mock.Anything, "login:1.2.3.4", 5, 15*time.Minute).Return(true, nil)
	adminRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(testAdmin(), nil)
	passwords.On("ComparePassword", "$2a$10$hash", "secret").Return(nil)
	tokens.On("GenerateAccessToken", ports.TokenClaims{AdminID: "admin-1", Role: "admin"}).Return("signed-token", nil)

	resp, err := uc.Login(context.Background(), LoginRequest{
		Email:    "admin@example.com",
		Password: "secret",
		ClientIP: "1.2.3.4",
	})

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "admin-1", resp.Admin.ID)
}

func TestAuthUseCase_Login_WrongPassword(t *testing.T) {
	adminRepo := &MockAdminRepository{}
	passwords := &MockPasswordService{}
	tokens := &MockTokenService{}
	limiter := &MockRateLimiter{}
	uc := newAuthUseCase(adminRepo, passwords, tokens, limiter)

	limiter.On("IsBlocked", mock.Anything, mock.Anything).Return(false, nil)
	limiter.On("CheckLimit", mock.Anything, mock.Anything, 5, 15*time.Minute).Return(true, nil)
	limiter.On("Increment", mock.Anything, mock.Anything, 15*time.Minute).Return(nil)
	adminRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(testAdmin(), nil)
	passwords.On("ComparePassword", mock.Anything, "wrong").Return(assert.AnError)

	_, err := uc.Login(context.Background(), LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
		ClientIP: "1.2.3.4",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	limiter.AssertCalled(t, "Increment", mock.Anything, "login:1.2.3.4", 15*time.Minute)
}

// An unknown email reads the same as a wrong password from outside
func TestAuthUseCase_Login_UnknownEmail(t *testing.T) {
	adminRepo := &MockAdminRepository{}
	limiter := &MockRateLimiter{}
	uc := newAuthUseCase(adminRepo, &MockPasswordService{}, &MockTokenService{}, limiter)

	limiter.On("IsBlocked", mock.Anything, mock.Anything).Return(false, nil)
	limiter.On("CheckLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	limiter.On("Increment", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	adminRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrAdminNotFound)

	_, err := uc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
		ClientIP: "1.2.3.4",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUseCase_Login_RateLimited(t *testing.T) {
	limiter := &MockRateLimiter{}
	uc := newAuthUseCase(&MockAdminRepository{}, &MockPasswordService{}, &MockTokenService{}, limiter)

	limiter.On("IsBlocked", mock.Anything, "login:9.9.9.9").Return(true, nil)

	_, err := uc.Login(context.Background(), LoginRequest{
		Email:    "admin@example.com",
		Password: "secret",
		ClientIP: "9.9.9.9",
	})

	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestAuthUseCase_Login_ExceededAttemptsBlocks(t *testing.T) {
	limiter := &MockRateLimiter{}
	uc := newAuthUseCase(&MockAdminRepository{}, &MockPasswordService{}, &MockTokenService{}, limiter)

	limiter.On("IsBlocked", mock.Anything, mock.Anything).Return(false, nil)
	limiter.On("CheckLimit", mock.Anything, mock.Anything, 5, 15*time.Minute).Return(false, nil)
	limiter.On("Block", mock.Anything, "login:9.9.9.9", time.Hour, mock.Anything).Return(nil)

	_, err := uc.Login(context.Background(), LoginRequest{
		Email:    "admin@example.com",
		Password: "secret",
		ClientIP: "9.9.9.9",
	})

	assert.ErrorIs(t, err, ErrTooManyAttempts)
	limiter.AssertExpectations(t)
}

func TestAuthUseCase_Me(t *testing.T) {
	adminRepo := &MockAdminRepository{}
	uc := newAuthUseCase(adminRepo, &MockPasswordService{}, &MockTokenService{}, &MockRateLimiter{})

	adminRepo.On("FindByID", mock.Anything, "admin-1").Return(testAdmin(), nil)

	admin, err := uc.Me(context.Background(), "admin-1")

	assert.NoError(t, err)
	assert.Equal(t, "admin@example.com", admin.Email)
}
