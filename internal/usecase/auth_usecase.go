package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/ports"
	"github.com/driveline/driveline/internal/service/logger"
)

// LoginRequest represents an admin login attempt
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	ClientIP string `json:"-"`
}

// LoginResponse carries the issued token and the authenticated admin
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	Admin       *domain.Admin `json:"admin"`
}

// Custom errors
var (
	ErrInvalidCredentials = domain.NewDomainError("invalid email or password")
	ErrTooManyAttempts    = domain.NewDomainError("too many login attempts, try again later")
)

// AuthUseCase handles admin authentication
type AuthUseCase struct {
	adminRepo    ports.AdminRepository
	passwords    ports.PasswordService
	tokens       ports.TokenService
	limiter      ports.RateLimiter
	log          logger.Logger
	attemptLimit int
	window       time.Duration
	blockFor     time.Duration
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(
	adminRepo ports.AdminRepository,
	passwords ports.PasswordService,
	tokens ports.TokenService,
	limiter ports.RateLimiter,
	log logger.Logger,
	attemptLimit int,
	window time.Duration,
	blockFor time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		adminRepo:    adminRepo,
		passwords:    passwords,
		tokens:       tokens,
		limiter:      limiter,
		log:          log,
		attemptLimit: attemptLimit,
		window:       window,
		blockFor:     blockFor,
	}
}

// Login checks credentials and issues an access token. Attempts are rate
// limited per client IP.
func (uc *AuthUseCase) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	key := "login:" + req.ClientIP
	if blocked, err := uc.limiter.IsBlocked(ctx, key); err == nil && blocked {
		return nil, ErrTooManyAttempts
	}
	if ok, err := uc.limiter.CheckLimit(ctx, key, uc.attemptLimit, uc.window); err == nil && !ok {
		_ = uc.limiter.Block(ctx, key, uc.blockFor, "login attempts exceeded")
		return nil, ErrTooManyAttempts
	}

	admin, err := uc.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		_ = uc.limiter.Increment(ctx, key, uc.window)
		uc.log.Warn(ctx, "login failed", map[string]interface{}{
			"email": req.Email,
			"ip":    req.ClientIP,
		})
		return nil, ErrInvalidCredentials
	}

	if err := uc.passwords.ComparePassword(admin.PasswordHash, req.Password); err != nil {
		_ = uc.limiter.Increment(ctx, key, uc.window)
		uc.log.Warn(ctx, "login failed", map[string]interface{}{
			"email": req.Email,
			"ip":    req.ClientIP,
		})
		return nil, ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateAccessToken(ports.TokenClaims{
		AdminID: admin.ID,
		Role:    admin.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.log.Info(ctx, "admin logged in", map[string]interface{}{
		"admin_id": admin.ID,
		"ip":       req.ClientIP,
	})

	return &LoginResponse{AccessToken: token, Admin: admin}, nil
}

// Me resolves the authenticated admin from token claims
func (uc *AuthUseCase) Me(ctx context.Context, adminID string) (*domain.Admin, error) {
	if adminID == "" {
		return nil, fmt.Errorf("admin ID is required")
	}

	admin, err := uc.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return admin, nil
}
