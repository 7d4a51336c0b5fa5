package service

import (
	"context"
	"fmt"

	"github.com/alexedwards/argon2id"
	"github.com/rentora/rentora-api/internal/domain"
	"github.com/rentora/rentora-api/internal/mailer"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/pkg/auth"
	"github.com/rentora/rentora-api/pkg/config"
	"github.com/rentora/rentora-api/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	VerifyEmail(ctx context.Context, req *domain.VerifyEmailRequest) error
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	mailer   mailer.Service
	config   *config.Config
}

func NewAuthService(userRepo repository.UserRepository, mailer mailer.Service, config *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		mailer:   mailer,
		config:   config,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}
	codeHash, err := hashVerificationCode(code)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, req, passwordHash, codeHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.mailer.SendVerificationCode(user.Email, user.Name, code); err != nil {
		logger.ErrorContext(ctx, "Failed to send verification email", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to send verification email")
	}

	logger.InfoContext(ctx, "User registered, verification code sent", "user_id", user.ID)
	return user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, req *domain.VerifyEmailRequest) error {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}

	if user.IsVerified {
		return fmt.Errorf("%w: account is already verified", domain.ErrConflict)
	}

	if !verificationCodeMatches(user.VerificationCode, req.Code) {
		return fmt.Errorf("%w: invalid verification code", domain.ErrValidation)
	}

	if err := s.userRepo.MarkVerifiedByEmail(ctx, user.Email); err != nil {
		return fmt.Errorf("failed to mark user as verified: %w", err)
	}

	logger.InfoContext(ctx, "Email verified", "user_id", user.ID)
	return nil
}

func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	// Correct credentials are not enough while the account is pending
	// verification.
	if !user.IsVerified {
		return nil, fmt.Errorf("%w: account not verified", domain.ErrForbidden)
	}

	token, err := auth.NewAccessToken(user.ID, user.Role, s.config.Auth.JWTSecret, s.config.Auth.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	logger.InfoContext(ctx, "Login succeeded", "user_id", user.ID)
	return &domain.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.config.Auth.AccessTokenTTL.Seconds()),
		User:      user.ToUserInfo(),
	}, nil
}
