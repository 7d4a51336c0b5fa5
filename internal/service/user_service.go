package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/rentora/rentora-api/internal/domain"
	"github.com/rentora/rentora-api/internal/mailer"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/pkg/logger"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *domain.UpdateProfileRequest) (*domain.User, error)
	RequestPasswordChange(ctx context.Context, userID int64, req *domain.ChangePasswordRequest) error
	ConfirmCode(ctx context.Context, userID int64, req *domain.ConfirmCodeRequest) error
}

type userService struct {
	userRepo repository.UserRepository
	mailer   mailer.Service
}

func NewUserService(userRepo repository.UserRepository, mailer mailer.Service) UserService {
	return &userService{
		userRepo: userRepo,
		mailer:   mailer,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	return user, nil
}

// UpdateProfile applies a profile patch. Any actual change demotes the
// account to pending-verification and emails a fresh code; a patch that
// changes nothing is rejected.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &normalized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}

	if !req.Changes(user) {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrConflict)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}
	codeHash, err := hashVerificationCode(code)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdateProfile(ctx, userID, req, codeHash)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}

	if err := s.mailer.SendVerificationCode(updated.Email, updated.Name, code); err != nil {
		logger.ErrorContext(ctx, "Failed to send verification email", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to send verification email")
	}

	logger.InfoContext(ctx, "Profile updated, re-verification required", "user_id", userID)
	return updated, nil
}

// RequestPasswordChange parks the new password hash in a holding field
// and emails a confirmation code. The active password is untouched
// until the code is confirmed.
func (s *userService) RequestPasswordChange(ctx context.Context, userID int64, req *domain.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}

	valid, err := argon2id.ComparePasswordAndHash(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrValidation)
	}

	tempHash, err := argon2id.CreateHash(req.NewPassword, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}
	codeHash, err := hashVerificationCode(code)
	if err != nil {
		return err
	}

	if err := s.userRepo.SetPendingPassword(ctx, userID, tempHash, codeHash); err != nil {
		return fmt.Errorf("failed to store pending password: %w", err)
	}

	if err := s.mailer.SendVerificationCode(user.Email, user.Name, code); err != nil {
		logger.ErrorContext(ctx, "Failed to send verification email", "error", err, "user_id", userID)
		return fmt.Errorf("failed to send verification email")
	}

	logger.InfoContext(ctx, "Password change requested", "user_id", userID)
	return nil
}

// ConfirmCode completes a pending verification: the account becomes
// verified, the code is cleared and a parked password, if any, becomes
// the active one.
func (s *userService) ConfirmCode(ctx context.Context, userID int64, req *domain.ConfirmCodeRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}

	if !verificationCodeMatches(user.VerificationCode, req.Code) {
		return fmt.Errorf("%w: invalid verification code", domain.ErrValidation)
	}

	if err := s.userRepo.ConfirmPending(ctx, userID); err != nil {
		return fmt.Errorf("failed to confirm verification: %w", err)
	}

	logger.InfoContext(ctx, "Verification confirmed", "user_id", userID)
	return nil
}
