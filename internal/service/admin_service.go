package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rentora/rentora-api/internal/domain"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/pkg/logger"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.UserInfo, error)
	DeleteUser(ctx context.Context, userID int64) error
	DeleteProperty(ctx context.Context, propertyID int64) error
}

type adminService struct {
	adminRepo repository.AdminRepository
	userRepo  repository.UserRepository
}

func NewAdminService(adminRepo repository.AdminRepository, userRepo repository.UserRepository) AdminService {
	return &adminService{
		adminRepo: adminRepo,
		userRepo:  userRepo,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]domain.UserInfo, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	infos := make([]domain.UserInfo, len(users))
	for i := range users {
		infos[i] = *users[i].ToUserInfo()
	}
	return infos, nil
}

// DeleteUser removes the user and every dependent record in a single
// transaction.
func (s *adminService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}

	if err := s.adminRepo.DeleteUserCascade(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.InfoContext(ctx, "User and related records deleted", "deleted_user_id", userID, "role", user.Role)
	return nil
}

func (s *adminService) DeleteProperty(ctx context.Context, propertyID int64) error {
	if err := s.adminRepo.DeletePropertyCascade(ctx, propertyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: property not found", domain.ErrNotFound)
		}
		return fmt.Errorf("failed to delete property: %w", err)
	}

	logger.InfoContext(ctx, "Property and its bookings deleted", "property_id", propertyID)
	return nil
}
