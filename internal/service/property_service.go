package service

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/rentora/rentora-api/internal/domain"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/pkg/logger"
)

type PropertyService interface {
	Create(ctx context.Context, ownerID int64, req *domain.CreatePropertyRequest) (*domain.Property, error)
	ListAvailable(ctx context.Context) ([]domain.PropertyListing, error)
	ListMine(ctx context.Context, ownerID int64) ([]domain.Property, error)
}

type propertyService struct {
	propertyRepo repository.PropertyRepository
}

func NewPropertyService(propertyRepo repository.PropertyRepository) PropertyService {
	return &propertyService{propertyRepo: propertyRepo}
}

func (s *propertyService) Create(ctx context.Context, ownerID int64, req *domain.CreatePropertyRequest) (*domain.Property, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.Create(ctx, ownerID, req, slug.Make(req.Title))
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	logger.InfoContext(ctx, "Property created", "property_id", property.ID, "owner_id", ownerID)
	return property, nil
}

func (s *propertyService) ListAvailable(ctx context.Context) ([]domain.PropertyListing, error) {
	listings, err := s.propertyRepo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return listings, nil
}

func (s *propertyService) ListMine(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	properties, err := s.propertyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own properties: %w", err)
	}
	return properties, nil
}
