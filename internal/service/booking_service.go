package service

import (
	"context"
	"fmt"

	"github.com/rentora/rentora-api/internal/domain"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error)
	ListMine(ctx context.Context, userID int64) ([]domain.RenterBooking, error)
	ListForProperty(ctx context.Context, ownerID, propertyID int64) ([]domain.PropertyBooking, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, propertyRepo repository.PropertyRepository) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
	}
}

// Create books the property for [start, end] unless the property is
// missing, unavailable, or any existing booking touches the interval.
// The conflict check and insert happen atomically in the repository.
func (s *bookingService) Create(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	if property == nil {
		return nil, fmt.Errorf("%w: property not found", domain.ErrNotFound)
	}
	if !property.Available {
		return nil, fmt.Errorf("%w: property is not available for booking", domain.ErrConflict)
	}

	booking, err := s.bookingRepo.CreateIfFree(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: property is already booked for these dates", domain.ErrConflict)
	}

	logger.InfoContext(ctx, "Booking created", "booking_id", booking.ID, "property_id", property.ID, "user_id", userID)
	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, userID int64) ([]domain.RenterBooking, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListForProperty returns a property's bookings to its owner only.
func (s *bookingService) ListForProperty(ctx context.Context, ownerID, propertyID int64) ([]domain.PropertyBooking, error) {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	if property == nil || property.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: you do not have access to this property", domain.ErrForbidden)
	}

	bookings, err := s.bookingRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list property bookings: %w", err)
	}
	return bookings, nil
}
