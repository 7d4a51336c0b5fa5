package domain

import (
	"fmt"
	"time"
)

type Booking struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"property_id"`
	UserID     int64     `json:"user_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// PropertyRef is the property summary attached to a renter's bookings.
type PropertyRef struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
}

// RenterBooking is a Booking with its property summary.
type RenterBooking struct {
	Booking
	Property PropertyRef `json:"property"`
}

// PropertyBooking is a Booking with its renter's public info.
type PropertyBooking struct {
	Booking
	User UserRef `json:"user"`
}

type CreateBookingRequest struct {
	PropertyID int64     `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

func (r *CreateBookingRequest) Validate() error {
	if r.PropertyID <= 0 {
		return fmt.Errorf("%w: property_id is required", ErrValidation)
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrValidation)
	}
	if r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("%w: end_date must not precede start_date", ErrValidation)
	}
	return nil
}

// Overlaps reports whether two date intervals conflict. The bounds are
// non-strict on both ends: a booking ending on day D conflicts with
// one starting on day D.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
