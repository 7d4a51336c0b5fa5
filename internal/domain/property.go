package domain

import (
	"fmt"
	"strings"
	"time"
)

type Property struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserRef is the minimal user projection embedded in listings,
// bookings and messages.
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PropertyListing is a Property together with its owner's public info,
// returned by the public listing endpoint.
type PropertyListing struct {
	Property
	Owner UserRef `json:"owner"`
}

type CreatePropertyRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
}

func (r *CreatePropertyRequest) Validate() error {
	if r.Title == "" || r.Description == "" || r.Location == "" {
		return fmt.Errorf("%w: title, description and location are required", ErrValidation)
	}
	if r.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	return nil
}

func (r *CreatePropertyRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Location = strings.TrimSpace(r.Location)
}
