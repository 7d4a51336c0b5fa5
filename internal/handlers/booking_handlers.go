package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rentora/rentora-api/internal/domain"
)

// CreateBooking books a property for a date range (renter only)
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	var req domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	booking, err := h.bookingService.Create(r.Context(), claims.Sub, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// ListMyBookings lists the authenticated renter's bookings
func (h *Handlers) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	bookings, err := h.bookingService.ListMine(r.Context(), claims.Sub)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if bookings == nil {
		bookings = []domain.RenterBooking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// ListPropertyBookings lists a property's bookings for its owner
func (h *Handlers) ListPropertyBookings(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	propertyID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid property ID", "INVALID_INPUT")
		return
	}

	bookings, err := h.bookingService.ListForProperty(r.Context(), claims.Sub, propertyID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if bookings == nil {
		bookings = []domain.PropertyBooking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}
