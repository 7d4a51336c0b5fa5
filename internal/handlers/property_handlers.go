package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rentora/rentora-api/internal/domain"
)

// CreateProperty registers a new property for the authenticated owner
func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	var req domain.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	property, err := h.propertyService.Create(r.Context(), claims.Sub, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, property)
}

// ListProperties lists available properties (public)
func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	listings, err := h.propertyService.ListAvailable(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	if listings == nil {
		listings = []domain.PropertyListing{}
	}
	writeJSON(w, http.StatusOK, listings)
}

// ListMyProperties lists the authenticated owner's properties
func (h *Handlers) ListMyProperties(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	properties, err := h.propertyService.ListMine(r.Context(), claims.Sub)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if properties == nil {
		properties = []domain.Property{}
	}
	writeJSON(w, http.StatusOK, properties)
}
