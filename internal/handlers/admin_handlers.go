package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ListUsers lists every user in the system (admin only)
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// DeleteUser deletes a user and all dependent records (admin only)
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID", "INVALID_INPUT")
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), userID); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "User and related records deleted successfully",
	})
}

// DeleteProperty deletes a property and its bookings (admin only)
func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	propertyID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid property ID", "INVALID_INPUT")
		return
	}

	if err := h.adminService.DeleteProperty(r.Context(), propertyID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
