package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rentora/rentora-api/internal/domain"
)

// GetProfile returns the authenticated user's profile
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	user, err := h.userService.GetProfile(r.Context(), claims.Sub)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile updates profile fields and triggers re-verification
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	if _, err := h.userService.UpdateProfile(r.Context(), claims.Sub, &req); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Profile updated. Confirm the code sent to your email.",
	})
}

// ChangePassword stages a password change pending code confirmation
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	var req domain.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	if err := h.userService.RequestPasswordChange(r.Context(), claims.Sub, &req); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Verification code sent",
	})
}

// ConfirmCode confirms a pending verification code
func (h *Handlers) ConfirmCode(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	var req domain.ConfirmCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "Code is required", "INVALID_INPUT")
		return
	}

	if err := h.userService.ConfirmCode(r.Context(), claims.Sub, &req); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Verification completed successfully",
	})
}

// RoleProbe returns a diagnostic confirmation for role-gated routes.
func (h *Handlers) RoleProbe(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Access granted for " + role,
		})
	}
}
