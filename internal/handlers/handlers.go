package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rentora/rentora-api/internal/domain"
	"github.com/rentora/rentora-api/internal/service"
	"github.com/rentora/rentora-api/pkg/auth"
	"github.com/rentora/rentora-api/pkg/config"
	"github.com/rentora/rentora-api/pkg/logger"
)

type Handlers struct {
	authService     service.AuthService
	userService     service.UserService
	propertyService service.PropertyService
	bookingService  service.BookingService
	messageService  service.MessageService
	adminService    service.AdminService
	config          *config.Config
}

func New(
	authService service.AuthService,
	userService service.UserService,
	propertyService service.PropertyService,
	bookingService service.BookingService,
	messageService service.MessageService,
	adminService service.AdminService,
	config *config.Config,
) *Handlers {
	return &Handlers{
		authService:     authService,
		userService:     userService,
		propertyService: propertyService,
		bookingService:  bookingService,
		messageService:  messageService,
		adminService:    adminService,
		config:          config,
	}
}

type contextKey string

const claimsKey contextKey = "claims"

// RequireAuth verifies the bearer token and attaches the decoded
// identity to the request context. Every token problem is the same
// uniform 401.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header", "UNAUTHORIZED")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token", "UNAUTHORIZED")
			return
		}

		ctx := context.WithValue(r.Context(), logger.UserIDKey, claims.Sub)
		ctx = context.WithValue(ctx, claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route on an allow-list of roles. Callers outside
// the list get the same uniform 403 regardless of the reason.
func (h *Handlers) RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := getClaims(r)
			if claims == nil || !roleAllowed(claims.Role, allowedRoles) {
				writeError(w, http.StatusForbidden, "Insufficient permissions", "FORBIDDEN")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message, code string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
		"code":  code,
	})
}

// respondError maps domain sentinel errors to HTTP statuses. Anything
// unmapped is logged server-side and surfaced as a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusBadRequest, err.Error(), "CONFLICT")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	default:
		logger.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}
