package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/rentora-api/internal/domain"
	"github.com/rentora/rentora-api/pkg/auth"
	"github.com/rentora/rentora-api/pkg/config"
)

// Service stubs with overridable behavior per test.

type stubAuthService struct {
	registerFn func(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	verifyFn   func(ctx context.Context, req *domain.VerifyEmailRequest) error
	loginFn    func(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
}

func (s *stubAuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	return s.registerFn(ctx, req)
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, req *domain.VerifyEmailRequest) error {
	return s.verifyFn(ctx, req)
}

func (s *stubAuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	return s.loginFn(ctx, req)
}

type stubUserService struct {
	getFn     func(ctx context.Context, userID int64) (*domain.User, error)
	updateFn  func(ctx context.Context, userID int64, req *domain.UpdateProfileRequest) (*domain.User, error)
	changeFn  func(ctx context.Context, userID int64, req *domain.ChangePasswordRequest) error
	confirmFn func(ctx context.Context, userID int64, req *domain.ConfirmCodeRequest) error
}

func (s *stubUserService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.getFn(ctx, userID)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	return s.updateFn(ctx, userID, req)
}

func (s *stubUserService) RequestPasswordChange(ctx context.Context, userID int64, req *domain.ChangePasswordRequest) error {
	return s.changeFn(ctx, userID, req)
}

func (s *stubUserService) ConfirmCode(ctx context.Context, userID int64, req *domain.ConfirmCodeRequest) error {
	return s.confirmFn(ctx, userID, req)
}

type stubPropertyService struct {
	createFn        func(ctx context.Context, ownerID int64, req *domain.CreatePropertyRequest) (*domain.Property, error)
	listAvailableFn func(ctx context.Context) ([]domain.PropertyListing, error)
	listMineFn      func(ctx context.Context, ownerID int64) ([]domain.Property, error)
}

func (s *stubPropertyService) Create(ctx context.Context, ownerID int64, req *domain.CreatePropertyRequest) (*domain.Property, error) {
	return s.createFn(ctx, ownerID, req)
}

func (s *stubPropertyService) ListAvailable(ctx context.Context) ([]domain.PropertyListing, error) {
	return s.listAvailableFn(ctx)
}

func (s *stubPropertyService) ListMine(ctx context.Context, ownerID int64) ([]domain.Property, error) {
	return s.listMineFn(ctx, ownerID)
}

type stubBookingService struct {
	createFn          func(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error)
	listMineFn        func(ctx context.Context, userID int64) ([]domain.RenterBooking, error)
	listForPropertyFn func(ctx context.Context, ownerID, propertyID int64) ([]domain.PropertyBooking, error)
}

func (s *stubBookingService) Create(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	return s.createFn(ctx, userID, req)
}

func (s *stubBookingService) ListMine(ctx context.Context, userID int64) ([]domain.RenterBooking, error) {
	return s.listMineFn(ctx, userID)
}

func (s *stubBookingService) ListForProperty(ctx context.Context, ownerID, propertyID int64) ([]domain.PropertyBooking, error) {
	return s.listForPropertyFn(ctx, ownerID, propertyID)
}

type stubMessageService struct {
	sendFn         func(ctx context.Context, senderID int64, req *domain.SendMessageRequest) (*domain.Message, error)
	listReceivedFn func(ctx context.Context, userID int64) ([]domain.InboxMessage, error)
	listSentFn     func(ctx context.Context, userID int64) ([]domain.OutboxMessage, error)
}

func (s *stubMessageService) Send(ctx context.Context, senderID int64, req *domain.SendMessageRequest) (*domain.Message, error) {
	return s.sendFn(ctx, senderID, req)
}

func (s *stubMessageService) ListReceived(ctx context.Context, userID int64) ([]domain.InboxMessage, error) {
	return s.listReceivedFn(ctx, userID)
}

func (s *stubMessageService) ListSent(ctx context.Context, userID int64) ([]domain.OutboxMessage, error) {
	return s.listSentFn(ctx, userID)
}

type stubAdminService struct {
	listUsersFn      func(ctx context.Context) ([]domain.UserInfo, error)
	deleteUserFn     func(ctx context.Context, userID int64) error
	deletePropertyFn func(ctx context.Context, propertyID int64) error
}

func (s *stubAdminService) ListUsers(ctx context.Context) ([]domain.UserInfo, error) {
	return s.listUsersFn(ctx)
}

func (s *stubAdminService) DeleteUser(ctx context.Context, userID int64) error {
	return s.deleteUserFn(ctx, userID)
}

func (s *stubAdminService) DeleteProperty(ctx context.Context, propertyID int64) error {
	return s.deletePropertyFn(ctx, propertyID)
}

type testEnv struct {
	auth      *stubAuthService
	users     *stubUserService
	props     *stubPropertyService
	bookings  *stubBookingService
	messages  *stubMessageService
	admin     *stubAdminService
	router    chi.Router
	jwtSecret string
}

func newTestEnv() *testEnv {
	env := &testEnv{
		auth:      &stubAuthService{},
		users:     &stubUserService{},
		props:     &stubPropertyService{},
		bookings:  &stubBookingService{},
		messages:  &stubMessageService{},
		admin:     &stubAdminService{},
		jwtSecret: "test-secret",
	}

	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: env.jwtSecret, AccessTokenTTL: time.Hour}}
	h := New(env.auth, env.users, env.props, env.bookings, env.messages, env.admin, cfg)

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/verify", h.VerifyEmail)
		r.Post("/login", h.Login)
	})
	r.Route("/users", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Get("/me", h.GetProfile)
		r.With(h.RequireRole(domain.RoleAdmin)).Get("/admin-only", h.RoleProbe(domain.RoleAdmin))
		r.With(h.RequireRole(domain.RoleOwner)).Get("/owner-only", h.RoleProbe(domain.RoleOwner))
	})
	r.Route("/properties", func(r chi.Router) {
		r.Get("/", h.ListProperties)
	})
	r.Route("/bookings", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.With(h.RequireRole(domain.RoleRenter)).Post("/", h.CreateBooking)
	})
	r.Route("/admin", func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(h.RequireRole(domain.RoleAdmin))
		r.Delete("/properties/{id}", h.DeleteProperty)
		r.Delete("/users/{id}", h.DeleteUser)
	})
	env.router = r
	return env
}

func (env *testEnv) token(t *testing.T, sub int64, role string) string {
	t.Helper()
	token, err := auth.NewAccessToken(sub, role, env.jwtSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv()
	env.auth.registerFn = func(_ context.Context, req *domain.RegisterRequest) (*domain.User, error) {
		return &domain.User{ID: 1, Email: req.Email, Name: req.Name, Role: domain.RoleRenter}, nil
	}

	rec := env.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "str0ng-pass",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Message string          `json:"message"`
		User    domain.UserInfo `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, "ana@example.com", body.User.Email)
}

func TestRegisterRejectsMalformedJSON(t *testing.T) {
	env := newTestEnv()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginStatusMapping(t *testing.T) {
	env := newTestEnv()

	env.auth.loginFn = func(context.Context, *domain.LoginRequest) (*domain.LoginResponse, error) {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	rec := env.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.co", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")

	env.auth.loginFn = func(context.Context, *domain.LoginRequest) (*domain.LoginResponse, error) {
		return nil, fmt.Errorf("%w: account not verified", domain.ErrForbidden)
	}
	rec = env.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.co", "password": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	env.auth.loginFn = func(context.Context, *domain.LoginRequest) (*domain.LoginResponse, error) {
		return &domain.LoginResponse{Token: "tok", ExpiresIn: 3600, User: &domain.UserInfo{ID: 1}}, nil
	}
	rec = env.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.co", "password": "x"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"tok"`)
}

func TestRequireAuth(t *testing.T) {
	env := newTestEnv()
	env.users.getFn = func(_ context.Context, userID int64) (*domain.User, error) {
		return &domain.User{ID: userID, Email: "ana@example.com"}, nil
	}

	rec := env.do(http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	otherSecret, err := auth.NewAccessToken(1, domain.RoleRenter, "wrong-secret", time.Hour)
	require.NoError(t, err)
	rec = env.do(http.MethodGet, "/users/me", otherSecret, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/users/me", env.token(t, 1, domain.RoleRenter), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@example.com")
}

func TestRequireRole(t *testing.T) {
	env := newTestEnv()
	renter := env.token(t, 1, domain.RoleRenter)
	owner := env.token(t, 2, domain.RoleOwner)
	admin := env.token(t, 3, domain.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/users/owner-only", renter, nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/users/admin-only", owner, nil).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/users/owner-only", owner, nil).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/users/admin-only", admin, nil).Code)
}

func TestCreateBookingEndpoint(t *testing.T) {
	env := newTestEnv()
	renter := env.token(t, 7, domain.RoleRenter)

	env.bookings.createFn = func(_ context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
		return &domain.Booking{ID: 1, PropertyID: req.PropertyID, UserID: userID}, nil
	}
	rec := env.do(http.MethodPost, "/bookings/", renter, map[string]any{
		"property_id": 3, "start_date": "2026-09-10T00:00:00Z", "end_date": "2026-09-15T00:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":7`)

	env.bookings.createFn = func(context.Context, int64, *domain.CreateBookingRequest) (*domain.Booking, error) {
		return nil, fmt.Errorf("%w: property is already booked for these dates", domain.ErrConflict)
	}
	rec = env.do(http.MethodPost, "/bookings/", renter, map[string]any{
		"property_id": 3, "start_date": "2026-09-10T00:00:00Z", "end_date": "2026-09-15T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFLICT")

	// Owners cannot book.
	owner := env.token(t, 2, domain.RoleOwner)
	rec = env.do(http.MethodPost, "/bookings/", owner, map[string]any{"property_id": 3})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListPropertiesReturnsEmptyArray(t *testing.T) {
	env := newTestEnv()
	env.props.listAvailableFn = func(context.Context) ([]domain.PropertyListing, error) {
		return nil, nil
	}

	rec := env.do(http.MethodGet, "/properties/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestAdminDeleteProperty(t *testing.T) {
	env := newTestEnv()
	admin := env.token(t, 3, domain.RoleAdmin)

	var deleted int64
	env.admin.deletePropertyFn = func(_ context.Context, propertyID int64) error {
		deleted = propertyID
		return nil
	}
	rec := env.do(http.MethodDelete, "/admin/properties/42", admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(42), deleted)

	env.admin.deletePropertyFn = func(context.Context, int64) error {
		return fmt.Errorf("%w: property not found", domain.ErrNotFound)
	}
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/admin/properties/99", admin, nil).Code)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodDelete, "/admin/properties/abc", admin, nil).Code)

	renter := env.token(t, 1, domain.RoleRenter)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodDelete, "/admin/properties/42", renter, nil).Code)
}

func TestAdminDeleteUser(t *testing.T) {
	env := newTestEnv()
	admin := env.token(t, 3, domain.RoleAdmin)

	env.admin.deleteUserFn = func(context.Context, int64) error { return nil }
	rec := env.do(http.MethodDelete, "/admin/users/5", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted")
}
