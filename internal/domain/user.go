package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type User struct {
	ID               int64     `json:"id"`
	Role             string    `json:"role"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Document         string    `json:"document"`
	Address          string    `json:"address"`
	Number           string    `json:"number"`
	Complement       string    `json:"complement,omitempty"`
	ZipCode          string    `json:"zip_code"`
	IsVerified       bool      `json:"is_verified"`
	VerificationCode *string   `json:"-"` // bcrypt hash of the pending 6-digit code
	TempPassword     *string   `json:"-"` // argon2id hash awaiting code confirmation
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role,omitempty"`
	Phone      string `json:"phone"`
	Document   string `json:"document"`
	Address    string `json:"address"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	ZipCode    string `json:"zip_code"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	User      *UserInfo `json:"user"`
}

// UserInfo is the public projection of a User (no secrets).
type UserInfo struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	Number     *string `json:"number,omitempty"`
	Complement *string `json:"complement,omitempty"`
	ZipCode    *string `json:"zip_code,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ConfirmCodeRequest struct {
	Code string `json:"code"`
}

// Valid user roles
const (
	RoleOwner  = "OWNER"
	RoleRenter = "RENTER"
	RoleAdmin  = "ADMIN"
)

var validRoles = map[string]bool{
	RoleOwner:  true,
	RoleRenter: true,
	RoleAdmin:  true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}

func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !isValidEmail(r.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if !validRoles[r.Role] {
		return fmt.Errorf("%w: invalid role", ErrValidation)
	}
	if r.Phone == "" || r.Document == "" || r.Address == "" || r.Number == "" || r.ZipCode == "" {
		return fmt.Errorf("%w: phone, document, address, number and zip_code are required", ErrValidation)
	}
	return nil
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

func (r *VerifyEmailRequest) Validate() error {
	if r.Email == "" || r.Code == "" {
		return fmt.Errorf("%w: email and code are required", ErrValidation)
	}
	return nil
}

func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" || r.NewPassword == "" {
		return fmt.Errorf("%w: current_password and new_password are required", ErrValidation)
	}
	if len(r.NewPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Role == "" {
		r.Role = RoleRenter
	}
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *VerifyEmailRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Code = strings.TrimSpace(r.Code)
}

// Changes reports whether the patch differs from the stored profile.
func (r *UpdateProfileRequest) Changes(u *User) bool {
	changed := func(p *string, cur string) bool { return p != nil && *p != cur }
	return changed(r.Name, u.Name) ||
		changed(r.Email, u.Email) ||
		changed(r.Phone, u.Phone) ||
		changed(r.Address, u.Address) ||
		changed(r.Number, u.Number) ||
		changed(r.Complement, u.Complement) ||
		changed(r.ZipCode, u.ZipCode)
}

// ToUserInfo converts User to UserInfo (without sensitive data)
func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
