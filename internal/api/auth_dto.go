package api

import (
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/user"
)

// RegisterRequest is the payload for POST /v1/auth/register. Role is fixed at
// registration and decides which profile gets created alongside the account.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role" binding:"required,oneof=artist professional"`

	// Artist profile fields.
	StageName string `json:"stage_name"`
	Genres    string `json:"genres"`

	// Professional profile fields.
	Specialization string `json:"specialization"`
	Skills         string `json:"skills"`
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateMeRequest is the payload for PATCH /v1/me. Omitted fields are kept.
type UpdateMeRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	Phone       *string `json:"phone"`
	Website     *string `json:"website" binding:"omitempty,url"`
}

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name,omitempty"`
	Bio         string     `json:"bio"`
	Location    string     `json:"location"`
	Phone       string     `json:"phone"`
	Website     string     `json:"website"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// RegisterResponse is the response for POST /v1/auth/register.
type RegisterResponse struct {
	User      UserResponse `json:"user"`
	ProfileID string       `json:"profile_id"`
}

// LoginResponse is the response for POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse is the response for GET /v1/me.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	var lastLoginAt *time.Time
	if u.LastLoginAt != nil {
		ll := *u.LastLoginAt
		lastLoginAt = &ll
	}

	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		Location:    u.Location,
		Phone:       u.Phone,
		Website:     u.Website,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
		LastLoginAt: lastLoginAt,
		IsActive:    u.IsActive,
	}
}
