package user

import (
	"errors"
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/auth"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrInvalidRole        = errors.New("role must be artist or professional")
)

// User represents an account in the system. Every user is either an artist
// (books sessions) or a professional (gets booked); the role is fixed at
// registration.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Bio          string
	Location     string
	Phone        string
	Website      string
	Role         auth.Role
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}
