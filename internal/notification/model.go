package notification

import (
	"net/http"
	"time"

	"github.com/veloria-studio/session-booking-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "not_found", "notification not found")

type Type string

const (
	TypeBookingRequest   Type = "booking_request"
	TypeBookingConfirmed Type = "booking_confirmed"
	TypeBookingCancelled Type = "booking_cancelled"
	TypeBookingCompleted Type = "booking_completed"
	TypeSystem           Type = "system"
)

// Notification is an in-app message for a single user. BookingID links back
// to the booking that produced it, when there is one.
type Notification struct {
	ID        string
	UserID    string
	Type      Type
	Title     string
	Message   string
	BookingID *string
	IsRead    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing notifications.
type Filter struct {
	UserID     string
	OnlyUnread bool
	Page       int
	PageSize   int
}
