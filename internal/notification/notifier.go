package notification

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veloria-studio/session-booking-backend/internal/artist"
	"github.com/veloria-studio/session-booking-backend/internal/booking"
	"github.com/veloria-studio/session-booking-backend/internal/professional"
)

// BookingNotifier turns booking events into persisted in-app notifications.
// Delivery failures are logged and swallowed so they never fail the booking
// operation that triggered them.
type BookingNotifier struct {
	repo          Repository
	artistService artist.Service
	proService    professional.Service
	logger        *zap.Logger
}

var _ booking.Notifier = (*BookingNotifier)(nil)

func NewBookingNotifier(repo Repository, artistService artist.Service, proService professional.Service, logger *zap.Logger) *BookingNotifier {
	return &BookingNotifier{
		repo:          repo,
		artistService: artistService,
		proService:    proService,
		logger:        logger,
	}
}

func (n *BookingNotifier) deliver(ctx context.Context, userID string, typ Type, title, message, bookingID string) {
	err := n.repo.Create(ctx, &Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		BookingID: &bookingID,
	})
	if err != nil {
		n.logger.Warn("notification delivery failed",
			zap.String("user_id", userID),
			zap.String("type", string(typ)),
			zap.String("booking_id", bookingID),
			zap.Error(err))
	}
}

func (n *BookingNotifier) artistUserID(ctx context.Context, artistID string) (string, bool) {
	a, err := n.artistService.GetByID(ctx, artistID)
	if err != nil {
		n.logger.Warn("notification recipient lookup failed", zap.String("artist_id", artistID), zap.Error(err))
		return "", false
	}
	return a.UserID, true
}

func (n *BookingNotifier) professionalUserID(ctx context.Context, professionalID string) (string, bool) {
	p, err := n.proService.GetByID(ctx, professionalID)
	if err != nil {
		n.logger.Warn("notification recipient lookup failed", zap.String("professional_id", professionalID), zap.Error(err))
		return "", false
	}
	return p.UserID, true
}

func (n *BookingNotifier) ReservationCreated(ctx context.Context, b *booking.Booking) {
	userID, ok := n.professionalUserID(ctx, b.ProfessionalID)
	if !ok {
		return
	}

	message := fmt.Sprintf("%s requested a %s session on %s (%d hours)",
		b.ArtistStageName, b.SessionType, b.StartTime.Format(time.RFC1123), b.DurationHours)
	n.deliver(ctx, userID, TypeBookingRequest, "New booking request", message, b.ID)
}

func (n *BookingNotifier) ReservationStatusChanged(ctx context.Context, b *booking.Booking, from, to booking.Status) {
	when := b.StartTime.Format(time.RFC1123)

	switch to {
	case booking.StatusConfirmed:
		if userID, ok := n.artistUserID(ctx, b.ArtistID); ok {
			message := fmt.Sprintf("%s confirmed your %s session on %s", b.ProfessionalName, b.SessionType, when)
			n.deliver(ctx, userID, TypeBookingConfirmed, "Booking confirmed", message, b.ID)
		}
	case booking.StatusCompleted:
		if userID, ok := n.artistUserID(ctx, b.ArtistID); ok {
			message := fmt.Sprintf("Your %s session with %s is complete", b.SessionType, b.ProfessionalName)
			n.deliver(ctx, userID, TypeBookingCompleted, "Session completed", message, b.ID)
		}
	case booking.StatusCancelled:
		// Either side may have cancelled; tell both.
		message := fmt.Sprintf("The %s session on %s was cancelled", b.SessionType, when)
		if userID, ok := n.artistUserID(ctx, b.ArtistID); ok {
			n.deliver(ctx, userID, TypeBookingCancelled, "Booking cancelled", message, b.ID)
		}
		if userID, ok := n.professionalUserID(ctx, b.ProfessionalID); ok {
			n.deliver(ctx, userID, TypeBookingCancelled, "Booking cancelled", message, b.ID)
		}
	}
}
