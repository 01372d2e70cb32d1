package booking

import "context"

// Notifier consumes booking domain events. The scheduling service only emits;
// delivering messages, emails or push notifications is the consumer's job.
// Implementations must not block the request for long and must not fail the
// booking operation.
type Notifier interface {
	ReservationCreated(ctx context.Context, b *Booking)
	ReservationStatusChanged(ctx context.Context, b *Booking, from, to Status)
}

// NopNotifier discards all events. Useful in tests and tooling.
type NopNotifier struct{}

func (NopNotifier) ReservationCreated(ctx context.Context, b *Booking) {}

func (NopNotifier) ReservationStatusChanged(ctx context.Context, b *Booking, from, to Status) {}
