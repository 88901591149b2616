package service

import (
	"context"
	"time"

	"shareit/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// EventPublisher pushes booking lifecycle events to the broker. A nil
// publisher disables eventing.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

type BookingCreatedEvent struct {
	BookingID string    `json:"booking_id"`
	ItemID    string    `json:"item_id"`
	OwnerID   string    `json:"owner_id"`
	BookerID  string    `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

type BookingStatusChangedEvent struct {
	BookingID string       `json:"booking_id"`
	ItemID    string       `json:"item_id"`
	OwnerID   string       `json:"owner_id"`
	BookerID  string       `json:"booker_id"`
	OldStatus model.Status `json:"old_status"`
	NewStatus model.Status `json:"new_status"`
}

// publish is fire-and-forget: event delivery failures are logged, never
// surfaced to the API caller.
func (s *bookingService) publish(ctx context.Context, eventType, key string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, key, payload); err != nil {
		s.log.Error("failed to publish booking event",
			"event_type", eventType, "booking_id", key, "error", err)
	}
}
