package kafka

import (
	"testing"
)

func TestNewMessageStampsHeaders(t *testing.T) {
	msg, err := NewMessage("booking.created", "b1", "test-service", map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Key != "b1" {
		t.Errorf("expected key b1, got %s", msg.Key)
	}
	if msg.Headers[HeaderEventType] != "booking.created" {
		t.Errorf("expected event type header, got %s", msg.Headers[HeaderEventType])
	}
	if msg.Headers[HeaderSource] != "test-service" {
		t.Errorf("expected source header, got %s", msg.Headers[HeaderSource])
	}
	if msg.Headers[HeaderEventID] == "" {
		t.Errorf("expected a generated event id")
	}
	if msg.Headers[HeaderSchemaVersion] != SchemaVersion {
		t.Errorf("expected schema version %s, got %s", SchemaVersion, msg.Headers[HeaderSchemaVersion])
	}
	if msg.Timestamp.IsZero() {
		t.Errorf("expected a timestamp")
	}
}

func TestNewMessageUniqueEventIDs(t *testing.T) {
	first, _ := NewMessage("e", "k", "s", nil)
	second, _ := NewMessage("e", "k", "s", nil)

	if first.Headers[HeaderEventID] == second.Headers[HeaderEventID] {
		t.Errorf("event ids must be unique per message")
	}
}

func TestDecodeValue(t *testing.T) {
	type payload struct {
		BookingID string `json:"booking_id"`
	}
	msg, err := NewMessage("booking.created", "b1", "test", payload{BookingID: "b1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got payload
	if err := msg.DecodeValue(&got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.BookingID != "b1" {
		t.Errorf("expected booking id b1, got %s", got.BookingID)
	}
}
