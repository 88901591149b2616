package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is the wire shape for booking lifecycle events.
type Message struct {
	Key       string            // partition key (booking id)
	Value     []byte            // JSON-encoded payload
	Headers   map[string]string // event metadata
	Timestamp time.Time
}

const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderSchemaVersion = "schema-version"
)

const SchemaVersion = "1"

// NewMessage encodes payload and stamps the standard headers. Every message
// gets a fresh event ID.
func NewMessage(eventType, key, source string, payload any) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	now := time.Now().UTC()
	return Message{
		Key:       key,
		Value:     value,
		Timestamp: now,
		Headers: map[string]string{
			HeaderEventID:       uuid.NewString(),
			HeaderEventType:     eventType,
			HeaderSource:        source,
			HeaderTimestamp:     now.Format(time.RFC3339),
			HeaderSchemaVersion: SchemaVersion,
		},
	}, nil
}

func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}
