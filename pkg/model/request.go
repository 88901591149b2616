package model

import "time"

// ItemRequest records "I'm looking for X". Items listed against it later
// reference it through Item.RequestID.
type ItemRequest struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Description string    `json:"description" bson:"description" validate:"required,min=1"`
	RequestorID string    `json:"requestor_id,omitempty" bson:"requestor_id" validate:"omitempty,mongodb"`
	Created     time.Time `json:"created" bson:"created"`
}

type IncomingItemRequest struct {
	Description string `json:"description" validate:"required,min=1"`
}
