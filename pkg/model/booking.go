package model

import "time"

// Status is the booking's lifecycle value. Bookings are created WAITING and
// moved to APPROVED or REJECTED by the item's owner.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// State is a view filter over booking status and time, not the same thing as
// Status: CURRENT/PAST/FUTURE are computed against the query time.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState maps a raw query value onto a State. The empty string defaults
// to ALL; anything unrecognized is reported to the caller, not coerced.
func ParseState(raw string) (State, bool) {
	if raw == "" {
		return StateAll, true
	}
	switch State(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(raw), true
	}
	return "", false
}

type Booking struct {
	ID       string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ItemID   string    `json:"item_id" bson:"item_id" validate:"required,mongodb"`
	OwnerID  string    `json:"owner_id,omitempty" bson:"owner_id" validate:"omitempty,mongodb"`
	BookerID string    `json:"booker_id,omitempty" bson:"booker_id" validate:"omitempty,mongodb"`
	Start    time.Time `json:"start" bson:"start" validate:"required"`
	End      time.Time `json:"end" bson:"end" validate:"required"`
	Status   Status    `json:"status" bson:"status" validate:"required,oneof=WAITING APPROVED REJECTED"`
}

// IncomingBooking is the payload a booker submits. OwnerID is denormalized
// from the item at creation, BookerID from the identity header.
type IncomingBooking struct {
	ItemID string    `json:"item_id" validate:"required,mongodb"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}
