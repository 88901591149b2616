package model

type Item struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string `json:"name" bson:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" bson:"description" validate:"required,min=1,max=510"`
	Available   *bool  `json:"available" bson:"available" validate:"required"`
	OwnerID     string `json:"owner_id,omitempty" bson:"owner_id" validate:"omitempty,mongodb"`
	RequestID   string `json:"request_id,omitempty" bson:"request_id,omitempty" validate:"omitempty,mongodb"`
}

// IsAvailable treats a missing flag as not bookable.
func (i *Item) IsAvailable() bool {
	return i.Available != nil && *i.Available
}

// ItemUpdate carries a partial update by the owner. OwnerID and RequestID are
// assigned at creation and never change.
type ItemUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=510"`
	Available   *bool   `json:"available,omitempty"`
}
