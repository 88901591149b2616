package model

type User struct {
	ID    string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name  string `json:"name" bson:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" bson:"email" validate:"required,email"`
}

// UserUpdate carries a partial update: only non-nil fields overwrite.
type UserUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}
