package model

import "time"

// Comment is immutable once created. AuthorName is denormalized so comment
// views never need a user lookup.
type Comment struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ItemID     string    `json:"item_id" bson:"item_id" validate:"required,mongodb"`
	AuthorID   string    `json:"author_id" bson:"author_id" validate:"required,mongodb"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	Text       string    `json:"text" bson:"text" validate:"required,min=1"`
	Created    time.Time `json:"created" bson:"created"`
}

type IncomingComment struct {
	Text string `json:"text" validate:"required,min=1"`
}
