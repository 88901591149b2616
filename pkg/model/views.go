package model

import "time"

// Presentation views projected from entities. Mapping functions are pure;
// handlers and services assemble views, stores never see them.

type ShortUserView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   string `json:"request_id,omitempty"`
}

type BookingView struct {
	ID     string        `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status Status        `json:"status"`
	Item   ItemView      `json:"item"`
	Booker ShortUserView `json:"booker"`
}

// BookingBrief is the compact shape embedded in an owner's item view as
// last_booking / next_booking.
type BookingBrief struct {
	ID       string    `json:"id"`
	BookerID string    `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentView struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

type ItemFullView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	LastBooking *BookingBrief `json:"last_booking,omitempty"`
	NextBooking *BookingBrief `json:"next_booking,omitempty"`
	Comments    []CommentView `json:"comments"`
}

type ItemRequestView struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Created     time.Time  `json:"created"`
	Items       []ItemView `json:"items"`
}

func ToShortUserView(u *User) ShortUserView {
	return ShortUserView{ID: u.ID, Name: u.Name}
}

func ToItemView(i *Item) ItemView {
	return ItemView{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.IsAvailable(),
		RequestID:   i.RequestID,
	}
}

func ToBookingView(b *Booking, item *Item, booker *User) BookingView {
	return BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   ToItemView(item),
		Booker: ToShortUserView(booker),
	}
}

func ToBookingBrief(b *Booking) *BookingBrief {
	if b == nil {
		return nil
	}
	return &BookingBrief{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

func ToCommentView(c *Comment) CommentView {
	return CommentView{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.Created}
}

func ToItemFullView(i *Item, last, next *BookingBrief, comments []CommentView) ItemFullView {
	if comments == nil {
		comments = []CommentView{}
	}
	return ItemFullView{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.IsAvailable(),
		LastBooking: last,
		NextBooking: next,
		Comments:    comments,
	}
}

func ToItemRequestView(r *ItemRequest, items []ItemView) ItemRequestView {
	if items == nil {
		items = []ItemView{}
	}
	return ItemRequestView{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
		Items:       items,
	}
}
