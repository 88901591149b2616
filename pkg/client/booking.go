package client

import (
	"net/url"
	"strconv"

	"shareit/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{httpClient: NewHttpClient(baseURL)}
}

func (c *BookingClient) Create(bookerID string, booking *model.IncomingBooking) (*Response, error) {
	return c.httpClient.POST("/bookings", booking, identity(bookerID))
}

func (c *BookingClient) Approve(ownerID, bookingID string, approved bool) (*Response, error) {
	path := "/bookings/id/" + url.PathEscape(bookingID) + "?approved=" + strconv.FormatBool(approved)
	return c.httpClient.PATCH(path, struct{}{}, identity(ownerID))
}

func (c *BookingClient) GetByID(userID, bookingID string) (*Response, error) {
	return c.httpClient.GET("/bookings/id/"+url.PathEscape(bookingID), identity(userID))
}

func (c *BookingClient) GetByBooker(bookerID string, state model.State, from, size *int) (*Response, error) {
	return c.httpClient.GET("/bookings?"+stateQuery(state, from, size), identity(bookerID))
}

func (c *BookingClient) GetByOwner(ownerID string, state model.State, from, size *int) (*Response, error) {
	return c.httpClient.GET("/bookings/owner?"+stateQuery(state, from, size), identity(ownerID))
}

func stateQuery(state model.State, from, size *int) string {
	q := url.Values{}
	q.Set("state", string(state))
	if from != nil {
		q.Set("from", strconv.Itoa(*from))
	}
	if size != nil {
		q.Set("size", strconv.Itoa(*size))
	}
	return q.Encode()
}
