package client

import (
	"net/url"
	"strconv"

	shareithttp "shareit/pkg/http"
	"shareit/pkg/model"
)

type ItemClient struct {
	httpClient *HttpClient
}

func NewItemClient(baseURL string) *ItemClient {
	return &ItemClient{httpClient: NewHttpClient(baseURL)}
}

func identity(userID string) map[string]string {
	return map[string]string{shareithttp.UserIDHeader: userID}
}

func (c *ItemClient) Create(ownerID string, item *model.Item) (*Response, error) {
	return c.httpClient.POST("/items", item, identity(ownerID))
}

func (c *ItemClient) GetByID(userID, itemID string) (*Response, error) {
	return c.httpClient.GET("/items/id/"+url.PathEscape(itemID), identity(userID))
}

func (c *ItemClient) GetOwnItems(ownerID string, from, size *int) (*Response, error) {
	path := "/items"
	if encoded := pageQuery(from, size).Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.httpClient.GET(path, identity(ownerID))
}

func (c *ItemClient) Update(ownerID, itemID string, update *model.ItemUpdate) (*Response, error) {
	return c.httpClient.PATCH("/items/id/"+url.PathEscape(itemID), update, identity(ownerID))
}

func (c *ItemClient) Search(userID, text string, from, size *int) (*Response, error) {
	q := pageQuery(from, size)
	q.Set("text", text)
	return c.httpClient.GET("/items/search?"+q.Encode(), identity(userID))
}

func pageQuery(from, size *int) url.Values {
	q := url.Values{}
	if from != nil {
		q.Set("from", strconv.Itoa(*from))
	}
	if size != nil {
		q.Set("size", strconv.Itoa(*size))
	}
	return q
}

func (c *ItemClient) AddComment(authorID, itemID string, comment *model.IncomingComment) (*Response, error) {
	return c.httpClient.POST("/items/id/"+url.PathEscape(itemID)+"/comment", comment, identity(authorID))
}
