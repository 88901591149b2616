package client

import (
	"net/url"

	"shareit/pkg/model"
)

type RequestClient struct {
	httpClient *HttpClient
}

func NewRequestClient(baseURL string) *RequestClient {
	return &RequestClient{httpClient: NewHttpClient(baseURL)}
}

func (c *RequestClient) Create(requestorID string, request *model.IncomingItemRequest) (*Response, error) {
	return c.httpClient.POST("/requests", request, identity(requestorID))
}

func (c *RequestClient) GetOwn(requestorID string) (*Response, error) {
	return c.httpClient.GET("/requests", identity(requestorID))
}

func (c *RequestClient) GetOthers(requestorID string, from, size *int) (*Response, error) {
	path := "/requests/all"
	if encoded := pageQuery(from, size).Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.httpClient.GET(path, identity(requestorID))
}

func (c *RequestClient) GetByID(userID, requestID string) (*Response, error) {
	return c.httpClient.GET("/requests/id/"+url.PathEscape(requestID), identity(userID))
}
