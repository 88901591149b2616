package client

import (
	"net/url"

	"shareit/pkg/model"
)

type UserClient struct {
	httpClient *HttpClient
}

func NewUserClient(baseURL string) *UserClient {
	return &UserClient{httpClient: NewHttpClient(baseURL)}
}

func (c *UserClient) Create(user *model.User) (*Response, error) {
	return c.httpClient.POST("/users", user, nil)
}

func (c *UserClient) GetByID(userID string) (*Response, error) {
	return c.httpClient.GET("/users/id/"+url.PathEscape(userID), nil)
}

func (c *UserClient) GetAll() (*Response, error) {
	return c.httpClient.GET("/users", nil)
}

func (c *UserClient) Update(userID string, update *model.UserUpdate) (*Response, error) {
	return c.httpClient.PATCH("/users/id/"+url.PathEscape(userID), update, nil)
}

func (c *UserClient) Delete(userID string) (*Response, error) {
	return c.httpClient.DELETE("/users/id/"+url.PathEscape(userID), nil)
}
