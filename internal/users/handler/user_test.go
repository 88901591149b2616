package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "shareit/pkg/errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const userID = "64f0c2a7e13d5a0001a3b9c1"

type mockUserService struct {
	createFunc  func(ctx context.Context, user *model.User) (*model.User, error)
	getByIDFunc func(ctx context.Context, id string) (*model.User, error)
	getAllFunc  func(ctx context.Context) ([]*model.User, error)
	updateFunc  func(ctx context.Context, id string, patch *model.UserUpdate) (*model.User, error)
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockUserService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = userID
	return user, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
}

func (m *mockUserService) GetAll(ctx context.Context) ([]*model.User, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return []*model.User{}, nil
}

func (m *mockUserService) Update(ctx context.Context, id string, patch *model.UserUpdate) (*model.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return &model.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newRouter(svc *mockUserService) *httprouter.Router {
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard, Service: "test"})
	router := httprouter.New()
	NewUserHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestCreateReturns201(t *testing.T) {
	router := newRouter(&mockUserService{})

	r := httptest.NewRequest("POST", "/users", strings.NewReader(`{"name":"Alice","email":"alice@example.com"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), userID) {
		t.Errorf("expected assigned id in body, got %s", w.Body.String())
	}
}

func TestCreateMalformedBody(t *testing.T) {
	router := newRouter(&mockUserService{})

	r := httptest.NewRequest("POST", "/users", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetByIDNotFoundStatus(t *testing.T) {
	svc := &mockUserService{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, apperrors.NotFoundWithID("User", id)
		},
	}
	router := newRouter(svc)

	r := httptest.NewRequest("GET", "/users/id/"+userID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "NOT_FOUND") {
		t.Errorf("expected NOT_FOUND code in body, got %s", w.Body.String())
	}
}

func TestConflictStatus(t *testing.T) {
	svc := &mockUserService{
		createFunc: func(ctx context.Context, user *model.User) (*model.User, error) {
			return nil, apperrors.Conflict("email is already in use")
		},
	}
	router := newRouter(svc)

	r := httptest.NewRequest("POST", "/users", strings.NewReader(`{"name":"Alice","email":"taken@example.com"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestDeleteReturns204(t *testing.T) {
	router := newRouter(&mockUserService{})

	r := httptest.NewRequest("DELETE", "/users/id/"+userID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}
