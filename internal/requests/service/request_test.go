package service

import (
	"context"
	"io"
	"testing"
	"time"

	requestserrors "shareit/internal/requests/errors"
	userserrors "shareit/internal/users/errors"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/go-playground/validator/v10"
)

const (
	requestorID = "64f0c2a7e13d5a0001a3b9c1"
	otherUserID = "64f0c2a7e13d5a0001a3b9c2"
	requestID   = "64f0c2a7e13d5a0001a3b9f1"
)

type mockRequestRepository struct {
	createFunc          func(ctx context.Context, request *model.ItemRequest) error
	findByIDFunc        func(ctx context.Context, id string) (*model.ItemRequest, error)
	findByRequestorFunc func(ctx context.Context, requestorID string) ([]*model.ItemRequest, error)
	findByOthersFunc    func(ctx context.Context, requestorID string, from, size *int) ([]*model.ItemRequest, error)
}

func (m *mockRequestRepository) Create(ctx context.Context, request *model.ItemRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, request)
	}
	request.ID = requestID
	return nil
}

func (m *mockRequestRepository) FindByID(ctx context.Context, id string) (*model.ItemRequest, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.ItemRequest{ID: id, Description: "need a drill", RequestorID: requestorID}, nil
}

func (m *mockRequestRepository) FindByRequestor(ctx context.Context, requestorID string) ([]*model.ItemRequest, error) {
	if m.findByRequestorFunc != nil {
		return m.findByRequestorFunc(ctx, requestorID)
	}
	return []*model.ItemRequest{}, nil
}

func (m *mockRequestRepository) FindByOthers(ctx context.Context, requestorID string, from, size *int) ([]*model.ItemRequest, error) {
	if m.findByOthersFunc != nil {
		return m.findByOthersFunc(ctx, requestorID, from, size)
	}
	return []*model.ItemRequest{}, nil
}

type mockUserReader struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserReader) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
}

type mockItemReader struct {
	findByRequestIDsFunc func(ctx context.Context, requestIDs []string) ([]*model.Item, error)
}

func (m *mockItemReader) FindByRequestIDs(ctx context.Context, requestIDs []string) ([]*model.Item, error) {
	if m.findByRequestIDsFunc != nil {
		return m.findByRequestIDsFunc(ctx, requestIDs)
	}
	return []*model.Item{}, nil
}

func newTestService(requests *mockRequestRepository, users *mockUserReader, items *mockItemReader) *requestService {
	return &requestService{
		requests: requests,
		users:    users,
		items:    items,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard, Service: "test"}),
		now:      time.Now,
	}
}

func assertAppError(t *testing.T, err error, code string, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (message: %s)", code, appErr.Code, appErr.Message)
	}
	if appErr.StatusCode() != status {
		t.Errorf("expected status %d, got %d", status, appErr.StatusCode())
	}
}

func TestCreateRequestorNotFound(t *testing.T) {
	users := &mockUserReader{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, userserrors.ErrNotFound
		},
	}
	svc := newTestService(&mockRequestRepository{}, users, &mockItemReader{})

	_, err := svc.Create(context.Background(), requestorID, &model.IncomingItemRequest{Description: "need a drill"})
	assertAppError(t, err, apperrors.CodeNotFound, 404)
}

func TestCreateBlankDescription(t *testing.T) {
	svc := newTestService(&mockRequestRepository{}, &mockUserReader{}, &mockItemReader{})

	_, err := svc.Create(context.Background(), requestorID, &model.IncomingItemRequest{Description: "   "})
	assertAppError(t, err, apperrors.CodeValidation, 400)
}

func TestCreateStampsCreated(t *testing.T) {
	var saved *model.ItemRequest
	requests := &mockRequestRepository{
		createFunc: func(ctx context.Context, request *model.ItemRequest) error {
			saved = request
			request.ID = requestID
			return nil
		},
	}
	svc := newTestService(requests, &mockUserReader{}, &mockItemReader{})

	view, err := svc.Create(context.Background(), requestorID, &model.IncomingItemRequest{Description: " need a drill "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Created.IsZero() {
		t.Errorf("expected created timestamp to be set")
	}
	if saved.RequestorID != requestorID {
		t.Errorf("expected requestor %s, got %s", requestorID, saved.RequestorID)
	}
	if view.Description != "need a drill" {
		t.Errorf("expected normalized description, got %q", view.Description)
	}
	if view.Items == nil {
		t.Errorf("expected items to encode as [], got nil")
	}
}

func TestGetOwnGroupsItemsByRequest(t *testing.T) {
	secondRequestID := "64f0c2a7e13d5a0001a3b9f2"
	batches := 0

	requests := &mockRequestRepository{
		findByRequestorFunc: func(ctx context.Context, id string) ([]*model.ItemRequest, error) {
			return []*model.ItemRequest{
				{ID: requestID, Description: "need a drill", RequestorID: id},
				{ID: secondRequestID, Description: "need a saw", RequestorID: id},
			}, nil
		},
	}
	items := &mockItemReader{
		findByRequestIDsFunc: func(ctx context.Context, requestIDs []string) ([]*model.Item, error) {
			batches++
			available := true
			return []*model.Item{
				{ID: "64f0c2a7e13d5a0001a3b9d1", Name: "drill", Description: "power drill", Available: &available, RequestID: requestID},
				{ID: "64f0c2a7e13d5a0001a3b9d2", Name: "saw", Description: "hand saw", Available: &available, RequestID: secondRequestID},
				{ID: "64f0c2a7e13d5a0001a3b9d3", Name: "drill 2", Description: "another drill", Available: &available, RequestID: requestID},
			}, nil
		},
	}
	svc := newTestService(requests, &mockUserReader{}, items)

	views, err := svc.GetOwn(context.Background(), requestorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batches != 1 {
		t.Errorf("expected one batched item lookup, got %d", batches)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if len(views[0].Items) != 2 {
		t.Errorf("expected 2 items on the first request, got %d", len(views[0].Items))
	}
	if len(views[1].Items) != 1 {
		t.Errorf("expected 1 item on the second request, got %d", len(views[1].Items))
	}
}

func TestGetByIDNotFound(t *testing.T) {
	requests := &mockRequestRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.ItemRequest, error) {
			return nil, requestserrors.ErrNotFound
		},
	}
	svc := newTestService(requests, &mockUserReader{}, &mockItemReader{})

	_, err := svc.GetByID(context.Background(), requestorID, requestID)
	assertAppError(t, err, apperrors.CodeNotFound, 404)
}

func TestGetByIDVisibleToAnyUser(t *testing.T) {
	svc := newTestService(&mockRequestRepository{}, &mockUserReader{}, &mockItemReader{})

	view, err := svc.GetByID(context.Background(), otherUserID, requestID)
	if err != nil {
		t.Fatalf("any existing user may read a request: %v", err)
	}
	if view.ID != requestID {
		t.Errorf("expected request %s, got %s", requestID, view.ID)
	}
}
