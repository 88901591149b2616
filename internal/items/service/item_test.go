package service

import (
	"context"
	"io"
	"testing"
	"time"

	itemserrors "shareit/internal/items/errors"
	requestserrors "shareit/internal/requests/errors"
	userserrors "shareit/internal/users/errors"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/go-playground/validator/v10"
)

const (
	ownerID   = "64f0c2a7e13d5a0001a3b9c1"
	renterID  = "64f0c2a7e13d5a0001a3b9c2"
	itemID    = "64f0c2a7e13d5a0001a3b9d1"
	requestID = "64f0c2a7e13d5a0001a3b9f1"
)

type mockItemRepository struct {
	createFunc      func(ctx context.Context, item *model.Item) error
	findByIDFunc    func(ctx context.Context, id string) (*model.Item, error)
	findByOwnerFunc func(ctx context.Context, ownerID string, from, size *int) ([]*model.Item, error)
	searchFunc      func(ctx context.Context, text string, from, size *int) ([]*model.Item, error)
	updateFunc      func(ctx context.Context, id string, item *model.Item) error
}

func (m *mockItemRepository) Create(ctx context.Context, item *model.Item) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	item.ID = itemID
	return nil
}

func (m *mockItemRepository) FindByID(ctx context.Context, id string) (*model.Item, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return ownedItem(), nil
}

func (m *mockItemRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Item, error) {
	return []*model.Item{}, nil
}

func (m *mockItemRepository) FindByOwner(ctx context.Context, ownerID string, from, size *int) ([]*model.Item, error) {
	if m.findByOwnerFunc != nil {
		return m.findByOwnerFunc(ctx, ownerID, from, size)
	}
	return []*model.Item{}, nil
}

func (m *mockItemRepository) FindByRequestIDs(ctx context.Context, requestIDs []string) ([]*model.Item, error) {
	return []*model.Item{}, nil
}

func (m *mockItemRepository) Search(ctx context.Context, text string, from, size *int) ([]*model.Item, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, text, from, size)
	}
	return []*model.Item{}, nil
}

func (m *mockItemRepository) Update(ctx context.Context, id string, item *model.Item) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, item)
	}
	return nil
}

type mockCommentRepository struct {
	createFunc       func(ctx context.Context, comment *model.Comment) error
	findByItemIDFunc func(ctx context.Context, itemID string) ([]*model.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, comment)
	}
	comment.ID = "64f0c2a7e13d5a0001a3b9a1"
	return nil
}

func (m *mockCommentRepository) FindByItemID(ctx context.Context, itemID string) ([]*model.Comment, error) {
	if m.findByItemIDFunc != nil {
		return m.findByItemIDFunc(ctx, itemID)
	}
	return []*model.Comment{}, nil
}

func (m *mockCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []string) (map[string][]*model.Comment, error) {
	return map[string][]*model.Comment{}, nil
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

type mockRequestReader struct {
	findByIDFunc func(ctx context.Context, id string) (*model.ItemRequest, error)
}

func (m *mockRequestReader) FindByID(ctx context.Context, id string) (*model.ItemRequest, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.ItemRequest{ID: id, Description: "need a drill"}, nil
}

type mockBookingReader struct {
	lastFunc   func(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error)
	nextFunc   func(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error)
	existsFunc func(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

func (m *mockBookingReader) LastApprovedByItem(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error) {
	if m.lastFunc != nil {
		return m.lastFunc(ctx, itemIDs, now)
	}
	return map[string]*model.Booking{}, nil
}

func (m *mockBookingReader) NextApprovedByItem(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error) {
	if m.nextFunc != nil {
		return m.nextFunc(ctx, itemIDs, now)
	}
	return map[string]*model.Booking{}, nil
}

func (m *mockBookingReader) ExistsFinished(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, itemID, bookerID, now)
	}
	return false, nil
}

func ownedItem() *model.Item {
	available := true
	return &model.Item{
		ID:          itemID,
		Name:        "drill",
		Description: "power drill",
		Available:   &available,
		OwnerID:     ownerID,
	}
}

func newTestService(items *mockItemRepository, comments *mockCommentRepository, users *mockUserReader, requests *mockRequestReader, bookings *mockBookingReader) *itemService {
	return &itemService{
		items:    items,
		comments: comments,
		users:    users,
		requests: requests,
		bookings: bookings,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard, Service: "test"}),
		now:      time.Now,
	}
}

func assertAppError(t *testing.T, err error, code string, status int) *apperrors.AppError {
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
	return appErr
}

func TestCreateOwnerNotFound(t *testing.T) {
	users := &mockUserReader{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, userserrors.ErrNotFound
		},
	}
	svc := newTestService(&mockItemRepository{}, &mockCommentRepository{}, users, &mockRequestReader{}, &mockBookingReader{})

	available := true
	_, err := svc.Create(context.Background(), ownerID, &model.Item{
		Name: "drill", Description: "power drill", Available: &available,
	})
	assertAppError(t, err, apperrors.CodeNotFound, 404)
}

func TestCreateMissingAvailableFlag(t *testing.T) {
	svc := newTestService(&mockItemRepository{}, &mockCommentRepository{}, &mockUserReader{}, &mockRequestReader{}, &mockBookingReader{})

	_, err := svc.Create(context.Background(), ownerID, &model.Item{
		Name: "drill", Description: "power drill",
	})
	assertAppError(t, err, apperrors.CodeValidation, 400)
}

func TestCreateAgainstMissingRequest(t *testing.T) {
	requests := &mockRequestReader{
		findByIDFunc: func(ctx context.Context, id string) (*model.ItemRequest, error) {
			return nil, requestserrors.ErrNotFound
		},
	}
	svc := newTestService(&mockItemRepository{}, &mockCommentRepository{}, &mockUserReader{}, requests, &mockBookingReader{})

	available := true
	_, err := svc.Create(context.Background(), ownerID, &model.Item{
		Name: "drill", Description: "power drill", Available: &available, RequestID: requestID,
	})
	assertAppError(t, err, apperrors.CodeNotFound, 404)
}

func TestCreateAssignsOwner(t *testing.T) {
	svc := newTestService(&mockItemRepository{}, &mockCommentRepository{}, &mockUserReader{}, &mockRequestReader{}, &mockBookingReader{})

	available := true
	created, err := svc.Create(context.Background(), ownerID, &model.Item{
		Name: "  drill ", Description: "power drill", Available: &available,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.OwnerID != ownerID {
		t.Errorf("expected owner %s, got %s", ownerID, created.OwnerID)
	}
	if created.Name != "drill" {
		t.Errorf("expected normalized name, got %q", created.Name)
	}
}

func TestUpdateByNonOwnerHidden(t *testing.T) {
	svc := newTestService(&mockItemRepository{}, &mockCommentRepository{}, &mockUserReader{}, &mockRequestReader{}, &mockBookingReader{})

	name := "saw"
	_, err := svc.Update(context.Background(), renterID, itemID, &model.ItemUpdate{Name: &name})
	assertAppError(t, err, apperrors.CodeNotFound, 404)
}

func TestUpdatePartialPatch(t *testing.T) {
	var saved *model.Item
	items := &mockItemRepository{
		updateFunc: func(ctx context.Context, id string, item *model.Item) error {
			saved = item
			return nil
		},
	}
	svc := newTestService(items, &mockCommentRepository{}, &mockUserReader{}, &mockRequestReader{}, &mockBookingReader{})

	unavailable := false
	updated, err := svc.Update(context.Background(), ownerID, itemID, &model.ItemUpdate{Available: &unavailable})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "drill" || updated.Description != "power drill" {
		t.Errorf("untouched fields must survive the patch")
	}
	if saved == nil || saved.IsAvailable() {
		t.Errorf("expected availability to flip to false")
	}
}

func TestGetByIDOwnerSeesBookings(t *testing.T) {
	last := &model.Booking{ID: "64f0c2a7e13d5a0001a3b9e1", ItemID: itemID, BookerID: renterID}
	next := &model.Booking{ID: "64f0c2a7e13d5a0001a3b9e2", ItemID: itemID, BookerID: renterID}
	bookings := &mockBookingReader{
		lastFunc: func(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error) {
			return map[string]*model.Booking{itemID: last}, nil
		},
		nextFunc: func(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error) {
			return map[string]*model.Booking{itemID: next}, nil
		},
	}
	svc := newTestService(&mockItemRepository{}, &mockCommentRepository{}, &mockUserReader{}, &mockRequestReader{}, bookings)

	view, err := svc.GetByID(context.Background(), ownerID, itemID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.LastBooking == nil || view.LastBooking.ID != last.ID {
		t.Errorf("owner must see the last booking")
	}
	if view.NextBooking == nil || view.NextBooking.ID != next.ID {
		t.Errorf("owner must see the next booking")
	}
}

func TestGetByIDStrangerSeesNoBookings(t *testing.T) {
	bookings := &mockBookingReader{
		lastFunc: func(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error) {
			t.Errorf("booking lookup must not run for a non-owner")
			return nil, nil
		},
	}
	svc := newTestService(&mockItemRepository{}, &mockCommentRepository{}, &mockUserReader{}, &mockRequestReader{}, bookings)

	view, err := svc.GetByID(context.Background(), renterID, itemID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.LastBooking != nil || view.NextBooking != nil {
		t.Errorf("non-owner must not see booking facts")
	}
}

func TestSearchBlankTextShortCircuits(t *testing.T) {
	items := &mockItemRepository{
		searchFunc: func(ctx context.Context, text string, from, size *int) ([]*model.Item, error) {
			t.Errorf("repository search must not run for blank text")
			return nil, nil
		},
	}
	svc := newTestService(items, &mockCommentRepository{}, &mockUserReader{}, &mockRequestReader{}, &mockBookingReader{})

	views, err := svc.Search(context.Background(), "   ", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("expected empty result, got %d", len(views))
	}
}

func TestAddCommentWithoutFinishedBooking(t *testing.T) {
	svc := newTestService(&mockItemRepository{}, &mockCommentRepository{}, &mockUserReader{}, &mockRequestReader{}, &mockBookingReader{})

	_, err := svc.AddComment(context.Background(), renterID, itemID, &model.IncomingComment{Text: "great drill"})
	assertAppError(t, err, apperrors.CodeValidation, 400)
}

func TestAddCommentDenormalizesAuthorName(t *testing.T) {
	var saved *model.Comment
	comments := &mockCommentRepository{
		createFunc: func(ctx context.Context, comment *model.Comment) error {
			saved = comment
			comment.ID = "64f0c2a7e13d5a0001a3b9a1"
			return nil
		},
	}
	bookings := &mockBookingReader{
		existsFunc: func(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := newTestService(&mockItemRepository{}, comments, &mockUserReader{}, &mockRequestReader{}, bookings)

	view, err := svc.AddComment(context.Background(), renterID, itemID, &model.IncomingComment{Text: " great  drill "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.AuthorName != "Alice" {
		t.Errorf("expected denormalized author name, got %q", saved.AuthorName)
	}
	if view.Text != "great drill" {
		t.Errorf("expected normalized text, got %q", view.Text)
	}
	if view.AuthorName != "Alice" {
		t.Errorf("expected author name in view, got %q", view.AuthorName)
	}
}

func TestAddCommentBlankText(t *testing.T) {
	svc := newTestService(&mockItemRepository{}, &mockCommentRepository{}, &mockUserReader{}, &mockRequestReader{}, &mockBookingReader{})

	_, err := svc.AddComment(context.Background(), renterID, itemID, &model.IncomingComment{Text: "   "})
	assertAppError(t, err, apperrors.CodeValidation, 400)
}

func TestAddCommentMissingItemReportedBeforeMissingAuthor(t *testing.T) {
	items := &mockItemRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Item, error) {
			return nil, itemserrors.ErrNotFound
		},
	}
	users := &mockUserReader{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, userserrors.ErrNotFound
		},
	}
	svc := newTestService(items, &mockCommentRepository{}, users, &mockRequestReader{}, &mockBookingReader{})

	_, err := svc.AddComment(context.Background(), renterID, itemID, &model.IncomingComment{Text: "great drill"})
	appErr := assertAppError(t, err, apperrors.CodeNotFound, 404)
	if appErr.Message != "Item with id = "+itemID+" not found" {
		t.Errorf("expected the missing item to be reported, got %q", appErr.Message)
	}
}
