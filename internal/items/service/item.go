package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	itemserrors "shareit/internal/items/errors"
	"shareit/internal/items/repository"
	requestserrors "shareit/internal/requests/errors"
	userserrors "shareit/internal/users/errors"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"shareit/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// UserReader is the slice of the users domain this service needs.
type UserReader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// RequestReader resolves the item request an item replies to.
type RequestReader interface {
	FindByID(ctx context.Context, id string) (*model.ItemRequest, error)
}

// BookingReader supplies booking facts for item views and the comment gate.
type BookingReader interface {
	LastApprovedByItem(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error)
	NextApprovedByItem(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error)
	ExistsFinished(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

type ItemService interface {
	Create(ctx context.Context, ownerID string, item *model.Item) (*model.Item, error)
	Update(ctx context.Context, ownerID, itemID string, patch *model.ItemUpdate) (*model.Item, error)
	GetByID(ctx context.Context, callerID, itemID string) (*model.ItemFullView, error)
	GetByOwner(ctx context.Context, ownerID string, from, size *int) ([]model.ItemFullView, error)
	Search(ctx context.Context, text string, from, size *int) ([]model.ItemView, error)
	AddComment(ctx context.Context, authorID, itemID string, incoming *model.IncomingComment) (*model.CommentView, error)
}

type itemService struct {
	items    repository.ItemRepository
	comments repository.CommentRepository
	users    UserReader
	requests RequestReader
	bookings BookingReader
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewItemService(
	items repository.ItemRepository,
	comments repository.CommentRepository,
	users UserReader,
	requests RequestReader,
	bookings BookingReader,
	log *logger.Logger,
) ItemService {
	return &itemService{
		items:    items,
		comments: comments,
		users:    users,
		requests: requests,
		bookings: bookings,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
	}
}

func (s *itemService) Create(ctx context.Context, ownerID string, item *model.Item) (*model.Item, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, translateUserErr(err, ownerID)
	}

	item.ID = ""
	item.OwnerID = ownerID
	item.Name = sanitizer.NormalizeText(item.Name)
	item.Description = sanitizer.NormalizeText(item.Description)

	if err := s.validate.Struct(item); err != nil {
		return nil, apperrors.Validation("item validation failed")
	}

	if item.RequestID != "" {
		if _, err := s.requests.FindByID(ctx, item.RequestID); err != nil {
			return nil, translateRequestErr(err, item.RequestID)
		}
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, s.translate(err, item.ID)
	}

	s.log.Info("item created", "item_id", item.ID, "owner_id", ownerID)
	return item, nil
}

// Update applies a partial patch. Only the owner may update; anyone else gets
// the same not-found answer a stranger would.
func (s *itemService) Update(ctx context.Context, ownerID, itemID string, patch *model.ItemUpdate) (*model.Item, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, s.translate(err, itemID)
	}
	if item.OwnerID != ownerID {
		return nil, apperrors.NotFoundWithID("Item", itemID)
	}

	if patch.Name != nil {
		item.Name = sanitizer.NormalizeText(*patch.Name)
	}
	if patch.Description != nil {
		item.Description = sanitizer.NormalizeText(*patch.Description)
	}
	if patch.Available != nil {
		item.Available = patch.Available
	}

	if err := s.validate.Struct(item); err != nil {
		return nil, apperrors.Validation("item validation failed")
	}

	if err := s.items.Update(ctx, itemID, item); err != nil {
		return nil, s.translate(err, itemID)
	}

	s.log.Info("item updated", "item_id", itemID)
	return item, nil
}

// GetByID returns the item with its comments. Last and next bookings are
// owner-only facts and stay hidden from other callers.
func (s *itemService) GetByID(ctx context.Context, callerID, itemID string) (*model.ItemFullView, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, s.translate(err, itemID)
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, s.translate(err, itemID)
	}

	var last, next *model.Booking
	if callerID == item.OwnerID {
		now := s.now()
		lastByItem, err := s.bookings.LastApprovedByItem(ctx, []string{itemID}, now)
		if err != nil {
			return nil, s.translate(err, itemID)
		}
		nextByItem, err := s.bookings.NextApprovedByItem(ctx, []string{itemID}, now)
		if err != nil {
			return nil, s.translate(err, itemID)
		}
		last = lastByItem[itemID]
		next = nextByItem[itemID]
	}

	view := model.ToItemFullView(item, model.ToBookingBrief(last), model.ToBookingBrief(next), toCommentViews(comments))
	return &view, nil
}

func (s *itemService) GetByOwner(ctx context.Context, ownerID string, from, size *int) ([]model.ItemFullView, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, translateUserErr(err, ownerID)
	}

	items, err := s.items.FindByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, s.translate(err, "")
	}
	if len(items) == 0 {
		return []model.ItemFullView{}, nil
	}

	itemIDs := make([]string, 0, len(items))
	for _, item := range items {
		itemIDs = append(itemIDs, item.ID)
	}

	now := s.now()
	lastByItem, err := s.bookings.LastApprovedByItem(ctx, itemIDs, now)
	if err != nil {
		return nil, s.translate(err, "")
	}
	nextByItem, err := s.bookings.NextApprovedByItem(ctx, itemIDs, now)
	if err != nil {
		return nil, s.translate(err, "")
	}
	commentsByItem, err := s.comments.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, s.translate(err, "")
	}

	views := make([]model.ItemFullView, 0, len(items))
	for _, item := range items {
		views = append(views, model.ToItemFullView(
			item,
			model.ToBookingBrief(lastByItem[item.ID]),
			model.ToBookingBrief(nextByItem[item.ID]),
			toCommentViews(commentsByItem[item.ID]),
		))
	}
	return views, nil
}

// Search returns available items matching text in name or description. Blank
// text short-circuits to an empty result.
func (s *itemService) Search(ctx context.Context, text string, from, size *int) ([]model.ItemView, error) {
	text = sanitizer.NormalizeText(text)
	if text == "" {
		return []model.ItemView{}, nil
	}

	items, err := s.items.Search(ctx, text, from, size)
	if err != nil {
		return nil, s.translate(err, "")
	}

	views := make([]model.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, model.ToItemView(item))
	}
	return views, nil
}

// AddComment allows a comment only from a user whose booking of the item has
// already ended, whatever its status.
func (s *itemService) AddComment(ctx context.Context, authorID, itemID string, incoming *model.IncomingComment) (*model.CommentView, error) {
	incoming.Text = sanitizer.NormalizeText(incoming.Text)
	if err := s.validate.Struct(incoming); err != nil {
		return nil, apperrors.Validation("comment text must not be blank")
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, s.translate(err, itemID)
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, translateUserErr(err, authorID)
	}

	finished, err := s.bookings.ExistsFinished(ctx, item.ID, authorID, s.now())
	if err != nil {
		return nil, s.translate(err, itemID)
	}
	if !finished {
		return nil, apperrors.Validation(
			fmt.Sprintf("user with id = %s has no finished booking of item with id = %s", authorID, itemID))
	}

	comment := &model.Comment{
		ItemID:     item.ID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       incoming.Text,
		Created:    s.now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, s.translate(err, itemID)
	}

	s.log.Info("comment added", "item_id", itemID, "author_id", authorID)
	view := model.ToCommentView(comment)
	return &view, nil
}

func (s *itemService) translate(err error, id string) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, itemserrors.ErrNotFound), errors.Is(err, itemserrors.ErrInvalidID):
		return apperrors.NotFoundWithID("Item", id)
	default:
		return apperrors.Internal(fmt.Sprintf("item operation failed: %v", err), err)
	}
}

func translateUserErr(err error, userID string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, userserrors.ErrNotFound) || errors.Is(err, userserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("User", userID)
	}
	return apperrors.Internal(fmt.Sprintf("user lookup failed: %v", err), err)
}

func translateRequestErr(err error, requestID string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, requestserrors.ErrNotFound) || errors.Is(err, requestserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("ItemRequest", requestID)
	}
	return apperrors.Internal(fmt.Sprintf("request lookup failed: %v", err), err)
}

func toCommentViews(comments []*model.Comment) []model.CommentView {
	views := make([]model.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, model.ToCommentView(c))
	}
	return views
}
