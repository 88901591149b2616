package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	requestserrors "shareit/internal/requests/errors"
	"shareit/internal/requests/repository"
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

// ItemReader resolves the items offered in reply to requests.
type ItemReader interface {
	FindByRequestIDs(ctx context.Context, requestIDs []string) ([]*model.Item, error)
}

type RequestService interface {
	Create(ctx context.Context, requestorID string, incoming *model.IncomingItemRequest) (*model.ItemRequestView, error)
	GetOwn(ctx context.Context, requestorID string) ([]model.ItemRequestView, error)
	GetOthers(ctx context.Context, requestorID string, from, size *int) ([]model.ItemRequestView, error)
	GetByID(ctx context.Context, callerID, requestID string) (*model.ItemRequestView, error)
}

type requestService struct {
	requests repository.RequestRepository
	users    UserReader
	items    ItemReader
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewRequestService(
	requests repository.RequestRepository,
	users UserReader,
	items ItemReader,
	log *logger.Logger,
) RequestService {
	return &requestService{
		requests: requests,
		users:    users,
		items:    items,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
	}
}

func (s *requestService) Create(ctx context.Context, requestorID string, incoming *model.IncomingItemRequest) (*model.ItemRequestView, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, translateUserErr(err, requestorID)
	}

	incoming.Description = sanitizer.NormalizeText(incoming.Description)
	if err := s.validate.Struct(incoming); err != nil {
		return nil, apperrors.Validation("request description must not be blank")
	}

	request := &model.ItemRequest{
		Description: incoming.Description,
		RequestorID: requestorID,
		Created:     s.now().UTC(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, s.translate(err, "")
	}

	s.log.Info("item request created", "request_id", request.ID, "requestor_id", requestorID)
	view := model.ToItemRequestView(request, nil)
	return &view, nil
}

// GetOwn lists the caller's requests, newest first, each with the items
// offered against it.
func (s *requestService) GetOwn(ctx context.Context, requestorID string) ([]model.ItemRequestView, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, translateUserErr(err, requestorID)
	}

	requests, err := s.requests.FindByRequestor(ctx, requestorID)
	if err != nil {
		return nil, s.translate(err, "")
	}
	return s.assembleViews(ctx, requests)
}

// GetOthers lists everyone else's requests so the caller can find something
// to offer.
func (s *requestService) GetOthers(ctx context.Context, requestorID string, from, size *int) ([]model.ItemRequestView, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, translateUserErr(err, requestorID)
	}

	requests, err := s.requests.FindByOthers(ctx, requestorID, from, size)
	if err != nil {
		return nil, s.translate(err, "")
	}
	return s.assembleViews(ctx, requests)
}

func (s *requestService) GetByID(ctx context.Context, callerID, requestID string) (*model.ItemRequestView, error) {
	if _, err := s.users.FindByID(ctx, callerID); err != nil {
		return nil, translateUserErr(err, callerID)
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, s.translate(err, requestID)
	}

	views, err := s.assembleViews(ctx, []*model.ItemRequest{request})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// assembleViews resolves all offered items in one batch query, then groups
// them under their requests.
func (s *requestService) assembleViews(ctx context.Context, requests []*model.ItemRequest) ([]model.ItemRequestView, error) {
	if len(requests) == 0 {
		return []model.ItemRequestView{}, nil
	}

	requestIDs := make([]string, 0, len(requests))
	for _, request := range requests {
		requestIDs = append(requestIDs, request.ID)
	}

	items, err := s.items.FindByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, s.translate(err, "")
	}

	itemsByRequest := make(map[string][]model.ItemView, len(requests))
	for _, item := range items {
		itemsByRequest[item.RequestID] = append(itemsByRequest[item.RequestID], model.ToItemView(item))
	}

	views := make([]model.ItemRequestView, 0, len(requests))
	for _, request := range requests {
		views = append(views, model.ToItemRequestView(request, itemsByRequest[request.ID]))
	}
	return views, nil
}

func (s *requestService) translate(err error, id string) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, requestserrors.ErrNotFound), errors.Is(err, requestserrors.ErrInvalidID):
		return apperrors.NotFoundWithID("ItemRequest", id)
	default:
		return apperrors.Internal(fmt.Sprintf("item request operation failed: %v", err), err)
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
