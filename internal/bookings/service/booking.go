package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "shareit/internal/bookings/errors"
	"shareit/internal/bookings/repository"
	itemserrors "shareit/internal/items/errors"
	userserrors "shareit/internal/users/errors"
	mongodb "shareit/pkg/db/mongo"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserReader is the slice of the users domain this service needs.
type UserReader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.User, error)
}

// ItemReader resolves booked items, including inside a transaction for the
// availability re-check.
type ItemReader interface {
	FindByID(ctx context.Context, id string) (*model.Item, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Item, error)
}

type BookingService interface {
	Create(ctx context.Context, bookerID string, incoming *model.IncomingBooking) (*model.BookingView, error)
	Approve(ctx context.Context, ownerID, bookingID string, approved bool) (*model.BookingView, error)
	GetByID(ctx context.Context, callerID, bookingID string) (*model.BookingView, error)
	GetByBooker(ctx context.Context, bookerID string, state model.State, from, size *int) ([]model.BookingView, error)
	GetByOwner(ctx context.Context, ownerID string, state model.State, from, size *int) ([]model.BookingView, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	users    UserReader
	items    ItemReader
	tx       mongodb.TransactionManager
	events   EventPublisher
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewBookingService(
	bookings repository.BookingRepository,
	users UserReader,
	items ItemReader,
	tx mongodb.TransactionManager,
	events EventPublisher,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookings: bookings,
		users:    users,
		items:    items,
		tx:       tx,
		events:   events,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
	}
}

// Create books an item. Precondition order is part of the contract: booker
// existence, then item existence, then the owner check, then the time range,
// then availability.
func (s *bookingService) Create(ctx context.Context, bookerID string, incoming *model.IncomingBooking) (*model.BookingView, error) {
	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, translateUserErr(err, bookerID)
	}

	if err := s.validate.Struct(incoming); err != nil {
		return nil, apperrors.Validation("booking validation failed")
	}

	item, err := s.items.FindByID(ctx, incoming.ItemID)
	if err != nil {
		return nil, translateItemErr(err, incoming.ItemID)
	}

	// The owner booking their own item is reported as if the item did not
	// exist for them.
	if item.OwnerID == bookerID {
		return nil, apperrors.NotFound(
			fmt.Sprintf("item with id = %s not found for booking by its owner", item.ID))
	}

	if incoming.End.Before(incoming.Start) {
		return nil, apperrors.Validation("booking end must be after start")
	}
	if incoming.End.Equal(incoming.Start) {
		return nil, apperrors.Validation("booking start and end must not be equal")
	}

	if !item.IsAvailable() {
		return nil, apperrors.ItemUnavailable(item.ID)
	}

	booking := &model.Booking{
		ItemID:   item.ID,
		OwnerID:  item.OwnerID,
		BookerID: bookerID,
		Start:    incoming.Start,
		End:      incoming.End,
		Status:   model.StatusWaiting,
	}

	// Availability is re-checked inside the transaction: the owner may have
	// flipped the flag between the check above and the insert.
	err = s.tx.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		current, err := s.items.FindByID(sessCtx, item.ID)
		if err != nil {
			return translateItemErr(err, item.ID)
		}
		if !current.IsAvailable() {
			return apperrors.ItemUnavailable(current.ID)
		}
		return s.bookings.Create(sessCtx, booking)
	})
	if err != nil {
		return nil, s.translate(err, "")
	}

	s.log.Info("booking created",
		"booking_id", booking.ID, "item_id", item.ID, "booker_id", bookerID)
	s.publish(ctx, EventBookingCreated, booking.ID, BookingCreatedEvent{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		OwnerID:   booking.OwnerID,
		BookerID:  booking.BookerID,
		Start:     booking.Start,
		End:       booking.End,
	})

	view := model.ToBookingView(booking, item, booker)
	return &view, nil
}

// Approve decides a booking. Precondition order is part of the contract:
// decider existence, then booking existence, then the already-APPROVED guard,
// then the owner match. Re-approving a REJECTED booking is allowed.
func (s *bookingService) Approve(ctx context.Context, ownerID, bookingID string, approved bool) (*model.BookingView, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, translateUserErr(err, ownerID)
	}

	var booking *model.Booking
	var oldStatus model.Status

	err := s.tx.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		var err error
		booking, err = s.bookings.FindByID(sessCtx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status == model.StatusApproved {
			return apperrors.Validation(
				fmt.Sprintf("booking with id = %s is already approved", bookingID))
		}
		if booking.OwnerID != ownerID {
			return apperrors.NotFoundWithID("Booking", bookingID)
		}

		oldStatus = booking.Status
		if approved {
			booking.Status = model.StatusApproved
		} else {
			booking.Status = model.StatusRejected
		}
		return s.bookings.UpdateStatus(sessCtx, bookingID, booking.Status)
	})
	if err != nil {
		return nil, s.translate(err, bookingID)
	}

	s.log.Info("booking decided",
		"booking_id", bookingID, "status", booking.Status)
	s.publish(ctx, EventBookingStatusChanged, bookingID, BookingStatusChangedEvent{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		OwnerID:   booking.OwnerID,
		BookerID:  booking.BookerID,
		OldStatus: oldStatus,
		NewStatus: booking.Status,
	})

	return s.toView(ctx, booking)
}

// GetByID is visible to the booker and the item's owner only. Everyone else
// gets not found rather than forbidden.
func (s *bookingService) GetByID(ctx context.Context, callerID, bookingID string) (*model.BookingView, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, s.translate(err, bookingID)
	}
	if booking.BookerID != callerID && booking.OwnerID != callerID {
		return nil, apperrors.NotFoundWithID("Booking", bookingID)
	}
	return s.toView(ctx, booking)
}

func (s *bookingService) GetByBooker(ctx context.Context, bookerID string, state model.State, from, size *int) ([]model.BookingView, error) {
	if err := s.checkPage(from, size); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, bookerID); err != nil {
		return nil, translateUserErr(err, bookerID)
	}

	bookings, err := s.bookings.FindByBooker(ctx, bookerID, state, s.now(), from, size)
	if err != nil {
		return nil, s.translate(err, "")
	}
	return s.toViews(ctx, bookings)
}

func (s *bookingService) GetByOwner(ctx context.Context, ownerID string, state model.State, from, size *int) ([]model.BookingView, error) {
	if err := s.checkPage(from, size); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, translateUserErr(err, ownerID)
	}

	bookings, err := s.bookings.FindByOwner(ctx, ownerID, state, s.now(), from, size)
	if err != nil {
		return nil, s.translate(err, "")
	}
	return s.toViews(ctx, bookings)
}

func (s *bookingService) checkPage(from, size *int) error {
	if (from == nil) != (size == nil) {
		return apperrors.Validation("from and size must be provided together")
	}
	if from != nil && *from < 0 {
		return apperrors.Validation("from must not be negative")
	}
	if size != nil && *size <= 0 {
		return apperrors.Validation("size must be positive")
	}
	return nil
}

func (s *bookingService) toView(ctx context.Context, booking *model.Booking) (*model.BookingView, error) {
	item, err := s.items.FindByID(ctx, booking.ItemID)
	if err != nil {
		return nil, translateItemErr(err, booking.ItemID)
	}
	booker, err := s.users.FindByID(ctx, booking.BookerID)
	if err != nil {
		return nil, translateUserErr(err, booking.BookerID)
	}
	view := model.ToBookingView(booking, item, booker)
	return &view, nil
}

// toViews batches the item and booker lookups so a page of bookings costs two
// extra queries, not two per booking.
func (s *bookingService) toViews(ctx context.Context, bookings []*model.Booking) ([]model.BookingView, error) {
	if len(bookings) == 0 {
		return []model.BookingView{}, nil
	}

	itemIDSet := make(map[string]struct{})
	bookerIDSet := make(map[string]struct{})
	for _, b := range bookings {
		itemIDSet[b.ItemID] = struct{}{}
		bookerIDSet[b.BookerID] = struct{}{}
	}

	items, err := s.items.FindByIDs(ctx, keys(itemIDSet))
	if err != nil {
		return nil, s.translate(err, "")
	}
	bookers, err := s.users.FindByIDs(ctx, keys(bookerIDSet))
	if err != nil {
		return nil, s.translate(err, "")
	}

	itemsByID := make(map[string]*model.Item, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}
	bookersByID := make(map[string]*model.User, len(bookers))
	for _, booker := range bookers {
		bookersByID[booker.ID] = booker
	}

	views := make([]model.BookingView, 0, len(bookings))
	for _, b := range bookings {
		item, ok := itemsByID[b.ItemID]
		if !ok {
			return nil, apperrors.Internal(
				fmt.Sprintf("booking %s references missing item %s", b.ID, b.ItemID), nil)
		}
		booker, ok := bookersByID[b.BookerID]
		if !ok {
			return nil, apperrors.Internal(
				fmt.Sprintf("booking %s references missing booker %s", b.ID, b.BookerID), nil)
		}
		views = append(views, model.ToBookingView(b, item, booker))
	}
	return views, nil
}

func (s *bookingService) translate(err error, id string) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, bookingserrors.ErrNotFound), errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.NotFoundWithID("Booking", id)
	default:
		return apperrors.Internal(fmt.Sprintf("booking operation failed: %v", err), err)
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

func translateItemErr(err error, itemID string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, itemserrors.ErrNotFound) || errors.Is(err, itemserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("Item", itemID)
	}
	return apperrors.Internal(fmt.Sprintf("item lookup failed: %v", err), err)
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
