package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "shareit/internal/bookings/errors"
	"shareit/pkg/config"
	mongodb "shareit/pkg/db/mongo"
	"shareit/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Bookings"

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	FindByBooker(ctx context.Context, bookerID string, state model.State, now time.Time, from, size *int) ([]*model.Booking, error)
	FindByOwner(ctx context.Context, ownerID string, state model.State, now time.Time, from, size *int) ([]*model.Booking, error)
	LastApprovedByItem(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error)
	NextApprovedByItem(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error)
	ExistsFinished(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) FindByBooker(ctx context.Context, bookerID string, state model.State, now time.Time, from, size *int) ([]*model.Booking, error) {
	return r.findClassified(ctx, bson.M{"booker_id": bookerID}, state, now, from, size)
}

func (r *mongoBookingRepository) FindByOwner(ctx context.Context, ownerID string, state model.State, now time.Time, from, size *int) ([]*model.Booking, error) {
	return r.findClassified(ctx, bson.M{"owner_id": ownerID}, state, now, from, size)
}

// findClassified narrows the base filter by the state dimension and returns
// bookings newest start first.
func (r *mongoBookingRepository) findClassified(ctx context.Context, filter bson.M, state model.State, now time.Time, from, size *int) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	switch state {
	case model.StateAll:
		// no narrowing
	case model.StateCurrent:
		filter["start"] = bson.M{"$lte": now}
		filter["end"] = bson.M{"$gte": now}
	case model.StatePast:
		filter["end"] = bson.M{"$lt": now}
	case model.StateFuture:
		filter["start"] = bson.M{"$gt": now}
	case model.StateWaiting:
		filter["status"] = model.StatusWaiting
	case model.StateRejected:
		filter["status"] = model.StatusRejected
	default:
		return nil, fmt.Errorf("unsupported state filter: %s", state)
	}

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: -1}})
	if from != nil && size != nil {
		skip, limit := mongodb.PageSnap(*from, *size)
		opts.SetSkip(skip).SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// LastApprovedByItem returns, per item, the approved booking with the latest
// start strictly before now.
func (r *mongoBookingRepository) LastApprovedByItem(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error) {
	return r.firstPerItem(ctx, lastApprovedFilter(itemIDs, now), bson.D{{Key: "start", Value: -1}})
}

// NextApprovedByItem returns, per item, the approved booking with the
// earliest start after now.
func (r *mongoBookingRepository) NextApprovedByItem(ctx context.Context, itemIDs []string, now time.Time) (map[string]*model.Booking, error) {
	return r.firstPerItem(ctx, nextApprovedFilter(itemIDs, now), bson.D{{Key: "start", Value: 1}})
}

// Both boundaries are strict. A booking starting exactly at now counts as
// neither last nor next.
func lastApprovedFilter(itemIDs []string, now time.Time) bson.M {
	return bson.M{
		"item_id": bson.M{"$in": itemIDs},
		"status":  model.StatusApproved,
		"start":   bson.M{"$lt": now},
	}
}

func nextApprovedFilter(itemIDs []string, now time.Time) bson.M {
	return bson.M{
		"item_id": bson.M{"$in": itemIDs},
		"status":  model.StatusApproved,
		"start":   bson.M{"$gt": now},
	}
}

func (r *mongoBookingRepository) firstPerItem(ctx context.Context, filter bson.M, sort bson.D) (map[string]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	byItem := make(map[string]*model.Booking)
	for _, b := range bookings {
		if _, seen := byItem[b.ItemID]; !seen {
			byItem[b.ItemID] = b
		}
	}
	return byItem, nil
}

// ExistsFinished reports whether the booker has any booking of the item that
// has already ended. Status does not matter here.
func (r *mongoBookingRepository) ExistsFinished(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"item_id":   itemID,
		"booker_id": bookerID,
		"end":       bson.M{"$lt": now},
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count > 0, nil
}
