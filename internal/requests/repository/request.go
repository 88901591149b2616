package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	requestserrors "shareit/internal/requests/errors"
	"shareit/pkg/config"
	mongodb "shareit/pkg/db/mongo"
	"shareit/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "ItemRequests"

type RequestRepository interface {
	Create(ctx context.Context, request *model.ItemRequest) error
	FindByID(ctx context.Context, id string) (*model.ItemRequest, error)
	FindByRequestor(ctx context.Context, requestorID string) ([]*model.ItemRequest, error)
	FindByOthers(ctx context.Context, requestorID string, from, size *int) ([]*model.ItemRequest, error)
}

type mongoRequestRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRequestRepository(cfg *config.Config) RequestRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRequestRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoRequestRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoRequestRepository) Create(ctx context.Context, request *model.ItemRequest) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to create item request: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		request.ID = oid.Hex()
	}
	return nil
}

func (r *mongoRequestRepository) FindByID(ctx context.Context, id string) (*model.ItemRequest, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", requestserrors.ErrInvalidID, id)
	}

	var request model.ItemRequest
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, requestserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item request: %w", err)
	}

	return &request, nil
}

// FindByRequestor lists the caller's own requests, newest first.
func (r *mongoRequestRepository) FindByRequestor(ctx context.Context, requestorID string) ([]*model.ItemRequest, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"requestor_id": requestorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find item requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*model.ItemRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode item requests: %w", err)
	}
	return requests, nil
}

// FindByOthers lists requests from everyone except the caller, newest first.
func (r *mongoRequestRepository) FindByOthers(ctx context.Context, requestorID string, from, size *int) ([]*model.ItemRequest, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	if from != nil && size != nil {
		skip, limit := mongodb.PageSnap(*from, *size)
		opts.SetSkip(skip).SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"requestor_id": bson.M{"$ne": requestorID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find item requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*model.ItemRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode item requests: %w", err)
	}
	return requests, nil
}
