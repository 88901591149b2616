package repository

import (
	"context"
	"fmt"

	"shareit/pkg/config"
	"shareit/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CommentCollectionName = "Comments"

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByItemID(ctx context.Context, itemID string) ([]*model.Comment, error)
	FindByItemIDs(ctx context.Context, itemIDs []string) (map[string][]*model.Comment, error)
}

type mongoCommentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCommentRepository(cfg *config.Config) CommentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCommentRepository{
		cfg:        cfg,
		collection: db.Collection(CommentCollectionName),
	}
}

func (r *mongoCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCommentRepository) FindByItemID(ctx context.Context, itemID string) ([]*model.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"item_id": itemID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*model.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// FindByItemIDs batches comment lookups for an owner's item listing so the
// service issues one query instead of one per item.
func (r *mongoCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []string) (map[string][]*model.Comment, error) {
	grouped := make(map[string][]*model.Comment, len(itemIDs))
	if len(itemIDs) == 0 {
		return grouped, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"item_id": bson.M{"$in": itemIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*model.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	for _, c := range comments {
		grouped[c.ItemID] = append(grouped[c.ItemID], c)
	}
	return grouped, nil
}
