package mongo

import (
	"context"
	"fmt"
	"strings"

	"shareit/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Run creates the collections with their schema validators and indexes. It
// is idempotent: existing collections and indexes are left alone.
func Run(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	for name, schema := range schemas {
		if err := createCollection(ctx, db, name, schema); err != nil {
			return err
		}
		log.Info("collection ready", "collection", name)
	}

	for name, models := range indexes {
		if len(models) == 0 {
			continue
		}
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
		log.Info("indexes ready", "collection", name, "count", len(models))
	}

	return nil
}

func createCollection(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	opts := options.CreateCollection().SetValidator(bson.M{"$jsonSchema": schema})
	err := db.CreateCollection(ctx, name, opts)
	if err != nil {
		// NamespaceExists means a previous run already created it.
		if cmdErr, ok := err.(mongo.CommandError); ok && cmdErr.Code == 48 {
			return nil
		}
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return nil
}

var indexes = map[string][]mongo.IndexModel{
	"Users": {
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	},
	"Items": {
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_owner"),
		},
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("idx_request"),
		},
	},
	"Bookings": {
		{
			Keys:    bson.D{{Key: "booker_id", Value: 1}, {Key: "start", Value: -1}},
			Options: options.Index().SetName("idx_booker_start"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "start", Value: -1}},
			Options: options.Index().SetName("idx_owner_start"),
		},
		{
			Keys:    bson.D{{Key: "item_id", Value: 1}, {Key: "status", Value: 1}, {Key: "start", Value: -1}},
			Options: options.Index().SetName("idx_item_status_start"),
		},
	},
	"ItemRequests": {
		{
			Keys:    bson.D{{Key: "requestor_id", Value: 1}, {Key: "created", Value: -1}},
			Options: options.Index().SetName("idx_requestor_created"),
		},
		{
			Keys:    bson.D{{Key: "created", Value: -1}},
			Options: options.Index().SetName("idx_created"),
		},
	},
	"Comments": {
		{
			Keys:    bson.D{{Key: "item_id", Value: 1}, {Key: "created", Value: -1}},
			Options: options.Index().SetName("idx_item_created"),
		},
	},
}

var schemas = map[string]bson.M{
	"Users": {
		"bsonType": "object",
		"required": []string{"name", "email"},
		"properties": bson.M{
			"name":  bson.M{"bsonType": "string", "minLength": 1},
			"email": bson.M{"bsonType": "string", "pattern": `^.+@.+\..+$`},
		},
	},
	"Items": {
		"bsonType": "object",
		"required": []string{"name", "description", "available", "owner_id"},
		"properties": bson.M{
			"name":        bson.M{"bsonType": "string", "minLength": 1, "maxLength": 255},
			"description": bson.M{"bsonType": "string", "minLength": 1, "maxLength": 510},
			"available":   bson.M{"bsonType": "bool"},
			"owner_id":    bson.M{"bsonType": "string"},
			"request_id":  bson.M{"bsonType": "string"},
		},
	},
	"Bookings": {
		"bsonType": "object",
		"required": []string{"item_id", "owner_id", "booker_id", "start", "end", "status"},
		"properties": bson.M{
			"item_id":   bson.M{"bsonType": "string"},
			"owner_id":  bson.M{"bsonType": "string"},
			"booker_id": bson.M{"bsonType": "string"},
			"start":     bson.M{"bsonType": "date"},
			"end":       bson.M{"bsonType": "date"},
			"status":    bson.M{"enum": []string{"WAITING", "APPROVED", "REJECTED"}},
		},
	},
	"ItemRequests": {
		"bsonType": "object",
		"required": []string{"description", "requestor_id", "created"},
		"properties": bson.M{
			"description":  bson.M{"bsonType": "string", "minLength": 1},
			"requestor_id": bson.M{"bsonType": "string"},
			"created":      bson.M{"bsonType": "date"},
		},
	},
	"Comments": {
		"bsonType": "object",
		"required": []string{"item_id", "author_id", "text", "created"},
		"properties": bson.M{
			"item_id":     bson.M{"bsonType": "string"},
			"author_id":   bson.M{"bsonType": "string"},
			"author_name": bson.M{"bsonType": "string"},
			"text":        bson.M{"bsonType": "string", "minLength": 1},
			"created":     bson.M{"bsonType": "date"},
		},
	},
}
