package main

import (
	"context"
	"time"

	migrations "shareit/internal/migrations/mongo"
	"shareit/pkg/config"
)

const migrateTimeout = 2 * time.Minute

func main() {
	cfg := config.Load("shareit-migrate")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	log := cfg.Log

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := migrations.Run(ctx, db, log); err != nil {
		log.Fatal("migration failed", "error", err)
	}

	log.Info("migration complete", "database", cfg.MongoDatabaseName)
}
