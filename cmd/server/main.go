package main

import (
	bookinghandler "shareit/internal/bookings/handler"
	bookingrepo "shareit/internal/bookings/repository"
	bookingservice "shareit/internal/bookings/service"
	healthhandler "shareit/internal/health/handler"
	itemhandler "shareit/internal/items/handler"
	itemrepo "shareit/internal/items/repository"
	itemservice "shareit/internal/items/service"
	requesthandler "shareit/internal/requests/handler"
	requestrepo "shareit/internal/requests/repository"
	requestservice "shareit/internal/requests/service"
	userhandler "shareit/internal/users/handler"
	userrepo "shareit/internal/users/repository"
	userservice "shareit/internal/users/service"
	"shareit/pkg/app"
	"shareit/pkg/config"
	mongodb "shareit/pkg/db/mongo"
	"shareit/pkg/kafka"
)

const serviceName = "shareit-server"

func main() {
	cfg := config.Load(serviceName)
	cfg.SetMongo()

	log := cfg.Log

	users := userrepo.NewMongoUserRepository(cfg)
	items := itemrepo.NewMongoItemRepository(cfg)
	comments := itemrepo.NewMongoCommentRepository(cfg)
	bookings := bookingrepo.NewMongoBookingRepository(cfg)
	requests := requestrepo.NewMongoRequestRepository(cfg)

	tx := mongodb.NewTransactionManager(cfg.Client.Mongo)

	application := app.New(cfg)

	var events bookingservice.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.BookingEventsTopic, serviceName)
		if err != nil {
			log.Fatal("failed to create Kafka producer", "error", err)
		}
		events = producer
		application.OnShutdown(producer.Close)
		log.Info("booking event publishing enabled", "topic", cfg.BookingEventsTopic)
	} else {
		log.Info("booking event publishing disabled")
	}

	userSvc := userservice.NewUserService(users, log)
	itemSvc := itemservice.NewItemService(items, comments, users, requests, bookings, log)
	bookingSvc := bookingservice.NewBookingService(bookings, users, items, tx, events, log)
	requestSvc := requestservice.NewRequestService(requests, users, items, log)

	application.RegisterHandlers(
		healthhandler.NewHealthHandler(cfg.Client.Mongo, log),
		userhandler.NewUserHandler(userSvc, log),
		itemhandler.NewItemHandler(itemSvc, log),
		bookinghandler.NewBookingHandler(bookingSvc, log),
		requesthandler.NewRequestHandler(requestSvc, log),
	)

	application.Run()
}
