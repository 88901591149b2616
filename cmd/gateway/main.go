package main

import (
	gatewayhandler "shareit/internal/gateway/handler"
	healthhandler "shareit/internal/health/handler"
	"shareit/pkg/app"
	"shareit/pkg/client"
	"shareit/pkg/config"
)

const serviceName = "shareit-gateway"

func main() {
	cfg := config.Load(serviceName)
	log := cfg.Log

	application := app.New(cfg)
	application.RegisterHandlers(
		healthhandler.NewHealthHandler(nil, log),
		gatewayhandler.NewUserGatewayHandler(client.NewUserClient(cfg.ServerURL), log),
		gatewayhandler.NewItemGatewayHandler(client.NewItemClient(cfg.ServerURL), log),
		gatewayhandler.NewBookingGatewayHandler(client.NewBookingClient(cfg.ServerURL), log),
		gatewayhandler.NewRequestGatewayHandler(client.NewRequestClient(cfg.ServerURL), log),
	)

	log.Info("gateway forwarding to backend", "server_url", cfg.ServerURL)
	application.Run()
}
