package handler

import (
	"context"
	"net/http"
	"time"

	shareithttp "shareit/pkg/http"
	"shareit/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const pingTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness. Readiness pings Mongo when a
// client is wired; the gateway passes nil and is ready whenever it is up.
type HealthHandler struct {
	mongo *mongo.Client
	log   *logger.Logger
}

func NewHealthHandler(mongoClient *mongo.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{mongo: mongoClient, log: log}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	shareithttp.WriteSuccess(w, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.mongo != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.mongo.Ping(ctx, readpref.Primary()); err != nil {
			h.log.Error("readiness check failed", "error", err)
			shareithttp.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"mongo":  "unreachable",
			})
			return
		}
	}
	shareithttp.WriteSuccess(w, map[string]string{"status": "ready"})
}
