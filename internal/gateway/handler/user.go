package handler

import (
	"encoding/json"
	"net/http"

	"shareit/pkg/client"
	apperrors "shareit/pkg/errors"
	shareithttp "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserGatewayHandler struct {
	client *client.UserClient
	log    *logger.Logger
}

func NewUserGatewayHandler(client *client.UserClient, log *logger.Logger) *UserGatewayHandler {
	return &UserGatewayHandler{client: client, log: log}
}

func (h *UserGatewayHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/users", h.Create)
	router.GET("/users", h.GetAll)
	router.GET("/users/id/:userId", h.GetByID)
	router.PATCH("/users/id/:userId", h.Update)
	router.DELETE("/users/id/:userId", h.Delete)
}

func (h *UserGatewayHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		shareithttp.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	if err := validate.Struct(&user); err != nil {
		shareithttp.WriteError(w, apperrors.Validation("user validation failed"))
		return
	}

	resp, err := h.client.Create(&user)
	relay(w, h.log, resp, err)
}

func (h *UserGatewayHandler) GetAll(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	resp, err := h.client.GetAll()
	relay(w, h.log, resp, err)
}

func (h *UserGatewayHandler) GetByID(w http.ResponseWriter, _ *http.Request, params httprouter.Params) {
	resp, err := h.client.GetByID(params.ByName("userId"))
	relay(w, h.log, resp, err)
}

func (h *UserGatewayHandler) Update(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var patch model.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		shareithttp.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	resp, err := h.client.Update(params.ByName("userId"), &patch)
	relay(w, h.log, resp, err)
}

func (h *UserGatewayHandler) Delete(w http.ResponseWriter, _ *http.Request, params httprouter.Params) {
	resp, err := h.client.Delete(params.ByName("userId"))
	relay(w, h.log, resp, err)
}
