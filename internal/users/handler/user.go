package handler

import (
	"encoding/json"
	"net/http"

	"shareit/internal/users/service"
	apperrors "shareit/pkg/errors"
	shareithttp "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/users", h.Create)
	router.GET("/users", h.GetAll)
	router.GET("/users/id/:userId", h.GetByID)
	router.PATCH("/users/id/:userId", h.Update)
	router.DELETE("/users/id/:userId", h.Delete)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		shareithttp.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &user)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteCreated(w, created)
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.GetAll(r.Context())
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, users)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	user, err := h.service.GetByID(r.Context(), params.ByName("userId"))
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var patch model.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		shareithttp.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), params.ByName("userId"), &patch)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, updated)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	if err := h.service.Delete(r.Context(), params.ByName("userId")); err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteNoContent(w)
}
