package handler

import (
	"encoding/json"
	"net/http"

	"shareit/internal/items/service"
	apperrors "shareit/pkg/errors"
	shareithttp "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ItemHandler struct {
	service service.ItemService
	log     *logger.Logger
}

func NewItemHandler(service service.ItemService, log *logger.Logger) *ItemHandler {
	return &ItemHandler{service: service, log: log}
}

func (h *ItemHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/items", h.Create)
	router.GET("/items", h.GetByOwner)
	router.GET("/items/id/:itemId", h.GetByID)
	router.PATCH("/items/id/:itemId", h.Update)
	router.GET("/items/search", h.Search)
	router.POST("/items/id/:itemId/comment", h.AddComment)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ownerID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	var item model.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		shareithttp.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), ownerID, &item)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteCreated(w, created)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	ownerID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	var patch model.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		shareithttp.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), ownerID, params.ByName("itemId"), &patch)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, updated)
}

func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	callerID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	view, err := h.service.GetByID(r.Context(), callerID, params.ByName("itemId"))
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, view)
}

func (h *ItemHandler) GetByOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ownerID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	from, size, err := shareithttp.ExtractPage(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	views, err := h.service.GetByOwner(r.Context(), ownerID, from, size)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, views)
}

func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	from, size, err := shareithttp.ExtractPage(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	views, err := h.service.Search(r.Context(), r.URL.Query().Get("text"), from, size)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, views)
}

func (h *ItemHandler) AddComment(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	authorID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	var incoming model.IncomingComment
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		shareithttp.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	view, err := h.service.AddComment(r.Context(), authorID, params.ByName("itemId"), &incoming)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, view)
}
