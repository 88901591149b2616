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

type ItemGatewayHandler struct {
	client *client.ItemClient
	log    *logger.Logger
}

func NewItemGatewayHandler(client *client.ItemClient, log *logger.Logger) *ItemGatewayHandler {
	return &ItemGatewayHandler{client: client, log: log}
}

func (h *ItemGatewayHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/items", h.Create)
	router.GET("/items", h.GetOwnItems)
	router.GET("/items/id/:itemId", h.GetByID)
	router.PATCH("/items/id/:itemId", h.Update)
	router.GET("/items/search", h.Search)
	router.POST("/items/id/:itemId/comment", h.AddComment)
}

func (h *ItemGatewayHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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
	if err := validate.Struct(&item); err != nil {
		shareithttp.WriteError(w, apperrors.Validation("item validation failed"))
		return
	}

	resp, err := h.client.Create(ownerID, &item)
	relay(w, h.log, resp, err)
}

func (h *ItemGatewayHandler) GetByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	userID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	resp, err := h.client.GetByID(userID, params.ByName("itemId"))
	relay(w, h.log, resp, err)
}

func (h *ItemGatewayHandler) GetOwnItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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
	if err := checkPage(from, size); err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	resp, err := h.client.GetOwnItems(ownerID, from, size)
	relay(w, h.log, resp, err)
}

func (h *ItemGatewayHandler) Update(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
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

	resp, err := h.client.Update(ownerID, params.ByName("itemId"), &patch)
	relay(w, h.log, resp, err)
}

func (h *ItemGatewayHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	from, size, err := shareithttp.ExtractPage(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	if err := checkPage(from, size); err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	resp, err := h.client.Search(userID, r.URL.Query().Get("text"), from, size)
	relay(w, h.log, resp, err)
}

func (h *ItemGatewayHandler) AddComment(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
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
	if err := validate.Struct(&incoming); err != nil {
		shareithttp.WriteError(w, apperrors.Validation("comment text must not be blank"))
		return
	}

	resp, err := h.client.AddComment(authorID, params.ByName("itemId"), &incoming)
	relay(w, h.log, resp, err)
}
