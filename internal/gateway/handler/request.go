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

type RequestGatewayHandler struct {
	client *client.RequestClient
	log    *logger.Logger
}

func NewRequestGatewayHandler(client *client.RequestClient, log *logger.Logger) *RequestGatewayHandler {
	return &RequestGatewayHandler{client: client, log: log}
}

func (h *RequestGatewayHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/requests", h.Create)
	router.GET("/requests", h.GetOwn)
	router.GET("/requests/all", h.GetOthers)
	router.GET("/requests/id/:requestId", h.GetByID)
}

func (h *RequestGatewayHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestorID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	var incoming model.IncomingItemRequest
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		shareithttp.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	if err := validate.Struct(&incoming); err != nil {
		shareithttp.WriteError(w, apperrors.Validation("request description must not be blank"))
		return
	}

	resp, err := h.client.Create(requestorID, &incoming)
	relay(w, h.log, resp, err)
}

func (h *RequestGatewayHandler) GetOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestorID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	resp, err := h.client.GetOwn(requestorID)
	relay(w, h.log, resp, err)
}

func (h *RequestGatewayHandler) GetOthers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestorID, err := shareithttp.ExtractUserID(r)
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

	resp, err := h.client.GetOthers(requestorID, from, size)
	relay(w, h.log, resp, err)
}

func (h *RequestGatewayHandler) GetByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	userID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	resp, err := h.client.GetByID(userID, params.ByName("requestId"))
	relay(w, h.log, resp, err)
}
