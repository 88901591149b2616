package handler

import (
	"encoding/json"
	"net/http"

	"shareit/internal/requests/service"
	apperrors "shareit/pkg/errors"
	shareithttp "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RequestHandler struct {
	service service.RequestService
	log     *logger.Logger
}

func NewRequestHandler(service service.RequestService, log *logger.Logger) *RequestHandler {
	return &RequestHandler{service: service, log: log}
}

func (h *RequestHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/requests", h.Create)
	router.GET("/requests", h.GetOwn)
	router.GET("/requests/all", h.GetOthers)
	router.GET("/requests/id/:requestId", h.GetByID)
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	view, err := h.service.Create(r.Context(), requestorID, &incoming)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteCreated(w, view)
}

func (h *RequestHandler) GetOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestorID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	views, err := h.service.GetOwn(r.Context(), requestorID)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, views)
}

func (h *RequestHandler) GetOthers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	views, err := h.service.GetOthers(r.Context(), requestorID, from, size)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, views)
}

func (h *RequestHandler) GetByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	callerID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	view, err := h.service.GetByID(r.Context(), callerID, params.ByName("requestId"))
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, view)
}
