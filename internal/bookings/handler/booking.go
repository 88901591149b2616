package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"shareit/internal/bookings/service"
	apperrors "shareit/pkg/errors"
	shareithttp "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{service: service, log: log}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookings", h.Create)
	router.GET("/bookings", h.GetByBooker)
	router.GET("/bookings/owner", h.GetByOwner)
	router.GET("/bookings/id/:bookingId", h.GetByID)
	router.PATCH("/bookings/id/:bookingId", h.Approve)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookerID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	var incoming model.IncomingBooking
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		shareithttp.WriteError(w, apperrors.InvalidInput("invalid request body"))
		return
	}

	view, err := h.service.Create(r.Context(), bookerID, &incoming)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteCreated(w, view)
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	ownerID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	var approved bool
	switch r.URL.Query().Get("approved") {
	case "true":
		approved = true
	case "false":
		approved = false
	default:
		shareithttp.WriteError(w, apperrors.InvalidInput("approved must be true or false"))
		return
	}

	view, err := h.service.Approve(r.Context(), ownerID, params.ByName("bookingId"), approved)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, view)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	callerID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	view, err := h.service.GetByID(r.Context(), callerID, params.ByName("bookingId"))
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, view)
}

func (h *BookingHandler) GetByBooker(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.listClassified(w, r, h.service.GetByBooker)
}

func (h *BookingHandler) GetByOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.listClassified(w, r, h.service.GetByOwner)
}

type classifiedLister func(ctx context.Context, userID string, state model.State, from, size *int) ([]model.BookingView, error)

func (h *BookingHandler) listClassified(w http.ResponseWriter, r *http.Request, list classifiedLister) {
	userID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	state, ok := model.ParseState(r.URL.Query().Get("state"))
	if !ok {
		shareithttp.WriteError(w, apperrors.UnknownState(r.URL.Query().Get("state")))
		return
	}

	from, size, err := shareithttp.ExtractPage(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	views, err := list(r.Context(), userID, state, from, size)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}
	shareithttp.WriteSuccess(w, views)
}
