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

type BookingGatewayHandler struct {
	client *client.BookingClient
	log    *logger.Logger
}

func NewBookingGatewayHandler(client *client.BookingClient, log *logger.Logger) *BookingGatewayHandler {
	return &BookingGatewayHandler{client: client, log: log}
}

func (h *BookingGatewayHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookings", h.Create)
	router.GET("/bookings", h.GetByBooker)
	router.GET("/bookings/owner", h.GetByOwner)
	router.GET("/bookings/id/:bookingId", h.GetByID)
	router.PATCH("/bookings/id/:bookingId", h.Approve)
}

func (h *BookingGatewayHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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
	if err := validate.Struct(&incoming); err != nil {
		shareithttp.WriteError(w, apperrors.Validation("booking validation failed"))
		return
	}

	resp, err := h.client.Create(bookerID, &incoming)
	relay(w, h.log, resp, err)
}

func (h *BookingGatewayHandler) Approve(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
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

	resp, err := h.client.Approve(ownerID, params.ByName("bookingId"), approved)
	relay(w, h.log, resp, err)
}

func (h *BookingGatewayHandler) GetByID(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	userID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	resp, err := h.client.GetByID(userID, params.ByName("bookingId"))
	relay(w, h.log, resp, err)
}

func (h *BookingGatewayHandler) GetByBooker(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.listClassified(w, r, h.client.GetByBooker)
}

func (h *BookingGatewayHandler) GetByOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.listClassified(w, r, h.client.GetByOwner)
}

func (h *BookingGatewayHandler) listClassified(
	w http.ResponseWriter,
	r *http.Request,
	forward func(userID string, state model.State, from, size *int) (*client.Response, error),
) {
	userID, err := shareithttp.ExtractUserID(r)
	if err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	// An unrecognized state never reaches the backend; it fails here the
	// same way the backend would fail it.
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
	if err := checkPage(from, size); err != nil {
		shareithttp.WriteError(w, err)
		return
	}

	resp, err := forward(userID, state, from, size)
	relay(w, h.log, resp, err)
}
