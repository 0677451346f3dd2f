package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

// BookingSuccessResponse is the success response envelope for a single booking.
type BookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListBookingsSuccessResponse is the success response envelope for GET /api/bookings (200).
type ListBookingsSuccessResponse struct {
	Data  []*domain.Booking `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// Book godoc
// @Summary Book an event
// @Description Reserves a seat for the caller and returns the booking with its QR ticket path.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 201 {object} controllers.BookingSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event full or already booked)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/bookings/book/{eventID} [post]
func (c *BookingController) Book(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Authorize(w, r)
	if !ok {
		return
	}
	eventID, ok := helpers.PathID(w, r, "eventID")
	if !ok {
		return
	}
	booking, err := c.Service.Book(r.Context(), eventID, caller)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Location", "/api/bookings/"+strconv.FormatInt(booking.ID, 10))
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// List godoc
// @Summary List bookings
// @Description Admins see every booking, members only their own.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListBookingsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/bookings [get]
func (c *BookingController) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Authorize(w, r)
	if !ok {
		return
	}
	bookings, err := c.Service.List(r.Context(), caller)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// Cancel godoc
// @Summary Cancel a booking
// @Description Owners may cancel their own bookings; admins may cancel any.
// @Tags bookings
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/bookings/{id} [delete]
func (c *BookingController) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Authorize(w, r)
	if !ok {
		return
	}
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.Cancel(r.Context(), id, caller); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
