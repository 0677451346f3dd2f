package controllers

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

const (
	// maxJSONBody caps JSON request bodies.
	maxJSONBody int64 = 1 << 20
	// maxMultipartBody leaves room for the form fields around a full-size image.
	maxMultipartBody = domain.MaxUploadBytes + 1<<20
	// multipartMemory is how much of a multipart body is kept in memory before spilling to disk.
	multipartMemory int64 = 1 << 20
)

// CreateEventRequest is the JSON body for POST /api/events.
type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Date        string  `json:"date" example:"2025-06-01"`
	Capacity    *int    `json:"capacity"`
}

func (c CreateEventRequest) input() domain.CreateEventInput {
	return domain.CreateEventInput{
		Title:       c.Title,
		Description: c.Description,
		Date:        c.Date,
		Capacity:    c.Capacity,
	}
}

// EventSuccessResponse is the success response envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsResponse is the data payload for GET /api/events.
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /api/events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Paginated list of events ordered by date.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 50)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	page := helpers.ParseEventPage(r)
	events, total, err := c.Service.ListEvents(r.Context(), page)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Items:      events,
		Pagination: helpers.NewPaginationMeta(page, total),
	})
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Accepts either a JSON body or a multipart form (title, description, date, capacity, image). The image is optional and limited to 20 MiB.
// @Tags events
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest false "Event data (JSON)"
// @Param image formData file false "Event image (multipart)"
// @Success 201 {object} controllers.EventSuccessResponse "Location header points at the new event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.Authorize(w, r, domain.RoleAdmin); !ok {
		return
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var (
		event *domain.Event
		err   error
	)
	if mediaType == "multipart/form-data" {
		event, err = c.createFromForm(w, r)
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		var req CreateEventRequest
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}
		event, err = c.Service.CreateEvent(r.Context(), req.input(), nil)
	}
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Location", "/api/events/"+strconv.FormatInt(event.ID, 10))
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// errResponseWritten tells the caller the error response has already been sent.
var errResponseWritten = errors.New("response written")

func (c *EventController) createFromForm(w http.ResponseWriter, r *http.Request) (*domain.Event, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodePayloadTooLarge, "request body too large")
		} else {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		}
		return nil, errResponseWritten
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	input := domain.CreateEventInput{
		Title: r.FormValue("title"),
		Date:  r.FormValue("date"),
	}
	if _, ok := r.MultipartForm.Value["description"]; ok {
		desc := r.FormValue("description")
		input.Description = &desc
	}
	capacity, err := domain.ParseCapacity(r.FormValue("capacity"))
	if err != nil {
		return nil, err
	}
	input.Capacity = &capacity

	var image *domain.Upload
	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid image field")
		return nil, errResponseWritten
	default:
		defer file.Close()
		image = &domain.Upload{Reader: file, Filename: header.Filename, Size: header.Size}
	}
	return c.Service.CreateEvent(r.Context(), input, image)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event together with its bookings.
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.Authorize(w, r, domain.RoleAdmin); !ok {
		return
	}
	id, ok := helpers.PathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
