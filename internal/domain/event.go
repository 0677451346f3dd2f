package domain

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"
)

// Event represents a bookable occasion.
// swagger:model Event
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        Date      `json:"date" swaggertype:"string" example:"2025-06-01"`
	Capacity    int       `json:"capacity"`
	ImagePath   *string   `json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title string, description *string, date Date, capacity int, createdAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Capacity:    capacity,
		CreatedAt:   createdAt,
	}
}

// CreateEventInput carries the raw, not yet validated fields of an event creation request.
// Capacity is nil when the client did not send it.
type CreateEventInput struct {
	Title       string
	Description *string
	Date        string
	Capacity    *int
}

// Upload is a binary blob received from a client. A nil Upload or one with
// Size 0 means "no file".
type Upload struct {
	Reader   io.Reader
	Filename string
	Size     int64
}

// Empty reports whether the upload carries no data.
func (u *Upload) Empty() bool {
	return u == nil || u.Reader == nil || u.Size <= 0
}

// ParseCapacity converts a form value into a capacity. Missing or non-numeric
// input is an invalid argument.
func ParseCapacity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &MissingFieldError{Field: "capacity"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, InvalidArgumentf("capacity must be an integer")
	}
	return n, nil
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, page EventPage) ([]*Event, int, error)
	// DeleteWithBookings removes the event and every booking that references it
	// in one transaction, returning the removed bookings.
	DeleteWithBookings(ctx context.Context, id int64) ([]*Booking, error)
}

// EventService defines event creation, lookup and removal.
type EventService interface {
	CreateEvent(ctx context.Context, input CreateEventInput, image *Upload) (*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context, page EventPage) ([]*Event, int, error)
	DeleteEvent(ctx context.Context, id int64) error
}
