package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEventFull is returned when an event has as many bookings as its capacity.
	ErrEventFull = errors.New("event is fully booked")
	// ErrAlreadyBooked is returned when the user already holds a booking for the event.
	ErrAlreadyBooked = errors.New("event already booked by this user")
)

// Booking links a user to an event.
// swagger:model Booking
type Booking struct {
	ID         int64     `json:"id"`
	EventID    int64     `json:"event_id"`
	UserID     int64     `json:"user_id"`
	Code       string    `json:"code"`
	QRCodePath *string   `json:"qr_code_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewBooking creates a new Booking. ID is set by the repository on create.
func NewBooking(eventID, userID int64, code string, createdAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		UserID:    userID,
		Code:      code,
		CreatedAt: createdAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	// CreateWithinCapacity inserts the booking only while the event has room.
	// Returns ErrNotFound for a missing event, ErrEventFull when it has no room
	// and ErrAlreadyBooked on a duplicate.
	CreateWithinCapacity(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context) ([]*Booking, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Booking, error)
	Delete(ctx context.Context, id int64) error
}

// TicketRenderer turns a booking code into a PNG image.
type TicketRenderer interface {
	RenderPNG(content string) ([]byte, error)
}

// BookingService defines user-facing booking operations.
type BookingService interface {
	Book(ctx context.Context, eventID int64, caller Principal) (*Booking, error)
	List(ctx context.Context, caller Principal) ([]*Booking, error)
	Cancel(ctx context.Context, bookingID int64, caller Principal) error
}
