package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventbooking/internal/domain"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	tickets        domain.FileStore
	renderer       domain.TicketRenderer
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
	newCode        func() string
}

// NewBookingService creates a BookingService. emailService may be nil.
func NewBookingService(bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	tickets domain.FileStore,
	renderer domain.TicketRenderer,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		tickets:        tickets,
		renderer:       renderer,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
		newCode:        uuid.NewString,
	}
}

func (s *bookingService) Book(ctx context.Context, eventID int64, caller domain.Principal) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	code := s.newCode()
	png, err := s.renderer.RenderPNG(code)
	if err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}
	qrPath, err := s.tickets.Save(ctx, bytes.NewReader(png), code+".png", int64(len(png)))
	if err != nil {
		return nil, fmt.Errorf("store ticket: %w", err)
	}

	booking := domain.NewBooking(event.ID, caller.UserID, code, time.Now().UTC())
	if qrPath != "" {
		booking.QRCodePath = &qrPath
	}
	if err := s.bookingRepo.CreateWithinCapacity(ctx, booking); err != nil {
		if qrPath != "" {
			if rmErr := s.tickets.Remove(context.WithoutCancel(ctx), qrPath); rmErr != nil {
				s.logger.WarnContext(ctx, "remove ticket failed", "path", qrPath, "err", rmErr)
			}
		}
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrEventFull) || errors.Is(err, domain.ErrAlreadyBooked) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, event, booking)
	return booking, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, event *domain.Event, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "booking confirmation skipped", "booking_id", booking.ID, "err", err)
		return
	}
	if user.Email == nil {
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      *user.Email,
		Username:   user.Username,
		EventTitle: event.Title,
		EventDate:  event.Date.String(),
		Code:       booking.Code,
	}
	if booking.QRCodePath != nil {
		data.QRCodeURL = *booking.QRCodePath
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "booking confirmation failed", "booking_id", booking.ID, "err", err)
	}
}

// List returns every booking to admins and only the caller's own bookings to members.
func (s *bookingService) List(ctx context.Context, caller domain.Principal) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		bookings []*domain.Booking
		err      error
	)
	if caller.IsAdmin() {
		bookings, err = s.bookingRepo.List(ctx)
	} else {
		bookings, err = s.bookingRepo.ListByUserID(ctx, caller.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID int64, caller domain.Principal) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get booking: %w", err)
	}
	if !caller.IsAdmin() && booking.UserID != caller.UserID {
		return domain.ErrForbidden
	}
	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	if booking.QRCodePath != nil {
		if err := s.tickets.Remove(context.WithoutCancel(ctx), *booking.QRCodePath); err != nil {
			s.logger.WarnContext(ctx, "remove ticket failed", "path", *booking.QRCodePath, "err", err)
		}
	}
	return nil
}
