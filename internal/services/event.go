package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventbooking/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	images         domain.FileStore
	tickets        domain.FileStore
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService. images stores event pictures; tickets is the
// store QR codes of bookings live in, used to clean up after an event is deleted.
func NewEventService(eventRepo domain.EventRepository,
	images domain.FileStore,
	tickets domain.FileStore,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		images:         images,
		tickets:        tickets,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func validateEventInput(input domain.CreateEventInput) (string, domain.Date, int, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return "", domain.Date{}, 0, &domain.MissingFieldError{Field: "title"}
	}
	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return "", domain.Date{}, 0, err
	}
	if input.Capacity == nil {
		return "", domain.Date{}, 0, &domain.MissingFieldError{Field: "capacity"}
	}
	if *input.Capacity < 0 {
		return "", domain.Date{}, 0, domain.InvalidArgumentf("capacity must not be negative")
	}
	return title, date, *input.Capacity, nil
}

func (s *eventService) CreateEvent(ctx context.Context, input domain.CreateEventInput, image *domain.Upload) (*domain.Event, error) {
	title, date, capacity, err := validateEventInput(input)
	if err != nil {
		return nil, err
	}

	event := domain.NewEvent(title, optionalField(input.Description), date, capacity, time.Now().UTC())

	if !image.Empty() {
		path, err := s.images.Save(ctx, image.Reader, image.Filename, image.Size)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		if path != "" {
			event.ImagePath = &path
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if event.ImagePath != nil {
			s.removeFile(context.WithoutCancel(ctx), s.images, *event.ImagePath)
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, page domain.EventPage) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	removed, err := s.eventRepo.DeleteWithBookings(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	// Files are removed only once the rows are gone.
	cleanupCtx := context.WithoutCancel(ctx)
	if event.ImagePath != nil {
		s.removeFile(cleanupCtx, s.images, *event.ImagePath)
	}
	for _, b := range removed {
		if b.QRCodePath != nil {
			s.removeFile(cleanupCtx, s.tickets, *b.QRCodePath)
		}
	}
	return nil
}

func (s *eventService) removeFile(ctx context.Context, store domain.FileStore, publicPath string) {
	if store == nil {
		return
	}
	if err := store.Remove(ctx, publicPath); err != nil {
		s.logger.WarnContext(ctx, "remove file failed", "path", publicPath, "err", err)
	}
}
