package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"eventbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventFixture struct {
	repo    *fakeEventRepo
	images  *fakeFileStore
	tickets *fakeFileStore
	svc     domain.EventService
}

func newEventFixture() *eventFixture {
	f := &eventFixture{
		repo:    newFakeEventRepo(),
		images:  newFakeFileStore("/uploads/events"),
		tickets: newFakeFileStore("/uploads/qrcodes"),
	}
	f.svc = NewEventService(f.repo, f.images, f.tickets, testLogger, time.Second)
	return f
}

func upload(name, content string) *domain.Upload {
	return &domain.Upload{Reader: strings.NewReader(content), Filename: name, Size: int64(len(content))}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		input      domain.CreateEventInput
		image      *domain.Upload
		wantErr    error
		wantImage  bool
		wantStored int
	}{
		{
			name:  "without image",
			input: domain.CreateEventInput{Title: "Conf", Description: strPtr("Yearly"), Date: "2025-06-01", Capacity: intPtr(100)},
		},
		{
			name:       "with image",
			input:      domain.CreateEventInput{Title: "Conf", Date: "2025-06-01", Capacity: intPtr(0)},
			image:      upload("poster.png", "png-bytes"),
			wantImage:  true,
			wantStored: 1,
		},
		{
			name:  "empty image is ignored",
			input: domain.CreateEventInput{Title: "Conf", Date: "2025-06-01", Capacity: intPtr(1)},
			image: upload("poster.png", ""),
		},
		{
			name:    "invalid date",
			input:   domain.CreateEventInput{Title: "Conf", Date: "2025-02-30", Capacity: intPtr(1)},
			image:   upload("poster.png", "png-bytes"),
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "wrong date format",
			input:   domain.CreateEventInput{Title: "Conf", Date: "01/06/2025", Capacity: intPtr(1)},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "missing date",
			input:   domain.CreateEventInput{Title: "Conf", Capacity: intPtr(1)},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "missing capacity",
			input:   domain.CreateEventInput{Title: "Conf", Date: "2025-06-01"},
			image:   upload("poster.png", "png-bytes"),
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "negative capacity",
			input:   domain.CreateEventInput{Title: "Conf", Date: "2025-06-01", Capacity: intPtr(-1)},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "blank title",
			input:   domain.CreateEventInput{Title: "  ", Date: "2025-06-01", Capacity: intPtr(1)},
			wantErr: domain.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEventFixture()

			event, err := f.svc.CreateEvent(ctx, tt.input, tt.image)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, event)
				assert.Empty(t, f.images.files, "no file written when validation fails")
				assert.Empty(t, f.repo.byID)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, event)
			assert.NotZero(t, event.ID)
			assert.Equal(t, "Conf", event.Title)
			assert.Equal(t, "2025-06-01", event.Date.String())
			assert.Len(t, f.images.files, tt.wantStored)
			if tt.wantImage {
				require.NotNil(t, event.ImagePath)
				assert.True(t, strings.HasPrefix(*event.ImagePath, "/uploads/events/"))
				assert.Equal(t, []byte("png-bytes"), f.images.files[*event.ImagePath])
			} else {
				assert.Nil(t, event.ImagePath)
			}
		})
	}
}

func TestEventService_CreateEvent_BlankDescriptionIsAbsent(t *testing.T) {
	f := newEventFixture()
	event, err := f.svc.CreateEvent(context.Background(),
		domain.CreateEventInput{Title: "Conf", Description: strPtr("  "), Date: "2025-06-01", Capacity: intPtr(1)}, nil)
	require.NoError(t, err)
	assert.Nil(t, event.Description)
}

func TestEventService_CreateEvent_StorageFailure(t *testing.T) {
	f := newEventFixture()
	f.images.saveErr = domain.ErrTooLarge

	_, err := f.svc.CreateEvent(context.Background(),
		domain.CreateEventInput{Title: "Conf", Date: "2025-06-01", Capacity: intPtr(1)}, upload("big.png", "x"))
	require.ErrorIs(t, err, domain.ErrTooLarge)
	assert.Empty(t, f.repo.byID)
}

func TestEventService_CreateEvent_PersistFailureRemovesImage(t *testing.T) {
	f := newEventFixture()
	f.repo.createErr = errors.New("db down")

	_, err := f.svc.CreateEvent(context.Background(),
		domain.CreateEventInput{Title: "Conf", Date: "2025-06-01", Capacity: intPtr(1)}, upload("p.png", "data"))
	require.Error(t, err)
	require.Len(t, f.images.removed, 1)
	assert.Empty(t, f.images.files)
}

func TestEventService_GetEvent(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	created, err := f.svc.CreateEvent(ctx, domain.CreateEventInput{Title: "Conf", Date: "2025-06-01", Capacity: intPtr(5)}, nil)
	require.NoError(t, err)

	got, err := f.svc.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = f.svc.GetEvent(ctx, 999999)
	require.ErrorIs(t, err, domain.ErrNotFound)

	f.repo.getErr = errors.New("db down")
	_, err = f.svc.GetEvent(ctx, created.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	for _, title := range []string{"A", "B", "C"} {
		_, err := f.svc.CreateEvent(ctx, domain.CreateEventInput{Title: title, Date: "2025-06-01", Capacity: intPtr(1)}, nil)
		require.NoError(t, err)
	}

	events, total, err := f.svc.ListEvents(ctx, domain.EventPage{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, events, 1)
	assert.Equal(t, "C", events[0].Title)

	events, _, err = f.svc.ListEvents(ctx, domain.EventPage{Page: 5, PageSize: 2})
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	f.repo.listErr = errors.New("db down")
	_, _, err = f.svc.ListEvents(ctx, domain.EventPage{Page: 1, PageSize: 2})
	require.Error(t, err)
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("removes event, bookings and files", func(t *testing.T) {
		f := newEventFixture()
		event, err := f.svc.CreateEvent(ctx,
			domain.CreateEventInput{Title: "Conf", Date: "2025-06-01", Capacity: intPtr(5)}, upload("p.png", "data"))
		require.NoError(t, err)
		qr := "/uploads/qrcodes/1-code.png"
		f.repo.bookings[event.ID] = []*domain.Booking{
			{ID: 1, EventID: event.ID, UserID: 2, Code: "code", QRCodePath: &qr},
			{ID: 2, EventID: event.ID, UserID: 3, Code: "code-2"},
		}

		require.NoError(t, f.svc.DeleteEvent(ctx, event.ID))
		assert.Empty(t, f.repo.byID)
		assert.Empty(t, f.repo.bookings)
		assert.Equal(t, []string{*event.ImagePath}, f.images.removed)
		assert.Equal(t, []string{qr}, f.tickets.removed)

		_, err = f.svc.GetEvent(ctx, event.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing event", func(t *testing.T) {
		f := newEventFixture()
		require.ErrorIs(t, f.svc.DeleteEvent(ctx, 999999), domain.ErrNotFound)
	})

	t.Run("file cleanup failure is not fatal", func(t *testing.T) {
		f := newEventFixture()
		event, err := f.svc.CreateEvent(ctx,
			domain.CreateEventInput{Title: "Conf", Date: "2025-06-01", Capacity: intPtr(5)}, upload("p.png", "data"))
		require.NoError(t, err)
		f.images.removeErr = errors.New("permission denied")

		require.NoError(t, f.svc.DeleteEvent(ctx, event.ID))
		assert.Empty(t, f.repo.byID)
	})

	t.Run("store error", func(t *testing.T) {
		f := newEventFixture()
		event, err := f.svc.CreateEvent(ctx, domain.CreateEventInput{Title: "Conf", Date: "2025-06-01", Capacity: intPtr(5)}, nil)
		require.NoError(t, err)
		f.repo.deleteErr = errors.New("db down")

		err = f.svc.DeleteEvent(ctx, event.ID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}
