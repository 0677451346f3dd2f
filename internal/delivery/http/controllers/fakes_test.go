package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var (
	adminCaller  = domain.Principal{UserID: 1, Username: "root", Role: domain.RoleAdmin}
	memberCaller = domain.Principal{UserID: 7, Username: "alice", Role: domain.RoleMember}
)

// withCaller returns r carrying p as the authenticated caller.
func withCaller(r *http.Request, p domain.Principal) *http.Request {
	return r.WithContext(middleware.SetPrincipal(r.Context(), p))
}

// decodeEnvelope decodes the response body and returns the raw data payload.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) (json.RawMessage, *helpers.APIError) {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	return envelope.Data, envelope.Error
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	registerErr   error
	registerUser  *domain.User
	getByIDErr    error
	getByIDUser   *domain.User
	lastRegister  domain.RegisterUserInput
	lastGetByIDID int64
}

func (f *fakeUserService) Register(_ context.Context, input domain.RegisterUserInput) (*domain.User, error) {
	f.lastRegister = input
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerUser, nil
}

func (f *fakeUserService) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.lastGetByIDID = id
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDUser, nil
}

func (f *fakeUserService) GetByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeUserService) FindByEmailOrMobile(_ context.Context, _ string) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUserService) CheckPassword(_, _ string) bool { return false }

func (f *fakeUserService) EnsureAdmin(_ context.Context, _, _ string) (*domain.User, bool, error) {
	return nil, false, nil
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	token          string
	user           *domain.User
	err            error
	lastIdentifier string
	lastPassword   string
}

func (f *fakeAuthService) Login(_ context.Context, identifier, password string) (string, *domain.User, error) {
	f.lastIdentifier = identifier
	f.lastPassword = password
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr    error
	getErr       error
	listErr      error
	deleteErr    error
	event        *domain.Event
	events       []*domain.Event
	total        int
	lastInput    domain.CreateEventInput
	lastImage    []byte
	lastFilename string
	lastPage     domain.EventPage
	lastID       int64
	createCalled bool
}

func (f *fakeEventService) CreateEvent(_ context.Context, input domain.CreateEventInput, image *domain.Upload) (*domain.Event, error) {
	f.createCalled = true
	f.lastInput = input
	if !image.Empty() {
		b, err := io.ReadAll(image.Reader)
		if err != nil {
			return nil, err
		}
		f.lastImage = b
		f.lastFilename = image.Filename
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.event, nil
}

func (f *fakeEventService) GetEvent(_ context.Context, id int64) (*domain.Event, error) {
	f.lastID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.event, nil
}

func (f *fakeEventService) ListEvents(_ context.Context, page domain.EventPage) ([]*domain.Event, int, error) {
	f.lastPage = page
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.events, f.total, nil
}

func (f *fakeEventService) DeleteEvent(_ context.Context, id int64) error {
	f.lastID = id
	return f.deleteErr
}

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	bookErr     error
	listErr     error
	cancelErr   error
	booking     *domain.Booking
	bookings    []*domain.Booking
	lastEventID int64
	lastID      int64
	lastCaller  domain.Principal
}

func (f *fakeBookingService) Book(_ context.Context, eventID int64, caller domain.Principal) (*domain.Booking, error) {
	f.lastEventID = eventID
	f.lastCaller = caller
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return f.booking, nil
}

func (f *fakeBookingService) List(_ context.Context, caller domain.Principal) ([]*domain.Booking, error) {
	f.lastCaller = caller
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.bookings, nil
}

func (f *fakeBookingService) Cancel(_ context.Context, id int64, caller domain.Principal) error {
	f.lastID = id
	f.lastCaller = caller
	return f.cancelErr
}

func strPtr(s string) *string { return &s }
