package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"eventbooking/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[int64]*domain.User
	nextID    int64
	createErr error
	getErr    error
	existsErr error
	created   []*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) add(u *domain.User) *domain.User {
	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(u)
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUserRepo) find(match func(u *domain.User) bool) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.ID == id })
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Email != nil && *u.Email == email })
}

func (f *fakeUserRepo) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Mobile != nil && *u.Mobile == mobile })
}

func (f *fakeUserRepo) exists(match func(u *domain.User) bool) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, u := range f.byID {
		if match(u) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return f.exists(func(u *domain.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return f.exists(func(u *domain.User) bool { return u.Email != nil && *u.Email == email })
}

func (f *fakeUserRepo) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	return f.exists(func(u *domain.User) bool { return u.Mobile != nil && *u.Mobile == mobile })
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	err error
}

func (f *fakePasswordHasher) Hash(password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "hash-" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, password string) error {
	if hash != "hash-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err        error
	lastUser   *domain.User
	lastExpiry time.Duration
}

func (f *fakeTokenIssuer) Issue(user *domain.User, expiry time.Duration) (string, error) {
	f.lastUser = user
	f.lastExpiry = expiry
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("token-%d-%s", user.ID, user.Role), nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[int64]*domain.Event
	bookings  map[int64][]*domain.Booking
	nextID    int64
	createErr error
	getErr    error
	listErr   error
	deleteErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:     make(map[int64]*domain.Event),
		bookings: make(map[int64][]*domain.Booking),
		nextID:   1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, page domain.EventPage) ([]*domain.Event, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	all := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	start := page.Offset()
	if start >= len(all) {
		return nil, len(all), nil
	}
	end := start + page.Limit()
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (f *fakeEventRepo) DeleteWithBookings(ctx context.Context, id int64) ([]*domain.Booking, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return nil, domain.ErrNotFound
	}
	removed := f.bookings[id]
	delete(f.byID, id)
	delete(f.bookings, id)
	return removed, nil
}

// fakeBookingRepo is an in-memory BookingRepository for tests.
type fakeBookingRepo struct {
	events    *fakeEventRepo
	byID      map[int64]*domain.Booking
	nextID    int64
	createErr error
	listErr   error
}

func newFakeBookingRepo(events *fakeEventRepo) *fakeBookingRepo {
	return &fakeBookingRepo{events: events, byID: make(map[int64]*domain.Booking), nextID: 1}
}

func (f *fakeBookingRepo) CreateWithinCapacity(ctx context.Context, b *domain.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	event, ok := f.events.byID[b.EventID]
	if !ok {
		return domain.ErrNotFound
	}
	count := 0
	for _, existing := range f.byID {
		if existing.EventID != b.EventID {
			continue
		}
		if existing.UserID == b.UserID {
			return domain.ErrAlreadyBooked
		}
		count++
	}
	if count >= event.Capacity {
		return domain.ErrEventFull
	}
	b.ID = f.nextID
	f.nextID++
	f.byID[b.ID] = b
	f.events.bookings[b.EventID] = append(f.events.bookings[b.EventID], b)
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingRepo) sorted(match func(b *domain.Booking) bool) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, b := range f.byID {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeBookingRepo) List(ctx context.Context) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(func(*domain.Booking) bool { return true }), nil
}

func (f *fakeBookingRepo) ListByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(func(b *domain.Booking) bool { return b.UserID == userID }), nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeFileStore implements domain.FileStore in memory.
type fakeFileStore struct {
	prefix    string
	files     map[string][]byte
	removed   []string
	saveErr   error
	removeErr error
	n         int
}

func newFakeFileStore(prefix string) *fakeFileStore {
	return &fakeFileStore{prefix: prefix, files: make(map[string][]byte)}
}

func (f *fakeFileStore) Save(ctx context.Context, src io.Reader, originalName string, size int64) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	if src == nil || size <= 0 {
		return "", nil
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	f.n++
	path := fmt.Sprintf("%s/%d-%s", f.prefix, f.n, originalName)
	f.files[path] = data
	return path, nil
}

func (f *fakeFileStore) Remove(ctx context.Context, publicPath string) error {
	f.removed = append(f.removed, publicPath)
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.files, publicPath)
	return nil
}

// fakeTicketRenderer implements domain.TicketRenderer for tests.
type fakeTicketRenderer struct {
	err error
}

func (f *fakeTicketRenderer) RenderPNG(content string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png:" + content), nil
}

// fakeEmailService records what would have been sent.
type fakeEmailService struct {
	err           error
	welcomes      []*domain.WelcomeMessageEmailData
	confirmations []*domain.BookingConfirmationEmailData
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.welcomes = append(f.welcomes, data)
	return f.err
}

func (f *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	f.confirmations = append(f.confirmations, data)
	return f.err
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
