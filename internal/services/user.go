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

type userService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewUserService creates a UserService. emailService may be nil, in which case no welcome mail is sent.
func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		hasher:         hasher,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// optionalField trims s and treats a blank value as absent.
func optionalField(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func normalizeRole(role string) (string, error) {
	switch r := strings.ToLower(strings.TrimSpace(role)); r {
	case "":
		return domain.RoleMember, nil
	case domain.RoleMember, domain.RoleAdmin:
		return r, nil
	default:
		return "", domain.InvalidArgumentf("role must be %q or %q", domain.RoleMember, domain.RoleAdmin)
	}
}

func (s *userService) Register(ctx context.Context, input domain.RegisterUserInput) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, &domain.MissingFieldError{Field: "username"}
	}
	email := optionalField(input.Email)
	mobile := optionalField(input.Mobile)
	role, err := normalizeRole(input.Role)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, &domain.DuplicateFieldError{Field: "username"}
	}
	if email != nil {
		taken, err := s.userRepo.ExistsByEmail(ctx, *email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, &domain.DuplicateFieldError{Field: "email"}
		}
	}
	if mobile != nil {
		taken, err := s.userRepo.ExistsByMobile(ctx, *mobile)
		if err != nil {
			return nil, fmt.Errorf("check mobile: %w", err)
		}
		if taken {
			return nil, &domain.DuplicateFieldError{Field: "mobile"}
		}
	}

	raw := ""
	if input.Password != nil {
		raw = *input.Password
	}
	hash, err := s.hasher.Hash(raw)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewUser(username, email, mobile, hash, role, time.Now().UTC())
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.emailService != nil && user.Email != nil {
		data := &domain.WelcomeMessageEmailData{Email: *user.Email, Username: user.Username}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "err", err)
		}
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) FindByEmailOrMobile(ctx context.Context, dest string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	dest = strings.TrimSpace(dest)
	if dest == "" {
		return nil, nil
	}
	var (
		user *domain.User
		err  error
	)
	if strings.Contains(dest, "@") {
		user, err = s.userRepo.GetByEmail(ctx, dest)
	} else {
		user, err = s.userRepo.GetByMobile(ctx, dest)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) CheckPassword(raw, hash string) bool {
	if hash == "" {
		return false
	}
	return s.hasher.Compare(hash, raw) == nil
}

func (s *userService) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, &domain.MissingFieldError{Field: "username"}
	}
	if password == "" {
		return nil, false, &domain.MissingFieldError{Field: "password"}
	}
	existing, err := s.GetByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	user, err := s.Register(ctx, domain.RegisterUserInput{
		Username: username,
		Password: &password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
