package domain

import (
	"context"
	"time"
)

// Roles a user can hold.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents a registered user. PasswordHash is never serialized.
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email"`
	Mobile       *string   `json:"mobile"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(username string, email, mobile *string, passwordHash, role string, createdAt time.Time) *User {
	return &User{
		Username:     username,
		Email:        email,
		Mobile:       mobile,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    createdAt,
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterUserInput is a registration candidate as received from a client.
// Password is nil when none was supplied; Role is empty for the default.
type RegisterUserInput struct {
	Username string
	Email    *string
	Mobile   *string
	Password *string
	Role     string
}

// PasswordHasher hashes and verifies passwords. Implementations salt internally.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Principal is the authenticated caller carried in a request context.
type Principal struct {
	UserID   int64
	Username string
	Role     string
}

// IsAdmin reports whether the caller holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(user *User, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the caller it was issued to.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByMobile(ctx context.Context, mobile string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByMobile(ctx context.Context, mobile string) (bool, error)
}

// UserService defines registration and user lookup.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// FindByEmailOrMobile returns (nil, nil) when nothing matches.
	FindByEmailOrMobile(ctx context.Context, dest string) (*User, error)
	CheckPassword(raw, hash string) bool
	// EnsureAdmin creates an admin account with the given credentials unless the username exists.
	EnsureAdmin(ctx context.Context, username, password string) (*User, bool, error)
}

// AuthService authenticates users and issues tokens.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (token string, user *User, err error)
}
