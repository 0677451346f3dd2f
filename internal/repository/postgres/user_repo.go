package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventbooking/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, username, email, mobile, password_hash, role, created_at`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (username, email, mobile, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, u.Username, u.Email, u.Mobile, u.PasswordHash, u.Role, u.CreatedAt).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username", username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *userRepository) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	return r.getOne(ctx, "mobile", mobile)
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *userRepository) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	return r.exists(ctx, "mobile", mobile)
}

// getOne and exists take the column from the fixed set above, never from input.
func (r *userRepository) getOne(ctx context.Context, column string, value any) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s = $1
	`, userColumns, column)
	u := &domain.User{}
	var emailNull, mobileNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, value).Scan(&u.ID, &u.Username, &emailNull, &mobileNull, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if emailNull.Valid {
		u.Email = &emailNull.String
	}
	if mobileNull.Valid {
		u.Mobile = &mobileNull.String
	}
	return u, nil
}

func (r *userRepository) exists(ctx context.Context, column, value string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM users WHERE %s = $1)`, column)
	var found bool
	if err := r.DB.QueryRowContext(ctx, query, value).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}
