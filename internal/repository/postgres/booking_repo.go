package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventbooking/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

const bookingColumns = `id, event_id, user_id, code, qr_code_path, created_at`

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var qrNull sql.NullString
	if err := row.Scan(&b.ID, &b.EventID, &b.UserID, &b.Code, &qrNull, &b.CreatedAt); err != nil {
		return nil, err
	}
	if qrNull.Valid {
		b.QRCodePath = &qrNull.String
	}
	return b, nil
}

// scanBookings drains and closes rows.
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	defer rows.Close()
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CreateWithinCapacity(ctx context.Context, b *domain.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// The row lock serializes concurrent bookings of the same event until commit.
	var capacity int
	err = tx.QueryRowContext(ctx, `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, b.EventID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock event: %w", err)
	}

	var booked int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, b.EventID).Scan(&booked); err != nil {
		return fmt.Errorf("count bookings: %w", err)
	}
	if booked >= capacity {
		return domain.ErrEventFull
	}

	query := `
		INSERT INTO bookings (event_id, user_id, code, qr_code_path, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, b.EventID, b.UserID, b.Code, b.QRCodePath, b.CreatedAt).Scan(&b.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyBooked
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

func (r *bookingRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
