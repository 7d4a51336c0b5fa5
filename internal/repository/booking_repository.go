package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rentora/rentora-api/internal/domain"
)

type BookingRepository interface {
	CreateIfFree(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.RenterBooking, error)
	ListByProperty(ctx context.Context, propertyID int64) ([]domain.PropertyBooking, error)
}

type bookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingCols = `id, property_id, user_id, start_date, end_date, created_at`

// exclusionViolation is the class 23 code raised by the
// bookings_no_overlap EXCLUDE constraint.
const exclusionViolation = "23P01"

// CreateIfFree inserts the booking only when no existing booking on the
// same property intersects the requested interval. The intersection
// test is non-strict on both bounds (start_date <= $4 AND end_date >=
// $3), and the insert and check run as one statement; the table's
// exclusion constraint backstops concurrent writers. A nil booking with
// a nil error means the dates were taken.
func (r *bookingRepository) CreateIfFree(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	const q = `
		INSERT INTO bookings (property_id, user_id, start_date, end_date)
		SELECT $1, $2, $3, $4
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE property_id = $1
			  AND start_date <= $4
			  AND end_date >= $3
		)
		RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.db.QueryRow(ctx, q, req.PropertyID, userID, req.StartDate, req.EndDate).Scan(
		&b.ID, &b.PropertyID, &b.UserID, &b.StartDate, &b.EndDate, &b.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.RenterBooking, error) {
	const q = `
		SELECT b.id, b.property_id, b.user_id, b.start_date, b.end_date, b.created_at,
		       p.id, p.title, p.location
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.user_id = $1
		ORDER BY b.start_date ASC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.RenterBooking
	for rows.Next() {
		var b domain.RenterBooking
		if err := rows.Scan(
			&b.ID, &b.PropertyID, &b.UserID, &b.StartDate, &b.EndDate, &b.CreatedAt,
			&b.Property.ID, &b.Property.Title, &b.Property.Location,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) ListByProperty(ctx context.Context, propertyID int64) ([]domain.PropertyBooking, error) {
	const q = `
		SELECT b.id, b.property_id, b.user_id, b.start_date, b.end_date, b.created_at,
		       u.id, u.name, u.email
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.property_id = $1
		ORDER BY b.start_date ASC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.PropertyBooking
	for rows.Next() {
		var b domain.PropertyBooking
		if err := rows.Scan(
			&b.ID, &b.PropertyID, &b.UserID, &b.StartDate, &b.EndDate, &b.CreatedAt,
			&b.User.ID, &b.User.Name, &b.User.Email,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
