package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"artistbooking/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{DB: db}
}

const bookingColumns = `
	id, artist_id, venue_id, organiser_id, event_name, event_date, start_time,
	end_time, venue_name, venue_location, description, status, price_cents,
	payment_status, notes, created_at, updated_at
`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			artist_id, venue_id, organiser_id, event_name, event_date, start_time,
			end_time, venue_name, venue_location, description, status, price_cents,
			payment_status, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		b.ArtistID, b.VenueID, b.OrganiserID, b.EventName, b.EventDate, b.StartTime,
		b.EndTime, b.VenueName, b.VenueLocation, nullString(b.Description), b.Status,
		b.PriceCents, b.PaymentStatus, nullString(b.Notes), b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, query, id)
	b, err := scanBooking(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) ListByArtistID(ctx context.Context, artistID string, p domain.PaginationParams) ([]*domain.Booking, int, error) {
	return r.listPage(ctx, "artist_id", artistID, p)
}

func (r *bookingRepository) ListByOrganiserID(ctx context.Context, organiserID string, p domain.PaginationParams) ([]*domain.Booking, int, error) {
	return r.listPage(ctx, "organiser_id", organiserID, p)
}

func (r *bookingRepository) listPage(ctx context.Context, column, id string, p domain.PaginationParams) ([]*domain.Booking, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM bookings WHERE ` + column + ` = $1`
	if err := r.DB.QueryRowContext(ctx, countQuery, id).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1
		ORDER BY event_date DESC
		LIMIT $2 OFFSET $3`
	bookings, err := r.list(ctx, query, id, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) ListUpcomingConfirmed(ctx context.Context, artistID string, from time.Time, limit int) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE artist_id = $1 AND status = $2 AND event_date >= $3
		ORDER BY event_date ASC
		LIMIT $4
	`
	return r.list(ctx, query, artistID, domain.BookingConfirmed, from, limit)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(scan func(dest ...any) error) (*domain.Booking, error) {
	b := &domain.Booking{}
	var desc, notes sql.NullString
	err := scan(
		&b.ID, &b.ArtistID, &b.VenueID, &b.OrganiserID, &b.EventName, &b.EventDate,
		&b.StartTime, &b.EndTime, &b.VenueName, &b.VenueLocation, &desc, &b.Status,
		&b.PriceCents, &b.PaymentStatus, &notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		b.Description = &desc.String
	}
	if notes.Valid {
		b.Notes = &notes.String
	}
	return b, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
