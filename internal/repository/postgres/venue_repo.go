package postgres

import (
	"context"
	"database/sql"
	"errors"

	"artistbooking/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

func (r *venueRepository) CreateWithUser(ctx context.Context, u *domain.User, v *domain.Venue, roleID string) error {
	return createProfileWithUser(ctx, r.DB, u, roleID, func(tx *sql.Tx) error {
		v.UserID = u.ID
		return tx.QueryRowContext(ctx,
			`INSERT INTO venues (user_id, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`,
			v.UserID, v.CreatedAt, v.UpdatedAt,
		).Scan(&v.ID)
	})
}

func (r *venueRepository) GetByUserID(ctx context.Context, userID string) (*domain.Venue, error) {
	query := `SELECT id, user_id, created_at, updated_at FROM venues WHERE user_id = $1`
	v := &domain.Venue{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&v.ID, &v.UserID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}
