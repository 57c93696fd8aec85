package postgres

import (
	"context"
	"database/sql"
	"errors"

	"artistbooking/internal/domain"
)

type organiserRepository struct {
	DB *sql.DB
}

func NewOrganiserRepository(db *sql.DB) domain.OrganiserRepository {
	return &organiserRepository{DB: db}
}

func (r *organiserRepository) CreateWithUser(ctx context.Context, u *domain.User, o *domain.Organiser, roleID string) error {
	return createProfileWithUser(ctx, r.DB, u, roleID, func(tx *sql.Tx) error {
		o.UserID = u.ID
		return tx.QueryRowContext(ctx,
			`INSERT INTO organisers (user_id, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`,
			o.UserID, o.CreatedAt, o.UpdatedAt,
		).Scan(&o.ID)
	})
}

func (r *organiserRepository) GetByUserID(ctx context.Context, userID string) (*domain.Organiser, error) {
	query := `SELECT id, user_id, created_at, updated_at FROM organisers WHERE user_id = $1`
	o := &domain.Organiser{}
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
