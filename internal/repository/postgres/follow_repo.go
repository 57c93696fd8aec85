package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"artistbooking/internal/domain"
)

type followRepository struct {
	DB *sql.DB
}

func NewFollowRepository(db *sql.DB) domain.FollowRepository {
	return &followRepository{DB: db}
}

// Toggle runs the whole flip in one transaction. The artist row is locked
// first so concurrent toggles for the same pair serialize instead of racing
// the existence check into a duplicate insert.
func (r *followRepository) Toggle(ctx context.Context, artistID, userID string) (bool, int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var lockedID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM artists WHERE id = $1 FOR UPDATE`, artistID).Scan(&lockedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, 0, domain.ErrArtistNotFound
		}
		return false, 0, err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM artist_follower WHERE artist_id = $1 AND user_id = $2`,
		artistID, userID,
	)
	if err != nil {
		return false, 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	following := deleted == 0
	if following {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO artist_follower (artist_id, user_id, created_at) VALUES ($1, $2, $3)`,
			artistID, userID, time.Now(),
		)
		if err != nil {
			return false, 0, err
		}
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM artist_follower WHERE artist_id = $1`,
		artistID,
	).Scan(&count)
	if err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit toggle: %w", err)
	}
	return following, count, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, artistID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM artist_follower WHERE artist_id = $1 AND user_id = $2
		)
	`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, artistID, userID).Scan(&exists)
	return exists, err
}

func (r *followRepository) CountByArtistID(ctx context.Context, artistID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM artist_follower WHERE artist_id = $1`,
		artistID,
	).Scan(&count)
	return count, err
}
