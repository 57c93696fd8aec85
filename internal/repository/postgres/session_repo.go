package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"artistbooking/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.UserSession) error {
	query := `
		INSERT INTO user_sessions (id, user_id, ip_address, user_agent, last_activity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.UserID, s.IPAddress, s.UserAgent, s.LastActivity, s.CreatedAt)
	return err
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.UserSession, error) {
	query := `
		SELECT id, user_id, ip_address, user_agent, last_activity, created_at
		FROM user_sessions
		WHERE id = $1
	`
	s := &domain.UserSession{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.IPAddress, &s.UserAgent, &s.LastActivity, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.UserSession, error) {
	query := `
		SELECT id, user_id, ip_address, user_agent, last_activity, created_at
		FROM user_sessions
		WHERE user_id = $1
		ORDER BY last_activity DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.UserSession, 0)
	for rows.Next() {
		s := &domain.UserSession{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.IPAddress, &s.UserAgent, &s.LastActivity, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM user_sessions WHERE id = $1 AND user_id = $2`,
		id, userID,
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

func (r *sessionRepository) DeleteOthers(ctx context.Context, userID, keepID string) (int, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM user_sessions WHERE user_id = $1 AND id != $2`,
		userID, keepID,
	)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func (r *sessionRepository) Touch(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE user_sessions SET last_activity = $1 WHERE id = $2`,
		at, id,
	)
	return err
}

func (r *sessionRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_sessions`).Scan(&n)
	return n, err
}
