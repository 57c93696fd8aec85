package domain

import (
	"context"
	"time"
)

// UserSession is one authenticated device/browser session.
type UserSession struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionView is a session shaped for the settings page.
type SessionView struct {
	ID              string    `json:"id"`
	IPAddress       string    `json:"ip_address"`
	LastActive      time.Time `json:"last_active"`
	UserAgent       string    `json:"user_agent"`
	Device          string    `json:"device"`
	IsCurrentDevice bool      `json:"is_current_device"`
}

// SessionRepository defines storage for user sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *UserSession) error
	GetByID(ctx context.Context, id string) (*UserSession, error)
	ListByUserID(ctx context.Context, userID string) ([]*UserSession, error)
	// Delete removes the session only if it belongs to userID. Returns
	// ErrNotFound otherwise.
	Delete(ctx context.Context, id, userID string) error
	// DeleteOthers removes every session of userID except keepID and returns
	// the number removed.
	DeleteOthers(ctx context.Context, userID, keepID string) (int, error)
	Touch(ctx context.Context, id string, at time.Time) error
	CountActive(ctx context.Context) (int, error)
}

// SessionService manages a user's sessions across devices.
type SessionService interface {
	List(ctx context.Context, userID, currentSessionID string) ([]*SessionView, error)
	Revoke(ctx context.Context, userID, sessionID string) error
	RevokeOthers(ctx context.Context, userID, currentSessionID string) (int, error)
}
