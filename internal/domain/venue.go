package domain

import (
	"context"
	"time"
)

// Venue is the role-specific profile for venue managers. Minimal for now;
// domain attributes land here as the venue side grows.
type Venue struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Organiser is the role-specific profile for event organisers.
type Organiser struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VenueRepository defines the interface for venue storage.
type VenueRepository interface {
	CreateWithUser(ctx context.Context, user *User, venue *Venue, roleID string) error
	GetByUserID(ctx context.Context, userID string) (*Venue, error)
}

// OrganiserRepository defines the interface for organiser storage.
type OrganiserRepository interface {
	CreateWithUser(ctx context.Context, user *User, organiser *Organiser, roleID string) error
	GetByUserID(ctx context.Context, userID string) (*Organiser, error)
}
