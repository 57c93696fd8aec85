package domain

import (
	"context"
	"time"
)

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// Booking links an artist, a venue, and an organiser for a scheduled event.
// Price is stored as cents to keep two-decimal fixed-point arithmetic exact.
// swagger:model Booking
type Booking struct {
	ID            string    `json:"id"`
	ArtistID      string    `json:"artist_id"`
	VenueID       string    `json:"venue_id"`
	OrganiserID   string    `json:"organiser_id"`
	EventName     string    `json:"event_name"`
	EventDate     time.Time `json:"event_date"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	VenueName     string    `json:"venue_name"`
	VenueLocation string    `json:"venue_location"`
	Description   *string   `json:"description"`
	Status        string    `json:"status"`
	PriceCents    int64     `json:"price_cents"`
	PaymentStatus string    `json:"payment_status"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CanTransitionBooking reports whether a booking status change is allowed.
// pending -> confirmed | cancelled; confirmed -> completed | cancelled.
// Cancelled and completed are terminal.
func CanTransitionBooking(from, to string) bool {
	switch from {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCompleted || to == BookingCancelled
	default:
		return false
	}
}

// BookingRepository defines the interface for booking storage.
type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// ListByArtistID returns one page of the artist's bookings, newest event
	// first, along with the total row count.
	ListByArtistID(ctx context.Context, artistID string, p PaginationParams) ([]*Booking, int, error)
	ListByOrganiserID(ctx context.Context, organiserID string, p PaginationParams) ([]*Booking, int, error)
	// ListUpcomingConfirmed returns bookings with status confirmed and
	// event_date on or after the given day, ascending by event_date, capped at limit.
	ListUpcomingConfirmed(ctx context.Context, artistID string, from time.Time, limit int) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// BookingService defines the organiser-facing booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, organiserUserID string, b *Booking) (*Booking, error)
	ListArtistBookings(ctx context.Context, artistID string, p PaginationParams) ([]*Booking, int, error)
	ListMyBookings(ctx context.Context, organiserUserID string, p PaginationParams) ([]*Booking, int, error)
	// UpdateStatus enforces the booking transition matrix and the organiser's
	// ownership of the booking.
	UpdateStatus(ctx context.Context, organiserUserID, bookingID, status string) (*Booking, error)
}
