package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artistbooking/internal/domain"
)

type bookingService struct {
	bookingRepo   domain.BookingRepository
	artistRepo    domain.ArtistRepository
	organiserRepo domain.OrganiserRepository
}

// NewBookingService creates a BookingService with the given repositories.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	artistRepo domain.ArtistRepository,
	organiserRepo domain.OrganiserRepository,
) domain.BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		artistRepo:    artistRepo,
		organiserRepo: organiserRepo,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, organiserUserID string, b *domain.Booking) (*domain.Booking, error) {
	organiser, err := s.organiserRepo.GetByUserID(ctx, organiserUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get organiser: %w", err)
	}

	if _, err := s.artistRepo.GetByID(ctx, b.ArtistID); err != nil {
		if errors.Is(err, domain.ErrArtistNotFound) {
			return nil, domain.ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}

	if !b.EndTime.After(b.StartTime) {
		return nil, domain.ErrInvalidInput
	}
	if b.PriceCents < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	b.OrganiserID = organiser.ID
	b.Status = domain.BookingPending
	b.PaymentStatus = domain.PaymentPending
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

func (s *bookingService) ListArtistBookings(ctx context.Context, artistID string, p domain.PaginationParams) ([]*domain.Booking, int, error) {
	if _, err := s.artistRepo.GetByID(ctx, artistID); err != nil {
		if errors.Is(err, domain.ErrArtistNotFound) {
			return nil, 0, domain.ErrArtistNotFound
		}
		return nil, 0, fmt.Errorf("get artist: %w", err)
	}
	bookings, total, err := s.bookingRepo.ListByArtistID(ctx, artistID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, total, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, organiserUserID string, p domain.PaginationParams) ([]*domain.Booking, int, error) {
	organiser, err := s.organiserRepo.GetByUserID(ctx, organiserUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrForbidden
		}
		return nil, 0, fmt.Errorf("get organiser: %w", err)
	}
	bookings, total, err := s.bookingRepo.ListByOrganiserID(ctx, organiser.ID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, total, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, organiserUserID, bookingID, status string) (*domain.Booking, error) {
	organiser, err := s.organiserRepo.GetByUserID(ctx, organiserUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get organiser: %w", err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking.OrganiserID != organiser.ID {
		return nil, domain.ErrForbidden
	}
	if !domain.CanTransitionBooking(booking.Status, status) {
		return nil, domain.ErrInvalidInput
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	booking.Status = status
	return booking, nil
}
