package services

import (
	"context"
	"errors"
	"fmt"

	"artistbooking/internal/domain"
)

type followService struct {
	followRepo domain.FollowRepository
	artistRepo domain.ArtistRepository
}

// NewFollowService creates a FollowService with the given repositories.
func NewFollowService(followRepo domain.FollowRepository, artistRepo domain.ArtistRepository) domain.FollowService {
	return &followService{followRepo: followRepo, artistRepo: artistRepo}
}

func (s *followService) Toggle(ctx context.Context, userID, artistID string) (*domain.FollowState, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.artistRepo.GetByID(ctx, artistID); err != nil {
		if errors.Is(err, domain.ErrArtistNotFound) {
			return nil, domain.ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}

	following, count, err := s.followRepo.Toggle(ctx, artistID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrArtistNotFound) {
			return nil, domain.ErrArtistNotFound
		}
		return nil, fmt.Errorf("toggle follow: %w", err)
	}

	return &domain.FollowState{
		IsFollowing:   following,
		FollowerCount: count,
	}, nil
}
