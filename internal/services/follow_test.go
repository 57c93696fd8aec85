package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistbooking/internal/domain"
)

func TestFollowToggleSequence(t *testing.T) {
	artistRepo := newFakeArtistRepo()
	artistRepo.add(&domain.Artist{ID: "artist-1", UserID: "user-9"})
	followRepo := newFakeFollowRepo()
	svc := NewFollowService(followRepo, artistRepo)

	ctx := context.Background()

	state, err := svc.Toggle(ctx, "user-1", "artist-1")
	require.NoError(t, err)
	assert.True(t, state.IsFollowing)
	assert.Equal(t, 1, state.FollowerCount)

	// Toggling again flips back rather than erroring on the duplicate.
	state, err = svc.Toggle(ctx, "user-1", "artist-1")
	require.NoError(t, err)
	assert.False(t, state.IsFollowing)
	assert.Equal(t, 0, state.FollowerCount)

	state, err = svc.Toggle(ctx, "user-1", "artist-1")
	require.NoError(t, err)
	assert.True(t, state.IsFollowing)
	assert.Equal(t, 1, state.FollowerCount)
}

func TestFollowToggleCountsDistinctFollowers(t *testing.T) {
	artistRepo := newFakeArtistRepo()
	artistRepo.add(&domain.Artist{ID: "artist-1", UserID: "user-9"})
	followRepo := newFakeFollowRepo()
	svc := NewFollowService(followRepo, artistRepo)

	ctx := context.Background()
	_, err := svc.Toggle(ctx, "user-1", "artist-1")
	require.NoError(t, err)
	state, err := svc.Toggle(ctx, "user-2", "artist-1")
	require.NoError(t, err)

	assert.True(t, state.IsFollowing)
	assert.Equal(t, 2, state.FollowerCount)
}

func TestFollowToggleUnauthenticated(t *testing.T) {
	svc := NewFollowService(newFakeFollowRepo(), newFakeArtistRepo())

	_, err := svc.Toggle(context.Background(), "", "artist-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestFollowToggleUnknownArtist(t *testing.T) {
	svc := NewFollowService(newFakeFollowRepo(), newFakeArtistRepo())

	_, err := svc.Toggle(context.Background(), "user-1", "ghost")
	assert.ErrorIs(t, err, domain.ErrArtistNotFound)
}
