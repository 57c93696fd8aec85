package domain

import "context"

// FollowState is the outcome of a follow toggle.
type FollowState struct {
	IsFollowing   bool `json:"isFollowing"`
	FollowerCount int  `json:"followerCount"`
}

// FollowRepository defines storage for the artist-follower relation.
type FollowRepository interface {
	// Toggle atomically inserts or removes the (artistID, userID) pair and
	// returns the new following flag and follower count. Concurrent toggles
	// for the same pair serialize; no duplicate pair is ever observable.
	Toggle(ctx context.Context, artistID, userID string) (following bool, count int, err error)
	IsFollowing(ctx context.Context, artistID, userID string) (bool, error)
	CountByArtistID(ctx context.Context, artistID string) (int, error)
}

// FollowService toggles follow membership for authenticated users.
type FollowService interface {
	// Toggle flips the follow state of userID on artistID. A second call with
	// the same arguments flips it back; this is a toggle, not a set-to-true.
	Toggle(ctx context.Context, userID, artistID string) (*FollowState, error)
}
