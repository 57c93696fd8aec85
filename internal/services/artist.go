package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"artistbooking/internal/domain"
)

const upcomingEventsLimit = 5

type artistService struct {
	artistRepo  domain.ArtistRepository
	userRepo    domain.UserRepository
	followRepo  domain.FollowRepository
	bookingRepo domain.BookingRepository
	storage     domain.FileStorage
	logger      *slog.Logger
}

// NewArtistService creates an ArtistService with the given repositories and
// file storage.
func NewArtistService(
	artistRepo domain.ArtistRepository,
	userRepo domain.UserRepository,
	followRepo domain.FollowRepository,
	bookingRepo domain.BookingRepository,
	storage domain.FileStorage,
	logger *slog.Logger,
) domain.ArtistService {
	return &artistService{
		artistRepo:  artistRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
		bookingRepo: bookingRepo,
		storage:     storage,
		logger:      logger,
	}
}

func (s *artistService) BuildArtistView(ctx context.Context, artistID, viewerID string) (*domain.ArtistView, error) {
	artist, err := s.artistRepo.GetByID(ctx, artistID)
	if err != nil {
		if errors.Is(err, domain.ErrArtistNotFound) {
			return nil, domain.ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}

	followers, err := s.followRepo.CountByArtistID(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}

	isFollowing := false
	if viewerID != "" {
		isFollowing, err = s.followRepo.IsFollowing(ctx, artistID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("check following: %w", err)
		}
	}

	// Cutoff is midnight on the local calendar date, so a confirmed booking
	// later today still counts as upcoming.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	bookings, err := s.bookingRepo.ListUpcomingConfirmed(ctx, artistID, today, upcomingEventsLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming bookings: %w", err)
	}
	upcoming := make([]domain.UpcomingEvent, 0, len(bookings))
	for _, b := range bookings {
		upcoming = append(upcoming, domain.UpcomingEvent{
			ID:       b.ID,
			Title:    b.EventName,
			Date:     b.EventDate,
			Venue:    b.VenueName,
			Location: b.VenueLocation,
			Status:   b.Status,
		})
	}

	return &domain.ArtistView{
		ID:               artist.ID,
		Name:             artist.StageName,
		ProfilePhoto:     s.photoURL(artist.ProfilePhoto),
		CoverPhoto:       s.photoURLPtr(artist.CoverPhoto),
		Bio:              artist.Bio,
		Location:         locationOf(artist),
		SocialMediaLinks: artist.SocialMediaLinks,
		MusicLinks:       artist.MusicLinks,
		Stats: domain.ArtistStats{
			Followers: followers,
			Likes:     artist.LikesCount,
		},
		IsFollowing:    isFollowing,
		UpcomingEvents: upcoming,
	}, nil
}

func (s *artistService) BuildDashboardView(ctx context.Context, userID string) (*domain.DashboardView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	artist, err := s.artistRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrArtistNotFound) {
			return nil, domain.ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}

	// Social entries come first, then music entries, each in stored order.
	activity := make([]domain.ActivityEntry, 0, len(artist.SocialMediaLinks)+len(artist.MusicLinks))
	for _, link := range artist.SocialMediaLinks {
		activity = append(activity, domain.ActivityEntry{
			ID:        uuid.NewString(),
			Type:      domain.ActivityTypeShare,
			Message:   "Profile available on " + capitalize(link.Platform),
			Timestamp: "Active",
			URL:       link.URL,
		})
	}
	for _, link := range artist.MusicLinks {
		activity = append(activity, domain.ActivityEntry{
			ID:        uuid.NewString(),
			Type:      domain.ActivityTypeMusic,
			Message:   "Music available on " + capitalize(link.Platform),
			Timestamp: "Active",
			URL:       link.URL,
		})
	}

	tracks := make([]domain.TrackSummary, 0, len(artist.MusicLinks))
	for i, link := range artist.MusicLinks {
		tracks = append(tracks, domain.TrackSummary{
			ID:        i + 1,
			Title:     "Track on " + capitalize(link.Platform),
			Streams:   0,
			Duration:  "--:--",
			Thumbnail: "/placeholder-track.jpg",
			Platform:  link.Platform,
			URL:       link.URL,
		})
	}

	return &domain.DashboardView{
		Name:             user.Name,
		StageName:        artist.StageName,
		ProfilePhoto:     s.photoURL(artist.ProfilePhoto),
		Bio:              artist.Bio,
		Country:          artist.Country,
		Region:           artist.Region,
		Address:          artist.Address,
		Nationality:      artist.Nationality,
		Gender:           artist.Gender,
		PhoneNumber:      artist.PhoneNumber,
		SocialMediaLinks: artist.SocialMediaLinks,
		MusicLinks:       artist.MusicLinks,
		// All zero until real tracking exists.
		Stats:          domain.DashboardStats{},
		RecentActivity: activity,
		TopTracks:      tracks,
	}, nil
}

func (s *artistService) UpdateProfile(ctx context.Context, userID string, patch *domain.ArtistProfilePatch) (*domain.Artist, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	artist, err := s.artistRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrArtistNotFound) {
			return nil, domain.ErrArtistNotFound
		}
		return nil, fmt.Errorf("get artist: %w", err)
	}

	userDirty := false
	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
		userDirty = true
	}
	if patch.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*patch.Email))
		if email != user.Email {
			user.Email = email
			// A changed address must be re-verified.
			user.EmailVerifiedAt = nil
		}
		userDirty = true
	}

	if patch.StageName != nil {
		artist.StageName = strings.TrimSpace(*patch.StageName)
	}
	if patch.Bio != nil {
		artist.Bio = *patch.Bio
	}
	if patch.PhoneNumber != nil {
		artist.PhoneNumber = strings.TrimSpace(*patch.PhoneNumber)
	}
	if patch.Gender != nil {
		artist.Gender = *patch.Gender
	}
	if patch.Nationality != nil {
		artist.Nationality = *patch.Nationality
	}
	if patch.Country != nil {
		artist.Country = *patch.Country
	}
	if patch.Region != nil {
		artist.Region = *patch.Region
	}
	if patch.Address != nil {
		artist.Address = *patch.Address
	}
	if patch.SocialMediaLinks != nil {
		artist.SocialMediaLinks = *patch.SocialMediaLinks
	}
	if patch.MusicLinks != nil {
		artist.MusicLinks = *patch.MusicLinks
	}

	// New photos are stored and the row is persisted before the old files are
	// touched, so a failure anywhere leaves the previous photo intact.
	var newPaths, oldPaths []string
	if patch.ProfilePhoto != nil {
		path, err := s.storage.Store(ctx, patch.ProfilePhoto, "profile-photos")
		if err != nil {
			return nil, fmt.Errorf("store profile photo: %w", err)
		}
		newPaths = append(newPaths, path)
		if artist.ProfilePhoto != "" {
			oldPaths = append(oldPaths, artist.ProfilePhoto)
		}
		artist.ProfilePhoto = path
	}
	if patch.CoverPhoto != nil {
		path, err := s.storage.Store(ctx, patch.CoverPhoto, "cover-photos")
		if err != nil {
			s.discardFiles(ctx, newPaths)
			return nil, fmt.Errorf("store cover photo: %w", err)
		}
		newPaths = append(newPaths, path)
		if artist.CoverPhoto != nil {
			oldPaths = append(oldPaths, *artist.CoverPhoto)
		}
		artist.CoverPhoto = &path
	}

	if userDirty {
		user.UpdatedAt = time.Now()
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.discardFiles(ctx, newPaths)
			if errors.Is(err, domain.ErrDuplicateEmail) {
				return nil, domain.ErrDuplicateEmail
			}
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	artist.UpdatedAt = time.Now()
	if err := s.artistRepo.Update(ctx, artist); err != nil {
		s.discardFiles(ctx, newPaths)
		return nil, fmt.Errorf("update artist: %w", err)
	}

	// Old files go away only after the new state is durable.
	s.discardFiles(ctx, oldPaths)
	return artist, nil
}

func (s *artistService) ListPopular(ctx context.Context, limit int) ([]*domain.ArtistSummary, error) {
	artists, err := s.artistRepo.ListLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	summaries := make([]*domain.ArtistSummary, 0, len(artists))
	for _, a := range artists {
		summaries = append(summaries, &domain.ArtistSummary{
			ID:           a.ID,
			Name:         a.StageName,
			ProfilePhoto: s.photoURL(a.ProfilePhoto),
			Location:     locationOf(a),
			Bio:          a.Bio,
		})
	}
	return summaries, nil
}

func (s *artistService) photoURL(path string) *string {
	if path == "" {
		return nil
	}
	url := s.storage.URL(path)
	return &url
}

func (s *artistService) photoURLPtr(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	return s.photoURL(*path)
}

func (s *artistService) discardFiles(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.storage.Delete(ctx, p); err != nil {
			s.logger.WarnContext(ctx, "failed to delete stored file", "path", p, "err", err)
		}
	}
}

func locationOf(a *domain.Artist) string {
	return a.Region + ", " + a.Country
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
