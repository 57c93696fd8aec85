package domain

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"
)

// Sentinel errors for artist operations.
var (
	ErrArtistNotFound = errors.New("artist not found")
	ErrDuplicateNIN   = errors.New("national id number already registered")
)

// Gender values accepted for artist profiles.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// MaxNationalIDPhotos bounds the number of national-id photos stored per
// artist. The upstream system left this unbounded; two sides of one document
// plus two spares is plenty.
const MaxNationalIDPhotos = 4

// Minimum lengths enforced on artist registration and profile updates.
const (
	MinBioLen         = 50
	MinPhoneNumberLen = 10
	MinNINLen         = 14
)

// Platform names accepted in link lists. Anything else is rejected before it
// reaches storage or the dashboard activity feed.
var (
	SocialPlatforms = map[string]bool{
		"instagram": true,
		"twitter":   true,
		"facebook":  true,
		"tiktok":    true,
		"youtube":   true,
	}
	MusicPlatforms = map[string]bool{
		"spotify":    true,
		"apple":      true,
		"youtube":    true,
		"soundcloud": true,
		"other":      true,
	}
)

// Link is a platform/url pair for social media and music profiles.
type Link struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ValidLinkURL reports whether s is an absolute http(s) URL.
func ValidLinkURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// DecodeLinks decodes a stored JSON link list. Legacy rows hold the list
// double-encoded as a JSON string; those are unwrapped and decoded again.
// Malformed values degrade to an empty list instead of erroring.
func DecodeLinks(raw []byte) []Link {
	if len(raw) == 0 {
		return []Link{}
	}
	var links []Link
	if err := json.Unmarshal(raw, &links); err == nil {
		return links
	}
	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if err := json.Unmarshal([]byte(wrapped), &links); err == nil {
			return links
		}
	}
	return []Link{}
}

// Artist is the role-specific profile owned by exactly one user.
// Photo fields hold storage-relative paths; URL resolution happens at view
// assembly time.
// swagger:model Artist
type Artist struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	PhoneNumber      string    `json:"phone_number"`
	StageName        string    `json:"stage_name"`
	Gender           string    `json:"gender"`
	Nationality      string    `json:"nationality"`
	Country          string    `json:"country"`
	Region           string    `json:"region"`
	Address          string    `json:"address"`
	NIN              string    `json:"nin"`
	Bio              string    `json:"bio"`
	NationalIDPhotos []string  `json:"national_id_photos"`
	ProfilePhoto     string    `json:"profile_photo"`
	CoverPhoto       *string   `json:"cover_photo"`
	SocialMediaLinks []Link    `json:"social_media_links"`
	MusicLinks       []Link    `json:"music_links"`
	LikesCount       int       `json:"likes_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ArtistSummary is the public discovery-page projection of an artist.
type ArtistSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ProfilePhoto *string `json:"profilePhoto"`
	Location     string  `json:"location"`
	Bio          string  `json:"bio"`
}

// ArtistStats holds the public counters shown on an artist page.
type ArtistStats struct {
	Followers int `json:"followers"`
	Likes     int `json:"likes"`
}

// UpcomingEvent is a confirmed future booking summarized for display.
type UpcomingEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Venue    string    `json:"venue"`
	Location string    `json:"location"`
	Status   string    `json:"status"`
}

// ArtistView is the UI-ready projection of an artist's public page.
// swagger:model ArtistView
type ArtistView struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ProfilePhoto     *string         `json:"profilePhoto"`
	CoverPhoto       *string         `json:"coverPhoto"`
	Bio              string          `json:"bio"`
	Location         string          `json:"location"`
	SocialMediaLinks []Link          `json:"socialMediaLinks"`
	MusicLinks       []Link          `json:"musicLinks"`
	Stats            ArtistStats     `json:"stats"`
	IsFollowing      bool            `json:"isFollowing"`
	UpcomingEvents   []UpcomingEvent `json:"upcomingEvents"`
}

// DashboardStats holds aggregate counters for the artist dashboard. All values
// are explicitly zero until real tracking exists.
type DashboardStats struct {
	TotalTracks      int `json:"totalTracks"`
	TotalFollowers   int `json:"totalFollowers"`
	TotalLikes       int `json:"totalLikes"`
	MonthlyListeners int `json:"monthlyListeners"`
	TotalStreams     int `json:"totalStreams"`
	Engagement       int `json:"engagement"`
}

// Activity types used in dashboard recent-activity feeds.
const (
	ActivityTypeShare = "share"
	ActivityTypeMusic = "music"
)

// ActivityEntry is a synthesized recent-activity item derived from a profile link.
type ActivityEntry struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// TrackSummary is a placeholder track derived from a music link.
type TrackSummary struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Streams   int    `json:"streams"`
	Duration  string `json:"duration"`
	Thumbnail string `json:"thumbnail"`
	Platform  string `json:"platform"`
	URL       string `json:"url"`
}

// DashboardView is the UI-ready projection of an artist's own dashboard.
// swagger:model DashboardView
type DashboardView struct {
	Name             string          `json:"name"`
	StageName        string          `json:"stageName"`
	ProfilePhoto     *string         `json:"profilePhoto"`
	Bio              string          `json:"bio"`
	Country          string          `json:"country"`
	Region           string          `json:"region"`
	Address          string          `json:"address"`
	Nationality      string          `json:"nationality"`
	Gender           string          `json:"gender"`
	PhoneNumber      string          `json:"phoneNumber"`
	SocialMediaLinks []Link          `json:"socialMediaLinks"`
	MusicLinks       []Link          `json:"musicLinks"`
	Stats            DashboardStats  `json:"stats"`
	RecentActivity   []ActivityEntry `json:"recentActivity"`
	TopTracks        []TrackSummary  `json:"topTracks"`
}

// ArtistProfilePatch carries a partial profile update. Nil fields are left
// unchanged. NIN is deliberately absent: it is immutable once set.
type ArtistProfilePatch struct {
	Name             *string
	Email            *string
	StageName        *string
	Bio              *string
	PhoneNumber      *string
	Gender           *string
	Nationality      *string
	Country          *string
	Region           *string
	Address          *string
	SocialMediaLinks *[]Link
	MusicLinks       *[]Link
	ProfilePhoto     *FileUpload
	CoverPhoto       *FileUpload
}

// ArtistRepository defines the interface for artist storage.
type ArtistRepository interface {
	// CreateWithUser atomically creates the user row, the artist row, and the
	// role assignment in a single transaction. Returns ErrDuplicateEmail or
	// ErrDuplicateNIN on the corresponding unique violations.
	CreateWithUser(ctx context.Context, user *User, artist *Artist, roleID string) error
	GetByID(ctx context.Context, id string) (*Artist, error)
	GetByUserID(ctx context.Context, userID string) (*Artist, error)
	// Update persists all mutable artist columns. NIN and UserID are never updated.
	Update(ctx context.Context, artist *Artist) error
	ListLatest(ctx context.Context, limit int) ([]*Artist, error)
}

// ArtistService assembles artist view-models and applies profile updates.
type ArtistService interface {
	// BuildArtistView shapes the public artist page. viewerID may be empty for
	// anonymous visitors; IsFollowing is then always false.
	BuildArtistView(ctx context.Context, artistID, viewerID string) (*ArtistView, error)
	// BuildDashboardView shapes the authenticated artist's own dashboard.
	BuildDashboardView(ctx context.Context, userID string) (*DashboardView, error)
	// UpdateProfile applies a partial update to the caller's user and artist
	// rows. Replaced photos are deleted from storage only after the new state
	// is persisted.
	UpdateProfile(ctx context.Context, userID string, patch *ArtistProfilePatch) (*Artist, error)
	// ListPopular returns the newest artists as public summaries.
	ListPopular(ctx context.Context, limit int) ([]*ArtistSummary, error)
}
