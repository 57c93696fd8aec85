package domain

import "context"

// RegisterArtistInput carries everything needed to create an artist account.
// Validation of field presence and bounds happens at the delivery layer.
type RegisterArtistInput struct {
	FullName         string
	Email            string
	Password         string
	PhoneNumber      string
	StageName        string
	Gender           string
	Nationality      string
	Address          string
	Country          string
	Region           string
	NIN              string
	Bio              string
	NationalIDPhotos []*FileUpload
	ProfilePhoto     *FileUpload
	SocialMediaLinks []Link
	MusicLinks       []Link
}

// LoginResult bundles the issued token with the authenticated user and the
// session created for this device.
type LoginResult struct {
	Token   string
	User    *User
	Session *UserSession
}

// AuthService defines registration and authentication flows. Each Register*
// variant creates the user, the role-specific profile, and the role assignment
// atomically.
type AuthService interface {
	RegisterUser(ctx context.Context, name, email, password string) (*User, error)
	RegisterArtist(ctx context.Context, input *RegisterArtistInput) (*User, *Artist, error)
	RegisterVenue(ctx context.Context, name, email, password string) (*User, *Venue, error)
	RegisterOrganiser(ctx context.Context, name, email, password string) (*User, *Organiser, error)
	Login(ctx context.Context, email, password, ipAddress, userAgent string) (*LoginResult, error)
	Logout(ctx context.Context, userID, sessionID string) error
	// VerifyEmail consumes a verification token from the registration email and
	// marks the user's email address as verified.
	VerifyEmail(ctx context.Context, token string) (*User, error)
}
