package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artistbooking/internal/domain"
)

type authFixture struct {
	userRepo      *fakeUserRepo
	artistRepo    *fakeArtistRepo
	venueRepo     *fakeVenueRepo
	organiserRepo *fakeOrganiserRepo
	roleRepo      *fakeRoleRepo
	sessionRepo   *fakeSessionRepo
	storage       *fakeStorage
	issuer        *fakeTokenIssuer
	verifier      *fakeTokenVerifier
	email         *fakeEmailService
	svc           domain.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:      newFakeUserRepo(),
		artistRepo:    newFakeArtistRepo(),
		venueRepo:     newFakeVenueRepo(),
		organiserRepo: newFakeOrganiserRepo(),
		roleRepo:      newFakeRoleRepo(),
		sessionRepo:   newFakeSessionRepo(),
		storage:       newFakeStorage(),
		issuer:        &fakeTokenIssuer{},
		verifier:      &fakeTokenVerifier{},
		email:         &fakeEmailService{},
	}
	for _, name := range []string{domain.RoleUser, domain.RoleArtist, domain.RoleVenueManager, domain.RoleEventOrganizer} {
		f.roleRepo.addRole(name)
	}
	f.svc = NewAuthService(
		f.userRepo, f.artistRepo, f.venueRepo, f.organiserRepo, f.roleRepo, f.sessionRepo,
		&fakePasswordHasher{}, f.issuer, f.verifier, time.Hour, f.storage, f.email,
		"https://api.example.com", testLogger(),
	)
	return f
}

func artistInput() *domain.RegisterArtistInput {
	return &domain.RegisterArtistInput{
		FullName:    "Veronica L",
		Email:       "vinka@example.com",
		Password:    "longenough",
		StageName:   "Vinka",
		Gender:      domain.GenderFemale,
		Country:     "Uganda",
		Region:      "Kampala",
		NIN:         "CM9302",
		NationalIDPhotos: []*domain.FileUpload{
			uploadOf("front.jpg", strings.NewReader("f")),
			uploadOf("back.jpg", strings.NewReader("b")),
		},
		ProfilePhoto: uploadOf("me.jpg", strings.NewReader("p")),
	}
}

func TestRegisterUser(t *testing.T) {
	f := newAuthFixture()

	user, err := f.svc.RegisterUser(context.Background(), " Jane ", "Jane@Example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "hash-longenough", user.PasswordHash)
	assert.Equal(t, []string{"role-user"}, f.roleRepo.assigned[user.ID])
	assert.Equal(t, []string{"jane@example.com"}, f.email.welcomes)
	assert.Equal(t, []string{"jane@example.com"}, f.email.verifications)
	assert.Equal(t, "https://api.example.com/auth/verify-email?token=token-"+user.ID, f.email.lastVerifyURL)
}

func TestRegisterUserValidation(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.RegisterUser(context.Background(), "Jane", "not-an-email", "longenough")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.RegisterUser(context.Background(), "Jane", "jane@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.add(&domain.User{ID: "user-0", Email: "jane@example.com"})

	_, err := f.svc.RegisterUser(context.Background(), "Jane", "jane@example.com", "longenough")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRegisterUserMailFailureIsNotFatal(t *testing.T) {
	f := newAuthFixture()
	f.email.sendErr = assert.AnError

	_, err := f.svc.RegisterUser(context.Background(), "Jane", "jane@example.com", "longenough")
	assert.NoError(t, err)
}

func TestRegisterArtist(t *testing.T) {
	f := newAuthFixture()

	user, artist, err := f.svc.RegisterArtist(context.Background(), artistInput())
	require.NoError(t, err)
	assert.Equal(t, "vinka@example.com", user.Email)
	assert.Equal(t, "Vinka", artist.StageName)
	assert.Len(t, artist.NationalIDPhotos, 2)
	assert.NotEmpty(t, artist.ProfilePhoto)
	for _, p := range artist.NationalIDPhotos {
		assert.True(t, f.storage.files[p])
	}
}

func TestRegisterArtistRequiresPhotos(t *testing.T) {
	f := newAuthFixture()

	in := artistInput()
	in.NationalIDPhotos = nil
	_, _, err := f.svc.RegisterArtist(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = artistInput()
	in.ProfilePhoto = nil
	_, _, err = f.svc.RegisterArtist(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = artistInput()
	for i := 0; i <= domain.MaxNationalIDPhotos; i++ {
		in.NationalIDPhotos = append(in.NationalIDPhotos, uploadOf("x.jpg", strings.NewReader("x")))
	}
	_, _, err = f.svc.RegisterArtist(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterArtistRollsBackFilesOnDBFailure(t *testing.T) {
	f := newAuthFixture()
	f.artistRepo.createErr = domain.ErrDuplicateNIN

	_, _, err := f.svc.RegisterArtist(context.Background(), artistInput())
	assert.ErrorIs(t, err, domain.ErrDuplicateNIN)
	// Every stored file was discarded.
	assert.Empty(t, f.storage.files)
	assert.Len(t, f.storage.deleted, 3)
}

func TestRegisterArtistStorageFailureDiscardsEarlierFiles(t *testing.T) {
	f := newAuthFixture()
	f.storage.storeErr = assert.AnError
	f.storage.failAt = 2

	_, _, err := f.svc.RegisterArtist(context.Background(), artistInput())
	require.Error(t, err)
	assert.Empty(t, f.storage.files)
}

func TestRegisterVenueAndOrganiser(t *testing.T) {
	f := newAuthFixture()

	user, venue, err := f.svc.RegisterVenue(context.Background(), "Club Guvnor", "guvnor@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, user.ID, venue.UserID)

	user2, organiser, err := f.svc.RegisterOrganiser(context.Background(), "Swangz", "swangz@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, user2.ID, organiser.UserID)
}

func TestLoginCreatesSessionAndToken(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.add(&domain.User{ID: "user-1", Email: "jane@example.com", PasswordHash: "hash-longenough"})
	f.roleRepo.grantRole("user-1", domain.RoleArtist)

	result, err := f.svc.Login(context.Background(), "Jane@Example.com", "longenough", "10.0.0.5", "Mozilla/5.0")
	require.NoError(t, err)
	assert.Equal(t, "token-user-1", result.Token)
	require.NotNil(t, result.Session)
	assert.Equal(t, "user-1", result.Session.UserID)
	assert.Equal(t, "10.0.0.5", result.Session.IPAddress)
	// The token is bound to the session that was just created.
	assert.Equal(t, result.Session.ID, f.issuer.lastSessionID)

	stored, err := f.sessionRepo.GetByID(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mozilla/5.0", stored.UserAgent)
}

func TestLoginBadCredentials(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.add(&domain.User{ID: "user-1", Email: "jane@example.com", PasswordHash: "hash-longenough"})

	_, err := f.svc.Login(context.Background(), "jane@example.com", "wrong-password", "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.Login(context.Background(), "nobody@example.com", "longenough", "", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.sessionRepo.Create(context.Background(), &domain.UserSession{ID: "sess-1", UserID: "user-1"}))

	require.NoError(t, f.svc.Logout(context.Background(), "user-1", "sess-1"))
	_, err := f.sessionRepo.GetByID(context.Background(), "sess-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Logging out an already-gone session is a no-op.
	assert.NoError(t, f.svc.Logout(context.Background(), "user-1", "sess-1"))
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.add(&domain.User{ID: "user-1", Email: "jane@example.com"})
	f.verifier.userID = "user-1"
	f.verifier.sessionID = "email-verification"

	user, err := f.svc.VerifyEmail(context.Background(), "some-token")
	require.NoError(t, err)
	require.NotNil(t, user.EmailVerifiedAt)

	// Verifying again is a no-op and keeps the original timestamp.
	first := *user.EmailVerifiedAt
	again, err := f.svc.VerifyEmail(context.Background(), "some-token")
	require.NoError(t, err)
	assert.Equal(t, first, *again.EmailVerifiedAt)
}

func TestVerifyEmailRejectsLoginTokens(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.add(&domain.User{ID: "user-1", Email: "jane@example.com"})
	// A login token carries a real session id, not the verification marker.
	f.verifier.userID = "user-1"
	f.verifier.sessionID = "1f4e9a02-4c1d-4b8e-b5a3-0f0f0f0f0f0f"

	_, err := f.svc.VerifyEmail(context.Background(), "login-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyEmailBadToken(t *testing.T) {
	f := newAuthFixture()
	f.verifier.err = assert.AnError

	_, err := f.svc.VerifyEmail(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
