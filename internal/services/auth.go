package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"artistbooking/internal/domain"
)

const (
	minPasswordLen = 8

	// emailVerifySessionID marks a token as an email-verification token. No
	// session row ever carries this id, so these tokens can never pass the
	// authenticated-session check.
	emailVerifySessionID = "email-verification"
	verifyTokenExpiry    = 48 * time.Hour
)

type authService struct {
	userRepo      domain.UserRepository
	artistRepo    domain.ArtistRepository
	venueRepo     domain.VenueRepository
	organiserRepo domain.OrganiserRepository
	roleRepo      domain.RoleRepository
	sessionRepo   domain.SessionRepository
	hasher        domain.PasswordHasher
	tokenIssuer   domain.TokenIssuer
	tokenVerifier domain.TokenVerifier
	tokenExpiry   time.Duration
	storage       domain.FileStorage
	emailService  domain.EmailService
	appBaseURL    string
	logger        *slog.Logger
}

// NewAuthService creates an AuthService wiring the repositories, password
// hasher, token issuer/verifier, file storage, and email service together.
// appBaseURL is the public base URL used to build email-verification links.
func NewAuthService(
	userRepo domain.UserRepository,
	artistRepo domain.ArtistRepository,
	venueRepo domain.VenueRepository,
	organiserRepo domain.OrganiserRepository,
	roleRepo domain.RoleRepository,
	sessionRepo domain.SessionRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenVerifier domain.TokenVerifier,
	tokenExpiry time.Duration,
	storage domain.FileStorage,
	emailService domain.EmailService,
	appBaseURL string,
	logger *slog.Logger,
) domain.AuthService {
	return &authService{
		userRepo:      userRepo,
		artistRepo:    artistRepo,
		venueRepo:     venueRepo,
		organiserRepo: organiserRepo,
		roleRepo:      roleRepo,
		sessionRepo:   sessionRepo,
		hasher:        hasher,
		tokenIssuer:   tokenIssuer,
		tokenVerifier: tokenVerifier,
		tokenExpiry:   tokenExpiry,
		storage:       storage,
		emailService:  emailService,
		appBaseURL:    strings.TrimSuffix(appBaseURL, "/"),
		logger:        logger,
	}
}

func (s *authService) RegisterUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(strings.TrimSpace(name), email, hash, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	role, err := s.roleRepo.GetByName(ctx, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("get role %q: %w", domain.RoleUser, err)
	}
	if err := s.roleRepo.AssignToUser(ctx, user.ID, role.ID); err != nil {
		return nil, fmt.Errorf("assign role: %w", err)
	}

	s.sendWelcome(ctx, user, domain.RoleUser)
	s.sendVerification(ctx, user)
	return user, nil
}

func (s *authService) RegisterArtist(ctx context.Context, input *domain.RegisterArtistInput) (*domain.User, *domain.Artist, error) {
	email, err := normalizeCredentials(input.Email, input.Password)
	if err != nil {
		return nil, nil, err
	}
	if len(input.NationalIDPhotos) == 0 || input.ProfilePhoto == nil {
		return nil, nil, domain.ErrInvalidInput
	}
	if len(input.NationalIDPhotos) > domain.MaxNationalIDPhotos {
		return nil, nil, domain.ErrInvalidInput
	}

	role, err := s.roleRepo.GetByName(ctx, domain.RoleArtist)
	if err != nil {
		return nil, nil, fmt.Errorf("get role %q: %w", domain.RoleArtist, err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	// Files are stored before the transaction; if the transaction fails the
	// stored files are removed best-effort so nothing is orphaned.
	var stored []string
	discard := func() {
		for _, p := range stored {
			if err := s.storage.Delete(ctx, p); err != nil {
				s.logger.WarnContext(ctx, "failed to delete stored file", "path", p, "err", err)
			}
		}
	}

	idPhotoPaths := make([]string, 0, len(input.NationalIDPhotos))
	for _, photo := range input.NationalIDPhotos {
		path, err := s.storage.Store(ctx, photo, "national-ids")
		if err != nil {
			discard()
			return nil, nil, fmt.Errorf("store national id photo: %w", err)
		}
		stored = append(stored, path)
		idPhotoPaths = append(idPhotoPaths, path)
	}
	profilePhotoPath, err := s.storage.Store(ctx, input.ProfilePhoto, "profile-photos")
	if err != nil {
		discard()
		return nil, nil, fmt.Errorf("store profile photo: %w", err)
	}
	stored = append(stored, profilePhotoPath)

	now := time.Now()
	user := domain.NewUser(strings.TrimSpace(input.FullName), email, hash, now, now)
	artist := &domain.Artist{
		PhoneNumber:      strings.TrimSpace(input.PhoneNumber),
		StageName:        strings.TrimSpace(input.StageName),
		Gender:           input.Gender,
		Nationality:      input.Nationality,
		Country:          input.Country,
		Region:           input.Region,
		Address:          input.Address,
		NIN:              strings.TrimSpace(input.NIN),
		Bio:              input.Bio,
		NationalIDPhotos: idPhotoPaths,
		ProfilePhoto:     profilePhotoPath,
		SocialMediaLinks: input.SocialMediaLinks,
		MusicLinks:       input.MusicLinks,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.artistRepo.CreateWithUser(ctx, user, artist, role.ID); err != nil {
		discard()
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicateNIN) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("create artist account: %w", err)
	}

	s.sendWelcome(ctx, user, domain.RoleArtist)
	s.sendVerification(ctx, user)
	return user, artist, nil
}

func (s *authService) RegisterVenue(ctx context.Context, name, email, password string) (*domain.User, *domain.Venue, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, nil, err
	}
	role, err := s.roleRepo.GetByName(ctx, domain.RoleVenueManager)
	if err != nil {
		return nil, nil, fmt.Errorf("get role %q: %w", domain.RoleVenueManager, err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(strings.TrimSpace(name), email, hash, now, now)
	venue := &domain.Venue{CreatedAt: now, UpdatedAt: now}
	if err := s.venueRepo.CreateWithUser(ctx, user, venue, role.ID); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, nil, domain.ErrDuplicateEmail
		}
		return nil, nil, fmt.Errorf("create venue account: %w", err)
	}

	s.sendWelcome(ctx, user, domain.RoleVenueManager)
	s.sendVerification(ctx, user)
	return user, venue, nil
}

func (s *authService) RegisterOrganiser(ctx context.Context, name, email, password string) (*domain.User, *domain.Organiser, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, nil, err
	}
	role, err := s.roleRepo.GetByName(ctx, domain.RoleEventOrganizer)
	if err != nil {
		return nil, nil, fmt.Errorf("get role %q: %w", domain.RoleEventOrganizer, err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(strings.TrimSpace(name), email, hash, now, now)
	organiser := &domain.Organiser{CreatedAt: now, UpdatedAt: now}
	if err := s.organiserRepo.CreateWithUser(ctx, user, organiser, role.ID); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, nil, domain.ErrDuplicateEmail
		}
		return nil, nil, fmt.Errorf("create organiser account: %w", err)
	}

	s.sendWelcome(ctx, user, domain.RoleEventOrganizer)
	s.sendVerification(ctx, user)
	return user, organiser, nil
}

func (s *authService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (*domain.LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	roles, err := s.roleRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	roleNames := make([]string, len(roles))
	for i, r := range roles {
		roleNames[i] = r.Name
	}

	now := time.Now()
	session := &domain.UserSession{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		LastActivity: now,
		CreatedAt:    now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Email, roleNames, session.ID, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.LoginResult{Token: token, User: user, Session: session}, nil
}

func (s *authService) Logout(ctx context.Context, userID, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	userID, sessionID, err := s.tokenVerifier.Verify(token)
	if err != nil || sessionID != emailVerifySessionID {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.EmailVerifiedAt != nil {
		return user, nil
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	user.UpdatedAt = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("mark email verified: %w", err)
	}
	return user, nil
}

// sendWelcome is best-effort: registration already committed, so a mail
// failure is logged rather than surfaced.
func (s *authService) sendWelcome(ctx context.Context, user *domain.User, role string) {
	if s.emailService == nil {
		return
	}
	data := &domain.WelcomeEmailData{Email: user.Email, Name: user.Name, Role: role}
	if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "failed to send welcome email", "email", user.Email, "err", err)
	}
}

// sendVerification is best-effort like sendWelcome.
func (s *authService) sendVerification(ctx context.Context, user *domain.User) {
	if s.emailService == nil {
		return
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, nil, emailVerifySessionID, verifyTokenExpiry)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to sign verification token", "email", user.Email, "err", err)
		return
	}
	data := &domain.VerifyEmailData{
		Email:     user.Email,
		Name:      user.Name,
		VerifyURL: s.appBaseURL + "/auth/verify-email?token=" + url.QueryEscape(token),
	}
	if err := s.emailService.SendEmailVerification(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "failed to send verification email", "email", user.Email, "err", err)
	}
}

func normalizeCredentials(email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !domain.ValidEmail(email) {
		return "", fmt.Errorf("invalid email format: %w", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return "", fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrInvalidInput)
	}
	return email, nil
}
