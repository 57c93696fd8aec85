package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"artistbooking/internal/domain"
)

// fakeRoleRepo implements domain.RoleRepository for tests.
type fakeRoleRepo struct {
	byName      map[string]*domain.Role
	rolesByUser map[string][]string
	permsByUser map[string]map[string]bool
	assigned    map[string][]string
	roleErr     error
	permErr     error
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		byName:      make(map[string]*domain.Role),
		rolesByUser: make(map[string][]string),
		permsByUser: make(map[string]map[string]bool),
		assigned:    make(map[string][]string),
	}
}

func (f *fakeRoleRepo) addRole(name string) *domain.Role {
	r := &domain.Role{ID: "role-" + name, Name: name}
	f.byName[name] = r
	return r
}

func (f *fakeRoleRepo) grantRole(userID, roleName string) {
	f.rolesByUser[userID] = append(f.rolesByUser[userID], roleName)
}

func (f *fakeRoleRepo) grantPermission(userID, perm string) {
	if f.permsByUser[userID] == nil {
		f.permsByUser[userID] = make(map[string]bool)
	}
	f.permsByUser[userID][perm] = true
}

func (f *fakeRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	if r, ok := f.byName[name]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	names := f.rolesByUser[userID]
	roles := make([]*domain.Role, 0, len(names))
	for _, n := range names {
		roles = append(roles, &domain.Role{ID: "role-" + n, Name: n})
	}
	return roles, nil
}

func (f *fakeRoleRepo) AssignToUser(ctx context.Context, userID, roleID string) error {
	f.assigned[userID] = append(f.assigned[userID], roleID)
	return nil
}

func (f *fakeRoleRepo) UserHasRole(ctx context.Context, userID, roleName string) (bool, error) {
	if f.roleErr != nil {
		return false, f.roleErr
	}
	for _, n := range f.rolesByUser[userID] {
		if n == roleName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoleRepo) UserHasPermission(ctx context.Context, userID, permissionName string) (bool, error) {
	if f.permErr != nil {
		return false, f.permErr
	}
	return f.permsByUser[userID][permissionName], nil
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	updateErr error
	updated   int
	nextID    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) add(u *domain.User) {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	f.nextID++
	u.ID = "user-" + strconv.Itoa(f.nextID)
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	f.updated++
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// fakeArtistRepo implements domain.ArtistRepository for tests.
type fakeArtistRepo struct {
	byID      map[string]*domain.Artist
	byUserID  map[string]*domain.Artist
	createErr error
	updateErr error
	updated   *domain.Artist
	latest    []*domain.Artist
}

func newFakeArtistRepo() *fakeArtistRepo {
	return &fakeArtistRepo{
		byID:     make(map[string]*domain.Artist),
		byUserID: make(map[string]*domain.Artist),
	}
}

func (f *fakeArtistRepo) add(a *domain.Artist) {
	f.byID[a.ID] = a
	f.byUserID[a.UserID] = a
}

func (f *fakeArtistRepo) CreateWithUser(ctx context.Context, user *domain.User, artist *domain.Artist, roleID string) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = "user-new"
	artist.ID = "artist-new"
	artist.UserID = user.ID
	f.add(artist)
	return nil
}

func (f *fakeArtistRepo) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	if a, ok := f.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, domain.ErrArtistNotFound
}

func (f *fakeArtistRepo) GetByUserID(ctx context.Context, userID string) (*domain.Artist, error) {
	if a, ok := f.byUserID[userID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, domain.ErrArtistNotFound
}

func (f *fakeArtistRepo) Update(ctx context.Context, a *domain.Artist) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	cp := *a
	f.updated = &cp
	f.byID[a.ID] = &cp
	f.byUserID[a.UserID] = &cp
	return nil
}

func (f *fakeArtistRepo) ListLatest(ctx context.Context, limit int) ([]*domain.Artist, error) {
	if limit > len(f.latest) {
		limit = len(f.latest)
	}
	return f.latest[:limit], nil
}

// fakeFollowRepo implements domain.FollowRepository for tests.
type fakeFollowRepo struct {
	following map[string]map[string]bool // artistID -> userID -> true
	toggleErr error
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{following: make(map[string]map[string]bool)}
}

func (f *fakeFollowRepo) Toggle(ctx context.Context, artistID, userID string) (bool, int, error) {
	if f.toggleErr != nil {
		return false, 0, f.toggleErr
	}
	if f.following[artistID] == nil {
		f.following[artistID] = make(map[string]bool)
	}
	if f.following[artistID][userID] {
		delete(f.following[artistID], userID)
	} else {
		f.following[artistID][userID] = true
	}
	return f.following[artistID][userID], len(f.following[artistID]), nil
}

func (f *fakeFollowRepo) IsFollowing(ctx context.Context, artistID, userID string) (bool, error) {
	return f.following[artistID][userID], nil
}

func (f *fakeFollowRepo) CountByArtistID(ctx context.Context, artistID string) (int, error) {
	return len(f.following[artistID]), nil
}

// fakeBookingRepo implements domain.BookingRepository for tests.
type fakeBookingRepo struct {
	byID             map[string]*domain.Booking
	upcoming         []*domain.Booking
	created          *domain.Booking
	statusCalls      map[string]string
	lastUpcomingFrom time.Time
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID:        make(map[string]*domain.Booking),
		statusCalls: make(map[string]string),
	}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	b.ID = "booking-new"
	cp := *b
	f.created = &cp
	f.byID[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if b, ok := f.byID[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingRepo) ListByArtistID(ctx context.Context, artistID string, _ domain.PaginationParams) ([]*domain.Booking, int, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.ArtistID == artistID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (f *fakeBookingRepo) ListByOrganiserID(ctx context.Context, organiserID string, _ domain.PaginationParams) ([]*domain.Booking, int, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.OrganiserID == organiserID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (f *fakeBookingRepo) ListUpcomingConfirmed(ctx context.Context, artistID string, from time.Time, limit int) ([]*domain.Booking, error) {
	f.lastUpcomingFrom = from
	if limit > len(f.upcoming) {
		limit = len(f.upcoming)
	}
	return f.upcoming[:limit], nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	b, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	f.statusCalls[id] = status
	return nil
}

// fakeOrganiserRepo implements domain.OrganiserRepository for tests.
type fakeOrganiserRepo struct {
	byUserID map[string]*domain.Organiser
}

func newFakeOrganiserRepo() *fakeOrganiserRepo {
	return &fakeOrganiserRepo{byUserID: make(map[string]*domain.Organiser)}
}

func (f *fakeOrganiserRepo) CreateWithUser(ctx context.Context, user *domain.User, o *domain.Organiser, roleID string) error {
	user.ID = "user-new"
	o.ID = "organiser-new"
	o.UserID = user.ID
	f.byUserID[user.ID] = o
	return nil
}

func (f *fakeOrganiserRepo) GetByUserID(ctx context.Context, userID string) (*domain.Organiser, error) {
	if o, ok := f.byUserID[userID]; ok {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

// fakeVenueRepo implements domain.VenueRepository for tests.
type fakeVenueRepo struct {
	byUserID map[string]*domain.Venue
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{byUserID: make(map[string]*domain.Venue)}
}

func (f *fakeVenueRepo) CreateWithUser(ctx context.Context, user *domain.User, v *domain.Venue, roleID string) error {
	user.ID = "user-new"
	v.ID = "venue-new"
	v.UserID = user.ID
	f.byUserID[user.ID] = v
	return nil
}

func (f *fakeVenueRepo) GetByUserID(ctx context.Context, userID string) (*domain.Venue, error) {
	if v, ok := f.byUserID[userID]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

// fakeSessionRepo implements domain.SessionRepository for tests.
type fakeSessionRepo struct {
	byID      map[string]*domain.UserSession
	deleteErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byID: make(map[string]*domain.UserSession)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.UserSession) error {
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*domain.UserSession, error) {
	if s, ok := f.byID[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.UserSession, error) {
	var out []*domain.UserSession
	for _, s := range f.byID {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	s, ok := f.byID[id]
	if !ok || s.UserID != userID {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeSessionRepo) DeleteOthers(ctx context.Context, userID, keepID string) (int, error) {
	removed := 0
	for id, s := range f.byID {
		if s.UserID == userID && id != keepID {
			delete(f.byID, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeSessionRepo) Touch(ctx context.Context, id string, at time.Time) error {
	if s, ok := f.byID[id]; ok {
		s.LastActivity = at
	}
	return nil
}

func (f *fakeSessionRepo) CountActive(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// fakeStorage implements domain.FileStorage for tests.
type fakeStorage struct {
	files    map[string]bool
	storeErr error
	failAt   int // fail the Nth Store call (1-based), 0 = never
	stores   int
	deleted  []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string]bool)}
}

func (f *fakeStorage) Store(ctx context.Context, file *domain.FileUpload, folder string) (string, error) {
	f.stores++
	if f.storeErr != nil && (f.failAt == 0 || f.stores == f.failAt) {
		return "", f.storeErr
	}
	path := fmt.Sprintf("%s/%d-%s", folder, f.stores, file.Filename)
	f.files[path] = true
	return path, nil
}

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	return f.files[path], nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	delete(f.files, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) URL(path string) string {
	return "https://cdn.test/" + path
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (f *fakePasswordHasher) Hash(password string) (string, error) {
	return "hash-" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, password string) error {
	if hash != "hash-"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	lastSessionID string
}

func (f *fakeTokenIssuer) Issue(userID, email string, roles []string, sessionID string, expiry time.Duration) (string, error) {
	f.lastSessionID = sessionID
	return "token-" + userID, nil
}

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	userID    string
	sessionID string
	err       error
}

func (f *fakeTokenVerifier) Verify(token string) (string, string, error) {
	return f.userID, f.sessionID, f.err
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	welcomes      []string
	verifications []string
	lastVerifyURL string
	sendErr       error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.welcomes = append(f.welcomes, data.Email)
	return nil
}

func (f *fakeEmailService) SendEmailVerification(ctx context.Context, data *domain.VerifyEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.verifications = append(f.verifications, data.Email)
	f.lastVerifyURL = data.VerifyURL
	return nil
}

func uploadOf(name string, r io.Reader) *domain.FileUpload {
	return &domain.FileUpload{Filename: name, Content: r, Size: 1}
}
