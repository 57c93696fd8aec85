package domain

import "context"

// Role names known to the platform. RoleSuperAdmin is special: it is never
// granted explicit permissions and instead bypasses every permission check.
const (
	RoleUser           = "user"
	RoleArtist         = "artist"
	RoleEventOrganizer = "event_organizer"
	RoleVenueManager   = "venue_manager"
	RoleAdmin          = "admin"
	RoleSuperAdmin     = "super_admin"
)

// Role represents a named role (e.g. artist, venue_manager).
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Permission represents a named permission (e.g. edit_artist_profile).
type Permission struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoleRepository defines storage for roles, permissions, and their assignments.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*Role, error)
	ListByUserID(ctx context.Context, userID string) ([]*Role, error)
	// AssignToUser links a role to a user. Assigning an already-held role is a no-op.
	AssignToUser(ctx context.Context, userID, roleID string) error
	// UserHasRole reports whether the user holds the named role.
	UserHasRole(ctx context.Context, userID, roleName string) (bool, error)
	// UserHasPermission reports whether any role assigned to the user grants
	// the named permission. It does not apply the super_admin bypass.
	UserHasPermission(ctx context.Context, userID, permissionName string) (bool, error)
}

// AccessService answers authorization questions for authenticated users.
// All checks fail closed: an empty user ID or a storage error never grants access.
type AccessService interface {
	// HasPermission reports whether the user may perform the action guarded by
	// the named permission. Users holding super_admin pass unconditionally,
	// including for permission names that were never seeded.
	HasPermission(ctx context.Context, userID, permissionName string) bool
	HasRole(ctx context.Context, userID, roleName string) bool
	AssignRole(ctx context.Context, userID, roleName string) error
}
