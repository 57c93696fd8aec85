package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied with IF NOT EXISTS everywhere so Migrate can run on every
// deploy. uuid generation relies on pgcrypto's gen_random_uuid().
const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email_verified_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS roles (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS permissions (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS role_user (
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, role_id)
);

CREATE TABLE IF NOT EXISTS permission_role (
	permission_id UUID NOT NULL REFERENCES permissions(id) ON DELETE CASCADE,
	role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
	PRIMARY KEY (permission_id, role_id)
);

CREATE TABLE IF NOT EXISTS artists (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	phone_number TEXT NOT NULL,
	stage_name TEXT NOT NULL,
	gender TEXT NOT NULL CHECK (gender IN ('male', 'female', 'other')),
	nationality TEXT NOT NULL,
	country TEXT NOT NULL,
	region TEXT NOT NULL,
	address TEXT NOT NULL,
	nin TEXT NOT NULL UNIQUE,
	bio TEXT NOT NULL,
	national_id_photos JSONB NOT NULL DEFAULT '[]',
	profile_photo TEXT NOT NULL,
	cover_photo TEXT,
	social_media_links JSONB NOT NULL DEFAULT '[]',
	music_links JSONB NOT NULL DEFAULT '[]',
	likes_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS venues (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS organisers (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	artist_id UUID NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
	venue_id UUID NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
	organiser_id UUID NOT NULL REFERENCES organisers(id) ON DELETE CASCADE,
	event_name TEXT NOT NULL,
	event_date DATE NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	venue_name TEXT NOT NULL,
	venue_location TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled', 'completed')),
	price_cents BIGINT NOT NULL,
	payment_status TEXT NOT NULL DEFAULT 'pending' CHECK (payment_status IN ('pending', 'partial', 'paid')),
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS artist_follower (
	artist_id UUID NOT NULL REFERENCES artists(id) ON DELETE CASCADE,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (artist_id, user_id)
);

CREATE TABLE IF NOT EXISTS user_sessions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	ip_address TEXT NOT NULL,
	user_agent TEXT NOT NULL,
	last_activity TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_artist_date ON bookings (artist_id, status, event_date);
CREATE INDEX IF NOT EXISTS idx_user_sessions_user ON user_sessions (user_id, last_activity DESC);
`

// permissionCatalogue is the full set of named permissions.
var permissionCatalogue = []string{
	// User management
	"view_users", "create_users", "edit_users", "delete_users",
	// Profile management
	"edit_profile", "view_profile",
	// Event management
	"create_events", "edit_events", "delete_events", "view_events",
	"publish_events", "manage_event_tickets", "view_event_analytics",
	// Venue management
	"create_venues", "edit_venues", "delete_venues", "view_venues",
	"manage_venue_calendar", "view_venue_analytics",
	// Artist management
	"create_artist_profile", "edit_artist_profile", "delete_artist_profile",
	"view_artist_profile", "manage_artist_calendar", "view_artist_analytics",
	// Ticket management
	"create_tickets", "edit_tickets", "delete_tickets", "view_tickets",
	"manage_ticket_pricing", "process_refunds",
	// Review and rating
	"create_reviews", "edit_reviews", "delete_reviews", "moderate_reviews",
	// Content management
	"manage_content", "manage_announcements", "manage_promotions",
	// System management
	"access_admin_panel", "manage_roles", "manage_permissions",
	"view_system_logs", "manage_settings",
}

// roleGrants maps each role to its permission set. super_admin is absent on
// purpose: it bypasses permission checks entirely instead of carrying an
// explicit grant list, so new permissions never need to be back-filled.
var roleGrants = map[string][]string{
	"user": {
		"edit_profile", "view_profile", "view_events", "view_venues",
		"view_artist_profile", "create_reviews", "edit_reviews", "view_tickets",
	},
	"artist": {
		"edit_profile", "view_profile", "create_artist_profile",
		"edit_artist_profile", "view_artist_profile", "manage_artist_calendar",
		"view_artist_analytics", "view_events", "create_events", "edit_events",
		"view_tickets", "manage_content",
	},
	"event_organizer": {
		"edit_profile", "view_profile", "create_events", "edit_events",
		"delete_events", "view_events", "publish_events", "manage_event_tickets",
		"view_event_analytics", "create_tickets", "edit_tickets", "delete_tickets",
		"view_tickets", "manage_ticket_pricing", "manage_content", "manage_promotions",
	},
	"venue_manager": {
		"edit_profile", "view_profile", "create_venues", "edit_venues",
		"view_venues", "manage_venue_calendar", "view_venue_analytics",
		"view_events", "create_events", "edit_events", "manage_content",
		"manage_promotions",
	},
	"admin": {
		"view_users", "create_users", "edit_users", "delete_users",
		"access_admin_panel", "manage_roles", "manage_content",
		"manage_announcements", "manage_promotions", "moderate_reviews",
		"process_refunds", "view_system_logs", "manage_settings",
		"create_events", "edit_events", "delete_events", "view_events",
		"publish_events", "create_venues", "edit_venues", "delete_venues",
		"view_venues", "create_artist_profile", "edit_artist_profile",
		"delete_artist_profile", "view_artist_profile",
	},
	"super_admin": nil,
}

// Migrate applies the schema and seeds roles, permissions, and grants.
// Every statement is an upsert-by-name, so running it twice leaves the same
// row counts as running it once.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return SeedRolesAndPermissions(ctx, db)
}

// SeedRolesAndPermissions upserts the permission catalogue, the roles, and
// the role-permission grants.
func SeedRolesAndPermissions(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, perm := range permissionCatalogue {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO permissions (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			perm,
		); err != nil {
			return fmt.Errorf("seed permission %q: %w", perm, err)
		}
	}

	for role, grants := range roleGrants {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			role,
		); err != nil {
			return fmt.Errorf("seed role %q: %w", role, err)
		}
		for _, perm := range grants {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO permission_role (permission_id, role_id)
				SELECT p.id, r.id FROM permissions p, roles r
				WHERE p.name = $1 AND r.name = $2
				ON CONFLICT (permission_id, role_id) DO NOTHING
			`, perm, role); err != nil {
				return fmt.Errorf("grant %q to %q: %w", perm, role, err)
			}
		}
	}

	return tx.Commit()
}
