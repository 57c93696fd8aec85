package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"artistbooking/internal/domain"
)

// createProfileWithUser runs the shared registration transaction: insert the
// user, insert the role-specific profile row via insertProfile, assign the
// role. Everything commits or nothing does.
func createProfileWithUser(ctx context.Context, db *sql.DB, u *domain.User, roleID string, insertProfile func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, userQuery, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt).Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}

	if err := insertProfile(tx); err != nil {
		return err
	}

	roleQuery := `
		INSERT INTO role_user (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, roleQuery, u.ID, roleID); err != nil {
		return err
	}

	return tx.Commit()
}
