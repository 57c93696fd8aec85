package postgres

import (
	"context"
	"database/sql"
	"errors"

	"artistbooking/internal/domain"
)

type roleRepository struct {
	DB *sql.DB
}

func NewRoleRepository(db *sql.DB) domain.RoleRepository {
	return &roleRepository{DB: db}
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	query := `
		SELECT id, name
		FROM roles
		WHERE name = $1
	`
	role := &domain.Role{}
	err := r.DB.QueryRowContext(ctx, query, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

func (r *roleRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		INNER JOIN role_user ru ON ru.role_id = r.id
		WHERE ru.user_id = $1
		ORDER BY r.name
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		role := &domain.Role{}
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *roleRepository) AssignToUser(ctx context.Context, userID, roleID string) error {
	query := `
		INSERT INTO role_user (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, roleID)
	return err
}

func (r *roleRepository) UserHasRole(ctx context.Context, userID, roleName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM role_user ru
			INNER JOIN roles r ON r.id = ru.role_id
			WHERE ru.user_id = $1 AND r.name = $2
		)
	`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, userID, roleName).Scan(&exists)
	return exists, err
}

func (r *roleRepository) UserHasPermission(ctx context.Context, userID, permissionName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM role_user ru
			INNER JOIN permission_role pr ON pr.role_id = ru.role_id
			INNER JOIN permissions p ON p.id = pr.permission_id
			WHERE ru.user_id = $1 AND p.name = $2
		)
	`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, userID, permissionName).Scan(&exists)
	return exists, err
}
