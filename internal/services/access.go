package services

import (
	"context"
	"fmt"
	"log/slog"

	"artistbooking/internal/domain"
)

type accessService struct {
	roleRepo domain.RoleRepository
	logger   *slog.Logger
}

// NewAccessService creates an AccessService backed by the role repository.
func NewAccessService(roleRepo domain.RoleRepository, logger *slog.Logger) domain.AccessService {
	return &accessService{roleRepo: roleRepo, logger: logger}
}

// HasPermission fails closed: unauthenticated callers and storage errors both
// deny. The super_admin bypass is checked first and is independent of the
// grant table, so it also covers permission names that were never seeded.
func (s *accessService) HasPermission(ctx context.Context, userID, permissionName string) bool {
	if userID == "" || permissionName == "" {
		return false
	}

	isSuper, err := s.roleRepo.UserHasRole(ctx, userID, domain.RoleSuperAdmin)
	if err != nil {
		s.logger.ErrorContext(ctx, "permission check failed", "user_id", userID, "err", err)
		return false
	}
	if isSuper {
		return true
	}

	granted, err := s.roleRepo.UserHasPermission(ctx, userID, permissionName)
	if err != nil {
		s.logger.ErrorContext(ctx, "permission check failed", "user_id", userID, "err", err)
		return false
	}
	return granted
}

func (s *accessService) HasRole(ctx context.Context, userID, roleName string) bool {
	if userID == "" || roleName == "" {
		return false
	}
	has, err := s.roleRepo.UserHasRole(ctx, userID, roleName)
	if err != nil {
		s.logger.ErrorContext(ctx, "role check failed", "user_id", userID, "err", err)
		return false
	}
	return has
}

func (s *accessService) AssignRole(ctx context.Context, userID, roleName string) error {
	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return fmt.Errorf("get role %q: %w", roleName, err)
	}
	if err := s.roleRepo.AssignToUser(ctx, userID, role.ID); err != nil {
		return fmt.Errorf("assign role %q: %w", roleName, err)
	}
	return nil
}
