package controllers

import (
	"log/slog"
	"net/http"

	h "artistbooking/internal/delivery/http/helpers"
	"artistbooking/internal/domain"
)

// AdminStats are the headline counters on the admin dashboard.
type AdminStats struct {
	TotalUsers     int `json:"total_users"`
	ActiveSessions int `json:"active_sessions"`
}

type AdminController struct {
	Logger   *slog.Logger
	Users    domain.UserRepository
	Sessions domain.SessionRepository
}

func NewAdminController(logger *slog.Logger, users domain.UserRepository, sessions domain.SessionRepository) *AdminController {
	return &AdminController{Logger: logger, Users: users, Sessions: sessions}
}

// Stats godoc
// @Summary Admin dashboard counters
// @Description Returns total registered users and currently active sessions. Requires the access_admin_panel permission.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the counters"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /admin/stats [get]
func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	totalUsers, err := c.Users.Count(r.Context())
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	activeSessions, err := c.Sessions.CountActive(r.Context())
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, AdminStats{
		TotalUsers:     totalUsers,
		ActiveSessions: activeSessions,
	})
}
