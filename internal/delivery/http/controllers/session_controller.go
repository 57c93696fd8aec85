package controllers

import (
	"log/slog"
	"net/http"

	h "artistbooking/internal/delivery/http/helpers"
	mw "artistbooking/internal/delivery/http/middleware"
	"artistbooking/internal/domain"
)

type SessionController struct {
	Logger   *slog.Logger
	Sessions domain.SessionService
}

func NewSessionController(logger *slog.Logger, sessions domain.SessionService) *SessionController {
	return &SessionController{Logger: logger, Sessions: sessions}
}

// List godoc
// @Summary List the caller's active sessions
// @Description Returns every device session of the caller with a readable device label. The session behind the presented token is flagged as the current device.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the session views"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /sessions [get]
func (c *SessionController) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())
	sessionID, _ := mw.SessionIDFromContext(r.Context())

	views, err := c.Sessions.List(r.Context(), userID, sessionID)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, views)
}

// Revoke godoc
// @Summary Revoke one of the caller's sessions
// @Description Deletes the named session. Only the caller's own sessions can be revoked; anything else is not found.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /sessions/{sessionID} [delete]
func (c *SessionController) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())
	sessionID := r.PathValue("sessionID")

	if err := c.Sessions.Revoke(r.Context(), userID, sessionID); err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "session revoked"})
}

// RevokeOthers godoc
// @Summary Revoke all sessions except the current one
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the number of revoked sessions"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /sessions/others [delete]
func (c *SessionController) RevokeOthers(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())
	sessionID, _ := mw.SessionIDFromContext(r.Context())

	removed, err := c.Sessions.RevokeOthers(r.Context(), userID, sessionID)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]int{"revoked": removed})
}
