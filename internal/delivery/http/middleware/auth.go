package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "artistbooking/internal/delivery/http/helpers"
	"artistbooking/internal/domain"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	sessionIDKey contextKey = "sessionID"
)

// SetIdentity returns a context carrying the authenticated user and session IDs.
func SetIdentity(ctx context.Context, userID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// SessionIDFromContext returns the session ID of the current request, if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}

func bearerToken(r *http.Request) (string, string) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", "missing authorization header"
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", "invalid authorization format"
	}
	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", "missing token"
	}
	return token, ""
}

// RequireAuth returns a wrapper that validates the Bearer token, checks that
// the session it names still exists (logout and remote revocation kill it),
// and sets both IDs in the request context. Failures respond 401 without
// calling next. Session last-activity is touched best-effort.
func RequireAuth(verifier domain.TokenVerifier, sessions domain.SessionRepository, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, reason := bearerToken(r)
			if reason != "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, reason)
				return
			}
			userID, sessionID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			sess, err := sessions.GetByID(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "session revoked")
					return
				}
				logger.ErrorContext(r.Context(), "session lookup failed", "err", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "something went wrong")
				return
			}
			if sess.UserID != userID {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "session revoked")
				return
			}
			if err := sessions.Touch(r.Context(), sessionID, time.Now()); err != nil {
				logger.WarnContext(r.Context(), "session touch failed", "err", err)
			}
			r = r.WithContext(SetIdentity(r.Context(), userID, sessionID))
			next(w, r)
		}
	}
}

// OptionalAuth sets the user and session IDs in the context when a valid
// Bearer token is present, and otherwise passes the request through
// anonymously. It never responds 401.
func OptionalAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if token, reason := bearerToken(r); reason == "" {
				if userID, sessionID, err := verifier.Verify(token); err == nil {
					r = r.WithContext(SetIdentity(r.Context(), userID, sessionID))
				}
			}
			next(w, r)
		}
	}
}

// RequirePermission returns a wrapper that rejects with 403 unless the
// authenticated user holds the named permission. It must run inside
// RequireAuth. super_admin holders pass every check.
func RequirePermission(access domain.AccessService, permission string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authentication required")
				return
			}
			if !access.HasPermission(r.Context(), userID, permission) {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "you do not have permission to perform this action")
				return
			}
			next(w, r)
		}
	}
}
