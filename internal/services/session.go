package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"artistbooking/internal/domain"
)

type sessionService struct {
	sessionRepo domain.SessionRepository
}

// NewSessionService creates a SessionService with the given repository.
func NewSessionService(sessionRepo domain.SessionRepository) domain.SessionService {
	return &sessionService{sessionRepo: sessionRepo}
}

func (s *sessionService) List(ctx context.Context, userID, currentSessionID string) ([]*domain.SessionView, error) {
	sessions, err := s.sessionRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	views := make([]*domain.SessionView, 0, len(sessions))
	for _, sess := range sessions {
		views = append(views, &domain.SessionView{
			ID:              sess.ID,
			IPAddress:       sess.IPAddress,
			LastActive:      sess.LastActivity,
			UserAgent:       sess.UserAgent,
			Device:          deviceName(sess.UserAgent),
			IsCurrentDevice: sess.ID == currentSessionID,
		})
	}
	return views, nil
}

func (s *sessionService) Revoke(ctx context.Context, userID, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *sessionService) RevokeOthers(ctx context.Context, userID, currentSessionID string) (int, error) {
	removed, err := s.sessionRepo.DeleteOthers(ctx, userID, currentSessionID)
	if err != nil {
		return 0, fmt.Errorf("delete other sessions: %w", err)
	}
	return removed, nil
}

// deviceName derives a readable device label from a User-Agent string.
// Coarse matching is fine here; the label is informational only.
func deviceName(userAgent string) string {
	ua := strings.ToLower(userAgent)

	platform := "Unknown OS"
	switch {
	case strings.Contains(ua, "iphone"):
		return "iPhone"
	case strings.Contains(ua, "ipad"):
		return "iPad"
	case strings.Contains(ua, "android") && strings.Contains(ua, "mobile"):
		return "Android Phone"
	case strings.Contains(ua, "android"):
		return "Android Tablet"
	case strings.Contains(ua, "windows"):
		platform = "Windows"
	case strings.Contains(ua, "mac os"):
		platform = "macOS"
	case strings.Contains(ua, "linux"):
		platform = "Linux"
	}

	browser := "Unknown Browser"
	switch {
	case strings.Contains(ua, "edg/"):
		browser = "Edge"
	case strings.Contains(ua, "chrome/"):
		browser = "Chrome"
	case strings.Contains(ua, "firefox/"):
		browser = "Firefox"
	case strings.Contains(ua, "safari/"):
		browser = "Safari"
	}

	return browser + " on " + platform
}
