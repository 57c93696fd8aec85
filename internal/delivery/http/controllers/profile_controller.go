package controllers

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	h "artistbooking/internal/delivery/http/helpers"
	mw "artistbooking/internal/delivery/http/middleware"
	"artistbooking/internal/domain"
)

const maxProfileBody = 16 << 20

type ProfileController struct {
	Logger  *slog.Logger
	Artists domain.ArtistService
}

func NewProfileController(logger *slog.Logger, artists domain.ArtistService) *ProfileController {
	return &ProfileController{Logger: logger, Artists: artists}
}

// Dashboard godoc
// @Summary Get the authenticated artist's dashboard
// @Description Returns profile fields, zeroed aggregate stats, synthesized recent activity from profile links, and placeholder top tracks.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the dashboard view"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /artist/dashboard [get]
func (c *ProfileController) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())

	view, err := c.Artists.BuildDashboardView(r.Context(), userID)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, view)
}

// UpdateProfile godoc
// @Summary Update the authenticated artist's profile
// @Description Multipart form; only provided fields change. Changing email resets verification. Uploading profile_photo or cover_photo replaces the stored file; the old file is removed only after the update commits. The nin field is immutable and rejected.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the updated artist"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /artist/profile [patch]
func (c *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())

	if err := r.ParseMultipartForm(maxProfileBody); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	if _, ok := r.MultipartForm.Value["nin"]; ok {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "nin cannot be changed")
		return
	}

	patch := &domain.ArtistProfilePatch{}
	setString := func(field string, dst **string, transform func(string) string) {
		if vals, ok := r.MultipartForm.Value[field]; ok && len(vals) > 0 {
			v := strings.TrimSpace(vals[0])
			if transform != nil {
				v = transform(v)
			}
			*dst = &v
		}
	}
	setString("name", &patch.Name, nil)
	setString("email", &patch.Email, strings.ToLower)
	setString("stage_name", &patch.StageName, nil)
	setString("bio", &patch.Bio, nil)
	setString("phone_number", &patch.PhoneNumber, nil)
	setString("gender", &patch.Gender, strings.ToLower)
	setString("nationality", &patch.Nationality, nil)
	setString("country", &patch.Country, nil)
	setString("region", &patch.Region, nil)
	setString("address", &patch.Address, nil)

	if patch.Email != nil && !domain.ValidEmail(*patch.Email) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid email format")
		return
	}
	if patch.Gender != nil && *patch.Gender != domain.GenderMale && *patch.Gender != domain.GenderFemale && *patch.Gender != domain.GenderOther {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "gender must be \"male\", \"female\", or \"other\"")
		return
	}
	if patch.Bio != nil && utf8.RuneCountInString(*patch.Bio) < domain.MinBioLen {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, fmt.Sprintf("bio must be at least %d characters", domain.MinBioLen))
		return
	}
	if patch.PhoneNumber != nil && len(*patch.PhoneNumber) < domain.MinPhoneNumberLen {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, fmt.Sprintf("phone_number must be at least %d characters", domain.MinPhoneNumberLen))
		return
	}

	if vals, ok := r.MultipartForm.Value["social_media_links"]; ok && len(vals) > 0 {
		links, msg := parseLinks(vals[0], domain.SocialPlatforms)
		if msg != "" {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "social_media_links: "+msg)
			return
		}
		if len(links) == 0 {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "social_media_links must contain at least one link")
			return
		}
		patch.SocialMediaLinks = &links
	}
	if vals, ok := r.MultipartForm.Value["music_links"]; ok && len(vals) > 0 {
		links, msg := parseLinks(vals[0], domain.MusicPlatforms)
		if msg != "" {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "music_links: "+msg)
			return
		}
		if len(links) == 0 {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "music_links must contain at least one link")
			return
		}
		patch.MusicLinks = &links
	}

	var openFiles []multipart.File
	defer func() {
		for _, f := range openFiles {
			_ = f.Close()
		}
	}()
	if photo, fh, err := r.FormFile("profile_photo"); err == nil {
		openFiles = append(openFiles, photo)
		patch.ProfilePhoto = &domain.FileUpload{Filename: fh.Filename, Content: photo, Size: fh.Size}
	}
	if photo, fh, err := r.FormFile("cover_photo"); err == nil {
		openFiles = append(openFiles, photo)
		patch.CoverPhoto = &domain.FileUpload{Filename: fh.Filename, Content: photo, Size: fh.Size}
	}

	artist, err := c.Artists.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, artist)
}
