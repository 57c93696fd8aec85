package controllers

import (
	"encoding/json"
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

// maxRegistrationBody bounds multipart registration uploads (photos included).
const maxRegistrationBody = 32 << 20

// RegisterRequest is the request body for the JSON registration endpoints.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (r RegisterRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(strings.ToLower(r.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !domain.ValidEmail(email) {
		errs = append(errs, "invalid email format")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	} else if len(r.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	return errs
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /auth/login
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *domain.User `json:"user"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterUser godoc
// @Summary Register a plain user account
// @Description Create a user with the default "user" role. Password is stored hashed.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /auth/register [post]
func (c *AuthController) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.RegisterUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, user)
}

// RegisterVenue godoc
// @Summary Register a venue manager account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains user and venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /auth/register/venue [post]
func (c *AuthController) RegisterVenue(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, venue, err := c.Service.RegisterVenue(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, map[string]any{"user": user, "venue": venue})
}

// RegisterOrganiser godoc
// @Summary Register an event organiser account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains user and organiser"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /auth/register/organiser [post]
func (c *AuthController) RegisterOrganiser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, organiser, err := c.Service.RegisterOrganiser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, map[string]any{"user": user, "organiser": organiser})
}

// RegisterArtist godoc
// @Summary Register an artist account
// @Description Multipart form: profile fields plus profile_photo and up to four national_id_photos files. Creates the user, the artist profile, and the role assignment atomically.
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} helpers.APIResponse "data contains user and artist"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /auth/register/artist [post]
func (c *AuthController) RegisterArtist(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRegistrationBody); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	input := &domain.RegisterArtistInput{
		FullName:    strings.TrimSpace(r.FormValue("full_name")),
		Email:       strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
		Password:    r.FormValue("password"),
		PhoneNumber: strings.TrimSpace(r.FormValue("phone_number")),
		StageName:   strings.TrimSpace(r.FormValue("stage_name")),
		Gender:      strings.TrimSpace(strings.ToLower(r.FormValue("gender"))),
		Nationality: strings.TrimSpace(r.FormValue("nationality")),
		Address:     strings.TrimSpace(r.FormValue("address")),
		Country:     strings.TrimSpace(r.FormValue("country")),
		Region:      strings.TrimSpace(r.FormValue("region")),
		NIN:         strings.TrimSpace(r.FormValue("nin")),
		Bio:         strings.TrimSpace(r.FormValue("bio")),
	}

	if errs := validateArtistRegistration(input); len(errs) > 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, strings.Join(errs, "; "))
		return
	}

	social, msg := parseLinks(r.FormValue("social_media_links"), domain.SocialPlatforms)
	if msg != "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "social_media_links: "+msg)
		return
	}
	if len(social) == 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "at least one social media link is required")
		return
	}
	input.SocialMediaLinks = social

	music, msg := parseLinks(r.FormValue("music_links"), domain.MusicPlatforms)
	if msg != "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "music_links: "+msg)
		return
	}
	if len(music) == 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "at least one music link is required")
		return
	}
	input.MusicLinks = music

	idPhotos := r.MultipartForm.File["national_id_photos"]
	if len(idPhotos) == 0 {
		idPhotos = r.MultipartForm.File["national_id_photos[]"]
	}
	if len(idPhotos) == 0 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "at least one national id photo is required")
		return
	}
	if len(idPhotos) > domain.MaxNationalIDPhotos {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "too many national id photos")
		return
	}
	var openFiles []multipart.File
	defer func() {
		for _, f := range openFiles {
			_ = f.Close()
		}
	}()
	for _, fh := range idPhotos {
		f, err := fh.Open()
		if err != nil {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "unreadable national id photo")
			return
		}
		openFiles = append(openFiles, f)
		input.NationalIDPhotos = append(input.NationalIDPhotos, &domain.FileUpload{
			Filename: fh.Filename,
			Content:  f,
			Size:     fh.Size,
		})
	}

	if photo, fh, err := r.FormFile("profile_photo"); err == nil {
		openFiles = append(openFiles, photo)
		input.ProfilePhoto = &domain.FileUpload{
			Filename: fh.Filename,
			Content:  photo,
			Size:     fh.Size,
		}
	}

	user, artist, err := c.Service.RegisterArtist(r.Context(), input)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, map[string]any{"user": user, "artist": artist})
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password. Issues a JWT bound to a new device session.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Login(r.Context(), req.Email, req.Password, clientIP(r), r.UserAgent())
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		User:      result.User,
	})
}

// Logout godoc
// @Summary Log out the current device
// @Description Deletes the session the presented token is bound to. The token stops working immediately.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())
	sessionID, _ := mw.SessionIDFromContext(r.Context())
	if err := c.Service.Logout(r.Context(), userID, sessionID); err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// VerifyEmail godoc
// @Summary Verify an email address
// @Description Consumes the token from the verification email and marks the address as verified. Verifying twice is a no-op.
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} helpers.APIResponse "data contains the verified email"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/verify-email [get]
func (c *AuthController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "token is required")
		return
	}
	user, err := c.Service.VerifyEmail(r.Context(), token)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{
		"message": "email verified",
		"email":   user.Email,
	})
}

func validateArtistRegistration(in *domain.RegisterArtistInput) []string {
	var errs []string
	if in.FullName == "" {
		errs = append(errs, "full_name is required")
	}
	if in.Email == "" {
		errs = append(errs, "email is required")
	} else if !domain.ValidEmail(in.Email) {
		errs = append(errs, "invalid email format")
	}
	if in.Password == "" {
		errs = append(errs, "password is required")
	} else if len(in.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if in.StageName == "" {
		errs = append(errs, "stage_name is required")
	}
	if in.Gender != "" && in.Gender != domain.GenderMale && in.Gender != domain.GenderFemale && in.Gender != domain.GenderOther {
		errs = append(errs, "gender must be \"male\", \"female\", or \"other\"")
	}
	if in.PhoneNumber == "" {
		errs = append(errs, "phone_number is required")
	} else if len(in.PhoneNumber) < domain.MinPhoneNumberLen {
		errs = append(errs, fmt.Sprintf("phone_number must be at least %d characters", domain.MinPhoneNumberLen))
	}
	if in.NIN == "" {
		errs = append(errs, "nin is required")
	} else if len(in.NIN) < domain.MinNINLen {
		errs = append(errs, fmt.Sprintf("nin must be at least %d characters", domain.MinNINLen))
	}
	if in.Bio == "" {
		errs = append(errs, "bio is required")
	} else if utf8.RuneCountInString(in.Bio) < domain.MinBioLen {
		errs = append(errs, fmt.Sprintf("bio must be at least %d characters", domain.MinBioLen))
	}
	if in.Country == "" {
		errs = append(errs, "country is required")
	}
	if in.Region == "" {
		errs = append(errs, "region is required")
	}
	return errs
}

// parseLinks decodes a JSON array of {platform, url} and checks every entry
// against the allowed platform set. Registration and profile updates are
// strict, unlike reads of legacy rows. A non-empty message describes the
// first problem; platforms are normalized to lower case.
func parseLinks(raw string, allowed map[string]bool) ([]domain.Link, string) {
	if raw == "" {
		return nil, ""
	}
	var links []domain.Link
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return nil, "must be a JSON array of {platform, url}"
	}
	for i, l := range links {
		platform := strings.ToLower(strings.TrimSpace(l.Platform))
		if !allowed[platform] {
			return nil, fmt.Sprintf("platform %q is not supported", l.Platform)
		}
		u := strings.TrimSpace(l.URL)
		if !domain.ValidLinkURL(u) {
			return nil, fmt.Sprintf("url for %q must be an absolute http(s) url", platform)
		}
		links[i].Platform = platform
		links[i].URL = u
	}
	return links, ""
}

// clientIP prefers the first X-Forwarded-For hop, falling back to RemoteAddr.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host
}
