package controllers

import (
	"log/slog"
	"net/http"

	h "artistbooking/internal/delivery/http/helpers"
	mw "artistbooking/internal/delivery/http/middleware"
	"artistbooking/internal/domain"
)

// homeArtistLimit caps the discovery-page artist list.
const homeArtistLimit = 6

type ArtistController struct {
	Logger  *slog.Logger
	Artists domain.ArtistService
	Follows domain.FollowService
}

func NewArtistController(logger *slog.Logger, artists domain.ArtistService, follows domain.FollowService) *ArtistController {
	return &ArtistController{
		Logger:  logger,
		Artists: artists,
		Follows: follows,
	}
}

// Show godoc
// @Summary Get an artist's public page
// @Description Returns the assembled artist view: photos as absolute URLs, decoded links, follower/likes counters, and up to five upcoming confirmed events. isFollowing reflects the caller when a Bearer token is presented.
// @Tags artists
// @Produce json
// @Param artistID path string true "Artist ID"
// @Success 200 {object} helpers.APIResponse "data contains the artist view"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /artists/{artistID} [get]
func (c *ArtistController) Show(w http.ResponseWriter, r *http.Request) {
	artistID := r.PathValue("artistID")
	viewerID, _ := mw.UserIDFromContext(r.Context())

	view, err := c.Artists.BuildArtistView(r.Context(), artistID, viewerID)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, view)
}

// Home godoc
// @Summary List artists for the discovery page
// @Description Returns the latest artists as public summaries.
// @Tags artists
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the artist summaries"
// @Router /home/artists [get]
func (c *ArtistController) Home(w http.ResponseWriter, r *http.Request) {
	artists, err := c.Artists.ListPopular(r.Context(), homeArtistLimit)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, artists)
}

// ToggleFollow godoc
// @Summary Follow or unfollow an artist
// @Description Flips the caller's follow state for the artist and returns the new state and follower count. Calling twice restores the original state.
// @Tags artists
// @Produce json
// @Security BearerAuth
// @Param artistID path string true "Artist ID"
// @Success 200 {object} helpers.APIResponse "data contains isFollowing and followerCount"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /artists/{artistID}/follow [post]
func (c *ArtistController) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	artistID := r.PathValue("artistID")
	userID, _ := mw.UserIDFromContext(r.Context())

	state, err := c.Follows.Toggle(r.Context(), userID, artistID)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, state)
}
