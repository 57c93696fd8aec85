package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	h "artistbooking/internal/delivery/http/helpers"
	mw "artistbooking/internal/delivery/http/middleware"
	"artistbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeArtistService implements domain.ArtistService for handler tests.
type fakeArtistService struct {
	updateErr  error
	lastUserID string
	lastPatch  *domain.ArtistProfilePatch
}

func (f *fakeArtistService) BuildArtistView(ctx context.Context, artistID, viewerID string) (*domain.ArtistView, error) {
	return &domain.ArtistView{ID: artistID}, nil
}

func (f *fakeArtistService) BuildDashboardView(ctx context.Context, userID string) (*domain.DashboardView, error) {
	return &domain.DashboardView{}, nil
}

func (f *fakeArtistService) UpdateProfile(ctx context.Context, userID string, patch *domain.ArtistProfilePatch) (*domain.Artist, error) {
	f.lastUserID = userID
	f.lastPatch = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &domain.Artist{ID: "artist-1", UserID: userID}, nil
}

func (f *fakeArtistService) ListPopular(ctx context.Context, limit int) ([]*domain.ArtistSummary, error) {
	return nil, nil
}

func multipartPatchRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	wr := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, wr.WriteField(k, v))
	}
	require.NoError(t, wr.Close())

	req := httptest.NewRequest(http.MethodPatch, "/artist/profile", &buf)
	req.Header.Set("Content-Type", wr.FormDataContentType())
	return req.WithContext(mw.SetIdentity(req.Context(), "user-1", "sess-1"))
}

func TestProfileController_UpdateProfileValidation(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]string
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name: "success",
			fields: map[string]string{
				"bio":                strings.Repeat("Afrobeat singer from Kampala. ", 3),
				"social_media_links": `[{"platform":"TikTok","url":"https://tiktok.com/@vinka"}]`,
			},
			wantStatus: http.StatusOK,
		},
		{
			name:           "bio too short",
			fields:         map[string]string{"bio": "Too short."},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "bio must be at least 50 characters",
		},
		{
			name:           "phone number too short",
			fields:         map[string]string{"phone_number": "0772"},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "phone_number must be at least 10 characters",
		},
		{
			name:           "unsupported music platform",
			fields:         map[string]string{"music_links": `[{"platform":"bandcamp","url":"https://vinka.bandcamp.com"}]`},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: `platform "bandcamp" is not supported`,
		},
		{
			name:           "social link without url scheme",
			fields:         map[string]string{"social_media_links": `[{"platform":"instagram","url":"instagram.com/vinka"}]`},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "absolute http(s) url",
		},
		{
			name:           "empty link list",
			fields:         map[string]string{"social_media_links": `[]`},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "at least one link",
		},
		{
			name:           "nin is immutable",
			fields:         map[string]string{"nin": "CM93022104NKLA"},
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "nin cannot be changed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeArtistService{}
			ctrl := NewProfileController(testLogger, fake)
			rr := httptest.NewRecorder()

			ctrl.UpdateProfile(rr, multipartPatchRequest(t, tt.fields))

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope h.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				require.NotNil(t, fake.lastPatch)
				assert.Equal(t, "user-1", fake.lastUserID)
				require.NotNil(t, fake.lastPatch.SocialMediaLinks)
				require.Len(t, *fake.lastPatch.SocialMediaLinks, 1)
				assert.Equal(t, "tiktok", (*fake.lastPatch.SocialMediaLinks)[0].Platform)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
				assert.Nil(t, fake.lastPatch)
			}
		})
	}
}
