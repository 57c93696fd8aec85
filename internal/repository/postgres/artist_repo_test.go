package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"artistbooking/internal/domain"

	"github.com/stretchr/testify/require"
)

func artistRow(t *testing.T, socialLinks, musicLinks, idPhotos string) *sqlmock.Rows {
	t.Helper()
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "phone_number", "stage_name", "gender", "nationality",
		"country", "region", "address", "nin", "bio", "national_id_photos",
		"profile_photo", "cover_photo", "social_media_links", "music_links",
		"likes_count", "created_at", "updated_at",
	}).AddRow(
		"artist-1", "user-1", "+256700000000", "Vinka", "female", "Ugandan",
		"Uganda", "Kampala", "Plot 4", "CM9302", "Afrobeat artist", []byte(idPhotos),
		"profile-photos/p.jpg", nil, []byte(socialLinks), []byte(musicLinks),
		7, now, now,
	)
}

func TestArtistRepository_GetByIDDecodesLinks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM artists WHERE id = \$1`).
		WithArgs("artist-1").
		WillReturnRows(artistRow(t,
			`[{"platform":"instagram","url":"https://ig.com/v"}]`,
			`"[{\"platform\":\"spotify\",\"url\":\"https://sp.com/v\"}]"`,
			`["national-ids/a.jpg","national-ids/b.jpg"]`,
		))

	repo := NewArtistRepository(db)
	a, err := repo.GetByID(context.Background(), "artist-1")
	require.NoError(t, err)
	require.Equal(t, "Vinka", a.StageName)
	require.Nil(t, a.CoverPhoto)
	require.Len(t, a.NationalIDPhotos, 2)
	// Plain JSON decodes directly; the double-encoded legacy value is unwrapped.
	require.Len(t, a.SocialMediaLinks, 1)
	require.Equal(t, "instagram", a.SocialMediaLinks[0].Platform)
	require.Len(t, a.MusicLinks, 1)
	require.Equal(t, "spotify", a.MusicLinks[0].Platform)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_GetByIDMalformedJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM artists WHERE id = \$1`).
		WithArgs("artist-1").
		WillReturnRows(artistRow(t, `{broken`, `also broken`, `not json`))

	repo := NewArtistRepository(db)
	a, err := repo.GetByID(context.Background(), "artist-1")
	require.NoError(t, err)
	require.Empty(t, a.SocialMediaLinks)
	require.Empty(t, a.MusicLinks)
	require.Empty(t, a.NationalIDPhotos)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_GetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM artists WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	repo := NewArtistRepository(db)
	_, err = repo.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrArtistNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_CreateWithUserDuplicateNIN(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))
	mock.ExpectQuery(`INSERT INTO artists`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "artists_nin_key"})
	mock.ExpectRollback()

	repo := NewArtistRepository(db)
	user := &domain.User{Name: "V", Email: "v@example.com", PasswordHash: "h"}
	artist := &domain.Artist{StageName: "Vinka", NIN: "CM9302"}
	err = repo.CreateWithUser(context.Background(), user, artist, "role-artist")
	require.ErrorIs(t, err, domain.ErrDuplicateNIN)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_CreateWithUserSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))
	mock.ExpectQuery(`INSERT INTO artists`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("artist-1"))
	mock.ExpectExec(`INSERT INTO role_user`).
		WithArgs("user-1", "role-artist").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewArtistRepository(db)
	user := &domain.User{Name: "V", Email: "v@example.com", PasswordHash: "h"}
	artist := &domain.Artist{StageName: "Vinka", NIN: "CM9302"}
	err = repo.CreateWithUser(context.Background(), user, artist, "role-artist")
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)
	require.Equal(t, "artist-1", artist.ID)
	require.Equal(t, "user-1", artist.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArtistRepository_UpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE artists`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewArtistRepository(db)
	err = repo.Update(context.Background(), &domain.Artist{ID: "ghost"})
	require.ErrorIs(t, err, domain.ErrArtistNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
