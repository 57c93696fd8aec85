package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"artistbooking/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestFollowRepository_ToggleFollows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM artists WHERE id = \$1 FOR UPDATE`).
		WithArgs("artist-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("artist-1"))
	// No existing row: delete hits nothing, so an insert follows.
	mock.ExpectExec(`DELETE FROM artist_follower`).
		WithArgs("artist-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO artist_follower`).
		WithArgs("artist-1", "user-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM artist_follower`).
		WithArgs("artist-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectCommit()

	repo := NewFollowRepository(db)
	following, count, err := repo.Toggle(context.Background(), "artist-1", "user-1")
	require.NoError(t, err)
	require.True(t, following)
	require.Equal(t, 5, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_ToggleUnfollows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM artists WHERE id = \$1 FOR UPDATE`).
		WithArgs("artist-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("artist-1"))
	// Existing row deleted: no insert happens.
	mock.ExpectExec(`DELETE FROM artist_follower`).
		WithArgs("artist-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM artist_follower`).
		WithArgs("artist-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectCommit()

	repo := NewFollowRepository(db)
	following, count, err := repo.Toggle(context.Background(), "artist-1", "user-1")
	require.NoError(t, err)
	require.False(t, following)
	require.Equal(t, 4, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_ToggleUnknownArtist(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM artists WHERE id = \$1 FOR UPDATE`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	repo := NewFollowRepository(db)
	_, _, err = repo.Toggle(context.Background(), "ghost", "user-1")
	require.ErrorIs(t, err, domain.ErrArtistNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_IsFollowing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("artist-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewFollowRepository(db)
	following, err := repo.IsFollowing(context.Background(), "artist-1", "user-1")
	require.NoError(t, err)
	require.True(t, following)
	require.NoError(t, mock.ExpectationsWereMet())
}
