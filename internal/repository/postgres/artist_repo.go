package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lib/pq"
	"artistbooking/internal/domain"
)

type artistRepository struct {
	DB *sql.DB
}

func NewArtistRepository(db *sql.DB) domain.ArtistRepository {
	return &artistRepository{DB: db}
}

const artistColumns = `
	id, user_id, phone_number, stage_name, gender, nationality, country, region,
	address, nin, bio, national_id_photos, profile_photo, cover_photo,
	social_media_links, music_links, likes_count, created_at, updated_at
`

func (r *artistRepository) CreateWithUser(ctx context.Context, u *domain.User, a *domain.Artist, roleID string) error {
	idPhotos, err := json.Marshal(a.NationalIDPhotos)
	if err != nil {
		return err
	}
	socialLinks, err := json.Marshal(a.SocialMediaLinks)
	if err != nil {
		return err
	}
	musicLinks, err := json.Marshal(a.MusicLinks)
	if err != nil {
		return err
	}

	return createProfileWithUser(ctx, r.DB, u, roleID, func(tx *sql.Tx) error {
		artistQuery := `
			INSERT INTO artists (
				user_id, phone_number, stage_name, gender, nationality, country, region,
				address, nin, bio, national_id_photos, profile_photo, cover_photo,
				social_media_links, music_links, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			RETURNING id
		`
		a.UserID = u.ID
		err := tx.QueryRowContext(ctx, artistQuery,
			a.UserID, a.PhoneNumber, a.StageName, a.Gender, a.Nationality, a.Country, a.Region,
			a.Address, a.NIN, a.Bio, idPhotos, a.ProfilePhoto, a.CoverPhoto,
			socialLinks, musicLinks, a.CreatedAt, a.UpdatedAt,
		).Scan(&a.ID)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
				if pqErr.Constraint == "artists_nin_key" {
					return domain.ErrDuplicateNIN
				}
				return domain.ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
}

func (r *artistRepository) GetByID(ctx context.Context, id string) (*domain.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE id = $1`
	return scanArtist(r.DB.QueryRowContext(ctx, query, id))
}

func (r *artistRepository) GetByUserID(ctx context.Context, userID string) (*domain.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE user_id = $1`
	return scanArtist(r.DB.QueryRowContext(ctx, query, userID))
}

func scanArtist(row *sql.Row) (*domain.Artist, error) {
	a := &domain.Artist{}
	var idPhotos, socialLinks, musicLinks []byte
	var coverPhoto sql.NullString
	err := row.Scan(
		&a.ID, &a.UserID, &a.PhoneNumber, &a.StageName, &a.Gender, &a.Nationality,
		&a.Country, &a.Region, &a.Address, &a.NIN, &a.Bio, &idPhotos,
		&a.ProfilePhoto, &coverPhoto, &socialLinks, &musicLinks, &a.LikesCount,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArtistNotFound
		}
		return nil, err
	}
	if coverPhoto.Valid {
		a.CoverPhoto = &coverPhoto.String
	}
	// Malformed stored JSON degrades to empty lists; it never fails a read.
	if err := json.Unmarshal(idPhotos, &a.NationalIDPhotos); err != nil {
		a.NationalIDPhotos = []string{}
	}
	a.SocialMediaLinks = domain.DecodeLinks(socialLinks)
	a.MusicLinks = domain.DecodeLinks(musicLinks)
	return a, nil
}

func (r *artistRepository) Update(ctx context.Context, a *domain.Artist) error {
	idPhotos, err := json.Marshal(a.NationalIDPhotos)
	if err != nil {
		return err
	}
	socialLinks, err := json.Marshal(a.SocialMediaLinks)
	if err != nil {
		return err
	}
	musicLinks, err := json.Marshal(a.MusicLinks)
	if err != nil {
		return err
	}
	query := `
		UPDATE artists
		SET phone_number = $1, stage_name = $2, gender = $3, nationality = $4,
			country = $5, region = $6, address = $7, bio = $8,
			national_id_photos = $9, profile_photo = $10, cover_photo = $11,
			social_media_links = $12, music_links = $13, updated_at = $14
		WHERE id = $15
	`
	var coverPhoto sql.NullString
	if a.CoverPhoto != nil {
		coverPhoto = sql.NullString{String: *a.CoverPhoto, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, query,
		a.PhoneNumber, a.StageName, a.Gender, a.Nationality, a.Country, a.Region,
		a.Address, a.Bio, idPhotos, a.ProfilePhoto, coverPhoto,
		socialLinks, musicLinks, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrArtistNotFound
	}
	return nil
}

func (r *artistRepository) ListLatest(ctx context.Context, limit int) ([]*domain.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists ORDER BY created_at DESC LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := make([]*domain.Artist, 0)
	for rows.Next() {
		a := &domain.Artist{}
		var idPhotos, socialLinks, musicLinks []byte
		var coverPhoto sql.NullString
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.PhoneNumber, &a.StageName, &a.Gender, &a.Nationality,
			&a.Country, &a.Region, &a.Address, &a.NIN, &a.Bio, &idPhotos,
			&a.ProfilePhoto, &coverPhoto, &socialLinks, &musicLinks, &a.LikesCount,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if coverPhoto.Valid {
			a.CoverPhoto = &coverPhoto.String
		}
		if err := json.Unmarshal(idPhotos, &a.NationalIDPhotos); err != nil {
			a.NationalIDPhotos = []string{}
		}
		a.SocialMediaLinks = domain.DecodeLinks(socialLinks)
		a.MusicLinks = domain.DecodeLinks(musicLinks)
		artists = append(artists, a)
	}
	return artists, rows.Err()
}
