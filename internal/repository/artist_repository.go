package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/venue-booking/internal/apperror"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/model"
)

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Create inserts a new artist and assigns the generated ID back to a.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists
		(name, genres, city, state, phone, website, facebook_link, seeking_venue, seeking_description, image_link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			a.Name, a.Genres, a.City, a.State, a.Phone,
			nullString(a.Website), nullString(a.FacebookLink),
			a.SeekingVenue, nullString(a.SeekingDescription), nullString(a.ImageLink),
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		return nil
	})
	return apperror.Persistence("artist.create", err)
}

// GetByID retrieves an artist by its ID.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	const q = `SELECT id, name, genres, city, state, phone, website, facebook_link,
		seeking_venue, seeking_description, image_link, created_at, updated_at
		FROM artists WHERE id = ?`
	var a model.Artist
	var website, facebook, seekingDesc, imageLink sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Name, &a.Genres, &a.City, &a.State, &a.Phone,
		&website, &facebook, &a.SeekingVenue, &seekingDesc, &imageLink,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("artist", id)
		}
		return nil, apperror.Persistence("artist.get", err)
	}
	a.Website = website.String
	a.FacebookLink = facebook.String
	a.SeekingDescription = seekingDesc.String
	a.ImageLink = imageLink.String
	return &a, nil
}

// Exists reports whether an artist with the given id is stored.
func (r *ArtistRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM artists WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Persistence("artist.exists", err)
	}
	return true, nil
}

// Update overwrites the editable columns of the artist identified by a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
		SET name = ?, genres = ?, city = ?, state = ?, phone = ?,
		    website = ?, facebook_link = ?, seeking_venue = ?, seeking_description = ?, image_link = ?
		WHERE id = ?`
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			a.Name, a.Genres, a.City, a.State, a.Phone,
			nullString(a.Website), nullString(a.FacebookLink),
			a.SeekingVenue, nullString(a.SeekingDescription), nullString(a.ImageLink),
			a.ID,
		)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound("artist", a.ID)
		}
		return nil
	})
	return apperror.Persistence("artist.update", err)
}

// Delete removes the artist's shows and then the artist, atomically.  It
// returns the number of shows removed.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	var removed int64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id)
		if err != nil {
			return err
		}
		removed, _ = res.RowsAffected()

		res, err = tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound("artist", id)
		}
		return nil
	})
	if err != nil {
		return 0, apperror.Persistence("artist.delete", err)
	}
	return removed, nil
}

// ListWithUpcoming returns all artists ordered by id.
func (r *ArtistRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]model.ArtistSummary, error) {
	const q = `SELECT a.id, a.name, COUNT(s.id) AS num_upcoming_shows
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id AND s.start_time > ?
		GROUP BY a.id, a.name
		ORDER BY a.id`
	return r.summaries(ctx, "artist.list", q, now.UTC())
}

// Search matches artist names case-insensitively.  A blank term matches nothing.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]model.ArtistSummary, error) {
	if strings.TrimSpace(term) == "" {
		return []model.ArtistSummary{}, nil
	}
	const q = `SELECT a.id, a.name, COUNT(s.id) AS num_upcoming_shows
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id AND s.start_time > ?
		WHERE LOWER(a.name) LIKE ?
		GROUP BY a.id, a.name
		ORDER BY a.id`
	return r.summaries(ctx, "artist.search", q, now.UTC(), likePattern(term))
}

func (r *ArtistRepo) summaries(ctx context.Context, op, q string, args ...any) ([]model.ArtistSummary, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, apperror.Persistence(op, err)
	}
	defer rows.Close()

	out := []model.ArtistSummary{}
	for rows.Next() {
		var s model.ArtistSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, apperror.Persistence(op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence(op, err)
	}
	return out, nil
}

// Shows returns the artist's shows joined with the hosting venue.
func (r *ArtistRepo) Shows(ctx context.Context, artistID uint64) ([]model.ArtistShow, error) {
	const q = `SELECT s.venue_id, v.name, COALESCE(v.image_link, ''), s.start_time
		FROM shows s
		JOIN venues v ON v.id = s.venue_id
		WHERE s.artist_id = ?
		ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, apperror.Persistence("artist.shows", err)
	}
	defer rows.Close()

	out := []model.ArtistShow{}
	for rows.Next() {
		var s model.ArtistShow
		if err := rows.Scan(&s.VenueID, &s.VenueName, &s.VenueImageLink, &s.StartTime); err != nil {
			return nil, apperror.Persistence("artist.shows", err)
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence("artist.shows", err)
	}
	return out, nil
}
