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

const venueColumns = `id, name, genres, address, city, state, phone, website, facebook_link,
	seeking_talent, seeking_description, image_link, created_at, updated_at`

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue.  On success the venue's ID field holds the
// auto-generated value.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues
		(name, genres, address, city, state, phone, website, facebook_link, seeking_talent, seeking_description, image_link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			v.Name, v.Genres, v.Address, v.City, v.State, v.Phone,
			nullString(v.Website), nullString(v.FacebookLink),
			v.SeekingTalent, nullString(v.SeekingDescription), nullString(v.ImageLink),
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)
		return nil
	})
	return apperror.Persistence("venue.create", err)
}

// GetByID fetches a venue by its ID.  It returns a NotFoundError if no row
// is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	var v model.Venue
	var website, facebook, seekingDesc, imageLink sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.Genres, &v.Address, &v.City, &v.State, &v.Phone,
		&website, &facebook, &v.SeekingTalent, &seekingDesc, &imageLink,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("venue", id)
		}
		return nil, apperror.Persistence("venue.get", err)
	}
	v.Website = website.String
	v.FacebookLink = facebook.String
	v.SeekingDescription = seekingDesc.String
	v.ImageLink = imageLink.String
	return &v, nil
}

// Exists reports whether a venue with the given id is stored.
func (r *VenueRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM venues WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Persistence("venue.exists", err)
	}
	return true, nil
}

// Update overwrites every editable column of the venue identified by v.ID.
// It returns a NotFoundError when no row matches.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
		SET name = ?, genres = ?, address = ?, city = ?, state = ?, phone = ?,
		    website = ?, facebook_link = ?, seeking_talent = ?, seeking_description = ?, image_link = ?
		WHERE id = ?`
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			v.Name, v.Genres, v.Address, v.City, v.State, v.Phone,
			nullString(v.Website), nullString(v.FacebookLink),
			v.SeekingTalent, nullString(v.SeekingDescription), nullString(v.ImageLink),
			v.ID,
		)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound("venue", v.ID)
		}
		return nil
	})
	return apperror.Persistence("venue.update", err)
}

// Delete removes the venue's shows and then the venue itself in a single
// transaction.  It returns how many shows were removed.  Nothing is
// committed unless both statements succeed; a missing venue yields a
// NotFoundError and rolls back.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	var removed int64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id)
		if err != nil {
			return err
		}
		removed, _ = res.RowsAffected()

		res, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound("venue", id)
		}
		return nil
	})
	if err != nil {
		return 0, apperror.Persistence("venue.delete", err)
	}
	return removed, nil
}

// ListWithUpcoming returns every venue ordered by id together with the number
// of its shows starting after now.
func (r *VenueRepo) ListWithUpcoming(ctx context.Context, now time.Time) ([]model.VenueSummary, error) {
	const q = `SELECT v.id, v.name, v.city, v.state, COUNT(s.id) AS num_upcoming_shows
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time > ?
		GROUP BY v.id, v.name, v.city, v.state
		ORDER BY v.id`
	return r.summaries(ctx, "venue.list", q, now.UTC())
}

// Search returns venues whose name contains term, ignoring case, with their
// upcoming show counts.  A blank term matches nothing.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error) {
	if strings.TrimSpace(term) == "" {
		return []model.VenueSummary{}, nil
	}
	const q = `SELECT v.id, v.name, v.city, v.state, COUNT(s.id) AS num_upcoming_shows
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time > ?
		WHERE LOWER(v.name) LIKE ?
		GROUP BY v.id, v.name, v.city, v.state
		ORDER BY v.id`
	return r.summaries(ctx, "venue.search", q, now.UTC(), likePattern(term))
}

func (r *VenueRepo) summaries(ctx context.Context, op, q string, args ...any) ([]model.VenueSummary, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, apperror.Persistence(op, err)
	}
	defer rows.Close()

	out := []model.VenueSummary{}
	for rows.Next() {
		var s model.VenueSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.NumUpcomingShows); err != nil {
			return nil, apperror.Persistence(op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence(op, err)
	}
	return out, nil
}

// Shows returns every show held at the venue joined with the performing
// artist, ordered by start time.
func (r *VenueRepo) Shows(ctx context.Context, venueID uint64) ([]model.VenueShow, error) {
	const q = `SELECT s.artist_id, a.name, COALESCE(a.image_link, ''), s.start_time
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		WHERE s.venue_id = ?
		ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, apperror.Persistence("venue.shows", err)
	}
	defer rows.Close()

	out := []model.VenueShow{}
	for rows.Next() {
		var s model.VenueShow
		if err := rows.Scan(&s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, apperror.Persistence("venue.shows", err)
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence("venue.shows", err)
	}
	return out, nil
}
