// Package repository contains data access logic for Show domain operations.
// A Show represents a scheduled performance of an artist at a venue.
package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/venue-booking/internal/apperror"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show and assigns the generated ID back to s.  A
// venue_id or artist_id that references no row is reported as a
// ValidationError on the offending field rather than a store failure.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return r.CreateTx(ctx, tx, s)
	})
	return apperror.Persistence("show.create", err)
}

// CreateTx inserts a new show using the provided transaction.  The caller
// must commit or roll back.
func (r *ShowRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Show) error {
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.VenueID, s.ArtistID, s.StartTime.UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewValidation(map[string]string{
				"venue_id":  "venue and artist must both exist",
				"artist_id": "venue and artist must both exist",
			})
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListAll returns every show joined with its venue and artist names, ordered
// by start time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	const q = `SELECT s.id, s.venue_id, v.name, s.artist_id, a.name, COALESCE(a.image_link, ''), s.start_time
		FROM shows s
		JOIN venues v  ON v.id = s.venue_id
		JOIN artists a ON a.id = s.artist_id
		ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, apperror.Persistence("show.list", err)
	}
	defer rows.Close()

	out := []model.ShowListing{}
	for rows.Next() {
		var s model.ShowListing
		if err := rows.Scan(&s.ID, &s.VenueID, &s.VenueName, &s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, apperror.Persistence("show.list", err)
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence("show.list", err)
	}
	return out, nil
}
