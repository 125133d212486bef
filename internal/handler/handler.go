// Package handler holds the echo handlers for the venue and artist directory:
// HTML pages for browsing and editing, and a small read-only JSON API.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/venue-booking/internal/flash"
	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/service"
	"github.com/iliyamo/venue-booking/internal/view"
)

// VenueStore is the venue persistence used by the handlers.
type VenueStore interface {
	Create(ctx context.Context, v *model.Venue) error
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id uint64) (int64, error)
	ListWithUpcoming(ctx context.Context, now time.Time) ([]model.VenueSummary, error)
	Search(ctx context.Context, term string, now time.Time) ([]model.VenueSummary, error)
	Shows(ctx context.Context, venueID uint64) ([]model.VenueShow, error)
}

// ArtistStore is the artist persistence used by the handlers.
type ArtistStore interface {
	Create(ctx context.Context, a *model.Artist) error
	GetByID(ctx context.Context, id uint64) (*model.Artist, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	Update(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id uint64) (int64, error)
	ListWithUpcoming(ctx context.Context, now time.Time) ([]model.ArtistSummary, error)
	Search(ctx context.Context, term string, now time.Time) ([]model.ArtistSummary, error)
	Shows(ctx context.Context, artistID uint64) ([]model.ArtistShow, error)
}

// ShowStore is the show persistence used by the handlers.
type ShowStore interface {
	Create(ctx context.Context, s *model.Show) error
	ListAll(ctx context.Context) ([]model.ShowListing, error)
}

// CachePurger drops cached API responses after a write.
type CachePurger interface {
	Purge(ctx context.Context)
}

// Base carries what every page handler shares.  Zero-valued fields fall
// back to no-ops, except Flash which must be set.
type Base struct {
	Flash  flash.Store
	Events service.EventPublisher
	Cache  CachePurger
	Now    func() time.Time // defaults to time.Now
}

func (b *Base) now() time.Time {
	if b.Now != nil {
		return b.Now().UTC()
	}
	return time.Now().UTC()
}

// render executes a page inside the layout with the pending flashes and
// the request's CSRF token.
func (b *Base) render(c echo.Context, status int, name, title string, data any) error {
	msgs, err := b.Flash.Pop(c)
	if err != nil {
		log.Warn().Err(err).Msg("flash pop failed")
	}
	token, _ := c.Get(middleware.CSRFContextKey).(string)
	return c.Render(status, name, view.Page{
		Title:     title,
		Flashes:   msgs,
		CSRFToken: token,
		Data:      data,
	})
}

func (b *Base) flash(c echo.Context, category, text string) {
	if err := b.Flash.Add(c, flash.Message{Category: category, Text: text}); err != nil {
		log.Warn().Err(err).Msg("flash add failed")
	}
}

// committed runs after a successful write: cached API responses are purged
// and the activity event is published.  Neither can fail the request.
func (b *Base) committed(c echo.Context, ev queue.ActivityEvent) {
	ctx := c.Request().Context()
	if b.Cache != nil {
		b.Cache.Purge(ctx)
	}
	if b.Events == nil {
		return
	}
	ev.OccurredAt = b.now().Format(model.TimestampLayout)
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := b.Events.Publish(pctx, ev); err != nil {
		log.Warn().Err(err).Str("kind", ev.Kind).Uint64("id", ev.ID).Msg("publish activity failed")
	}
}

// writeFailed handles a store failure during a form submission: the cause
// is logged, a generic message is flashed, and the given page is rendered
// with status 500.
func (b *Base) writeFailed(c echo.Context, err error, msg, page string) error {
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("write failed")
	b.flash(c, flash.Error, msg)
	return b.render(c, http.StatusInternalServerError, page, "Error", nil)
}

// Home renders the landing page.
func (b *Base) Home(c echo.Context) error {
	return b.render(c, http.StatusOK, "pages/home", "", nil)
}

// parseID reads the :id path parameter.  Anything but a positive integer is
// reported as a missing page.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}
