package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/apperror"
	"github.com/iliyamo/venue-booking/internal/flash"
	"github.com/iliyamo/venue-booking/internal/form"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/viewmodel"
)

// ShowHandler serves the shows listing and the booking form.  Venues and
// Artists are only used to check that a booking references existing rows.
type ShowHandler struct {
	*Base
	Shows   ShowStore
	Venues  VenueStore
	Artists ArtistStore
}

// List renders every show ordered by start time.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/shows", "Shows", echo.Map{
		"Shows": viewmodel.ShowList(shows),
	})
}

// CreateForm renders the booking form with start_time set to now.
func (h *ShowHandler) CreateForm(c echo.Context) error {
	return h.renderForm(c, form.NewShowForm(h.now()))
}

func (h *ShowHandler) renderForm(c echo.Context, f form.ShowForm) error {
	return h.render(c, http.StatusOK, "forms/new_show", "New show", echo.Map{"Form": f})
}

// Create validates and stores a new show.
func (h *ShowHandler) Create(c echo.Context) error {
	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed form body.")
	}
	f := form.ParseShow(vals)
	if err := f.Validate(); err != nil {
		return h.renderForm(c, f)
	}
	s, err := f.Show()
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	const failed = "An error occurred. Show could not be listed."
	venueOK, err := h.Venues.Exists(ctx, s.VenueID)
	if err != nil {
		return h.writeFailed(c, err, failed, "pages/home")
	}
	artistOK, err := h.Artists.Exists(ctx, s.ArtistID)
	if err != nil {
		return h.writeFailed(c, err, failed, "pages/home")
	}
	if !venueOK {
		f.SetError("venue_id", "No venue with this ID.")
	}
	if !artistOK {
		f.SetError("artist_id", "No artist with this ID.")
	}
	if !venueOK || !artistOK {
		return h.renderForm(c, f)
	}

	if err := h.Shows.Create(ctx, s); err != nil {
		// a venue or artist deleted since the check above
		if ve, ok := apperror.AsValidation(err); ok {
			for field, msg := range ve.Fields {
				f.SetError(field, msg)
			}
			return h.renderForm(c, f)
		}
		return h.writeFailed(c, err, failed, "pages/home")
	}

	h.flash(c, flash.Success, "Show was successfully listed!")
	h.committed(c, queue.ActivityEvent{
		Kind:      queue.KindShowScheduled,
		ID:        s.ID,
		VenueID:   s.VenueID,
		ArtistID:  s.ArtistID,
		StartTime: s.StartTime.UTC().Format(model.TimestampLayout),
	})
	return c.Redirect(http.StatusSeeOther, "/shows")
}
