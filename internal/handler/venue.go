package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/venue-booking/internal/apperror"
	"github.com/iliyamo/venue-booking/internal/flash"
	"github.com/iliyamo/venue-booking/internal/form"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/viewmodel"
)

// VenueHandler serves the venue pages.
type VenueHandler struct {
	*Base
	Venues VenueStore
}

// List renders all venues grouped by city and state.
func (h *VenueHandler) List(c echo.Context) error {
	venues, err := h.Venues.ListWithUpcoming(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/venues", "Venues", echo.Map{
		"Areas": viewmodel.GroupVenuesByArea(venues),
	})
}

// Search matches venue names against the search_term form field.
func (h *VenueHandler) Search(c echo.Context) error {
	term := c.FormValue("search_term")
	matches, err := h.Venues.Search(c.Request().Context(), term, h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/search_venues", "Search venues", echo.Map{
		"Results":    viewmodel.VenueSearch(matches),
		"SearchTerm": term,
	})
}

// Show renders one venue with its past and upcoming shows.
func (h *VenueHandler) Show(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return err
	}
	shows, err := h.Venues.Shows(ctx, id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/show_venue", v.Name, echo.Map{
		"Venue": viewmodel.BuildVenueDetail(v, shows, h.now()),
	})
}

// CreateForm renders an empty venue form.
func (h *VenueHandler) CreateForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "forms/new_venue", "New venue", echo.Map{"Form": form.VenueForm{}})
}

// Create validates and stores a new venue.
func (h *VenueHandler) Create(c echo.Context) error {
	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed form body.")
	}
	f := form.ParseVenue(vals)
	if err := f.Validate(); err != nil {
		return h.render(c, http.StatusOK, "forms/new_venue", "New venue", echo.Map{"Form": f})
	}
	var v model.Venue
	if err := f.ApplyTo(&v); err != nil {
		return err
	}
	if err := h.Venues.Create(c.Request().Context(), &v); err != nil {
		return h.writeFailed(c, err, "An error occurred. Venue "+f.Name+" could not be listed.", "pages/home")
	}

	h.flash(c, flash.Success, "Venue "+v.Name+" was successfully listed!")
	h.committed(c, queue.ActivityEvent{Kind: queue.KindVenueCreated, ID: v.ID, Name: v.Name})
	return c.Redirect(http.StatusSeeOther, "/venues")
}

// EditForm renders the venue form pre-populated with stored values.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "forms/edit_venue", "Edit venue", echo.Map{
		"ID":   v.ID,
		"Name": v.Name,
		"Form": form.VenueFromModel(v),
	})
}

// Edit validates the submission and overwrites the stored venue.
func (h *VenueHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return err
	}
	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed form body.")
	}
	f := form.ParseVenue(vals)
	if err := f.Validate(); err != nil {
		return h.render(c, http.StatusOK, "forms/edit_venue", "Edit venue", echo.Map{
			"ID":   v.ID,
			"Name": v.Name,
			"Form": f,
		})
	}
	if err := f.ApplyTo(v); err != nil {
		return err
	}
	if err := h.Venues.Update(ctx, v); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		return h.writeFailed(c, err, "An error occurred. Venue "+f.Name+" could not be updated.", "errors/500")
	}

	h.flash(c, flash.Success, "Venue "+v.Name+" was successfully updated!")
	h.committed(c, queue.ActivityEvent{Kind: queue.KindVenueUpdated, ID: v.ID, Name: v.Name})
	return c.Redirect(http.StatusSeeOther, "/venues/"+strconv.FormatUint(v.ID, 10))
}

// DeleteForm asks for confirmation before deleting a venue.
func (h *VenueHandler) DeleteForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "forms/delete_venue", "Delete venue", echo.Map{"ID": v.ID, "Name": v.Name})
}

// Delete removes the venue and every show held there.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return err
	}
	removed, err := h.Venues.Delete(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		log.Error().Err(err).Uint64("venue_id", id).Msg("venue delete failed")
		return h.render(c, http.StatusInternalServerError, "errors/500", "Error", nil)
	}

	h.flash(c, flash.Success, "Venue "+v.Name+" was successfully deleted.")
	h.committed(c, queue.ActivityEvent{Kind: queue.KindVenueDeleted, ID: id, Name: v.Name, ShowsRemoved: removed})
	return c.Redirect(http.StatusSeeOther, "/venues")
}
