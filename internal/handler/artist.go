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

// ArtistHandler serves the artist pages.
type ArtistHandler struct {
	*Base
	Artists ArtistStore
}

// List renders all artists ordered by id.
func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.Artists.ListWithUpcoming(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/artists", "Artists", echo.Map{
		"Artists": viewmodel.ArtistList(artists),
	})
}

// Search matches artist names against the search_term form field.
func (h *ArtistHandler) Search(c echo.Context) error {
	term := c.FormValue("search_term")
	matches, err := h.Artists.Search(c.Request().Context(), term, h.now())
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/search_artists", "Search artists", echo.Map{
		"Results":    viewmodel.ArtistSearch(matches),
		"SearchTerm": term,
	})
}

// Show renders one artist with past and upcoming bookings.
func (h *ArtistHandler) Show(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return err
	}
	shows, err := h.Artists.Shows(ctx, id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "pages/show_artist", a.Name, echo.Map{
		"Artist": viewmodel.BuildArtistDetail(a, shows, h.now()),
	})
}

// CreateForm renders an empty artist form.
func (h *ArtistHandler) CreateForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "forms/new_artist", "New artist", echo.Map{"Form": form.ArtistForm{}})
}

// Create validates and stores a new artist.
func (h *ArtistHandler) Create(c echo.Context) error {
	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed form body.")
	}
	f := form.ParseArtist(vals)
	if err := f.Validate(); err != nil {
		return h.render(c, http.StatusOK, "forms/new_artist", "New artist", echo.Map{"Form": f})
	}
	var a model.Artist
	if err := f.ApplyTo(&a); err != nil {
		return err
	}
	if err := h.Artists.Create(c.Request().Context(), &a); err != nil {
		return h.writeFailed(c, err, "An error occurred. Artist "+f.Name+" could not be listed.", "pages/home")
	}

	h.flash(c, flash.Success, "Artist "+a.Name+" was successfully listed!")
	h.committed(c, queue.ActivityEvent{Kind: queue.KindArtistCreated, ID: a.ID, Name: a.Name})
	return c.Redirect(http.StatusSeeOther, "/artists")
}

// EditForm renders the artist form pre-populated with stored values.
func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "forms/edit_artist", "Edit artist", echo.Map{
		"ID":   a.ID,
		"Name": a.Name,
		"Form": form.ArtistFromModel(a),
	})
}

// Edit validates the submission and overwrites the stored artist.
func (h *ArtistHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return err
	}
	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed form body.")
	}
	f := form.ParseArtist(vals)
	if err := f.Validate(); err != nil {
		return h.render(c, http.StatusOK, "forms/edit_artist", "Edit artist", echo.Map{
			"ID":   a.ID,
			"Name": a.Name,
			"Form": f,
		})
	}
	if err := f.ApplyTo(a); err != nil {
		return err
	}
	if err := h.Artists.Update(ctx, a); err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		return h.writeFailed(c, err, "An error occurred. Artist "+f.Name+" could not be updated.", "errors/500")
	}

	h.flash(c, flash.Success, "Artist "+a.Name+" was successfully updated!")
	h.committed(c, queue.ActivityEvent{Kind: queue.KindArtistUpdated, ID: a.ID, Name: a.Name})
	return c.Redirect(http.StatusSeeOther, "/artists/"+strconv.FormatUint(a.ID, 10))
}

// DeleteForm asks for confirmation before deleting an artist.
func (h *ArtistHandler) DeleteForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "forms/delete_artist", "Delete artist", echo.Map{"ID": a.ID, "Name": a.Name})
}

// Delete removes the artist and every show they were booked for.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return err
	}
	removed, err := h.Artists.Delete(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return err
		}
		log.Error().Err(err).Uint64("artist_id", id).Msg("artist delete failed")
		return h.render(c, http.StatusInternalServerError, "errors/500", "Error", nil)
	}

	h.flash(c, flash.Success, "Artist "+a.Name+" was successfully deleted.")
	h.committed(c, queue.ActivityEvent{Kind: queue.KindArtistDeleted, ID: id, Name: a.Name, ShowsRemoved: removed})
	return c.Redirect(http.StatusSeeOther, "/artists")
}
