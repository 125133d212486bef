package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/viewmodel"
)

// APIHandler serves the read-only JSON API.  Responses use the same view
// models as the HTML pages.
type APIHandler struct {
	Venues  VenueStore
	Artists ArtistStore
	Shows   ShowStore
	Now     func() time.Time
}

func (h *APIHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

// ListVenues returns venues grouped by area under "areas".
func (h *APIHandler) ListVenues(c echo.Context) error {
	venues, err := h.Venues.ListWithUpcoming(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": viewmodel.GroupVenuesByArea(venues)})
}

// GetVenue returns one venue detail.
func (h *APIHandler) GetVenue(c echo.Context) error {
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
	return c.JSON(http.StatusOK, viewmodel.BuildVenueDetail(v, shows, h.now()))
}

// ListArtists returns artists under "items".
func (h *APIHandler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.ListWithUpcoming(c.Request().Context(), h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"items": viewmodel.ArtistList(artists)})
}

// GetArtist returns one artist detail.
func (h *APIHandler) GetArtist(c echo.Context) error {
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
	return c.JSON(http.StatusOK, viewmodel.BuildArtistDetail(a, shows, h.now()))
}

// ListShows returns every show under "items".
func (h *APIHandler) ListShows(c echo.Context) error {
	shows, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"items": viewmodel.ShowList(shows)})
}
