// Package router registers the HTTP routes on an echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/handler"
)

// Pages bundles the HTML handlers.
type Pages struct {
	Base    *handler.Base
	Venues  *handler.VenueHandler
	Artists *handler.ArtistHandler
	Shows   *handler.ShowHandler
}

// RegisterRoutes registers the health check.  It is mounted outside every
// page middleware so probes are never rate limited or sent a CSRF cookie.
func RegisterRoutes(e *echo.Echo, health echo.HandlerFunc) {
	e.GET("/healthz", health)
}

// RegisterPages registers the HTML routes.  pageMW wraps every page (CSRF);
// writeMW additionally wraps form submissions (rate limiting).
func RegisterPages(e *echo.Echo, p Pages, pageMW []echo.MiddlewareFunc, writeMW ...echo.MiddlewareFunc) {
	g := e.Group("", pageMW...)
	g.GET("/", p.Base.Home)

	// static paths such as /venues/create win over /venues/:id in echo's router
	g.GET("/venues", p.Venues.List)
	g.POST("/venues/search", p.Venues.Search, writeMW...)
	g.GET("/venues/create", p.Venues.CreateForm)
	g.POST("/venues/create", p.Venues.Create, writeMW...)
	g.GET("/venues/:id", p.Venues.Show)
	g.GET("/venues/:id/edit", p.Venues.EditForm)
	g.POST("/venues/:id/edit", p.Venues.Edit, writeMW...)
	g.GET("/venues/:id/delete", p.Venues.DeleteForm)
	g.POST("/venues/:id/delete", p.Venues.Delete, writeMW...)

	g.GET("/artists", p.Artists.List)
	g.POST("/artists/search", p.Artists.Search, writeMW...)
	g.GET("/artists/create", p.Artists.CreateForm)
	g.POST("/artists/create", p.Artists.Create, writeMW...)
	g.GET("/artists/:id", p.Artists.Show)
	g.GET("/artists/:id/edit", p.Artists.EditForm)
	g.POST("/artists/:id/edit", p.Artists.Edit, writeMW...)
	g.GET("/artists/:id/delete", p.Artists.DeleteForm)
	g.POST("/artists/:id/delete", p.Artists.Delete, writeMW...)

	g.GET("/shows", p.Shows.List)
	g.GET("/shows/create", p.Shows.CreateForm)
	g.POST("/shows/create", p.Shows.Create, writeMW...)
}

// RegisterAPI registers the read-only JSON API under /api.  cacheMW is
// applied to the whole group.
func RegisterAPI(e *echo.Echo, a *handler.APIHandler, cacheMW ...echo.MiddlewareFunc) {
	g := e.Group("/api", cacheMW...)
	g.GET("/venues", a.ListVenues)
	g.GET("/venues/:id", a.GetVenue)
	g.GET("/artists", a.ListArtists)
	g.GET("/artists/:id", a.GetArtist)
	g.GET("/shows", a.ListShows)
}
