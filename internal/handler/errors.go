package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/venue-booking/internal/apperror"
	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/view"
)

// ErrorHandler maps returned errors onto responses: missing entities and
// unmatched routes get the 404 page, echo HTTP errors keep their code, and
// anything else is logged and answered with the 500 page.  Requests under
// /api/ get JSON instead of HTML.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := classify(err)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("request failed")
	}

	var werr error
	switch {
	case c.Request().Method == http.MethodHead:
		werr = c.NoContent(code)
	case strings.HasPrefix(c.Request().URL.Path, "/api/"):
		werr = c.JSON(code, echo.Map{"error": msg})
	default:
		token, _ := c.Get(middleware.CSRFContextKey).(string)
		page := view.Page{Title: http.StatusText(code), CSRFToken: token}
		name := "errors/error"
		switch code {
		case http.StatusNotFound:
			name = "errors/404"
		case http.StatusInternalServerError:
			name = "errors/500"
		default:
			page.Data = echo.Map{"Code": code, "Message": msg}
		}
		werr = c.Render(code, name, page)
	}
	if werr != nil {
		log.Error().Err(werr).Msg("writing error response failed")
	}
}

func classify(err error) (int, string) {
	if apperror.IsNotFound(err) {
		return http.StatusNotFound, err.Error()
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			return he.Code, m
		}
		return he.Code, http.StatusText(he.Code)
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
