package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/venue-booking/internal/utils"
)

const (
	// CSRFCookie holds the current form token.
	CSRFCookie = "_csrf"
	// CSRFField is the hidden form field that must echo the cookie.
	CSRFField = "csrf_token"
	// CSRFContextKey is where handlers find the token to embed in forms.
	CSRFContextKey = "csrf_token"
)

// CSRF protects form submissions with a signed double-submit token.  Every
// request gets a valid token in the _csrf cookie and in the context; unsafe
// methods must send the same token in the csrf_token form field.
func CSRF(secret string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if ck, err := c.Cookie(CSRFCookie); err == nil && utils.VerifyFormToken(secret, ck.Value) == nil {
				token = ck.Value
			}

			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
			default:
				sent := c.FormValue(CSRFField)
				if token == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
					log.Warn().Str("path", c.Request().URL.Path).Str("ip", c.RealIP()).Msg("csrf token rejected")
					return echo.NewHTTPError(http.StatusForbidden, "The form expired, please reload the page and try again.")
				}
			}

			if token == "" {
				ft, err := utils.NewFormToken(secret, ttl)
				if err != nil {
					return err
				}
				token = ft.Token
				c.SetCookie(&http.Cookie{
					Name:     CSRFCookie,
					Value:    token,
					Path:     "/",
					Expires:  ft.Exp,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(CSRFContextKey, token)
			return next(c)
		}
	}
}
