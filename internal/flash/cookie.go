package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CookieName is the cookie used by CookieStore.
const CookieName = "_flash"

// CookieStore keeps messages in a client cookie.  Used when Redis is
// unavailable.
type CookieStore struct{}

func (CookieStore) Add(c echo.Context, m Message) error {
	msgs := addPending(c, m)
	raw, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (CookieStore) Pop(c echo.Context) ([]Message, error) {
	var out []Message
	if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
		// a tampered or stale cookie is dropped, not reported
		if raw, err := base64.RawURLEncoding.DecodeString(ck.Value); err == nil {
			_ = json.Unmarshal(raw, &out)
		}
		c.SetCookie(&http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1})
	}
	msgs := takePending(c)
	if len(msgs) > 0 {
		// already delivered in this response; drop the cookie Add set
		c.SetCookie(&http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1})
	}
	return append(out, msgs...), nil
}
