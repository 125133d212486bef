package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/handler"
)

func TestAPIVenues(t *testing.T) {
	env := newEnv(t)
	seedHop(env)

	rec := env.get("/api/venues")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Areas []struct {
			City   string `json:"city"`
			Venues []struct {
				ID               uint64 `json:"id"`
				NumUpcomingShows int    `json:"num_upcoming_shows"`
			} `json:"venues"`
		} `json:"areas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Areas, 1)
	assert.Equal(t, 1, list.Areas[0].Venues[0].NumUpcomingShows)

	rec = env.get("/api/venues/1")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "The Musical Hop", detail["name"])
	assert.Equal(t, "https://www.themusicalhop.com", detail["website"])
	assert.NotContains(t, detail, "facebook_link")
	assert.EqualValues(t, 1, detail["past_shows_count"])
}

func TestAPINotFoundIsJSON(t *testing.T) {
	env := newEnv(t)
	rec := env.get("/api/venues/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"venue 99 not found"}`, rec.Body.String())
}

func TestAPIArtistsAndShows(t *testing.T) {
	env := newEnv(t)
	seedHop(env)

	rec := env.get("/api/artists")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[{"id":4,"name":"Guns N Petals","num_upcoming_shows":1}]}`, rec.Body.String())

	rec = env.get("/api/artists/4")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"upcoming_shows_count":1`)

	rec = env.get("/api/shows")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	e := echo.New()
	for _, tc := range []struct {
		err  error
		code int
	}{
		{nil, http.StatusOK},
		{errors.New("down"), http.StatusServiceUnavailable},
	} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)
		require.NoError(t, handler.Health(stubPinger{tc.err})(c))
		assert.Equal(t, tc.code, rec.Code)
	}
}
