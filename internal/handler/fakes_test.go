package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/apperror"
	"github.com/iliyamo/venue-booking/internal/flash"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/router"
	"github.com/iliyamo/venue-booking/internal/view"
)

var testNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeVenues is an in-memory VenueStore.
type fakeVenues struct {
	byID      map[uint64]*model.Venue
	shows     map[uint64][]model.VenueShow
	nextID    uint64
	createErr error
	updateErr error
	deleteErr error
}

func newFakeVenues() *fakeVenues {
	return &fakeVenues{byID: map[uint64]*model.Venue{}, shows: map[uint64][]model.VenueShow{}, nextID: 1}
}

func (f *fakeVenues) add(v model.Venue) {
	if v.ID == 0 {
		v.ID = f.nextID
	}
	if v.ID >= f.nextID {
		f.nextID = v.ID + 1
	}
	f.byID[v.ID] = &v
}

func (f *fakeVenues) Create(_ context.Context, v *model.Venue) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(*v)
	v.ID = f.nextID - 1
	return nil
}

func (f *fakeVenues) GetByID(_ context.Context, id uint64) (*model.Venue, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, &apperror.NotFoundError{Resource: "venue", ID: id}
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVenues) Exists(_ context.Context, id uint64) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeVenues) Update(_ context.Context, v *model.Venue) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[v.ID]; !ok {
		return &apperror.NotFoundError{Resource: "venue", ID: v.ID}
	}
	cp := *v
	f.byID[v.ID] = &cp
	return nil
}

func (f *fakeVenues) Delete(_ context.Context, id uint64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return 0, &apperror.NotFoundError{Resource: "venue", ID: id}
	}
	removed := int64(len(f.shows[id]))
	delete(f.shows, id)
	delete(f.byID, id)
	return removed, nil
}

func (f *fakeVenues) summaries(match func(*model.Venue) bool, now time.Time) []model.VenueSummary {
	out := []model.VenueSummary{}
	for _, id := range sortedKeys(f.byID) {
		v := f.byID[id]
		if !match(v) {
			continue
		}
		n := 0
		for _, s := range f.shows[id] {
			if model.IsUpcoming(s.StartTime, now) {
				n++
			}
		}
		out = append(out, model.VenueSummary{ID: v.ID, Name: v.Name, City: v.City, State: v.State, NumUpcomingShows: n})
	}
	return out
}

func (f *fakeVenues) ListWithUpcoming(_ context.Context, now time.Time) ([]model.VenueSummary, error) {
	return f.summaries(func(*model.Venue) bool { return true }, now), nil
}

func (f *fakeVenues) Search(_ context.Context, term string, now time.Time) ([]model.VenueSummary, error) {
	if strings.TrimSpace(term) == "" {
		return []model.VenueSummary{}, nil
	}
	term = strings.ToLower(term)
	return f.summaries(func(v *model.Venue) bool { return strings.Contains(strings.ToLower(v.Name), term) }, now), nil
}

func (f *fakeVenues) Shows(_ context.Context, id uint64) ([]model.VenueShow, error) {
	return f.shows[id], nil
}

// fakeArtists is an in-memory ArtistStore.
type fakeArtists struct {
	byID      map[uint64]*model.Artist
	shows     map[uint64][]model.ArtistShow
	nextID    uint64
	createErr error
	deleteErr error
}

func newFakeArtists() *fakeArtists {
	return &fakeArtists{byID: map[uint64]*model.Artist{}, shows: map[uint64][]model.ArtistShow{}, nextID: 1}
}

func (f *fakeArtists) add(a model.Artist) {
	if a.ID == 0 {
		a.ID = f.nextID
	}
	if a.ID >= f.nextID {
		f.nextID = a.ID + 1
	}
	f.byID[a.ID] = &a
}

func (f *fakeArtists) Create(_ context.Context, a *model.Artist) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(*a)
	a.ID = f.nextID - 1
	return nil
}

func (f *fakeArtists) GetByID(_ context.Context, id uint64) (*model.Artist, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, &apperror.NotFoundError{Resource: "artist", ID: id}
	}
	cp := *a
	return &cp, nil
}

func (f *fakeArtists) Exists(_ context.Context, id uint64) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeArtists) Update(_ context.Context, a *model.Artist) error {
	if _, ok := f.byID[a.ID]; !ok {
		return &apperror.NotFoundError{Resource: "artist", ID: a.ID}
	}
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeArtists) Delete(_ context.Context, id uint64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return 0, &apperror.NotFoundError{Resource: "artist", ID: id}
	}
	removed := int64(len(f.shows[id]))
	delete(f.shows, id)
	delete(f.byID, id)
	return removed, nil
}

func (f *fakeArtists) summaries(match func(*model.Artist) bool, now time.Time) []model.ArtistSummary {
	out := []model.ArtistSummary{}
	for _, id := range sortedKeys(f.byID) {
		a := f.byID[id]
		if !match(a) {
			continue
		}
		n := 0
		for _, s := range f.shows[id] {
			if model.IsUpcoming(s.StartTime, now) {
				n++
			}
		}
		out = append(out, model.ArtistSummary{ID: a.ID, Name: a.Name, NumUpcomingShows: n})
	}
	return out
}

func (f *fakeArtists) ListWithUpcoming(_ context.Context, now time.Time) ([]model.ArtistSummary, error) {
	return f.summaries(func(*model.Artist) bool { return true }, now), nil
}

func (f *fakeArtists) Search(_ context.Context, term string, now time.Time) ([]model.ArtistSummary, error) {
	if strings.TrimSpace(term) == "" {
		return []model.ArtistSummary{}, nil
	}
	term = strings.ToLower(term)
	return f.summaries(func(a *model.Artist) bool { return strings.Contains(strings.ToLower(a.Name), term) }, now), nil
}

func (f *fakeArtists) Shows(_ context.Context, id uint64) ([]model.ArtistShow, error) {
	return f.shows[id], nil
}

// fakeShows is an in-memory ShowStore.
type fakeShows struct {
	created   []model.Show
	listing   []model.ShowListing
	createErr error
}

func (f *fakeShows) Create(_ context.Context, s *model.Show) error {
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, *s)
	return nil
}

func (f *fakeShows) ListAll(context.Context) ([]model.ShowListing, error) {
	return f.listing, nil
}

func sortedKeys[V any](m map[uint64]V) []uint64 {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

type recordingPublisher struct{ events []queue.ActivityEvent }

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ActivityEvent) error {
	p.events = append(p.events, ev)
	return nil
}

type countingPurger struct{ n int }

func (p *countingPurger) Purge(context.Context) { p.n++ }

type testEnv struct {
	e       *echo.Echo
	venues  *fakeVenues
	artists *fakeArtists
	shows   *fakeShows
	events  *recordingPublisher
	purger  *countingPurger
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	renderer, err := view.New()
	require.NoError(t, err)

	env := &testEnv{
		e:       echo.New(),
		venues:  newFakeVenues(),
		artists: newFakeArtists(),
		shows:   &fakeShows{},
		events:  &recordingPublisher{},
		purger:  &countingPurger{},
	}
	env.e.Renderer = renderer
	env.e.HTTPErrorHandler = handler.ErrorHandler

	base := &handler.Base{
		Flash:  flash.CookieStore{},
		Events: env.events,
		Cache:  env.purger,
		Now:    func() time.Time { return testNow },
	}
	router.RegisterPages(env.e, router.Pages{
		Base:    base,
		Venues:  &handler.VenueHandler{Base: base, Venues: env.venues},
		Artists: &handler.ArtistHandler{Base: base, Artists: env.artists},
		Shows:   &handler.ShowHandler{Base: base, Shows: env.shows, Venues: env.venues, Artists: env.artists},
	}, nil)
	router.RegisterAPI(env.e, &handler.APIHandler{
		Venues:  env.venues,
		Artists: env.artists,
		Shows:   env.shows,
		Now:     func() time.Time { return testNow },
	})
	return env
}

func (env *testEnv) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func seedHop(env *testEnv) {
	env.venues.add(model.Venue{
		ID:                 1,
		Name:               "The Musical Hop",
		Genres:             model.Genres{model.GenreJazz, model.GenreReggae},
		Address:            "1015 Folsom Street",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "123-123-1234",
		Website:            "https://www.themusicalhop.com",
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist.",
	})
	env.artists.add(model.Artist{
		ID:     4,
		Name:   "Guns N Petals",
		Genres: model.Genres{model.GenreRockNRoll},
		City:   "San Francisco",
		State:  "CA",
		Phone:  "326-123-5000",
	})
	env.venues.shows[1] = []model.VenueShow{
		{ArtistID: 4, ArtistName: "Guns N Petals", StartTime: testNow.Add(-24 * time.Hour)},
		{ArtistID: 4, ArtistName: "Guns N Petals", StartTime: testNow.Add(48 * time.Hour)},
	}
	env.artists.shows[4] = []model.ArtistShow{
		{VenueID: 1, VenueName: "The Musical Hop", StartTime: testNow.Add(-24 * time.Hour)},
		{VenueID: 1, VenueName: "The Musical Hop", StartTime: testNow.Add(48 * time.Hour)},
	}
}

func validVenueForm() url.Values {
	return url.Values{
		"name":    {"Park Square Live Music & Coffee"},
		"city":    {"San Francisco"},
		"state":   {"CA"},
		"address": {"34 Whiskey Moore Ave"},
		"phone":   {"415-000-1234"},
		"genres":  {"Rock n Roll", "Jazz"},
	}
}
