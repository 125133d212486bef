package viewmodel

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking/internal/model"
)

var now = time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)

func TestPartitionBoundary(t *testing.T) {
	starts := []time.Time{
		now.Add(-time.Second),
		now,
		now.Add(time.Second),
	}
	past, upcoming := Partition(starts, func(t time.Time) time.Time { return t }, now)

	assert.Equal(t, []time.Time{now.Add(-time.Second), now}, past)
	assert.Equal(t, []time.Time{now.Add(time.Second)}, upcoming)
}

func TestPartitionEmpty(t *testing.T) {
	past, upcoming := Partition([]time.Time(nil), func(t time.Time) time.Time { return t }, now)
	assert.NotNil(t, past)
	assert.NotNil(t, upcoming)
	assert.Empty(t, past)
	assert.Empty(t, upcoming)
}

func TestGroupVenuesByAreaKeepsFirstSeenOrder(t *testing.T) {
	venues := []model.VenueSummary{
		{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", NumUpcomingShows: 0},
		{ID: 2, Name: "The Dueling Pianos Bar", City: "New York", State: "NY", NumUpcomingShows: 0},
		{ID: 3, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", NumUpcomingShows: 1},
		{ID: 4, Name: "Portland Room", City: "Portland", State: "ME"},
		{ID: 5, Name: "Portland Hall", City: "Portland", State: "OR"},
	}

	areas := GroupVenuesByArea(venues)
	require.Len(t, areas, 4)
	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, []ListItem{
		{ID: 1, Name: "The Musical Hop"},
		{ID: 3, Name: "Park Square Live Music & Coffee", NumUpcomingShows: 1},
	}, areas[0].Venues)
	assert.Equal(t, "New York", areas[1].City)
	assert.Equal(t, "ME", areas[2].State)
	assert.Equal(t, "OR", areas[3].State)
}

func TestGroupVenuesByAreaEmpty(t *testing.T) {
	assert.Empty(t, GroupVenuesByArea(nil))
}

func TestVenueSearchCounts(t *testing.T) {
	res := VenueSearch([]model.VenueSummary{{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 2}})
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 2, res.Data[0].NumUpcomingShows)

	empty := ArtistSearch(nil)
	assert.Zero(t, empty.Count)
	assert.Empty(t, empty.Data)
}

func TestBuildVenueDetail(t *testing.T) {
	v := &model.Venue{
		ID:                 1,
		Name:               "The Musical Hop",
		Genres:             model.Genres{model.GenreJazz, model.GenreFolk},
		City:               "San Francisco",
		State:              "CA",
		Phone:              "123-123-1234",
		Website:            "https://www.themusicalhop.com",
		SeekingTalent:      true,
		SeekingDescription: "We are on the lookout for a local artist.",
	}
	shows := []model.VenueShow{
		{ArtistID: 4, ArtistName: "Guns N Petals", StartTime: time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)},
		{ArtistID: 5, ArtistName: "Matt Quevedo", StartTime: now},
		{ArtistID: 6, ArtistName: "The Wild Sax Band", StartTime: now.Add(48 * time.Hour)},
	}

	d := BuildVenueDetail(v, shows, now)
	assert.Equal(t, []string{"Jazz", "Folk"}, d.Genres)
	assert.Equal(t, 2, d.PastShowsCount)
	assert.Equal(t, 1, d.UpcomingShowsCount)
	assert.Equal(t, "2019-05-21T21:30:00Z", d.PastShows[0].StartTime)
	assert.Equal(t, "The Wild Sax Band", d.UpcomingShows[0].ArtistName)
	assert.Equal(t, "We are on the lookout for a local artist.", d.SeekingDescription)
}

func TestBuildVenueDetailOmitsAbsentOptionalFields(t *testing.T) {
	v := &model.Venue{
		ID:                 2,
		Name:               "The Dueling Pianos Bar",
		Genres:             model.Genres{},
		SeekingTalent:      false,
		SeekingDescription: "stale text that must not be shown",
	}
	d := BuildVenueDetail(v, nil, now)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))

	assert.NotContains(t, m, "website")
	assert.NotContains(t, m, "facebook_link")
	assert.NotContains(t, m, "seeking_description")
	assert.Equal(t, false, m["seeking_talent"])
	assert.Equal(t, []any{}, m["past_shows"])
}

func TestBuildArtistDetail(t *testing.T) {
	a := &model.Artist{
		ID:                 4,
		Name:               "Guns N Petals",
		Genres:             model.Genres{model.GenreRockNRoll},
		FacebookLink:       "https://www.facebook.com/GunsNPetals",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
	}
	shows := []model.ArtistShow{
		{VenueID: 1, VenueName: "The Musical Hop", StartTime: now.Add(-time.Hour)},
		{VenueID: 3, VenueName: "Park Square Live Music & Coffee", StartTime: now.Add(time.Minute)},
	}
	d := BuildArtistDetail(a, shows, now)

	assert.Equal(t, 1, d.PastShowsCount)
	assert.Equal(t, 1, d.UpcomingShowsCount)
	assert.Equal(t, uint64(3), d.UpcomingShows[0].VenueID)
	assert.Equal(t, "https://www.facebook.com/GunsNPetals", d.FacebookLink)
	assert.Empty(t, d.Website)
	assert.NotEmpty(t, d.SeekingDescription)
}

func TestShowListFormatsTimestamps(t *testing.T) {
	local := time.FixedZone("PDT", -7*3600)
	items := ShowList([]model.ShowListing{{
		VenueID: 1, VenueName: "The Musical Hop", ArtistID: 4, ArtistName: "Guns N Petals",
		StartTime: time.Date(2019, 5, 21, 14, 30, 0, 0, local),
	}})
	require.Len(t, items, 1)
	assert.Equal(t, "2019-05-21T21:30:00Z", items[0].StartTime)
}
