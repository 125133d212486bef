// Package viewmodel reshapes stored entities and their shows into the
// structures consumed by templates and the JSON read API.  Every function
// here is pure: the current time is always passed in.
package viewmodel

import (
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

// FormatTimestamp renders t in UTC as YYYY-MM-DDTHH:MM:SSZ.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(model.TimestampLayout)
}

// Partition splits items into past and upcoming relative to now, keeping
// their order.  An item starting exactly at now is past.
func Partition[T any](items []T, start func(T) time.Time, now time.Time) (past, upcoming []T) {
	past, upcoming = []T{}, []T{}
	for _, it := range items {
		if model.IsUpcoming(start(it), now) {
			upcoming = append(upcoming, it)
		} else {
			past = append(past, it)
		}
	}
	return past, upcoming
}

// ListItem is one entry of a listing or search result.
type ListItem struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// SearchResult is what the search pages render.
type SearchResult struct {
	Count int        `json:"count"`
	Data  []ListItem `json:"data"`
}

// Area groups the venues of one city/state pair.
type Area struct {
	City   string     `json:"city"`
	State  string     `json:"state"`
	Venues []ListItem `json:"venues"`
}

// GroupVenuesByArea buckets venues by (city, state).  Areas appear in the
// order their first venue appears; venues keep their input order.
func GroupVenuesByArea(venues []model.VenueSummary) []Area {
	type key struct{ city, state string }
	areas := []Area{}
	index := map[key]int{}
	for _, v := range venues {
		k := key{v.City, v.State}
		i, ok := index[k]
		if !ok {
			i = len(areas)
			index[k] = i
			areas = append(areas, Area{City: v.City, State: v.State, Venues: []ListItem{}})
		}
		areas[i].Venues = append(areas[i].Venues, ListItem{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: v.NumUpcomingShows,
		})
	}
	return areas
}

// VenueSearch builds the search result for venue matches.
func VenueSearch(matches []model.VenueSummary) SearchResult {
	out := SearchResult{Count: len(matches), Data: make([]ListItem, 0, len(matches))}
	for _, v := range matches {
		out.Data = append(out.Data, ListItem{ID: v.ID, Name: v.Name, NumUpcomingShows: v.NumUpcomingShows})
	}
	return out
}

// ArtistSearch builds the search result for artist matches.
func ArtistSearch(matches []model.ArtistSummary) SearchResult {
	out := SearchResult{Count: len(matches), Data: make([]ListItem, 0, len(matches))}
	for _, a := range matches {
		out.Data = append(out.Data, ListItem{ID: a.ID, Name: a.Name, NumUpcomingShows: a.NumUpcomingShows})
	}
	return out
}

// ArtistList builds the artist listing.
func ArtistList(artists []model.ArtistSummary) []ListItem {
	return ArtistSearch(artists).Data
}

// ShowItem is one row of the shows page.
type ShowItem struct {
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// ShowList builds the shows page rows.
func ShowList(shows []model.ShowListing) []ShowItem {
	out := make([]ShowItem, 0, len(shows))
	for _, s := range shows {
		out = append(out, ShowItem{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       FormatTimestamp(s.StartTime),
		})
	}
	return out
}
