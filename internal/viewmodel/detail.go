package viewmodel

import (
	"time"

	"github.com/iliyamo/venue-booking/internal/model"
)

// ArtistAppearance is a show on a venue page.
type ArtistAppearance struct {
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// VenueBooking is a show on an artist page.
type VenueBooking struct {
	VenueID        uint64 `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

// VenueDetail is the venue page.  Website, FacebookLink and
// SeekingDescription are empty unless present on the venue; the latter only
// when the venue is seeking talent.
type VenueDetail struct {
	ID                 uint64             `json:"id"`
	Name               string             `json:"name"`
	Genres             []string           `json:"genres"`
	Address            string             `json:"address"`
	City               string             `json:"city"`
	State              string             `json:"state"`
	Phone              string             `json:"phone"`
	Website            string             `json:"website,omitempty"`
	FacebookLink       string             `json:"facebook_link,omitempty"`
	SeekingTalent      bool               `json:"seeking_talent"`
	SeekingDescription string             `json:"seeking_description,omitempty"`
	ImageLink          string             `json:"image_link"`
	PastShows          []ArtistAppearance `json:"past_shows"`
	UpcomingShows      []ArtistAppearance `json:"upcoming_shows"`
	PastShowsCount     int                `json:"past_shows_count"`
	UpcomingShowsCount int                `json:"upcoming_shows_count"`
}

// ArtistDetail is the artist page.
type ArtistDetail struct {
	ID                 uint64         `json:"id"`
	Name               string         `json:"name"`
	Genres             []string       `json:"genres"`
	City               string         `json:"city"`
	State              string         `json:"state"`
	Phone              string         `json:"phone"`
	Website            string         `json:"website,omitempty"`
	FacebookLink       string         `json:"facebook_link,omitempty"`
	SeekingVenue       bool           `json:"seeking_venue"`
	SeekingDescription string         `json:"seeking_description,omitempty"`
	ImageLink          string         `json:"image_link"`
	PastShows          []VenueBooking `json:"past_shows"`
	UpcomingShows      []VenueBooking `json:"upcoming_shows"`
	PastShowsCount     int            `json:"past_shows_count"`
	UpcomingShowsCount int            `json:"upcoming_shows_count"`
}

// BuildVenueDetail assembles the venue page from the venue and its shows.
func BuildVenueDetail(v *model.Venue, shows []model.VenueShow, now time.Time) VenueDetail {
	past, upcoming := Partition(shows, func(s model.VenueShow) time.Time { return s.StartTime }, now)
	d := VenueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             v.Genres.Strings(),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		ImageLink:          v.ImageLink,
		PastShows:          artistAppearances(past),
		UpcomingShows:      artistAppearances(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
	if v.SeekingTalent {
		d.SeekingDescription = v.SeekingDescription
	}
	return d
}

// BuildArtistDetail assembles the artist page from the artist and its shows.
func BuildArtistDetail(a *model.Artist, shows []model.ArtistShow, now time.Time) ArtistDetail {
	past, upcoming := Partition(shows, func(s model.ArtistShow) time.Time { return s.StartTime }, now)
	d := ArtistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             a.Genres.Strings(),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		ImageLink:          a.ImageLink,
		PastShows:          venueBookings(past),
		UpcomingShows:      venueBookings(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}
	if a.SeekingVenue {
		d.SeekingDescription = a.SeekingDescription
	}
	return d
}

func artistAppearances(shows []model.VenueShow) []ArtistAppearance {
	out := make([]ArtistAppearance, 0, len(shows))
	for _, s := range shows {
		out = append(out, ArtistAppearance{
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       FormatTimestamp(s.StartTime),
		})
	}
	return out
}

func venueBookings(shows []model.ArtistShow) []VenueBooking {
	out := make([]VenueBooking, 0, len(shows))
	for _, s := range shows {
		out = append(out, VenueBooking{
			VenueID:        s.VenueID,
			VenueName:      s.VenueName,
			VenueImageLink: s.VenueImageLink,
			StartTime:      FormatTimestamp(s.StartTime),
		})
	}
	return out
}
