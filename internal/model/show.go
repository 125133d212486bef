package model

import "time"

// TimestampLayout is the wire format for show start times.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Show represents a scheduled performance of one artist at one venue.
// Whether it is past or upcoming is derived at query time and never stored.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – venue hosting the show.
//  ArtistID  – artist performing.
//  StartTime – when the show begins, UTC.
type Show struct {
	ID        uint64    // shows.id
	VenueID   uint64    // shows.venue_id
	ArtistID  uint64    // shows.artist_id
	StartTime time.Time // shows.start_time
}

// IsUpcoming reports whether a show starting at start is still ahead of now.
// A show starting exactly at now counts as past.
func IsUpcoming(start, now time.Time) bool {
	return start.After(now)
}

// VenueShow is a show seen from a venue: it carries the performing artist.
type VenueShow struct {
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}

// ArtistShow is a show seen from an artist: it carries the hosting venue.
type ArtistShow struct {
	VenueID        uint64
	VenueName      string
	VenueImageLink string
	StartTime      time.Time
}

// ShowListing is one row of the all-shows page.
type ShowListing struct {
	ID              uint64
	VenueID         uint64
	VenueName       string
	ArtistID        uint64
	ArtistName      string
	ArtistImageLink string
	StartTime       time.Time
}
