package model

import "time"

// Artist is a performer that can be booked at venues.  It corresponds to a
// row in the `artists` table and mirrors Venue except for the address and
// the seeking flag, which here means the artist is looking for venues.
type Artist struct {
	ID                 uint64    // artists.id
	Name               string    // artists.name
	Genres             Genres    // artists.genres
	City               string    // artists.city
	State              string    // artists.state
	Phone              string    // artists.phone
	Website            string    // artists.website (nullable)
	FacebookLink       string    // artists.facebook_link (nullable)
	SeekingVenue       bool      // artists.seeking_venue
	SeekingDescription string    // artists.seeking_description (nullable)
	ImageLink          string    // artists.image_link (nullable)
	CreatedAt          time.Time // artists.created_at
	UpdatedAt          time.Time // artists.updated_at
}

// ArtistSummary is the projection used by the artist listing and search.
type ArtistSummary struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}
