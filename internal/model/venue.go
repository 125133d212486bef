package model

import "time"

// Venue is a place that hosts shows.  It corresponds to a row in the
// `venues` table.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name, required.
//  Genres             – genres the venue books.
//  Address/City/State – location; State is a two-letter code.
//  Phone              – NNN-NNN-NNNN.
//  Website            – optional URL, empty when unset.
//  FacebookLink       – optional URL, empty when unset.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – free text, only meaningful when SeekingTalent.
//  ImageLink          – optional URL of a picture.
type Venue struct {
	ID                 uint64    // venues.id
	Name               string    // venues.name
	Genres             Genres    // venues.genres
	Address            string    // venues.address
	City               string    // venues.city
	State              string    // venues.state
	Phone              string    // venues.phone
	Website            string    // venues.website (nullable)
	FacebookLink       string    // venues.facebook_link (nullable)
	SeekingTalent      bool      // venues.seeking_talent
	SeekingDescription string    // venues.seeking_description (nullable)
	ImageLink          string    // venues.image_link (nullable)
	CreatedAt          time.Time // venues.created_at
	UpdatedAt          time.Time // venues.updated_at
}

// VenueSummary is the slim projection used by listings and search results.
type VenueSummary struct {
	ID               uint64
	Name             string
	City             string
	State            string
	NumUpcomingShows int
}
