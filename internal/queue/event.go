// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// ActivityQueue is the durable queue carrying listing activity.
const ActivityQueue = "listing.activity"

// Activity kinds.
const (
	KindVenueCreated  = "venue.created"
	KindVenueUpdated  = "venue.updated"
	KindVenueDeleted  = "venue.deleted"
	KindArtistCreated = "artist.created"
	KindArtistUpdated = "artist.updated"
	KindArtistDeleted = "artist.deleted"
	KindShowScheduled = "show.scheduled"
)

// ActivityEvent is published after a committed change to the directory.  It
// carries enough to write an audit line without querying the database.
type ActivityEvent struct {
	Kind         string `json:"kind"`
	ID           uint64 `json:"id"`
	Name         string `json:"name,omitempty"`
	VenueID      uint64 `json:"venue_id,omitempty"`
	ArtistID     uint64 `json:"artist_id,omitempty"`
	StartTime    string `json:"start_time,omitempty"`
	ShowsRemoved int64  `json:"shows_removed,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}
