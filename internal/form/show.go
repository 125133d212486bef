package form

import (
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/iliyamo/venue-booking/internal/model"
)

// StartTimeLayouts are the accepted start_time input formats, tried in
// order.  Times without a zone are taken as UTC.
var StartTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
}

// InputLayout is how start_time is pre-filled in the form.
const InputLayout = "2006-01-02 15:04:05"

// positiveID accepts decimal ids that fit a uint64 and are not zero.
func positiveID(msg string) validation.Rule {
	return validation.By(func(v any) error {
		s, _ := v.(string)
		if s == "" {
			return nil
		}
		if n, err := strconv.ParseUint(s, 10, 64); err != nil || n == 0 {
			return validation.NewError("validation_positive_id", msg)
		}
		return nil
	})
}

var errStartTime = validation.NewError("validation_start_time", "Use the format YYYY-MM-DD HH:MM:SS.")

// ShowForm is the schedule-a-show form.
type ShowForm struct {
	ArtistID  string `json:"artist_id"`
	VenueID   string `json:"venue_id"`
	StartTime string `json:"start_time"`

	Errors map[string]string `json:"-"`
}

// ParseShow reads a ShowForm from submitted values.
func ParseShow(vals url.Values) ShowForm {
	return ShowForm{
		ArtistID:  trimmed(vals, "artist_id"),
		VenueID:   trimmed(vals, "venue_id"),
		StartTime: trimmed(vals, "start_time"),
	}
}

// NewShowForm returns an empty form with start_time pre-filled to now.
func NewShowForm(now time.Time) ShowForm {
	return ShowForm{StartTime: now.UTC().Format(InputLayout)}
}

// ParseStartTime parses s using StartTimeLayouts and returns it in UTC.
func ParseStartTime(s string) (time.Time, error) {
	for _, layout := range StartTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errStartTime
}

func (f *ShowForm) Validate() error {
	return validate(&f.Errors, validation.ValidateStruct(f,
		validation.Field(&f.ArtistID,
			validation.Required.Error("Artist ID is required."),
			positiveID("Artist ID must be a positive number."),
		),
		validation.Field(&f.VenueID,
			validation.Required.Error("Venue ID is required."),
			positiveID("Venue ID must be a positive number."),
		),
		validation.Field(&f.StartTime,
			validation.Required.Error("Start time is required."),
			validation.By(func(v any) error {
				_, err := ParseStartTime(v.(string))
				return err
			}),
		),
	))
}

// Show builds the model value.  Call it only after Validate succeeded.
func (f *ShowForm) Show() (*model.Show, error) {
	artistID, err := strconv.ParseUint(f.ArtistID, 10, 64)
	if err != nil {
		return nil, err
	}
	venueID, err := strconv.ParseUint(f.VenueID, 10, 64)
	if err != nil {
		return nil, err
	}
	start, err := ParseStartTime(f.StartTime)
	if err != nil {
		return nil, err
	}
	return &model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

// SetError records a field error discovered after Validate, e.g. a
// reference to a venue that does not exist.
func (f *ShowForm) SetError(field, msg string) {
	if f.Errors == nil {
		f.Errors = map[string]string{}
	}
	f.Errors[field] = msg
}
