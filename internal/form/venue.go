package form

import (
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/iliyamo/venue-booking/internal/model"
)

// VenueForm is the create/edit venue form.
type VenueForm struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	Website            string   `json:"website"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`

	// Errors holds one message per invalid field after Validate.
	Errors map[string]string `json:"-"`
}

// ParseVenue reads a VenueForm from submitted values.
func ParseVenue(vals url.Values) VenueForm {
	return VenueForm{
		Name:               trimmed(vals, "name"),
		City:               trimmed(vals, "city"),
		State:              trimmed(vals, "state"),
		Address:            trimmed(vals, "address"),
		Phone:              trimmed(vals, "phone"),
		Genres:             multi(vals, "genres"),
		ImageLink:          trimmed(vals, "image_link"),
		FacebookLink:       trimmed(vals, "facebook_link"),
		Website:            trimmed(vals, "website"),
		SeekingTalent:      checked(vals, "seeking_talent"),
		SeekingDescription: trimmed(vals, "seeking_description"),
	}
}

// VenueFromModel pre-populates a form from a stored venue.
func VenueFromModel(v *model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.Genres.Strings(),
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// Validate checks every field and records messages in f.Errors.  It returns
// an *apperror.ValidationError when any field is invalid.
func (f *VenueForm) Validate() error {
	return validate(&f.Errors, validation.ValidateStruct(f,
		validation.Field(&f.Name, nameRules()...),
		validation.Field(&f.City, cityRules()...),
		validation.Field(&f.State, stateRules()...),
		validation.Field(&f.Address,
			validation.Required.Error("Address is required."),
			validation.Length(1, 120),
		),
		validation.Field(&f.Phone, phoneRules()...),
		validation.Field(&f.Genres, genreRules()...),
		validation.Field(&f.ImageLink, linkRules(500)...),
		validation.Field(&f.FacebookLink, linkRules(120)...),
		validation.Field(&f.Website, linkRules(120)...),
		validation.Field(&f.SeekingDescription, validation.Length(0, 2000)),
	))
}

// ApplyTo copies the form onto v.  Call it only after Validate succeeded.
func (f *VenueForm) ApplyTo(v *model.Venue) error {
	genres, err := model.ParseGenres(f.Genres)
	if err != nil {
		return err
	}
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.Genres = genres
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.Website = f.Website
	v.SeekingTalent = f.SeekingTalent
	v.SeekingDescription = f.SeekingDescription
	return nil
}

// HasGenre is used by templates to re-select submitted genres.
func (f VenueForm) HasGenre(g string) bool {
	return contains(f.Genres, g)
}
