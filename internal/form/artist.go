package form

import (
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/iliyamo/venue-booking/internal/model"
)

// ArtistForm is the create/edit artist form.
type ArtistForm struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	Website            string   `json:"website"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`

	Errors map[string]string `json:"-"`
}

// ParseArtist reads an ArtistForm from submitted values.
func ParseArtist(vals url.Values) ArtistForm {
	return ArtistForm{
		Name:               trimmed(vals, "name"),
		City:               trimmed(vals, "city"),
		State:              trimmed(vals, "state"),
		Phone:              trimmed(vals, "phone"),
		Genres:             multi(vals, "genres"),
		ImageLink:          trimmed(vals, "image_link"),
		FacebookLink:       trimmed(vals, "facebook_link"),
		Website:            trimmed(vals, "website"),
		SeekingVenue:       checked(vals, "seeking_venue"),
		SeekingDescription: trimmed(vals, "seeking_description"),
	}
}

// ArtistFromModel pre-populates a form from a stored artist.
func ArtistFromModel(a *model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres.Strings(),
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func (f *ArtistForm) Validate() error {
	return validate(&f.Errors, validation.ValidateStruct(f,
		validation.Field(&f.Name, nameRules()...),
		validation.Field(&f.City, cityRules()...),
		validation.Field(&f.State, stateRules()...),
		validation.Field(&f.Phone, phoneRules()...),
		validation.Field(&f.Genres, genreRules()...),
		validation.Field(&f.ImageLink, linkRules(500)...),
		validation.Field(&f.FacebookLink, linkRules(120)...),
		validation.Field(&f.Website, linkRules(120)...),
		validation.Field(&f.SeekingDescription, validation.Length(0, 2000)),
	))
}

// ApplyTo copies the form onto a.
func (f *ArtistForm) ApplyTo(a *model.Artist) error {
	genres, err := model.ParseGenres(f.Genres)
	if err != nil {
		return err
	}
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.Genres = genres
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.Website = f.Website
	a.SeekingVenue = f.SeekingVenue
	a.SeekingDescription = f.SeekingDescription
	return nil
}

func (f ArtistForm) HasGenre(g string) bool {
	return contains(f.Genres, g)
}
