package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// GenreDelimiter separates genre values in their persisted form.
const GenreDelimiter = ","

// Genre is one enumerated music genre tag.
type Genre string

const (
	GenreAlternative    Genre = "Alternative"
	GenreBlues          Genre = "Blues"
	GenreClassical      Genre = "Classical"
	GenreCountry        Genre = "Country"
	GenreElectronic     Genre = "Electronic"
	GenreFolk           Genre = "Folk"
	GenreFunk           Genre = "Funk"
	GenreHipHop         Genre = "Hip-Hop"
	GenreHeavyMetal     Genre = "Heavy Metal"
	GenreInstrumental   Genre = "Instrumental"
	GenreJazz           Genre = "Jazz"
	GenreMusicalTheatre Genre = "Musical Theatre"
	GenrePop            Genre = "Pop"
	GenrePunk           Genre = "Punk"
	GenreRnB            Genre = "R&B"
	GenreReggae         Genre = "Reggae"
	GenreRockNRoll      Genre = "Rock n Roll"
	GenreSoul           Genre = "Soul"
	GenreOther          Genre = "Other"
)

// AllGenres lists every genre in the order forms offer them.
var AllGenres = []Genre{
	GenreAlternative, GenreBlues, GenreClassical, GenreCountry, GenreElectronic,
	GenreFolk, GenreFunk, GenreHipHop, GenreHeavyMetal, GenreInstrumental,
	GenreJazz, GenreMusicalTheatre, GenrePop, GenrePunk, GenreRnB,
	GenreReggae, GenreRockNRoll, GenreSoul, GenreOther,
}

// Valid reports whether g is one of the enumerated genres.
func (g Genre) Valid() bool {
	for _, v := range AllGenres {
		if v == g {
			return true
		}
	}
	return false
}

// Genres is an ordered set of genre tags.
type Genres []Genre

// ParseGenres builds a Genres value from raw strings, dropping blanks and
// duplicates while keeping first-seen order.  Unknown or delimiter-bearing
// values are rejected.
func ParseGenres(values []string) (Genres, error) {
	out := make(Genres, 0, len(values))
	seen := make(map[Genre]bool, len(values))
	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		g := Genre(v)
		if strings.Contains(v, GenreDelimiter) || !g.Valid() {
			return nil, fmt.Errorf("unknown genre %q", v)
		}
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out, nil
}

// Encode joins the genres with GenreDelimiter.
func (gs Genres) Encode() string {
	parts := make([]string, len(gs))
	for i, g := range gs {
		parts[i] = string(g)
	}
	return strings.Join(parts, GenreDelimiter)
}

// DecodeGenres splits an encoded genre string.  The empty string decodes to an
// empty set rather than a set holding one empty genre.
func DecodeGenres(s string) Genres {
	if s == "" {
		return Genres{}
	}
	parts := strings.Split(s, GenreDelimiter)
	out := make(Genres, len(parts))
	for i, p := range parts {
		out[i] = Genre(p)
	}
	return out
}

// Strings returns the genres as plain strings, mostly for templates and JSON.
func (gs Genres) Strings() []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = string(g)
	}
	return out
}

// Contains reports whether g is in the set.
func (gs Genres) Contains(g string) bool {
	for _, v := range gs {
		if string(v) == g {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer.
func (gs Genres) Value() (driver.Value, error) {
	return gs.Encode(), nil
}

// Scan implements sql.Scanner.
func (gs *Genres) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*gs = Genres{}
	case []byte:
		*gs = DecodeGenres(string(v))
	case string:
		*gs = DecodeGenres(v)
	default:
		return fmt.Errorf("genres: cannot scan %T", src)
	}
	return nil
}
