// Package form turns url-encoded form bodies into typed forms and validates
// them field by field.  Field names in error maps match the form input names.
package form

import (
	"errors"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/iliyamo/venue-booking/internal/apperror"
	"github.com/iliyamo/venue-booking/internal/model"
)

// PhonePattern is the accepted phone format, e.g. 123-456-7890.
var PhonePattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{3}-[0-9]{4}$`)

var linkScheme = regexp.MustCompile(`^https?://`)

var (
	stateChoices = toAny(model.States)
	genreChoices = toAny(model.Genres(model.AllGenres).Strings())
)

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// common rules shared by venue and artist forms
func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Name is required."),
		validation.Length(1, 255),
	}
}

func cityRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("City is required."),
		validation.Length(1, 120),
	}
}

func stateRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("State is required."),
		validation.In(stateChoices...).Error("Choose a valid state."),
	}
}

func phoneRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Phone is required."),
		validation.Match(PhonePattern).Error("Follow the pattern 123-456-7890."),
	}
}

func genreRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Choose at least one genre."),
		validation.Each(validation.In(genreChoices...).Error("Unknown genre.")),
	}
}

func linkRules(max int) []validation.Rule {
	return []validation.Rule{
		validation.Length(0, max),
		is.URL.Error("Link provided is not valid."),
		validation.Match(linkScheme).Error("Link provided is not valid."),
	}
}

// fieldErrors flattens ozzo's validation.Errors into a field → message map.
// Any other error is returned unchanged.
func fieldErrors(err error) (map[string]string, error) {
	if err == nil {
		return nil, nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make(map[string]string, len(verrs))
	for field, fe := range verrs {
		// Each() reports per-element errors keyed by index; keep the lowest
		var nested validation.Errors
		if errors.As(fe, &nested) {
			out[field] = firstNested(nested)
			continue
		}
		out[field] = fe.Error()
	}
	return out, nil
}

func firstNested(errs validation.Errors) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	if len(keys) == 0 {
		return ""
	}
	return errs[keys[0]].Error()
}

// validate runs ozzo's struct validation and converts the outcome into an
// apperror.ValidationError.
func validate(errs *map[string]string, verr error) error {
	fields, err := fieldErrors(verr)
	if err != nil {
		return err
	}
	*errs = fields
	if len(fields) == 0 {
		return nil
	}
	return apperror.NewValidation(fields)
}

func trimmed(vals url.Values, key string) string {
	return strings.TrimSpace(vals.Get(key))
}

func checked(vals url.Values, key string) bool {
	switch strings.ToLower(trimmed(vals, key)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

func multi(vals url.Values, key string) []string {
	out := []string{}
	for _, v := range vals[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
