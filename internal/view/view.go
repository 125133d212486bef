// Package view renders the HTML pages from embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/flash"
	"github.com/iliyamo/venue-booking/internal/model"
)

// all: keeps the _-prefixed partials, which embed skips otherwise.
//
//go:embed all:templates
var files embed.FS

// Page is the value every template executes against.  Data holds the
// page-specific values.
type Page struct {
	Title     string
	Flashes   []flash.Message
	CSRFToken string
	Data      any
}

// Renderer implements echo.Renderer.  Each page is parsed together with the
// layout and the shared partials, so pages may redefine "content" freely.
type Renderer struct {
	pages map[string]*template.Template
}

// Funcs are the template helpers available to every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime":  FormatDateTime,
		"allGenres": func() []string { return model.Genres(model.AllGenres).Strings() },
		"allStates": func() []string { return model.States },
		"join":      strings.Join,
	}
}

// New parses every template under templates/.  Page names are paths
// without the extension, e.g. "pages/show_venue".
func New() (*Renderer, error) {
	base, err := template.New("base").Funcs(Funcs()).ParseFS(files, "templates/layouts/*.html", "templates/forms/_*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, dir := range []string{"pages", "forms", "errors"} {
		matches, err := fs.Glob(files, "templates/"+dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, file := range matches {
			if strings.HasPrefix(path.Base(file), "_") {
				continue
			}
			t, err := base.Clone()
			if err != nil {
				return nil, err
			}
			if _, err := t.ParseFS(files, file); err != nil {
				return nil, fmt.Errorf("parse %s: %w", file, err)
			}
			name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
			r.pages[name] = t
		}
	}
	return r, nil
}

// Render executes the named page inside the layout.  Data that is not a
// Page is wrapped in one.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	p, ok := data.(Page)
	if !ok {
		p = Page{Data: data}
	}
	return t.ExecuteTemplate(w, "layout", p)
}

// Has reports whether a page with the given name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Date formats accepted by FormatDateTime besides raw Go layouts.
const (
	MediumLayout = "Mon 01, 02, 2006 3:04PM"
	FullLayout   = "Monday January, 2, 2006 at 3:04PM"
)

// FormatDateTime is the "datetime" template filter.  value may be a
// time.Time or a timestamp string; format is "medium", "full" or a Go
// layout.  Unparseable strings are returned unchanged.
func FormatDateTime(value any, format string) string {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case string:
		parsed, err := parseTimestamp(v)
		if err != nil {
			return v
		}
		t = parsed
	default:
		return fmt.Sprint(value)
	}
	switch format {
	case "", "medium":
		format = MediumLayout
	case "full":
		format = FullLayout
	}
	return t.UTC().Format(format)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(model.TimestampLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
