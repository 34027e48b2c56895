// Package views renders console pages from html templates.
//
// Each page template defines "content", and is rendered in "layout"
// with shared widgets: toasts, error panels, parameter tables, trees and paginators.
package views

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/pkg/api/types"
	cerr "github.com/opst/scorch-console/pkg/errors"
	"github.com/opst/scorch-console/pkg/flash"
	"github.com/opst/scorch-console/pkg/parameters"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/schedules"
)

//go:embed templates
var templates embed.FS

const (
	layoutFile  = "templates/layout.html"
	widgetsFile = "templates/widgets.html"
)

// Page is data given to every page template.
type Page struct {
	Title string

	// Toast is shown on top of the page, once.
	Toast *flash.Toast

	// Error replaces the content of the page when it is not nil.
	Error *ErrorPanel

	Data any
}

// ErrorPanel shows a failure of the page.
type ErrorPanel struct {
	// ID identifies the failure in logs.
	ID string

	Status  int
	Summary string
	Detail  string
}

// NewErrorPanel describes err with a new ID.
func NewErrorPanel(err error) *ErrorPanel {
	return &ErrorPanel{
		ID:      uuid.NewString(),
		Status:  StatusOf(err),
		Summary: cerr.Summary(err),
		Detail:  cerr.VerboseOf(err),
	}
}

// StatusOf chooses the status code of a page failed with err.
//
// 4xx from Scorch are passed through. An open circuit breaker is 503,
// and other failures of Scorch are 502.
func StatusOf(err error) int {
	switch s := rest.StatusOf(err); {
	case s == http.StatusServiceUnavailable:
		return s
	case 400 <= s && s < 500:
		return s
	}
	if he := new(echo.HTTPError); errors.As(err, &he) {
		return he.Code
	}
	return http.StatusBadGateway
}

var funcs = template.FuncMap{
	"addAllField": func() string {
		return parameters.FieldAddAll
	},
	"field": func(r types.Record, key string) string {
		return r.String(key)
	},
	"json": func(v any) (string, error) {
		b, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
	"records": func(r types.Record, key string) []types.Record {
		return r.Records(key)
	},
	"scalars":     scalars,
	"pathEscape":  url.PathEscape,
	"upper":       strings.ToUpper,
	"methodLabel": schedules.MethodLabel,
}

// Scalar is a top-level field of a record with a printable value.
type Scalar struct {
	Key   string
	Value string
}

// scalars lists fields of r whose values are not objects nor arrays, in key order.
func scalars(r types.Record) []Scalar {
	keys := make([]string, 0, len(r))
	for k := range r {
		switch r[k].(type) {
		case map[string]any, []any, types.Record, []types.Record:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ret := make([]Scalar, 0, len(keys))
	for _, k := range keys {
		ret = append(ret, Scalar{Key: k, Value: r.String(k)})
	}
	return ret
}

// Renderer is an echo.Renderer of pages.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses all page templates.
func New() (*Renderer, error) {
	files, err := fs.Glob(templates, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := map[string]*template.Template{}
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templates, layoutFile, widgetsFile, f)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Has reports whether the page exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render writes the page named name.
//
// data should be a Page. Other values are wrapped as Page.Data.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("page not found: %s", name)
	}
	page, ok := data.(Page)
	if !ok {
		page = Page{Data: data}
	}
	return t.ExecuteTemplate(w, "layout", page)
}

var _ echo.Renderer = &Renderer{}
