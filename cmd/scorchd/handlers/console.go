// Package handlers serves pages of the Scorch console.
//
// Each handler calls Scorch through rest clients and renders a page from views.
// A failed call renders the page with an error panel in place of its content.
// Write actions redirect with a toast telling the result.
package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/audit"
	cerr "github.com/opst/scorch-console/pkg/errors"
	"github.com/opst/scorch-console/pkg/flash"
	"github.com/opst/scorch-console/pkg/paginator"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/views"
)

// DefaultPageSize is the number of items in a page of listings.
const DefaultPageSize = 20

// Console is shared by page handlers.
type Console struct {
	Flash *flash.Flasher
	Audit *audit.Logger
}

func (cs *Console) page(c echo.Context, title string, data any) views.Page {
	return views.Page{Title: title, Toast: cs.Flash.Pop(c), Data: data}
}

// render writes the page with the toast pushed before redirect, if any.
func (cs *Console) render(c echo.Context, name string, title string, data any) error {
	return c.Render(http.StatusOK, name, cs.page(c, title, data))
}

// notify writes the page with a toast, in response to a form post.
func (cs *Console) notify(c echo.Context, name string, title string, level string, message string, data any) error {
	return c.Render(http.StatusOK, name, views.Page{
		Title: title,
		Toast: &flash.Toast{Level: level, Message: message},
		Data:  data,
	})
}

// fail writes the page with an error panel in place of its content.
func (cs *Console) fail(c echo.Context, name string, title string, err error) error {
	panel := views.NewErrorPanel(err)
	cs.Audit.Failure(panel.ID, c.Path(), err)

	p := cs.page(c, title, nil)
	p.Error = panel
	return c.Render(panel.Status, name, p)
}

// done records the action, then redirects to next with a toast of its result.
//
// On success, the toast says message. Otherwise, it says the summary of err.
func (cs *Console) done(c echo.Context, action string, target string, err error, message string, next string) error {
	cs.Audit.Record(c.RealIP(), action, target, err)

	level := flash.Success
	if err != nil {
		level, message = flash.Error, cerr.Summary(err)
	}
	if err := cs.Flash.Push(c, level, message); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, next)
}

// listQuery passes query parameters of the page to Scorch.
//
// Blank values are dropped, and the page number and size are supplied.
func listQuery(c echo.Context) rest.Query {
	params := c.QueryParams()
	q := rest.Query{}
	for k, vs := range params {
		if len(vs) == 0 {
			continue
		}
		if v := strings.TrimSpace(vs[0]); v != "" {
			q[k] = v
		}
	}
	q[views.QueryPage] = views.PageOf(params)
	if _, ok := q["size"]; !ok {
		q["size"] = DefaultPageSize
	}
	return q
}

// pageURL is the URL of the requested page, without host.
func pageURL(c echo.Context) *url.URL {
	u := *c.Request().URL
	u.Scheme, u.Host = "", ""
	return &u
}

// link joins path segments escaped.
func link(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/") + "/"
}

// listing is data of list pages.
type listing struct {
	Query url.Values
	Items any
	Pager views.Pager
}

func newListing[T any](c echo.Context, page types.Page[T]) listing {
	return listing{
		Query: c.QueryParams(),
		Items: page.Content,
		Pager: views.NewPager(paginator.New(page), pageURL(c)),
	}
}
