package views

import (
	"net/url"
	"strconv"

	"github.com/opst/scorch-console/pkg/paginator"
	"github.com/opst/scorch-console/pkg/parameters"
)

// ParamTable is a parameters table in a form.
type ParamTable struct {
	Scope    parameters.Scope
	ReadOnly bool
	Rows     []parameters.Row
	Pending  parameters.Row
}

func NewParamTable(t *parameters.Table) ParamTable {
	return NewScopedParamTable("", t)
}

// NewScopedParamTable makes one of tables sharing a form.
func NewScopedParamTable(scope parameters.Scope, t *parameters.Table) ParamTable {
	return ParamTable{
		Scope:    scope,
		ReadOnly: t.ReadOnly(),
		Rows:     t.Rows(),
		Pending:  t.Pending(),
	}
}

// FieldOf is the form field name holding the parameter.
func (p ParamTable) FieldOf(name string) string {
	return p.Scope.Field(parameters.FieldPrefix + name)
}

func (p ParamTable) FieldPendingName() string  { return p.Scope.Field(parameters.FieldPendingName) }
func (p ParamTable) FieldPendingValue() string { return p.Scope.Field(parameters.FieldPendingValue) }
func (p ParamTable) FieldDelete() string       { return p.Scope.Field(parameters.FieldDelete) }
func (p ParamTable) FieldAdd() string          { return p.Scope.Field(parameters.FieldAdd) }

// QueryPage is the query parameter of the page number, starting from 0.
const QueryPage = "page"

type PageLink struct {
	Label   string
	Href    string
	Current bool
}

type Pager struct {
	Info  string
	Links []PageLink

	FirstHref string
	LastHref  string
}

// PageOf reads the requested page number. Missing or malformed values are 0.
func PageOf(q url.Values) int {
	n, err := strconv.Atoi(q.Get(QueryPage))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NewPager makes links of p, on the listing page.
func NewPager(p paginator.Paginator, page *url.URL) Pager {
	href := func(n int) string {
		u := *page
		q := u.Query()
		q.Set(QueryPage, strconv.Itoa(n))
		u.RawQuery = q.Encode()
		return u.String()
	}

	pager := Pager{Info: p.Info}
	if !p.HasLinks() {
		return pager
	}
	pager.FirstHref = href(p.First)
	pager.LastHref = href(p.Last)
	for _, l := range p.Links {
		pager.Links = append(pager.Links, PageLink{
			Label:   strconv.Itoa(l.Number + 1),
			Href:    href(l.Number),
			Current: l.Current,
		})
	}
	return pager
}
