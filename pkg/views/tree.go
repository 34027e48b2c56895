package views

import (
	"net/url"

	"github.com/opst/scorch-console/pkg/forest"
)

// query parameters holding tree expansion.
const (
	QueryExpanded = "x"
	QueryLast     = "xl"
	QueryAll      = "xall"
)

// ExpansionOf reads tree expansion from query.
//
// With QueryAll, every name in items is expanded.
func ExpansionOf(q url.Values, items []forest.Item) *forest.Expansion {
	exp := forest.NewExpansion(q[QueryExpanded]...)
	if q.Has(QueryAll) {
		exp.ExpandAll(items)
	}
	if last := q.Get(QueryLast); last != "" {
		exp.Mark(last)
	}
	return exp
}

func expansionQuery(base url.Values, exp *forest.Expansion) url.Values {
	q := url.Values{}
	for k, vs := range base {
		if k == QueryExpanded || k == QueryLast || k == QueryAll {
			continue
		}
		q[k] = vs
	}
	for _, n := range exp.Names() {
		q.Add(QueryExpanded, n)
	}
	if l := exp.Last(); l != "" {
		q.Set(QueryLast, l)
	}
	return q
}

type TreeNode struct {
	Name       string
	ChildCount int
	Expanded   bool
	Bold       bool

	// Href toggles expansion of this node.
	Href string

	// Link is the page of the item. It may be empty.
	Link string

	Sub *TreeLevel
}

type TreeLevel struct {
	Nodes []TreeNode

	// DeadLoop is a message shown in place of nodes, when a cycle closes at this level.
	DeadLoop string
}

type Tree struct {
	Title string
	Empty string
	Root  *TreeLevel

	ExpandAllHref   string
	CollapseAllHref string
}

// NewTree renders items into links toggling expansion on page.
//
// link returns a page of the item, or "". It can be nil.
func NewTree(title string, items []forest.Item, exp *forest.Expansion, page *url.URL, link func(name string) string) Tree {
	tree := Tree{Title: title}
	if len(items) == 0 {
		tree.Empty = forest.EmptyMessage
		return tree
	}
	if link == nil {
		link = func(string) string { return "" }
	}

	href := func(q url.Values) string {
		u := *page
		u.RawQuery = q.Encode()
		return u.String()
	}

	all := expansionQuery(page.Query(), forest.NewExpansion())
	all.Set(QueryAll, "")
	tree.ExpandAllHref = href(all)
	tree.CollapseAllHref = href(expansionQuery(page.Query(), forest.NewExpansion()))

	var convert func(l *forest.Level) *TreeLevel
	convert = func(l *forest.Level) *TreeLevel {
		if l == nil {
			return nil
		}
		if l.HasDeadLoop() {
			return &TreeLevel{DeadLoop: l.DeadLoopMessage()}
		}
		ret := &TreeLevel{Nodes: make([]TreeNode, 0, len(l.Nodes))}
		for _, n := range l.Nodes {
			toggled := forest.NewExpansion(exp.Names()...)
			toggled.Toggle(n.Name)
			ret.Nodes = append(ret.Nodes, TreeNode{
				Name:       n.Name,
				ChildCount: n.ChildCount,
				Expanded:   n.Expanded,
				Bold:       n.Bold,
				Href:       href(expansionQuery(page.Query(), toggled)),
				Link:       link(n.Name),
				Sub:        convert(n.Sub),
			})
		}
		return ret
	}
	tree.Root = convert(forest.Render(items, exp))
	return tree
}
