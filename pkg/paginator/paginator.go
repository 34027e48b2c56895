// Package paginator lays out page links for paged listings.
package paginator

import (
	"fmt"

	"github.com/opst/scorch-console/pkg/api/types"
)

// Window is the number of page links on each side of the current page.
const Window = 5

type Link struct {
	Number  int
	Current bool
}

type Paginator struct {
	// Info is a summary line of the listing.
	Info string

	// Links are links to pages near the current page. It is empty for a single page.
	Links []Link

	First int
	Last  int
}

// HasLinks is true when the listing spans more than one page.
func (p Paginator) HasLinks() bool {
	return len(p.Links) > 0
}

// New lays out links for the page.
func New[T any](page types.Page[T]) Paginator {
	p := Paginator{
		Info: fmt.Sprintf(
			"Total %d pages and %d items / Showing %d items per page",
			page.TotalPages, page.TotalElements, page.NumberOfElements,
		),
		Links: []Link{},
		First: 0,
		Last:  max(page.TotalPages-1, 0),
	}

	if page.First && page.Last {
		return p
	}

	lo := max(0, page.Number-Window)
	hi := min(page.TotalPages-1, page.Number+Window)
	for n := lo; n <= hi; n++ {
		p.Links = append(p.Links, Link{Number: n, Current: n == page.Number})
	}
	return p
}
