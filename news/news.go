// Package news exposes the paginated news ("information") listing.
package news

import (
	"github.com/fanzhongxing/jcc-web/apiclient"
	"github.com/fanzhongxing/jcc-web/reactive"
	"github.com/fanzhongxing/jcc-web/resource"
)

// Endpoint details
const (
	Resource = "news"
	ListPath = "/information/list"
)

// Item is one news article
type Item struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Time    string `json:"time"`
	Content string `json:"content"`
}

// Filters are the observable inputs of a news listing
type Filters struct {
	Page *reactive.Value[int]
	Size *reactive.Value[int]
}

// NewFilters creates filters for page and size
func NewFilters(page, size int) Filters {
	return Filters{
		Page: reactive.NewValue(page),
		Size: reactive.NewValue(size),
	}
}

// Query snapshots the filters
func (f Filters) Query() resource.Query {
	return resource.Query{}.WithPage(f.Page.Get(), f.Size.Get())
}

// Definition returns the resource definition bound to f
func Definition(f Filters) resource.Definition {
	return resource.Definition{
		Resource: Resource,
		Path:     ListPath,
		Inputs:   []reactive.Input{f.Page, f.Size},
		Query:    f.Query,
	}
}

// New creates a news hook. Call Start on it to fetch.
func New(client apiclient.Doer, f Filters, opts ...resource.Option) *resource.Paginated[Item] {
	return resource.NewPaginated[Item](client, Definition(f), opts...)
}
