// Package lineups exposes the paginated lineup listing.
package lineups

import (
	"strings"

	"github.com/fanzhongxing/jcc-web/apiclient"
	"github.com/fanzhongxing/jcc-web/reactive"
	"github.com/fanzhongxing/jcc-web/resource"
)

// Endpoint details
const (
	Resource = "lineups"
	ListPath = "/lineup/list"
)

// Stats are the aggregated play statistics of a lineup, as formatted text
type Stats struct {
	Pick string `json:"pick,omitempty"`
	Top4 string `json:"top4,omitempty"`
	Win  string `json:"win,omitempty"`
	Avg  string `json:"avg,omitempty"`
}

// Lineup is one team composition
type Lineup struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	FormationImage string `json:"formation_image"`
	Rating         string `json:"rating"`
	Difficulty     string `json:"difficulty"`
	Version        string `json:"version"`
	Code           string `json:"code"`
	Stats          *Stats `json:"stats,omitempty"`
}

// Filters are the observable inputs of a lineup listing
type Filters struct {
	Version *reactive.Value[string]
	Page    *reactive.Value[int]
	Size    *reactive.Value[int]
	Name    *reactive.Value[string]
}

// NewFilters creates filters with the given initial values
func NewFilters(version string, page, size int, name string) Filters {
	return Filters{
		Version: reactive.NewValue(version),
		Page:    reactive.NewValue(page),
		Size:    reactive.NewValue(size),
		Name:    reactive.NewValue(name),
	}
}

// Query snapshots the filters. The name filter is sent as "name" and
// omitted when blank.
func (f Filters) Query() resource.Query {
	return resource.Query{}.
		With("version", f.Version.Get()).
		WithPage(f.Page.Get(), f.Size.Get()).
		With("name", strings.TrimSpace(f.Name.Get()))
}

// Definition returns the resource definition bound to f
func Definition(f Filters) resource.Definition {
	return resource.Definition{
		Resource: Resource,
		Path:     ListPath,
		Inputs:   []reactive.Input{f.Version, f.Page, f.Size, f.Name},
		Query:    f.Query,
	}
}

// New creates a lineup hook. Call Start on it to fetch.
func New(client apiclient.Doer, f Filters, opts ...resource.Option) *resource.Paginated[Lineup] {
	return resource.NewPaginated[Lineup](client, Definition(f), opts...)
}
