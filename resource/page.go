package resource

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// DefaultPageSize is used when a page size below one is requested
const DefaultPageSize = 10

// Page is the pagination state of a list request
type Page struct {
	Page int
	Size int
}

// Normalize clamps the page to one and replaces an invalid size with
// DefaultPageSize.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	return p
}

// TotalPages returns max(1, ceil(total/size))
func (p Page) TotalPages(total int) int {
	p = p.Normalize()
	if total <= 0 {
		return 1
	}
	return max(1, (total+p.Size-1)/p.Size)
}

// Total is a non-negative item count that tolerates numeric strings,
// floats and null in the raw payload.
type Total int

// UnmarshalJSON coerces any JSON value into a count; unusable values
// become zero rather than failing the whole payload.
func (t *Total) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*t = 0
		return nil
	}
	*t = Total(coerceTotal(v))
	return nil
}

func coerceTotal(v any) int {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(f))
}

// RawList is the {list, total} payload every list endpoint returns
type RawList[T any] struct {
	List  []T   `json:"list"`
	Total Total `json:"total"`
}

// ListViewModel is the page-shaped projection of a RawList. A new value is
// built for every successful fetch; existing values are never modified.
type ListViewModel[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalPages int `json:"totalPages"`
}

// HasNext reports whether a page after this one exists
func (v ListViewModel[T]) HasNext() bool {
	return v.Page < v.TotalPages
}

// HasPrevious reports whether a page before this one exists
func (v ListViewModel[T]) HasPrevious() bool {
	return v.Page > 1
}

// Transform reshapes a raw payload into a view model for page.
// A nil payload or list yields an empty, non-nil item slice.
func Transform[T any](raw *RawList[T], page Page) ListViewModel[T] {
	page = page.Normalize()

	var (
		items []T
		total int
	)
	if raw != nil {
		items = raw.List
		total = max(0, int(raw.Total))
	}
	if items == nil {
		items = []T{}
	}

	return ListViewModel[T]{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		Size:       page.Size,
		TotalPages: page.TotalPages(total),
	}
}
