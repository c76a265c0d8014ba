package resource

import (
	"slices"
	"strconv"

	"github.com/fanzhongxing/jcc-web/apiclient"
)

// Param is one named input value of a query
type Param struct {
	Name  string
	Value string
}

// Query is a snapshot of a hook's inputs. Params keep their insertion
// order, which is the order they contribute to the cache key.
type Query struct {
	params []Param
	page   Page
}

// With returns a copy of q with an extra param
func (q Query) With(name, value string) Query {
	q.params = append(slices.Clone(q.params), Param{Name: name, Value: value})
	return q
}

// WithPage returns a copy of q carrying page and the page/size params
func (q Query) WithPage(page, size int) Query {
	p := Page{Page: page, Size: size}.Normalize()
	q.page = p
	return q.With("page", strconv.Itoa(p.Page)).With("size", strconv.Itoa(p.Size))
}

// Page returns the pagination state
func (q Query) Page() Page {
	return q.page.Normalize()
}

// Key derives the cache key for resource. Empty values take part as the
// empty placeholder.
func (q Query) Key(resource string) CacheKey {
	fields := make([]string, len(q.params))
	for i, p := range q.params {
		fields[i] = p.Value
	}
	return DeriveKey(resource, fields...)
}

// Params builds request params. Empty values are omitted for every
// resource rather than sent as empty strings.
func (q Query) Params() apiclient.Params {
	params := make(apiclient.Params, len(q.params))
	for _, p := range q.params {
		if p.Value == "" {
			continue
		}
		params[p.Name] = p.Value
	}
	return params
}
