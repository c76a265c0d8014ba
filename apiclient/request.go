package apiclient

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cast"
)

// Request describes one outbound call. It is built fresh for every call and
// not modified afterwards.
type Request struct {
	Path   string
	Method string
	Params Params
}

// Params holds scalar query parameters. Nil values are omitted.
type Params map[string]any

// Values converts the params to url.Values
func (p Params) Values() url.Values {
	values := url.Values{}
	for name, value := range p {
		if value == nil {
			continue
		}
		s, err := cast.ToStringE(value)
		if err != nil {
			s = fmt.Sprint(value)
		}
		values.Set(name, s)
	}
	return values
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}
