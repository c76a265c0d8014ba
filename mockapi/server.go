// Package mockapi serves an in-memory imitation of the jcc backend. It is
// used by tests and by the mock-server command for local development.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fanzhongxing/jcc-web/lineups"
	"github.com/fanzhongxing/jcc-web/news"
	"github.com/fanzhongxing/jcc-web/seasons"
)

// Fixtures is the data the mock backend serves
type Fixtures struct {
	Lineups []lineups.Lineup
	News    []news.Item
	Seasons []seasons.Season

	// Fail, when set, makes every endpoint answer with a failure envelope
	// carrying this message
	Fail string
	// StringTotals sends totals as numeric strings
	StringTotals bool
}

type envelope struct {
	Code int     `json:"code"`
	Data any     `json:"data"`
	Msg  *string `json:"msg"`
}

type listData struct {
	List  any `json:"list"`
	Total any `json:"total"`
}

type server struct {
	fixtures Fixtures
	logger   zerolog.Logger
}

// NewHandler returns the mock backend routes under /api
func NewHandler(fixtures Fixtures, logger zerolog.Logger) http.Handler {
	s := &server{fixtures: fixtures, logger: logger}

	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/lineup/list", s.listLineups)
		r.Get("/information/list", s.listNews)
		r.Get("/season/list", s.listSeasons)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Str("request_id", r.Header.Get("X-Request-Id")).
			Dur("elapsed", time.Since(start)).
			Msg("Mock API request")
	})
}

func (s *server) listLineups(w http.ResponseWriter, r *http.Request) {
	version := r.URL.Query().Get("version")
	name := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("name")))

	matched := make([]lineups.Lineup, 0, len(s.fixtures.Lineups))
	for _, l := range s.fixtures.Lineups {
		if version != "" && l.Version != version {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(l.Name), name) {
			continue
		}
		matched = append(matched, l)
	}

	page, size := pageParams(r)
	s.writeList(w, paginate(matched, page, size), len(matched))
}

func (s *server) listNews(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	s.writeList(w, paginate(s.fixtures.News, page, size), len(s.fixtures.News))
}

func (s *server) listSeasons(w http.ResponseWriter, r *http.Request) {
	s.writeList(w, s.fixtures.Seasons, len(s.fixtures.Seasons))
}

func (s *server) writeList(w http.ResponseWriter, list any, total int) {
	if s.fixtures.Fail != "" {
		msg := s.fixtures.Fail
		writeJSON(w, envelope{Code: http.StatusInternalServerError, Msg: &msg})
		return
	}

	var t any = total
	if s.fixtures.StringTotals {
		t = strconv.Itoa(total)
	}
	writeJSON(w, envelope{Code: http.StatusOK, Data: listData{List: list, Total: t}})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

// pageParams reads page and size, defaulting to 1 and 10
func pageParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 1 {
		size = 10
	}
	return page, size
}

func paginate[T any](items []T, page, size int) []T {
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}
