// Package pagination implements limit/offset pagination of list endpoints.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/emilythestrangee/yatube/backend/internal/repository"
)

const (
	LimitParam  = "limit"
	OffsetParam = "offset"
)

// Params is the window requested by a client. When Enabled is false the
// whole collection is returned as a bare array.
type Params struct {
	Enabled bool
	Limit   int
	Offset  int
}

func (p Params) Page() repository.Page {
	if !p.Enabled {
		return repository.Page{}
	}
	return repository.Page{Limit: p.Limit, Offset: p.Offset}
}

// Envelope is the paginated response body.
type Envelope[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// FromQuery reads limit and offset. Missing or malformed values fall back to
// defaultLimit and 0; limit is capped at maxLimit when maxLimit > 0.
func FromQuery(q url.Values, defaultLimit, maxLimit int) Params {
	limit := defaultLimit
	if n, err := strconv.Atoi(q.Get(LimitParam)); err == nil && n > 0 {
		limit = n
	}
	if limit <= 0 {
		return Params{}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	if n, err := strconv.Atoi(q.Get(OffsetParam)); err == nil && n > 0 {
		offset = n
	}
	return Params{Enabled: true, Limit: limit, Offset: offset}
}

// NewEnvelope wraps one page of results with absolute links to its neighbours.
func NewEnvelope[T any](r *http.Request, p Params, count int64, results []T) Envelope[T] {
	if results == nil {
		results = []T{}
	}
	env := Envelope[T]{Count: count, Results: results}

	if int64(p.Offset+p.Limit) < count {
		next := link(r, p.Limit, p.Offset+p.Limit)
		env.Next = &next
	}
	if p.Offset > 0 {
		prev := link(r, p.Limit, p.Offset-p.Limit)
		env.Previous = &prev
	}
	return env
}

func link(r *http.Request, limit, offset int) string {
	u := url.URL{
		Scheme: "http",
		Host:   r.Host,
		Path:   r.URL.Path,
	}
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}

	q := r.URL.Query()
	q.Set(LimitParam, strconv.Itoa(limit))
	if offset > 0 {
		q.Set(OffsetParam, strconv.Itoa(offset))
	} else {
		q.Del(OffsetParam)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
