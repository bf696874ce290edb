package shared

import (
	"net/http"
	"strconv"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Pagination carries list window parameters parsed from the query string.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit/offset with sane bounds.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{Limit: defaultLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Limit = v
		}
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			p.Offset = v
		}
	}
	return p
}
