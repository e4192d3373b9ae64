package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Pagination holds pagination info and computed metadata.
//
// URL: /businesses?page=2
// → ParsePagination(q, 12) → Pagination{Limit:12, Page:2, Offset:12}
// → SQL: SELECT ... LIMIT 12 OFFSET 12
// → DB returns data + total count
// → ComputeMeta(total) → fills TotalPages, HasNext, etc.
type Pagination struct {
	Limit      int  `json:"limit"`       // items per page
	Offset     int  `json:"offset"`      // SQL OFFSET value
	Page       int  `json:"page"`        // current page number
	Total      int  `json:"total"`       // total items in database
	TotalPages int  `json:"total_pages"` // total pages available
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// maxPage caps the page number so the derived OFFSET cannot overflow into a
// negative value the database would reject.
const maxPage = 1_000_000

// ParsePagination parses ?page=... safely against a fixed page size.
// Careful, keys are case sensitive.
func ParsePagination(q url.Values, limit int) Pagination {
	p := Pagination{
		Limit: limit,
		Page:  1,
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			if page > maxPage {
				page = maxPage
			}
			p.Page = page
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta updates pagination after fetching total count.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}
