package helpers

import (
	"net/http"
	"net/url"
	"strconv"

	"eventbooking/internal/domain"
)

// ParseEventPage reads page and page_size from the query string. Missing or
// malformed values fall back to the defaults of domain.NewEventPage, which
// also applies the page size cap.
func ParseEventPage(r *http.Request) domain.EventPage {
	q := r.URL.Query()
	return domain.NewEventPage(queryInt(q, "page"), queryInt(q, "page_size"))
}

func queryInt(q url.Values, key string) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0
	}
	return v
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta describes the page actually served out of total events.
func NewPaginationMeta(p domain.EventPage, total int) PaginationMeta {
	p = domain.NewEventPage(p.Page, p.PageSize)
	return PaginationMeta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}
}
