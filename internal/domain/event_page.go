package domain

// Page sizes for the public event listing.
const (
	DefaultEventPageSize = 20
	MaxEventPageSize     = 50

	// maxEventPage keeps the row offset well inside the range Postgres accepts.
	maxEventPage = 1_000_000
)

// EventPage selects one page of the date-ordered event listing.
type EventPage struct {
	Page     int
	PageSize int
}

// NewEventPage normalizes a requested page. Pages start at 1, a non-positive
// size falls back to DefaultEventPageSize and larger sizes are capped at
// MaxEventPageSize.
func NewEventPage(page, size int) EventPage {
	switch {
	case page < 1:
		page = 1
	case page > maxEventPage:
		page = maxEventPage
	}
	switch {
	case size < 1:
		size = DefaultEventPageSize
	case size > MaxEventPageSize:
		size = MaxEventPageSize
	}
	return EventPage{Page: page, PageSize: size}
}

// Limit is the row limit for the page.
func (p EventPage) Limit() int {
	return NewEventPage(p.Page, p.PageSize).PageSize
}

// Offset is the number of events before the page.
func (p EventPage) Offset() int {
	n := NewEventPage(p.Page, p.PageSize)
	return (n.Page - 1) * n.PageSize
}

// TotalPages is how many pages of this size hold total events.
func (p EventPage) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	size := p.Limit()
	return (total + size - 1) / size
}
