package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"eventbooking/internal/domain"
)

// Event listing pages are rendered as a card grid in rows of three.
const (
	DefaultPage          = 1
	DefaultEventPageSize = 12
	MaxEventPageSize     = 48
)

// ParseEventListQuery reads page, page_size, tag and mode from the query string of
// GET /events. Missing or malformed paging values fall back to the defaults and
// page_size is capped at MaxEventPageSize. Empty filters match every event.
func ParseEventListQuery(r *http.Request) (domain.EventFilter, domain.PaginationParams) {
	q := r.URL.Query()
	params := domain.PaginationParams{
		Page:     positiveInt(q.Get("page"), DefaultPage),
		PageSize: min(positiveInt(q.Get("page_size"), DefaultEventPageSize), MaxEventPageSize),
	}
	filter := domain.EventFilter{
		Tag:  strings.TrimSpace(q.Get("tag")),
		Mode: strings.TrimSpace(q.Get("mode")),
	}
	return filter, params
}

func positiveInt(s string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 1 {
		return v
	}
	return fallback
}

// PaginationMeta describes the page of events returned alongside a listing.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// NewPaginationMeta builds the metadata for a page of an event listing with total
// matching events.
func NewPaginationMeta(params domain.PaginationParams, total int) PaginationMeta {
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = (total + params.PageSize - 1) / params.PageSize
	}
	return PaginationMeta{
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    params.Page < totalPages,
	}
}
