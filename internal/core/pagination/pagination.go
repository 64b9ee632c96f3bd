package pagination

import "strings"

// DefaultPageSize matches the fixed page size used by every management screen.
const DefaultPageSize = 10

// PageQuery describes one page fetch: page number, page size and an optional
// search term. Zero values are normalized rather than rejected so a query can
// be built straight from URL parameters.
type PageQuery struct {
	Page     int
	PageSize int
	Search   string
}

// NewPageQuery normalizes page/pageSize and trims the search term. A page
// below 1 becomes 1, a non-positive size becomes DefaultPageSize.
// Whitespace-only search means no filter.
func NewPageQuery(page, pageSize int, search string) PageQuery {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return PageQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
	}
}

// Offset returns the first row index of the page window.
func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// HasSearch reports whether a filter applies.
func (q PageQuery) HasSearch() bool {
	return q.Search != ""
}

// SearchPattern returns the lowercased search term for use inside a
// LOWER(col) LIKE '%...%' filter.
func (q PageQuery) SearchPattern() string {
	return strings.ToLower(q.Search)
}

// PageResult is one page of rows plus the exact total row count and the
// derived page count.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalRows  int64 `json:"total_rows"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResult derives the page count from the exact row total. The page
// count is never below 1 so an empty result still addresses page 1.
func NewPageResult[T any](items []T, query PageQuery, totalRows int64) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:      items,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalRows:  totalRows,
		TotalPages: TotalPages(totalRows, query.PageSize),
	}
}

// TotalPages computes max(1, ceil(totalRows/pageSize)).
func TotalPages(totalRows int64, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := int((totalRows + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		return 1
	}
	return pages
}
