package utils

import "strconv"

// Pagination defaults shared by listing endpoints
const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// ParsePage reads page and limit query values, falling back to defaults on bad input
func ParsePage(pageStr, limitStr string, defaultLimit int) (page, limit int) {
	page, limit = DefaultPage, defaultLimit
	if v, err := strconv.Atoi(pageStr); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
		limit = min(v, MaxLimit)
	}
	return page, limit
}

// Offset returns the number of rows to skip for a page
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages is the ceiling of total/limit
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// PageNumbers lists the page links to render around current.
// The first and last pages are always present, 0 marks an elided gap.
func PageNumbers(current, totalPages, siblings int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	if siblings < 0 {
		siblings = 0
	}
	current = max(1, min(current, totalPages))
	start := max(2, current-siblings)
	end := min(totalPages-1, current+siblings)

	pages := []int{1}
	switch {
	case start == 3:
		pages = append(pages, 2) // A one-page gap is shown as the page itself
	case start > 3:
		pages = append(pages, 0)
	}
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	switch {
	case end == totalPages-2:
		pages = append(pages, totalPages-1)
	case end < totalPages-2:
		pages = append(pages, 0)
	}
	if totalPages > 1 {
		pages = append(pages, totalPages)
	}
	return pages
}
