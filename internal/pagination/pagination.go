// Package pagination partitions ordered result sets into fixed-size pages.
package pagination

import "strconv"

// DefaultPageSize is the number of items per listing page.
const DefaultPageSize = 10

// Page describes one bounded slice of a larger result set. Offset and Size
// are ready to feed into a LIMIT/OFFSET query for the matching items.
type Page struct {
	Number     int  `json:"number"`
	Size       int  `json:"size"`
	Offset     int  `json:"-"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_previous"`
}

// Resolve parses the requested page number and clamps it to the valid range
// for totalItems at DefaultPageSize. A missing, malformed or below-range
// request resolves to the first page; an above-range request resolves to the
// last. An empty result set still yields page 1 of 1.
func Resolve(requested string, totalItems int) Page {
	return ResolveSize(requested, totalItems, DefaultPageSize)
}

// ResolveSize is Resolve with an explicit page size.
func ResolveSize(requested string, totalItems, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(requested)
	if err != nil || number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		Size:       size,
		Offset:     (number - 1) * size,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}
