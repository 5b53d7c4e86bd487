// Package pagination turns a page request and a record count into the page
// descriptor rendered alongside list responses.
package pagination

import "math"

// Page describes one page of an ordered result set. PrevPage and NextPage
// are nil when there is no such page.
type Page struct {
	Page         int  `json:"page"`
	PerPage      int  `json:"per_page"`
	TotalRecords int  `json:"total_records"`
	TotalPages   int  `json:"total_pages"`
	PrevPage     *int `json:"prev_page"`
	NextPage     *int `json:"next_page"`
}

// Paginate is pure arithmetic: page and perPage pass through unclamped.
func Paginate(page, perPage, totalRecords int) Page {
	p := Page{
		Page:         page,
		PerPage:      perPage,
		TotalRecords: totalRecords,
		TotalPages:   totalPages(perPage, totalRecords),
	}
	if page > 1 {
		prev := page - 1
		p.PrevPage = &prev
	}
	if page < p.TotalPages {
		next := page + 1
		p.NextPage = &next
	}
	return p
}

// Offset is the number of records to skip to reach page. It saturates at
// math.MaxInt instead of overflowing, so absurd pages read past the end.
func Offset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

func totalPages(perPage, totalRecords int) int {
	if perPage <= 0 || totalRecords <= 0 {
		return 0
	}
	return (totalRecords + perPage - 1) / perPage
}
