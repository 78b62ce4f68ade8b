package web

import "strconv"

// PageSizes are the rows-per-page choices offered on the dashboard.
var PageSizes = []int{5, 10, 20, 30, 50}

const DefaultPageSize = 10

// Pager is the dashboard's 1-based pagination state.
type Pager struct {
	Page       int
	PageSize   int
	TotalPages int
}

// NewPager normalizes the inputs: page is at least 1, an unknown page size
// falls back to DefaultPageSize and fewer than one total page counts as one.
func NewPager(page, pageSize, totalPages int) Pager {
	if page < 1 {
		page = 1
	}
	if !allowedPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	if totalPages < 1 {
		totalPages = 1
	}
	return Pager{Page: page, PageSize: pageSize, TotalPages: totalPages}
}

// WithPageSize switches the page size and goes back to the first page.
func (p Pager) WithPageSize(size int) Pager {
	return NewPager(1, size, p.TotalPages)
}

// WithTotal records the page count reported by the backend.
func (p Pager) WithTotal(totalPages int) Pager {
	return NewPager(p.Page, p.PageSize, totalPages)
}

func (p Pager) HasPrev() bool { return p.Page > 1 }
func (p Pager) HasNext() bool { return p.Page < p.TotalPages }

func (p Pager) Prev() int { return p.clamp(p.Page - 1) }
func (p Pager) Next() int { return p.clamp(p.Page + 1) }

func (p Pager) clamp(page int) int {
	return max(1, min(p.TotalPages, page))
}

// RowNumber is the 1-based table number of the i-th row on this page.
func (p Pager) RowNumber(i int) int {
	return (p.Page-1)*p.PageSize + i + 1
}

// URL links to the given page keeping the current size.
func (p Pager) URL(page int) string {
	return "/dashboard?page=" + strconv.Itoa(page) + "&per_page=" + strconv.Itoa(p.PageSize)
}

func allowedPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}
