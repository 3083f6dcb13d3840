package catalog

import "strconv"

// Pagination defaults. Per-page choices mirror the browse page selector.
const (
	DefaultPerPage = 10
	Ellipsis       = "…"
)

// AllowedPerPage are the page sizes the browse page offers.
var AllowedPerPage = []int{5, 10, 15, 20, 50}

// NormalizePerPage clamps a requested page size to an allowed value,
// falling back to the default.
func NormalizePerPage(perPage int) int {
	for _, n := range AllowedPerPage {
		if perPage == n {
			return perPage
		}
	}
	return DefaultPerPage
}

// Page describes one page of a filtered result set.
type Page struct {
	Number     int // 1-indexed current page
	PerPage    int
	Total      int // total filtered items
	TotalPages int
	Start      int // index of first item on the page
	End        int // exclusive end index
}

// Paginate computes the slice bounds for page number (1-indexed) of a
// total-item result set. Page count is ceil(total/perPage); a page past the
// end clamps to the last page, and anything below 1 clamps to 1.
func Paginate(total, number, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Number:     number,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// Window returns the windowed page-number display for the current page:
// always the first and last page, the current page and its immediate
// neighbors, with each skipped run collapsed into a single ellipsis marker.
func (p Page) Window() []string {
	if p.TotalPages <= 1 {
		return []string{"1"}
	}

	window := make([]string, 0, 9)
	for page := 1; page <= p.TotalPages; page++ {
		switch {
		case page == 1 || page == p.TotalPages || (page >= p.Number-1 && page <= p.Number+1):
			window = append(window, strconv.Itoa(page))
		case page == p.Number-2 || page == p.Number+2:
			window = append(window, Ellipsis)
		}
	}
	return window
}
