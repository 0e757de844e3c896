// Package pager slices filtered results into 1-based pages.
package pager

// DefaultWindow is the number of page links shown around the current page.
const DefaultWindow = 5

// Paginate returns items[(page-1)*size : page*size], clipped to the slice.
// A start past the end, a page below 1 or a non-positive size yields an
// empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size <= 0 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// TotalPages returns ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	return max(1, (n+size-1)/size)
}

// Window returns up to size consecutive page numbers centred on current
// and shifted to stay within [1, total].
func Window(current, total, size int) []int {
	if size <= 0 {
		size = DefaultWindow
	}
	total = max(1, total)
	current = min(max(1, current), total)

	start := max(1, current-size/2)
	end := min(total, start+size-1)
	if end-start+1 < size {
		start = max(1, end-size+1)
	}
	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}

// State is the pagination state of one list screen.
type State struct {
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
}

// NewState returns a State on page 1. A non-positive size becomes 10.
func NewState(size int) State {
	if size <= 0 {
		size = 10
	}
	return State{CurrentPage: 1, ItemsPerPage: size}
}

// TotalPages returns the page count for the current totals.
func (s State) TotalPages() int {
	return TotalPages(s.TotalItems, s.ItemsPerPage)
}

// SetTotal records a new item count and clamps the current page.
func (s *State) SetTotal(n int) {
	s.TotalItems = max(0, n)
	s.CurrentPage = min(max(1, s.CurrentPage), s.TotalPages())
}

// ChangePage moves to requested when 1 <= requested <= TotalPages and
// reports whether it did. Out-of-range requests leave the state unchanged.
func (s *State) ChangePage(requested int) bool {
	if requested < 1 || requested > s.TotalPages() {
		return false
	}
	s.CurrentPage = requested
	return true
}

// Reset returns to page 1.
func (s *State) Reset() {
	s.CurrentPage = 1
}
