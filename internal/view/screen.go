// Package view holds per-screen list state: loaded entities, the active
// filter, pagination and the selected record. A Screen is a plain value that changes
// only through its action methods, so it can be serialized or tested without
// any rendering layer.
package view

import (
	"github.com/starford/vetdesk/internal/filter"
	"github.com/starford/vetdesk/internal/pager"
)

// Screen is the state of one list screen over entities of type E.
type Screen[E filter.Entity] struct {
	items    []E
	filtered []E
	spec     filter.Spec
	page     pager.State
	window   int
	selected *E
}

// New returns an empty Screen with the given page size and page-link window.
func New[E filter.Entity](pageSize, window int) *Screen[E] {
	if window <= 0 {
		window = pager.DefaultWindow
	}
	return &Screen[E]{page: pager.NewState(pageSize), window: window}
}

// Load replaces the entity list, re-applies the current filter and clamps
// the current page. Any selection is cleared.
func (s *Screen[E]) Load(items []E) {
	s.items = items
	s.selected = nil
	s.refilter()
}

// ApplyFilters sets the filter and returns to page 1.
func (s *Screen[E]) ApplyFilters(spec filter.Spec) {
	s.spec = spec
	s.page.Reset()
	s.refilter()
}

// ClearFilters removes the filter and returns to page 1.
func (s *Screen[E]) ClearFilters() {
	s.ApplyFilters(filter.Spec{})
}

// ChangePage moves to page p if it exists and reports whether it did.
func (s *Screen[E]) ChangePage(p int) bool {
	return s.page.ChangePage(p)
}

// Select opens the loaded entity whose id field equals id, whether or not
// it passes the filter. It reports whether one was found.
func (s *Screen[E]) Select(id int) bool {
	var spec filter.Spec
	spec.Set("id", filter.Equals(id))
	found := filter.Evaluate(s.items, spec)
	if len(found) == 0 {
		s.selected = nil
		return false
	}
	s.selected = &found[0]
	return true
}

// Deselect closes the selected entity.
func (s *Screen[E]) Deselect() {
	s.selected = nil
}

// Filtered returns every entity matching the current filter.
func (s *Screen[E]) Filtered() []E {
	return s.filtered
}

// Visible returns the entities on the current page.
func (s *Screen[E]) Visible() []E {
	return pager.Paginate(s.filtered, s.page.CurrentPage, s.page.ItemsPerPage)
}

func (s *Screen[E]) refilter() {
	s.filtered = filter.Evaluate(s.items, s.spec)
	s.page.SetTotal(len(s.filtered))
}

// Snapshot is the serializable rendering of a Screen.
type Snapshot[E any] struct {
	Items       []E   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int   `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	Pages       []int `json:"pages"`
	Selected    *E    `json:"selected,omitempty"`
}

// Snapshot renders the current state.
func (s *Screen[E]) Snapshot() Snapshot[E] {
	return Snapshot[E]{
		Items:       s.Visible(),
		CurrentPage: s.page.CurrentPage,
		PageSize:    s.page.ItemsPerPage,
		TotalItems:  s.page.TotalItems,
		TotalPages:  s.page.TotalPages(),
		Pages:       pager.Window(s.page.CurrentPage, s.page.TotalPages(), s.window),
		Selected:    s.selected,
	}
}

// List is a one-shot helper: load items, filter, move to page and select the
// entity with id selected (0 selects nothing). Out-of-range pages leave the
// result on page 1.
func List[E filter.Entity](items []E, spec filter.Spec, page, pageSize, window, selected int) Snapshot[E] {
	s := New[E](pageSize, window)
	s.Load(items)
	s.ApplyFilters(spec)
	s.ChangePage(page)
	if selected > 0 {
		s.Select(selected)
	}
	return s.Snapshot()
}
