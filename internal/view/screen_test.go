package view

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/starford/vetdesk/internal/filter"
)

func records(n int) []filter.Record {
	out := make([]filter.Record, n)
	for i := range out {
		kind := "Cat"
		if i%2 == 0 {
			kind = "Dog"
		}
		out[i] = filter.Record{"id": i + 1, "name": fmt.Sprintf("pet-%02d", i+1), "type": kind}
	}
	return out
}

func visibleIDs(s Snapshot[filter.Record]) []int {
	var out []int
	for _, r := range s.Items {
		out = append(out, r["id"].(int))
	}
	return out
}

func TestScreenPagingAndFilterReset(t *testing.T) {
	s := New[filter.Record](10, 5)
	s.Load(records(23))

	if !s.ChangePage(3) {
		t.Fatal("ChangePage(3) rejected")
	}
	snap := s.Snapshot()
	if !reflect.DeepEqual(visibleIDs(snap), []int{21, 22, 23}) {
		t.Errorf("page 3 = %v", visibleIDs(snap))
	}
	if snap.TotalPages != 3 || !reflect.DeepEqual(snap.Pages, []int{1, 2, 3}) {
		t.Errorf("totalPages = %d, pages = %v", snap.TotalPages, snap.Pages)
	}
	if s.ChangePage(4) {
		t.Error("ChangePage(4) accepted")
	}

	var spec filter.Spec
	spec.Set("type", filter.Equals("Dog"))
	s.ApplyFilters(spec)
	snap = s.Snapshot()
	if snap.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d after ApplyFilters, want 1", snap.CurrentPage)
	}
	if snap.TotalItems != 12 {
		t.Errorf("TotalItems = %d, want 12", snap.TotalItems)
	}

	s.ClearFilters()
	if got := s.Snapshot().TotalItems; got != 23 {
		t.Errorf("TotalItems = %d after ClearFilters, want 23", got)
	}
}

func TestScreenReloadClampsPage(t *testing.T) {
	s := New[filter.Record](10, 5)
	s.Load(records(30))
	s.ChangePage(3)
	s.Load(records(5))
	if got := s.Snapshot().CurrentPage; got != 1 {
		t.Errorf("CurrentPage = %d, want 1", got)
	}
}

func TestScreenEmpty(t *testing.T) {
	snap := New[filter.Record](10, 5).Snapshot()
	if snap.TotalPages != 1 || len(snap.Items) != 0 || !reflect.DeepEqual(snap.Pages, []int{1}) {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestScreenSelect(t *testing.T) {
	s := New[filter.Record](10, 5)
	s.Load(records(5))

	var spec filter.Spec
	spec.Set("type", filter.Equals("Dog"))
	s.ApplyFilters(spec)

	// Record 2 is a cat; selection ignores the filter.
	if !s.Select(2) {
		t.Fatal("Select(2) = false")
	}
	if sel := s.Snapshot().Selected; sel == nil || (*sel)["id"] != 2 {
		t.Errorf("selected = %v", sel)
	}
	if s.Select(99) {
		t.Error("Select(99) = true")
	}
	if s.Snapshot().Selected != nil {
		t.Error("failed Select should clear the selection")
	}

	s.Select(1)
	s.Deselect()
	if s.Snapshot().Selected != nil {
		t.Error("Deselect left a selection")
	}
	s.Select(1)
	s.Load(records(3))
	if s.Snapshot().Selected != nil {
		t.Error("Load should clear the selection")
	}
}

func TestSnapshotJSON(t *testing.T) {
	snap := List(records(3), filter.Spec{}, 1, 2, 5, 0)
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	_ = json.Unmarshal(data, &decoded)
	for _, k := range []string{"items", "currentPage", "pageSize", "totalItems", "totalPages", "pages"} {
		if _, ok := decoded[k]; !ok {
			t.Errorf("missing key %q in %s", k, data)
		}
	}
	if _, ok := decoded["selected"]; ok {
		t.Errorf("selected should be omitted when empty: %s", data)
	}
}

func TestListOutOfRangePage(t *testing.T) {
	snap := List(records(5), filter.Spec{}, 9, 2, 5, 0)
	if snap.CurrentPage != 1 || !reflect.DeepEqual(visibleIDs(snap), []int{1, 2}) {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestListSelected(t *testing.T) {
	snap := List(records(5), filter.Spec{}, 1, 2, 5, 4)
	if snap.Selected == nil || (*snap.Selected)["id"] != 4 {
		t.Errorf("selected = %v", snap.Selected)
	}
}
