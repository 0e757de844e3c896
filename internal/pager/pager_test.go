package pager

import (
	"reflect"
	"testing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestTwentyThreeItemsPageSizeTen(t *testing.T) {
	items := seq(23)
	if got := TotalPages(len(items), 10); got != 3 {
		t.Fatalf("TotalPages = %d, want 3", got)
	}
	if got := Paginate(items, 3, 10); !reflect.DeepEqual(got, []int{21, 22, 23}) {
		t.Errorf("page 3 = %v, want [21 22 23]", got)
	}

	s := NewState(10)
	s.SetTotal(len(items))
	if !s.ChangePage(3) {
		t.Fatal("ChangePage(3) rejected")
	}
	if s.ChangePage(4) {
		t.Error("ChangePage(4) accepted")
	}
	if s.CurrentPage != 3 {
		t.Errorf("CurrentPage = %d, want 3", s.CurrentPage)
	}
	if s.ChangePage(0) {
		t.Error("ChangePage(0) accepted")
	}
}

func TestPaginateConcatenationIsIdentity(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 37} {
		items := seq(n)
		var all []int
		for p := 1; p <= TotalPages(n, 10); p++ {
			page := Paginate(items, p, 10)
			if len(page) > 10 {
				t.Fatalf("n=%d page %d has %d items", n, p, len(page))
			}
			all = append(all, page...)
		}
		if n == 0 {
			if len(all) != 0 {
				t.Errorf("n=0 yielded %v", all)
			}
			continue
		}
		if !reflect.DeepEqual(all, items) {
			t.Errorf("n=%d concat = %v", n, all)
		}
	}
}

func TestPaginatePastEnd(t *testing.T) {
	if got := Paginate(seq(5), 2, 10); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if got := Paginate(seq(5), 0, 10); len(got) != 0 {
		t.Errorf("page 0 len = %d, want 0", len(got))
	}
}

func TestTotalPagesEmpty(t *testing.T) {
	if got := TotalPages(0, 10); got != 1 {
		t.Errorf("TotalPages(0) = %d, want 1", got)
	}
}

func TestSetTotalClampsCurrentPage(t *testing.T) {
	s := NewState(10)
	s.SetTotal(50)
	s.ChangePage(5)
	s.SetTotal(12)
	if s.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", s.CurrentPage)
	}
	s.SetTotal(0)
	if s.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", s.CurrentPage)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{2, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{9, 10, []int{6, 7, 8, 9, 10}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{42, 10, []int{6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		got := Window(tt.current, tt.total, DefaultWindow)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Window(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
		}
	}
}
