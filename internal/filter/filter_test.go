package filter

import (
	"math"
	"reflect"
	"testing"
)

func pets() []Record {
	return []Record{
		{"id": 1, "name": "Rex", "type": "Dog", "age": 3},
		{"id": 2, "name": "Tom", "type": "Cat", "age": 5},
		{"id": 3, "name": "Fido", "type": "Dog", "age": 7},
	}
}

func ids(items []Record) []int {
	out := make([]int, 0, len(items))
	for _, r := range items {
		out = append(out, r["id"].(int))
	}
	return out
}

func TestEvaluateDogScenario(t *testing.T) {
	var spec Spec
	spec.Set("type", Equals("Dog"))
	spec.Set("age", Range(Bound(4), nil))

	got := ids(Evaluate(pets(), spec))
	if !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("ids = %v, want [3]", got)
	}
}

func TestEvaluateEmptySpecIsIdentity(t *testing.T) {
	got := ids(Evaluate(pets(), Spec{}))
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("ids = %v, want [1 2 3]", got)
	}

	// Unset constraint values behave like absent ones.
	var spec Spec
	spec.Set("type", Equals(""))
	spec.Set("name", Contains(""))
	spec.Set("age", Range(nil, nil))
	spec.Set("born", DateRange("", ""))
	if !spec.IsEmpty() {
		t.Error("spec with only unset constraints should be empty")
	}
	got = ids(Evaluate(pets(), spec))
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("ids = %v, want [1 2 3]", got)
	}
}

func TestEvaluateIdempotentAndOrdered(t *testing.T) {
	var spec Spec
	spec.Set("type", Equals("Dog"))
	once := Evaluate(pets(), spec)
	twice := Evaluate(once, spec)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Errorf("evaluate not idempotent: %v vs %v", ids(once), ids(twice))
	}
	if !reflect.DeepEqual(ids(once), []int{1, 3}) {
		t.Errorf("ids = %v, want [1 3]", ids(once))
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	in := pets()
	var spec Spec
	spec.Set("type", Equals("Cat"))
	_ = Evaluate(in, spec)
	if len(in) != 3 || in[0]["name"] != "Rex" {
		t.Errorf("input mutated: %v", in)
	}
}

func TestContainsIsCaseInsensitive(t *testing.T) {
	var spec Spec
	spec.Set("name", Contains("FI"))
	got := ids(Evaluate(pets(), spec))
	if !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("ids = %v, want [3]", got)
	}
}

func TestEqualsIsCaseSensitive(t *testing.T) {
	var spec Spec
	spec.Set("type", Equals("dog"))
	if got := Evaluate(pets(), spec); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestEqualsNumberAndBool(t *testing.T) {
	items := []Record{
		{"id": 1, "age": 3, "active": true},
		{"id": 2, "age": "3", "active": "true"},
		{"id": 3, "age": 4, "active": false},
	}
	var spec Spec
	spec.Set("age", Equals(3.0))
	if got := ids(Evaluate(items, spec)); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("numeric equals ids = %v, want [1 2]", got)
	}

	spec = Spec{}
	spec.Set("active", Equals(true))
	if got := ids(Evaluate(items, spec)); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("bool equals ids = %v, want [1]", got)
	}
}

func TestRangeMissingValueNeverMatches(t *testing.T) {
	items := []Record{
		{"id": 1, "age": 2},
		{"id": 2},
		{"id": 3, "age": nil},
		{"id": 4, "age": true},
		{"id": 5, "age": "old"},
	}
	var spec Spec
	spec.Set("age", Range(nil, Bound(10)))
	if got := ids(Evaluate(items, spec)); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("ids = %v, want [1]", got)
	}
}

func TestRangeBoundsInclusive(t *testing.T) {
	var spec Spec
	spec.Set("age", Range(Bound(3), Bound(5)))
	if got := ids(Evaluate(pets(), spec)); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", got)
	}
}

func TestRangeRejectsNonFiniteValues(t *testing.T) {
	items := []Record{
		{"id": 1, "age": "NaN"},
		{"id": 2, "age": 3},
		{"id": 3, "age": math.Inf(1)},
		{"id": 4, "age": math.NaN()},
	}
	var spec Spec
	spec.Set("age", Range(Bound(1), Bound(5)))
	if got := ids(Evaluate(items, spec)); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("ids = %v, want [2]", got)
	}

	spec = Spec{}
	spec.Set("age", Range(Bound(math.NaN()), nil))
	if !spec.IsEmpty() {
		t.Error("NaN bound should leave spec empty")
	}
}

func TestDateRange(t *testing.T) {
	items := []Record{
		{"id": 1, "date": "2024-01-10"},
		{"id": 2, "date": "2024-01-15T18:30:00Z"},
		{"id": 3, "date": "2024-01-20"},
		{"id": 4, "date": "not a date"},
		{"id": 5},
	}
	var spec Spec
	spec.Set("date", DateRange("2024-01-10", "2024-01-15"))
	if got := ids(Evaluate(items, spec)); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", got)
	}

	spec = Spec{}
	spec.Set("date", DateRange("2024-01-15T12:00:00Z", ""))
	if got := ids(Evaluate(items, spec)); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("ids = %v, want [2 3]", got)
	}
}

func TestMalformedBoundIsUnconstrained(t *testing.T) {
	items := []Record{{"id": 1, "date": "2024-01-10"}, {"id": 2}}
	var spec Spec
	spec.Set("date", DateRange("yesterday", ""))
	if !spec.IsEmpty() {
		t.Error("malformed bound should leave spec empty")
	}
	if got := ids(Evaluate(items, spec)); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", got)
	}
}

func TestSearchAcrossFields(t *testing.T) {
	items := []Record{
		{"id": 1, "name": "Anna", "petname": "Buddy"},
		{"id": 2, "name": "Bob", "petname": "Max"},
		{"id": 3, "name": "Carl"},
	}
	spec := Spec{Search: "bud", SearchFields: []string{"name", "petname"}}
	if got := ids(Evaluate(items, spec)); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("ids = %v, want [1]", got)
	}

	spec.Search = "car"
	if got := ids(Evaluate(items, spec)); !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("ids = %v, want [3]", got)
	}
}

func TestSearchAndFieldsCombine(t *testing.T) {
	spec := Spec{Search: "o", SearchFields: []string{"name"}}
	spec.Set("type", Equals("Dog"))
	// Rex has no "o"; Fido has "o"; Tom is a cat.
	if got := ids(Evaluate(pets(), spec)); !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("ids = %v, want [3]", got)
	}
}
