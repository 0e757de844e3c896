package filter

import (
	"net/url"
	"reflect"
	"testing"
)

var petSchema = Schema{
	SearchParam:  "search",
	SearchFields: []string{"name", "breed"},
	Params: []Param{
		{Name: "type", Field: "type", Kind: Exact},
		{Name: "ageMin", Field: "age", Kind: AtLeast},
		{Name: "ageMax", Field: "age", Kind: AtMost},
		{Name: "isActive", Field: "isActive", Kind: Flag},
		{Name: "registeredFrom", Field: "registrationDate", Kind: After},
		{Name: "registeredTo", Field: "registrationDate", Kind: Before},
	},
}

func TestSchemaParse(t *testing.T) {
	q := url.Values{
		"search":        {" rex "},
		"type":          {"Dog"},
		"ageMin":        {"2"},
		"ageMax":        {"8"},
		"isActive":      {"true"},
		"registeredTo":  {"2024-05-01"},
		"unknownFilter": {"x"},
	}
	spec := petSchema.Parse(q)

	if spec.Search != "rex" {
		t.Errorf("Search = %q, want %q", spec.Search, "rex")
	}
	if got := spec.Fields["type"]; got.Kind != KindEquals || got.Value != "Dog" {
		t.Errorf("type = %+v", got)
	}
	age := spec.Fields["age"]
	if age.Kind != KindRange || *age.Min != 2 || *age.Max != 8 {
		t.Errorf("age = %+v", age)
	}
	if got := spec.Fields["isActive"]; got.Value != true {
		t.Errorf("isActive = %+v", got)
	}
	reg := spec.Fields["registrationDate"]
	if reg.Kind != KindDateRange || reg.From != "" || reg.To != "2024-05-01" {
		t.Errorf("registrationDate = %+v", reg)
	}
	if _, ok := spec.Fields["unknownFilter"]; ok {
		t.Error("unknown parameter should be ignored")
	}
}

func TestSchemaParseSkipsMalformed(t *testing.T) {
	spec := petSchema.Parse(url.Values{"ageMin": {"old"}, "ageMax": {"NaN"}, "isActive": {"maybe"}})
	if !spec.IsEmpty() {
		t.Errorf("spec = %+v, want empty", spec)
	}
}

func TestSchemaNames(t *testing.T) {
	got := petSchema.Names()
	want := []string{"search", "type", "ageMin", "ageMax", "isActive", "registeredFrom", "registeredTo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}
