package filter

import (
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

// ParamKind says how a query parameter becomes a constraint.
type ParamKind uint8

const (
	// Substring builds a Contains constraint.
	Substring ParamKind = iota
	// Exact builds a string Equals constraint.
	Exact
	// Flag builds a boolean Equals constraint.
	Flag
	// Number builds a numeric Equals constraint.
	Number
	// AtLeast sets the lower numeric bound.
	AtLeast
	// AtMost sets the upper numeric bound.
	AtMost
	// After sets the lower date bound.
	After
	// Before sets the upper date bound.
	Before
)

// Param binds one query parameter to a field.
type Param struct {
	Name  string
	Field string
	Kind  ParamKind
}

// Schema describes the filterable query parameters of one list screen.
type Schema struct {
	SearchParam  string
	SearchFields []string
	Params       []Param
}

// Parse builds a Spec from query values. Unparsable values are skipped.
func (s Schema) Parse(q url.Values) Spec {
	spec := Spec{SearchFields: s.SearchFields}
	if s.SearchParam != "" {
		spec.Search = strings.TrimSpace(q.Get(s.SearchParam))
	}
	for _, p := range s.Params {
		raw := strings.TrimSpace(q.Get(p.Name))
		if raw == "" {
			continue
		}
		spec.apply(p, raw)
	}
	return spec
}

// Names returns the query parameter names understood by s.
func (s Schema) Names() []string {
	var out []string
	if s.SearchParam != "" {
		out = append(out, s.SearchParam)
	}
	for _, p := range s.Params {
		out = append(out, p.Name)
	}
	return out
}

func (s *Spec) apply(p Param, raw string) {
	cur := s.Fields[p.Field]
	switch p.Kind {
	case Substring:
		s.Set(p.Field, Contains(raw))
	case Exact:
		s.Set(p.Field, Equals(raw))
	case Flag:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return
		}
		s.Set(p.Field, Equals(b))
	case Number:
		n, ok := asNumber(raw)
		if !ok {
			return
		}
		s.Set(p.Field, Equals(n))
	case AtLeast, AtMost:
		n, ok := asNumber(raw)
		if !ok {
			return
		}
		if cur.Kind != KindRange {
			cur = Range(nil, nil)
		}
		if p.Kind == AtLeast {
			cur.Min = Bound(n)
		} else {
			cur.Max = Bound(n)
		}
		s.Set(p.Field, cur)
	case After, Before:
		if cur.Kind != KindDateRange {
			cur = DateRange("", "")
		}
		if p.Kind == After {
			cur.From = raw
		} else {
			cur.To = raw
		}
		s.Set(p.Field, cur)
	}
}
