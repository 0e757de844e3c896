// Package filter evaluates sparse filter specs against entity lists.
//
// A Spec maps field names to optional constraints plus an optional free-text
// term searched across a fixed set of fields. Unset constraints impose no
// restriction. Evaluation never fails: malformed bounds are ignored and
// wrong-typed entity values simply do not match.
package filter

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Entity exposes named scalar fields. ok is false when the field is absent.
type Entity interface {
	Field(name string) (any, bool)
}

// Record is a schemaless Entity. Nil values count as absent.
type Record map[string]any

// Field implements Entity.
func (r Record) Field(name string) (any, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Kind identifies the constraint variant.
type Kind uint8

const (
	KindNone Kind = iota
	KindContains
	KindEquals
	KindRange
	KindDateRange
)

// Constraint is a single field predicate. Only the members relevant to Kind
// are read.
type Constraint struct {
	Kind  Kind
	Value any
	Min   *float64
	Max   *float64
	From  string
	To    string
}

// Contains matches fields whose lower-cased text contains lower-cased s.
func Contains(s string) Constraint {
	return Constraint{Kind: KindContains, Value: s}
}

// Equals matches fields exactly equal to v. Strings compare case-sensitively.
func Equals(v any) Constraint {
	return Constraint{Kind: KindEquals, Value: v}
}

// Range matches numeric fields within [min, max]. Either bound may be nil.
func Range(min, max *float64) Constraint {
	return Constraint{Kind: KindRange, Min: min, Max: max}
}

// DateRange matches date fields within [from, to]. Either bound may be empty.
// A date-only bound (YYYY-MM-DD) compares by calendar day.
func DateRange(from, to string) Constraint {
	return Constraint{Kind: KindDateRange, From: from, To: to}
}

// Bound is a convenience for building range bounds.
func Bound(v float64) *float64 { return &v }

// IsSet reports whether c restricts anything.
func (c Constraint) IsSet() bool {
	_, ok := c.compile()
	return ok
}

// Spec is a sparse filter. The zero value matches everything.
type Spec struct {
	Search       string
	SearchFields []string
	Fields       map[string]Constraint
}

// Set adds or replaces the constraint for field.
func (s *Spec) Set(field string, c Constraint) {
	if s.Fields == nil {
		s.Fields = make(map[string]Constraint)
	}
	s.Fields[field] = c
}

// IsEmpty reports whether s imposes no restriction.
func (s Spec) IsEmpty() bool {
	if s.Search != "" {
		return false
	}
	for _, c := range s.Fields {
		if c.IsSet() {
			return false
		}
	}
	return true
}

type predicate func(v any, present bool) bool

type clause struct {
	field string
	match predicate
}

type compiled struct {
	clauses      []clause
	search       string
	searchFields []string
}

func compileSpec(s Spec) compiled {
	var out compiled
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if p, ok := s.Fields[name].compile(); ok {
			out.clauses = append(out.clauses, clause{field: name, match: p})
		}
	}
	if s.Search != "" {
		out.search = strings.ToLower(s.Search)
		out.searchFields = s.SearchFields
	}
	return out
}

func (c compiled) match(e Entity) bool {
	for _, cl := range c.clauses {
		v, ok := e.Field(cl.field)
		if !cl.match(v, ok) {
			return false
		}
	}
	if c.search == "" {
		return true
	}
	for _, f := range c.searchFields {
		v, ok := e.Field(f)
		if !ok {
			continue
		}
		if s, isText := asText(v); isText && strings.Contains(strings.ToLower(s), c.search) {
			return true
		}
	}
	return false
}

// Match reports whether e satisfies every set constraint of s.
func Match(e Entity, s Spec) bool {
	return compileSpec(s).match(e)
}

// Evaluate returns the entities matching s, in input order. The input slice
// is not modified.
func Evaluate[E Entity](items []E, s Spec) []E {
	c := compileSpec(s)
	out := make([]E, 0, len(items))
	for _, item := range items {
		if c.match(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c Constraint) compile() (predicate, bool) {
	switch c.Kind {
	case KindContains:
		want, ok := c.Value.(string)
		if !ok || want == "" {
			return nil, false
		}
		want = strings.ToLower(want)
		return func(v any, present bool) bool {
			if !present {
				return false
			}
			s, ok := asText(v)
			return ok && strings.Contains(strings.ToLower(s), want)
		}, true

	case KindEquals:
		return compileEquals(c.Value)

	case KindRange:
		lo, hi := finite(c.Min), finite(c.Max)
		if lo == nil && hi == nil {
			return nil, false
		}
		return func(v any, present bool) bool {
			if !present {
				return false
			}
			n, ok := asNumber(v)
			if !ok {
				return false
			}
			if lo != nil && n < *lo {
				return false
			}
			if hi != nil && n > *hi {
				return false
			}
			return true
		}, true

	case KindDateRange:
		from, fromOK := parseBound(c.From)
		to, toOK := parseBound(c.To)
		if !fromOK && !toOK {
			return nil, false
		}
		return func(v any, present bool) bool {
			if !present {
				return false
			}
			t, ok := asTime(v)
			if !ok {
				return false
			}
			if fromOK && from.after(t) {
				return false
			}
			if toOK && to.before(t) {
				return false
			}
			return true
		}, true
	}
	return nil, false
}

func compileEquals(want any) (predicate, bool) {
	switch w := want.(type) {
	case nil:
		return nil, false
	case string:
		if w == "" {
			return nil, false
		}
		return func(v any, present bool) bool {
			s, ok := v.(string)
			return present && ok && s == w
		}, true
	case bool:
		return func(v any, present bool) bool {
			b, ok := v.(bool)
			return present && ok && b == w
		}, true
	default:
		n, ok := asNumber(w)
		if !ok {
			return nil, false
		}
		return func(v any, present bool) bool {
			if !present {
				return false
			}
			got, ok := asNumber(v)
			return ok && got == n
		}, true
	}
}

func asText(v any) (string, bool) {
	switch t := v.(type) {
	case nil, bool:
		return "", false
	case string:
		return t, true
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, false
		}
	}
	n, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// finite drops NaN and infinite bounds.
func finite(b *float64) *float64 {
	if b == nil || math.IsNaN(*b) || math.IsInf(*b, 0) {
		return nil
	}
	return b
}

type dateBound struct {
	t       time.Time
	day     string
	dayOnly bool
}

func parseBound(s string) (dateBound, bool) {
	if s == "" {
		return dateBound{}, false
	}
	if len(s) == len(time.DateOnly) {
		if _, err := time.Parse(time.DateOnly, s); err != nil {
			return dateBound{}, false
		}
		return dateBound{day: s, dayOnly: true}, true
	}
	t, err := cast.ToTimeInDefaultLocationE(s, time.UTC)
	if err != nil {
		return dateBound{}, false
	}
	return dateBound{t: t}, true
}

func (b dateBound) after(t time.Time) bool {
	if b.dayOnly {
		return b.day > t.Format(time.DateOnly)
	}
	return b.t.After(t)
}

func (b dateBound) before(t time.Time) bool {
	if b.dayOnly {
		return b.day < t.Format(time.DateOnly)
	}
	return b.t.Before(t)
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if t == "" {
			return time.Time{}, false
		}
		if len(t) == len(time.DateOnly) {
			d, err := time.Parse(time.DateOnly, t)
			return d, err == nil
		}
		d, err := cast.ToTimeInDefaultLocationE(t, time.UTC)
		return d, err == nil
	}
	return time.Time{}, false
}
