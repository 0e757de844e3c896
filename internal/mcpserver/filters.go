package mcpserver

import (
	"fmt"
	"strings"

	"github.com/starford/vetdesk/internal/clinic"
	"github.com/starford/vetdesk/internal/filter"
)

var kindNames = map[filter.ParamKind]string{
	filter.Substring: "case-insensitive substring",
	filter.Exact:     "exact match",
	filter.Flag:      "true/false",
	filter.Number:    "number, exact",
	filter.AtLeast:   "number, lower bound",
	filter.AtMost:    "number, upper bound",
	filter.After:     "date YYYY-MM-DD, inclusive lower bound",
	filter.Before:    "date YYYY-MM-DD, inclusive upper bound",
}

// FiltersReference renders the accepted filter parameters as Markdown.
func FiltersReference() string {
	var b strings.Builder
	b.WriteString("# vetdesk list filters\n\n")
	b.WriteString("Empty or unparsable values are ignored. All given filters must match.\n")
	for _, sec := range []struct {
		title  string
		schema filter.Schema
	}{
		{"Pets", clinic.PetFilters},
		{"Appointments", clinic.AppointmentFilters},
		{"Clients", clinic.ClientFilters},
		{"Documents", clinic.DocumentFilters},
	} {
		fmt.Fprintf(&b, "\n## %s\n\n", sec.title)
		if sec.schema.SearchParam != "" {
			fmt.Fprintf(&b, "- `%s`: free-text search over %s\n",
				sec.schema.SearchParam, strings.Join(sec.schema.SearchFields, ", "))
		}
		for _, p := range sec.schema.Params {
			fmt.Fprintf(&b, "- `%s`: %s on `%s`\n", p.Name, kindNames[p.Kind], p.Field)
		}
	}
	return b.String()
}
