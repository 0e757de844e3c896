package clinic

import "github.com/starford/vetdesk/internal/filter"

// Query parameters accepted by each list screen.
var (
	PetFilters = filter.Schema{
		SearchParam:  "search",
		SearchFields: []string{"name", "type", "breed", "owner", "ownerName"},
		Params: []filter.Param{
			{Name: "type", Field: "type", Kind: filter.Exact},
			{Name: "breed", Field: "breed", Kind: filter.Substring},
			{Name: "owner", Field: "owner", Kind: filter.Exact},
			{Name: "gender", Field: "gender", Kind: filter.Exact},
			{Name: "ageMin", Field: "age", Kind: filter.AtLeast},
			{Name: "ageMax", Field: "age", Kind: filter.AtMost},
			{Name: "isActive", Field: "isActive", Kind: filter.Flag},
			{Name: "registrationDateFrom", Field: "registrationDate", Kind: filter.After},
			{Name: "registrationDateTo", Field: "registrationDate", Kind: filter.Before},
		},
	}

	AppointmentFilters = filter.Schema{
		SearchParam:  "searchTerm",
		SearchFields: []string{"name", "petname", "email", "docname"},
		Params: []filter.Param{
			{Name: "dateFrom", Field: "date", Kind: filter.After},
			{Name: "dateTo", Field: "date", Kind: filter.Before},
			{Name: "status", Field: "status", Kind: filter.Exact},
			{Name: "doctor", Field: "docname", Kind: filter.Substring},
			{Name: "email", Field: "email", Kind: filter.Exact},
		},
	}

	ClientFilters = filter.Schema{
		SearchParam:  "searchTerm",
		SearchFields: []string{"name", "email", "phone"},
		Params: []filter.Param{
			{Name: "status", Field: "isActive", Kind: filter.Flag},
			{Name: "city", Field: "city", Kind: filter.Exact},
			{Name: "state", Field: "state", Kind: filter.Exact},
			{Name: "registrationDateFrom", Field: "registrationDate", Kind: filter.After},
			{Name: "registrationDateTo", Field: "registrationDate", Kind: filter.Before},
			{Name: "lastVisitFrom", Field: "lastVisit", Kind: filter.After},
			{Name: "lastVisitTo", Field: "lastVisit", Kind: filter.Before},
			{Name: "hasPets", Field: "hasPets", Kind: filter.Flag},
			{Name: "minVisits", Field: "totalVisits", Kind: filter.AtLeast},
			{Name: "maxVisits", Field: "totalVisits", Kind: filter.AtMost},
			{Name: "contactMethod", Field: "preferredContactMethod", Kind: filter.Exact},
		},
	}

	DocumentFilters = filter.Schema{
		SearchParam:  "search",
		SearchFields: []string{"originalFileName", "description", "documentType"},
		Params: []filter.Param{
			{Name: "documentType", Field: "documentType", Kind: filter.Exact},
			{Name: "uploadDateFrom", Field: "uploadDate", Kind: filter.After},
			{Name: "uploadDateTo", Field: "uploadDate", Kind: filter.Before},
		},
	}
)
