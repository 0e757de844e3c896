package models

// Pet is a registered patient. Owner holds the owner's email.
type Pet struct {
	ID               int      `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Type             string   `json:"type" yaml:"type"`
	Breed            string   `json:"breed" yaml:"breed"`
	Age              int      `json:"age" yaml:"age"`
	Gender           string   `json:"gender,omitempty" yaml:"gender"`
	Weight           *float64 `json:"weight,omitempty" yaml:"weight"`
	Color            string   `json:"color,omitempty" yaml:"color"`
	MicrochipID      string   `json:"microchipId,omitempty" yaml:"microchip_id"`
	Owner            string   `json:"owner" yaml:"owner"`
	OwnerName        string   `json:"ownerName,omitempty" yaml:"owner_name"`
	OwnerPhone       string   `json:"ownerPhone,omitempty" yaml:"owner_phone"`
	DateOfBirth      string   `json:"dateOfBirth,omitempty" yaml:"date_of_birth"`
	RegistrationDate string   `json:"registrationDate,omitempty" yaml:"registration_date"`
	IsActive         *bool    `json:"isActive,omitempty" yaml:"is_active"`
	Notes            string   `json:"notes,omitempty" yaml:"notes"`
}

// Field returns the named field using its JSON name.
func (p Pet) Field(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "name":
		return text(p.Name)
	case "type":
		return text(p.Type)
	case "breed":
		return text(p.Breed)
	case "age":
		return p.Age, true
	case "gender":
		return text(p.Gender)
	case "weight":
		return measure(p.Weight)
	case "color":
		return text(p.Color)
	case "microchipId":
		return text(p.MicrochipID)
	case "owner":
		return text(p.Owner)
	case "ownerName":
		return text(p.OwnerName)
	case "ownerPhone":
		return text(p.OwnerPhone)
	case "dateOfBirth":
		return text(p.DateOfBirth)
	case "registrationDate":
		return text(p.RegistrationDate)
	case "isActive":
		return flag(p.IsActive)
	case "notes":
		return text(p.Notes)
	}
	return nil, false
}
