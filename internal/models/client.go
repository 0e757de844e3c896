package models

// Client is a pet owner account as seen by clinic staff.
type Client struct {
	ID                     int    `json:"id" yaml:"id"`
	Name                   string `json:"name" yaml:"name"`
	Email                  string `json:"email" yaml:"email"`
	Phone                  string `json:"phone,omitempty" yaml:"phone"`
	Address                string `json:"address,omitempty" yaml:"address"`
	City                   string `json:"city,omitempty" yaml:"city"`
	State                  string `json:"state,omitempty" yaml:"state"`
	ZipCode                string `json:"zipCode,omitempty" yaml:"zip_code"`
	DateOfBirth            string `json:"dateOfBirth,omitempty" yaml:"date_of_birth"`
	EmergencyContact       string `json:"emergencyContact,omitempty" yaml:"emergency_contact"`
	EmergencyPhone         string `json:"emergencyPhone,omitempty" yaml:"emergency_phone"`
	RegistrationDate       string `json:"registrationDate,omitempty" yaml:"registration_date"`
	LastVisit              string `json:"lastVisit,omitempty" yaml:"last_visit"`
	TotalVisits            *int   `json:"totalVisits,omitempty" yaml:"total_visits"`
	IsActive               *bool  `json:"isActive,omitempty" yaml:"is_active"`
	Notes                  string `json:"notes,omitempty" yaml:"notes"`
	TotalPets              *int   `json:"totalPets,omitempty" yaml:"total_pets"`
	Pets                   []Pet  `json:"pets,omitempty" yaml:"pets"`
	PreferredContactMethod string `json:"preferredContactMethod,omitempty" yaml:"preferred_contact_method"`
	EmailNotifications     *bool  `json:"emailNotifications,omitempty" yaml:"email_notifications"`
	SMSNotifications       *bool  `json:"smsNotifications,omitempty" yaml:"sms_notifications"`
}

// Field returns the named field using its JSON name. "hasPets" is derived
// from totalPets and the embedded pet list.
func (c Client) Field(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "name":
		return text(c.Name)
	case "email":
		return text(c.Email)
	case "phone":
		return text(c.Phone)
	case "address":
		return text(c.Address)
	case "city":
		return text(c.City)
	case "state":
		return text(c.State)
	case "zipCode":
		return text(c.ZipCode)
	case "dateOfBirth":
		return text(c.DateOfBirth)
	case "emergencyContact":
		return text(c.EmergencyContact)
	case "emergencyPhone":
		return text(c.EmergencyPhone)
	case "registrationDate":
		return text(c.RegistrationDate)
	case "lastVisit":
		return text(c.LastVisit)
	case "totalVisits":
		return count(c.TotalVisits)
	case "isActive":
		return flag(c.IsActive)
	case "notes":
		return text(c.Notes)
	case "totalPets":
		return count(c.TotalPets)
	case "hasPets":
		if c.TotalPets == nil && c.Pets == nil {
			return nil, false
		}
		return len(c.Pets) > 0 || (c.TotalPets != nil && *c.TotalPets > 0), true
	case "preferredContactMethod":
		return text(c.PreferredContactMethod)
	case "emailNotifications":
		return flag(c.EmailNotifications)
	case "smsNotifications":
		return flag(c.SMSNotifications)
	}
	return nil, false
}
