package models

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists every valid status.
var AppointmentStatuses = []any{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Appointment is a booked visit. Date is YYYY-MM-DD, Time is HH:MM.
type Appointment struct {
	ID              int               `json:"id" yaml:"id"`
	Date            string            `json:"date" yaml:"date"`
	Time            string            `json:"time" yaml:"time"`
	PetName         string            `json:"petname" yaml:"petname"`
	DocName         string            `json:"docname" yaml:"docname"`
	Name            string            `json:"name" yaml:"name"`
	Email           string            `json:"email" yaml:"email"`
	Status          AppointmentStatus `json:"status" yaml:"status"`
	ContactNumber   string            `json:"contactNumber,omitempty" yaml:"contact_number"`
	AppointmentType string            `json:"appointmentType,omitempty" yaml:"appointment_type"`
	Notes           string            `json:"notes,omitempty" yaml:"notes"`
	PetAge          string            `json:"petAge,omitempty" yaml:"pet_age"`
	PetBreed        string            `json:"petBreed,omitempty" yaml:"pet_breed"`
	ReasonForVisit  string            `json:"reasonForVisit,omitempty" yaml:"reason_for_visit"`
}

// Field returns the named field using its JSON name.
func (a Appointment) Field(name string) (any, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "date":
		return text(a.Date)
	case "time":
		return text(a.Time)
	case "petname":
		return text(a.PetName)
	case "docname":
		return text(a.DocName)
	case "name":
		return text(a.Name)
	case "email":
		return text(a.Email)
	case "status":
		return text(string(a.Status))
	case "contactNumber":
		return text(a.ContactNumber)
	case "appointmentType":
		return text(a.AppointmentType)
	case "notes":
		return text(a.Notes)
	case "petAge":
		return text(a.PetAge)
	case "petBreed":
		return text(a.PetBreed)
	case "reasonForVisit":
		return text(a.ReasonForVisit)
	}
	return nil, false
}
