package models

// Doctor is a veterinarian that can be booked.
type Doctor struct {
	ID             int    `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Specialization string `json:"specialization" yaml:"specialization"`
}

// Field returns the named field using its JSON name.
func (d Doctor) Field(name string) (any, bool) {
	switch name {
	case "id":
		return d.ID, true
	case "name":
		return text(d.Name)
	case "specialization":
		return text(d.Specialization)
	}
	return nil, false
}

// AdminStats summarises clinic activity for the admin dashboard.
type AdminStats struct {
	TotalUsers            int `json:"totalUsers" yaml:"total_users"`
	TodayAppointments     int `json:"todayAppointments" yaml:"today_appointments"`
	TotalAppointments     int `json:"totalAppointments" yaml:"total_appointments"`
	TotalPets             int `json:"totalPets" yaml:"total_pets"`
	PendingAppointments   int `json:"pendingAppointments" yaml:"pending_appointments"`
	CompletedAppointments int `json:"completedAppointments" yaml:"completed_appointments"`
}

// UserProfile is the signed-in user's account data.
type UserProfile struct {
	Name          string `json:"name" yaml:"name"`
	Email         string `json:"email" yaml:"email"`
	ContactNumber string `json:"contactNumber,omitempty" yaml:"contact_number"`
	Address       string `json:"address,omitempty" yaml:"address"`
	IsAdmin       bool   `json:"isAdmin" yaml:"is_admin"`
}
