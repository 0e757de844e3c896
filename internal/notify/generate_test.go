package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/vetdesk/internal/models"
)

func TestUpcoming(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	appts := []models.Appointment{
		{ID: 1, Date: "2024-03-11", Time: "10:00", PetName: "Buddy", DocName: "Dr. Smith"},
		{ID: 2, Date: "2024-03-15", Time: "09:30", PetName: "Whiskers", DocName: "Dr. Brown"},
		{ID: 3, Date: "2024-03-10", Time: "17:00", PetName: "Rex"},
		{ID: 4, Date: "2024-03-30", Time: "08:00", PetName: "Max"},
		{ID: 5, Date: "garbage", PetName: "Nope"},
	}
	got := Upcoming(appts, now)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(got), got)
	}
	if got[0].Type != models.NotifyReminder || !strings.Contains(got[0].Message, "Buddy has an appointment tomorrow at 10:00 with Dr. Smith") {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Type != models.NotifyInfo || got[2].Type != models.NotifyInfo {
		t.Errorf("types = %s, %s", got[1].Type, got[2].Type)
	}
	for _, n := range got {
		if n.Date != "2024-03-10" {
			t.Errorf("date = %s, want 2024-03-10", n.Date)
		}
	}
}

func TestAdmin(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	appts := []models.Appointment{
		{ID: 1, Date: "2024-03-10", Time: "10:00", Name: "Ann", PetName: "Buddy", DocName: "Dr. Smith", Status: models.StatusPending},
		{ID: 2, Date: "2024-03-10", Time: "11:00", Name: "Bob", PetName: "Max", DocName: "Dr. Brown", Status: models.StatusConfirmed},
		{ID: 3, Date: "2024-03-11", Time: "11:00", Name: "Cid", Status: models.StatusPending},
	}
	got := Admin(appts, now)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Type != models.NotifyAppointment || got[0].Message != "Ann has an appointment today at 10:00 for Buddy with Dr. Smith" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Type != models.NotifyAlert || got[1].Message != "Pending appointment: Ann's appointment for Buddy needs confirmation" {
		t.Errorf("got[1] = %+v", got[1])
	}
	if got[2].AppointmentID == nil || *got[2].AppointmentID != 2 {
		t.Errorf("got[2].AppointmentID = %v", got[2].AppointmentID)
	}
}
