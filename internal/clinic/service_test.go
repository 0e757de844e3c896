package clinic

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/starford/vetdesk/internal/apperr"
	"github.com/starford/vetdesk/internal/kv"
	"github.com/starford/vetdesk/internal/models"
	"github.com/starford/vetdesk/internal/notify"
	"github.com/starford/vetdesk/internal/source"
)

var today = time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)

func clock() time.Time { return today }

func testService(t *testing.T) *Service {
	t.Helper()
	fixture := source.NewFixture(source.DefaultDataset(), clock)
	notes := notify.New(kv.NewMemory(), notify.WithClock(clock))
	return NewService(fixture, notes, WithClock(clock), WithPaging(2, 50, 5))
}

func TestListPetsFilterAndPage(t *testing.T) {
	svc := testService(t)
	spec := PetFilters.Parse(url.Values{"type": {"Dog"}})
	snap, err := svc.ListPets(context.Background(), spec, PageRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if snap.TotalItems != 2 || len(snap.Items) != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.Items[0].Name != "Buddy" || snap.Items[1].Name != "Max" {
		t.Errorf("items = %s, %s", snap.Items[0].Name, snap.Items[1].Name)
	}

	snap, _ = svc.ListPets(context.Background(), PetFilters.Parse(url.Values{}), PageRequest{Page: 2})
	if snap.CurrentPage != 2 || snap.TotalPages != 2 || len(snap.Items) != 2 {
		t.Errorf("page 2 = %+v", snap)
	}
}

func TestListPetsSearchOwnerName(t *testing.T) {
	svc := testService(t)
	spec := PetFilters.Parse(url.Values{"search": {"michael"}})
	snap, _ := svc.ListPets(context.Background(), spec, PageRequest{Size: 10})
	if snap.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", snap.TotalItems)
	}
}

func TestListAppointmentsFilters(t *testing.T) {
	svc := testService(t)
	spec := AppointmentFilters.Parse(url.Values{
		"dateFrom": {"2024-01-16"},
		"doctor":   {"wilson"},
	})
	snap, err := svc.ListAppointments(context.Background(), spec, PageRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if snap.TotalItems != 1 || snap.Items[0].PetName != "Max" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestListClientsFilters(t *testing.T) {
	svc := testService(t)
	spec := ClientFilters.Parse(url.Values{"minVisits": {"10"}, "hasPets": {"true"}})
	snap, _ := svc.ListClients(context.Background(), spec, PageRequest{Size: 10})
	if snap.TotalItems != 2 {
		t.Errorf("TotalItems = %d, want 2", snap.TotalItems)
	}
	spec = ClientFilters.Parse(url.Values{"contactMethod": {"sms"}})
	snap, _ = svc.ListClients(context.Background(), spec, PageRequest{})
	if snap.TotalItems != 1 || snap.Items[0].Name != "Michael Brown" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestPageSizeCapped(t *testing.T) {
	svc := testService(t)
	snap, _ := svc.ListPets(context.Background(), PetFilters.Parse(nil), PageRequest{Size: 1000})
	if snap.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", snap.PageSize)
	}
}

func TestTodayAndDashboard(t *testing.T) {
	svc := testService(t)
	todays, err := svc.TodayAppointments(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(todays) != 2 {
		t.Fatalf("today = %d, want 2", len(todays))
	}
	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if d.Stats.TodayAppointments != 2 || d.Stats.PendingAppointments != 1 {
		t.Errorf("stats = %+v", d.Stats)
	}
	// Two appointments today, one pending: two appointment notices and one alert.
	if len(d.Notifications) != 3 {
		t.Errorf("notifications = %d, want 3", len(d.Notifications))
	}
}

func TestUpdateAppointmentStatusValidation(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()
	if err := svc.UpdateAppointmentStatus(ctx, 3, "archived"); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
	if err := svc.UpdateAppointmentStatus(ctx, 0, "confirmed"); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
	if err := svc.UpdateAppointmentStatus(ctx, 3, "confirmed"); err != nil {
		t.Errorf("err = %v", err)
	}
	if err := svc.UpdateAppointmentStatus(ctx, 42, "confirmed"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRefreshAndDismiss(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	// Clock is 2024-01-16; nothing in the fixture is upcoming, so push one.
	added, err := svc.AddNotification(models.Notification{Message: "Vaccine due", Type: models.NotifyReminder, Date: "2024-01-16"})
	if err != nil || !added {
		t.Fatalf("AddNotification = %v, %v", added, err)
	}
	if ok, err := svc.DismissNotification(0); !ok || err != nil {
		t.Fatalf("Dismiss = %v, %v", ok, err)
	}
	if added, _ := svc.AddNotification(models.Notification{Message: "Vaccine due", Type: models.NotifyReminder, Date: "2024-01-16"}); added {
		t.Error("dismissed notification re-added")
	}

	live, err := svc.RefreshNotifications(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(live) != 0 {
		t.Errorf("live = %+v", live)
	}
}

func TestAddNotificationValidation(t *testing.T) {
	svc := testService(t)
	bad := []models.Notification{
		{Type: models.NotifyInfo, Date: "2024-01-16"},
		{Message: "x", Type: "urgent", Date: "2024-01-16"},
		{Message: "x", Type: models.NotifyInfo, Date: "16/01/2024"},
		{Message: "x", Type: models.NotifyInfo, Date: "2024-01-16", UserEmail: "not-an-email"},
	}
	for _, n := range bad {
		if _, err := svc.AddNotification(n); !errors.Is(err, apperr.ErrInvalid) {
			t.Errorf("AddNotification(%+v) err = %v, want ErrInvalid", n, err)
		}
	}
}

func TestPruneDismissals(t *testing.T) {
	now := today
	notes := notify.New(kv.NewMemory(), notify.WithClock(func() time.Time { return now }))
	svc := NewService(source.NewFixture(source.DefaultDataset(), clock), notes, WithClock(func() time.Time { return now }))

	svc.AddNotification(models.Notification{Message: "a", Type: models.NotifyInfo, Date: "2024-01-16"})
	svc.DismissNotification(0)
	now = now.Add(48 * time.Hour)

	if n, err := svc.PruneDismissals(24 * time.Hour); err != nil || n != 1 {
		t.Errorf("PruneDismissals = %d, %v; want 1, nil", n, err)
	}
	if n, _ := svc.PruneDismissals(0); n != 0 {
		t.Errorf("zero retention pruned %d", n)
	}
}

func TestProfileRequiresEmail(t *testing.T) {
	svc := testService(t)
	if _, err := svc.Profile(context.Background(), ""); !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
	p, err := svc.Profile(context.Background(), "me@x.io")
	if err != nil || p.Email != "me@x.io" {
		t.Errorf("profile = %+v, %v", p, err)
	}
}
