package source

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/vetdesk/internal/apperr"
	"github.com/starford/vetdesk/internal/models"
	"github.com/starford/vetdesk/internal/notify"
)

//go:embed fixtures/default.yaml
var defaultDataset []byte

// Dataset is the canned data a Fixture serves.
type Dataset struct {
	Profile       models.UserProfile    `yaml:"profile"`
	Doctors       []models.Doctor       `yaml:"doctors"`
	Clients       []models.Client       `yaml:"clients"`
	Pets          []models.Pet          `yaml:"pets"`
	Appointments  []models.Appointment  `yaml:"appointments"`
	Documents     []models.Document     `yaml:"documents"`
	Notifications []models.Notification `yaml:"notifications"`
}

// ParseDataset decodes a YAML dataset.
func ParseDataset(data []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("source: parse dataset: %w", err)
	}
	return ds, nil
}

// DefaultDataset returns the embedded dataset.
func DefaultDataset() Dataset {
	ds, err := ParseDataset(defaultDataset)
	if err != nil {
		panic(err)
	}
	return ds
}

// overlay replaces every section that o provides.
func (d Dataset) overlay(o Dataset) Dataset {
	if o.Profile.Email != "" || o.Profile.Name != "" {
		d.Profile = o.Profile
	}
	if o.Doctors != nil {
		d.Doctors = o.Doctors
	}
	if o.Clients != nil {
		d.Clients = o.Clients
	}
	if o.Pets != nil {
		d.Pets = o.Pets
	}
	if o.Appointments != nil {
		d.Appointments = o.Appointments
	}
	if o.Documents != nil {
		d.Documents = o.Documents
	}
	if o.Notifications != nil {
		d.Notifications = o.Notifications
	}
	return d
}

// Fixture is a Source serving an in-memory Dataset. Generated
// notifications are computed against the injected clock.
type Fixture struct {
	mu   sync.RWMutex
	data Dataset
	now  func() time.Time
}

// NewFixture returns a Fixture serving ds. A nil clock uses time.Now.
func NewFixture(ds Dataset, now func() time.Time) *Fixture {
	if now == nil {
		now = time.Now
	}
	return &Fixture{data: ds, now: now}
}

// Replace swaps the served dataset.
func (f *Fixture) Replace(ds Dataset) {
	f.mu.Lock()
	f.data = ds
	f.mu.Unlock()
}

// LoadDir overlays every *.yaml / *.yml file of dir, in name order, onto the
// embedded dataset and serves the result. A missing dir leaves the defaults.
func (f *Fixture) LoadDir(dir string) error {
	ds := DefaultDataset()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		f.Replace(ds)
		return nil
	}
	if err != nil {
		return fmt.Errorf("source: read fixture dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isFixtureFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("source: read fixture %s: %w", name, err)
		}
		o, err := ParseDataset(data)
		if err != nil {
			return fmt.Errorf("source: fixture %s: %w", name, err)
		}
		ds = ds.overlay(o)
	}
	f.Replace(ds)
	return nil
}

func isFixtureFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return (ext == ".yaml" || ext == ".yml") && !strings.HasPrefix(name, ".")
}

func (f *Fixture) snapshot() Dataset {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data
}

func (f *Fixture) Appointments(context.Context) ([]models.Appointment, error) {
	return slices.Clone(f.snapshot().Appointments), nil
}

func (f *Fixture) Pets(context.Context) ([]models.Pet, error) {
	return slices.Clone(f.snapshot().Pets), nil
}

func (f *Fixture) Clients(context.Context) ([]models.Client, error) {
	return slices.Clone(f.snapshot().Clients), nil
}

func (f *Fixture) Doctors(context.Context) ([]models.Doctor, error) {
	return slices.Clone(f.snapshot().Doctors), nil
}

// Documents returns the documents of petID. Documents with pet id 0 are
// templates served for every pet.
func (f *Fixture) Documents(_ context.Context, petID int) ([]models.Document, error) {
	ds := f.snapshot()
	var out []models.Document
	for _, d := range ds.Documents {
		switch d.PetID {
		case petID:
			out = append(out, d)
		case 0:
			d.PetID = petID
			for _, p := range ds.Pets {
				if p.ID == petID {
					d.PetName = p.Name
				}
			}
			out = append(out, d)
		}
	}
	return out, nil
}

// Notifications generates upcoming-appointment notifications for email and
// appends the dataset's static notifications addressed to it.
func (f *Fixture) Notifications(_ context.Context, email string) ([]models.Notification, error) {
	ds := f.snapshot()
	out := notify.Upcoming(ForUser(ds.Appointments, email), f.now())
	for _, n := range ds.Notifications {
		if email == "" || n.UserEmail == "" || n.UserEmail == email {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *Fixture) AdminNotifications(context.Context) ([]models.Notification, error) {
	return notify.Admin(f.snapshot().Appointments, f.now()), nil
}

// UserProfile returns the canned profile under the requested email.
func (f *Fixture) UserProfile(_ context.Context, email string) (*models.UserProfile, error) {
	p := f.snapshot().Profile
	if email != "" {
		p.Email = email
	}
	return &p, nil
}

func (f *Fixture) Stats(context.Context) (*models.AdminStats, error) {
	ds := f.snapshot()
	return ComputeStats(ds.Clients, ds.Appointments, ds.Pets, f.now()), nil
}

// UpdateAppointmentStatus changes the status in memory only.
func (f *Fixture) UpdateAppointmentStatus(_ context.Context, id int, status models.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.data.Appointments {
		if f.data.Appointments[i].ID == id {
			appts := slices.Clone(f.data.Appointments)
			appts[i].Status = status
			f.data.Appointments = appts
			return nil
		}
	}
	return fmt.Errorf("source: appointment %d: %w", id, apperr.ErrNotFound)
}

var _ Source = (*Fixture)(nil)
