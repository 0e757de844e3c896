// Package clinic coordinates data sources, filtering, paging and the live
// notification set behind the API and MCP surfaces.
package clinic

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/vetdesk/internal/apperr"
	"github.com/starford/vetdesk/internal/filter"
	"github.com/starford/vetdesk/internal/models"
	"github.com/starford/vetdesk/internal/notify"
	"github.com/starford/vetdesk/internal/pager"
	"github.com/starford/vetdesk/internal/source"
	"github.com/starford/vetdesk/internal/view"
)

// Service provides clinic operations.
type Service struct {
	src     source.Source
	notes   *notify.Deduplicator
	uploads *Uploads
	now     func() time.Time
	logger  *slog.Logger

	pageSize    int
	maxPageSize int
	window      int
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithUploads merges locally uploaded documents into document listings.
func WithUploads(u *Uploads) Option {
	return func(s *Service) { s.uploads = u }
}

// WithPaging sets the default and maximum page sizes and the page-link window.
func WithPaging(defaultSize, maxSize, window int) Option {
	return func(s *Service) {
		s.pageSize, s.maxPageSize, s.window = defaultSize, maxSize, window
	}
}

// NewService creates a Service.
func NewService(src source.Source, notes *notify.Deduplicator, opts ...Option) *Service {
	s := &Service{
		src:         src,
		notes:       notes,
		now:         time.Now,
		logger:      slog.Default(),
		pageSize:    10,
		maxPageSize: 100,
		window:      pager.DefaultWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PageRequest selects a page. Zero values mean page 1 of the default size.
// Select, if positive, is the id of the record to open alongside the page.
type PageRequest struct {
	Page   int
	Size   int
	Select int
}

func (s *Service) page(req PageRequest) (int, int) {
	size := req.Size
	if size <= 0 {
		size = s.pageSize
	}
	if s.maxPageSize > 0 && size > s.maxPageSize {
		size = s.maxPageSize
	}
	return max(1, req.Page), size
}

func list[E filter.Entity](s *Service, items []E, spec filter.Spec, req PageRequest) view.Snapshot[E] {
	page, size := s.page(req)
	return view.List(items, spec, page, size, s.window, req.Select)
}

// ListPets returns one page of pets matching spec.
func (s *Service) ListPets(ctx context.Context, spec filter.Spec, req PageRequest) (view.Snapshot[models.Pet], error) {
	pets, err := s.src.Pets(ctx)
	if err != nil {
		return view.Snapshot[models.Pet]{}, fmt.Errorf("clinic: list pets: %w", err)
	}
	return list(s, pets, spec, req), nil
}

// ListAppointments returns one page of appointments matching spec.
func (s *Service) ListAppointments(ctx context.Context, spec filter.Spec, req PageRequest) (view.Snapshot[models.Appointment], error) {
	appts, err := s.src.Appointments(ctx)
	if err != nil {
		return view.Snapshot[models.Appointment]{}, fmt.Errorf("clinic: list appointments: %w", err)
	}
	return list(s, appts, spec, req), nil
}

// ListClients returns one page of clients matching spec.
func (s *Service) ListClients(ctx context.Context, spec filter.Spec, req PageRequest) (view.Snapshot[models.Client], error) {
	clients, err := s.src.Clients(ctx)
	if err != nil {
		return view.Snapshot[models.Client]{}, fmt.Errorf("clinic: list clients: %w", err)
	}
	return list(s, clients, spec, req), nil
}

// ListDocuments returns one page of a pet's documents matching spec.
func (s *Service) ListDocuments(ctx context.Context, petID int, spec filter.Spec, req PageRequest) (view.Snapshot[models.Document], error) {
	docs, err := s.src.Documents(ctx, petID)
	if err != nil {
		return view.Snapshot[models.Document]{}, fmt.Errorf("clinic: list documents: %w", err)
	}
	if s.uploads != nil {
		local, err := s.uploads.List(petID)
		if err != nil {
			return view.Snapshot[models.Document]{}, fmt.Errorf("clinic: list documents: %w", err)
		}
		docs = append(docs, local...)
	}
	return list(s, docs, spec, req), nil
}

// UploadDocument stores a document for a pet.
func (s *Service) UploadDocument(u Upload) (*models.Document, error) {
	if s.uploads == nil {
		return nil, fmt.Errorf("clinic: uploads disabled: %w", apperr.ErrUnavailable)
	}
	return s.uploads.Save(u)
}

// DocumentFile resolves the on-disk path of an uploaded document.
func (s *Service) DocumentFile(petID int, name string) (string, error) {
	if s.uploads == nil {
		return "", fmt.Errorf("clinic: uploads disabled: %w", apperr.ErrNotFound)
	}
	return s.uploads.Open(petID, name)
}

// TodayAppointments returns appointments dated today.
func (s *Service) TodayAppointments(ctx context.Context) ([]models.Appointment, error) {
	appts, err := s.src.Appointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("clinic: today appointments: %w", err)
	}
	today := s.now().Format(time.DateOnly)
	var spec filter.Spec
	spec.Set("date", filter.DateRange(today, today))
	return filter.Evaluate(appts, spec), nil
}

// Doctors returns every bookable doctor.
func (s *Service) Doctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.src.Doctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("clinic: doctors: %w", err)
	}
	return doctors, nil
}

// Profile returns the profile for email.
func (s *Service) Profile(ctx context.Context, email string) (*models.UserProfile, error) {
	if email == "" {
		return nil, fmt.Errorf("clinic: profile: email required: %w", apperr.ErrInvalid)
	}
	p, err := s.src.UserProfile(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("clinic: profile: %w", err)
	}
	return p, nil
}

// Dashboard is the admin overview.
type Dashboard struct {
	Stats         *models.AdminStats    `json:"stats"`
	Today         []models.Appointment  `json:"todayAppointments"`
	Notifications []models.Notification `json:"notifications"`
}

// Dashboard assembles stats, today's appointments and admin notifications.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.src.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("clinic: dashboard stats: %w", err)
	}
	today, err := s.TodayAppointments(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.src.AdminNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("clinic: dashboard notifications: %w", err)
	}
	return &Dashboard{Stats: stats, Today: today, Notifications: notes}, nil
}

// UpdateAppointmentStatus validates status and forwards it to the source.
func (s *Service) UpdateAppointmentStatus(ctx context.Context, id int, status string) error {
	st := models.AppointmentStatus(status)
	if err := validation.Validate(st, validation.Required, validation.In(models.AppointmentStatuses...)); err != nil {
		return fmt.Errorf("clinic: status %q: %v: %w", status, err, apperr.ErrInvalid)
	}
	if id <= 0 {
		return fmt.Errorf("clinic: appointment id %d: %w", id, apperr.ErrInvalid)
	}
	if err := s.src.UpdateAppointmentStatus(ctx, id, st); err != nil {
		return fmt.Errorf("clinic: update appointment %d: %w", id, err)
	}
	return nil
}
