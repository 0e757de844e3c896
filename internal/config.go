package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/vetdesk/internal/kv"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App           ApplicationConfig  `yaml:"app"`
	Backend       BackendConfig      `yaml:"backend"`
	Fixtures      FixturesConfig     `yaml:"fixtures"`
	Store         StoreConfig        `yaml:"store"`
	Notifications NotificationConfig `yaml:"notifications"`
	Pagination    PaginationConfig   `yaml:"pagination"`
	Uploads       UploadsConfig      `yaml:"uploads"`
	Auth          AuthConfig         `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"app", &c.App},
		{"backend", &c.Backend},
		{"fixtures", &c.Fixtures},
		{"store", &c.Store},
		{"notifications", &c.Notifications},
		{"pagination", &c.Pagination},
		{"uploads", &c.Uploads},
	}
	for _, sec := range sections {
		if err := sec.v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", sec.name, err)
		}
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// BackendConfig points at the clinic REST backend. An empty BaseURL runs
// offline on fixtures only.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// Offline reports whether no backend is configured.
func (c *BackendConfig) Offline() bool {
	return c.BaseURL == ""
}

// Validate validates the backend configuration.
func (c *BackendConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// FixturesConfig locates the YAML overlays served when the backend fails.
type FixturesConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Validate validates the fixtures configuration.
func (c *FixturesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.When(c.Watch, validation.Required)),
	)
}

// StoreConfig selects the key-value store holding dismissals.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Driver, validation.Required, validation.In(kv.DriverSQLite, kv.DriverFile, kv.DriverMemory)),
		validation.Field(&c.Path, validation.When(c.Driver != kv.DriverMemory, validation.Required)),
	)
}

// NotificationConfig drives the refresh and prune jobs.
type NotificationConfig struct {
	UserEmail       string        `yaml:"user_email"`
	RefreshSchedule string        `yaml:"refresh_schedule"`
	PruneSchedule   string        `yaml:"prune_schedule"`
	Retention       time.Duration `yaml:"retention"`
}

// Validate validates the notification configuration.
func (c *NotificationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.UserEmail, is.EmailFormat),
		validation.Field(&c.Retention, validation.Min(time.Duration(0))),
	)
}

// PaginationConfig holds list paging limits.
type PaginationConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
	Window          int `yaml:"window"`
}

// Validate validates the pagination configuration.
func (c *PaginationConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultPageSize, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxPageSize, validation.Required, validation.Min(c.DefaultPageSize)),
		validation.Field(&c.Window, validation.Required, validation.Min(1)),
	)
}

// UploadsConfig holds the document upload directory.
type UploadsConfig struct {
	Path     string `yaml:"path"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// Validate validates the uploads configuration.
func (c *UploadsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.MaxBytes, validation.Required, validation.Min(int64(1))),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Backend: BackendConfig{
			Timeout: 15 * time.Second,
		},
		Fixtures: FixturesConfig{
			Path: "./fixtures",
		},
		Store: StoreConfig{
			Driver: kv.DriverSQLite,
			Path:   "./vetdesk.db",
		},
		Notifications: NotificationConfig{
			RefreshSchedule: "@every 5m",
			PruneSchedule:   "@daily",
			Retention:       30 * 24 * time.Hour,
		},
		Pagination: PaginationConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
			Window:          5,
		},
		Uploads: UploadsConfig{
			Path:     "./uploads",
			MaxBytes: 50 << 20,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
