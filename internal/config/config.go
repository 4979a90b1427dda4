// Package config provides application configuration loaded from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DevSessionSecret is the cookie signing key used when SESSION_SECRET is
// unset. Validate refuses it outside dev mode.
const DevSessionSecret = "devsessionsecret"

// Store backends.
const (
	BackendGorm      = "gorm"
	BackendPostgREST = "postgrest"
)

// EnvSpec is the environment configuration needed for the app to start.
type EnvSpec struct {
	Port         int           `envconfig:"port" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"server_read_timeout" default:"15s"`
	WriteTimeout time.Duration `envconfig:"server_write_timeout" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"server_idle_timeout" default:"60s"`

	LogLevel string `envconfig:"log_level" default:"info"`
	Dev      bool   `envconfig:"dev" default:"false"`

	SessionSecret   string `envconfig:"session_secret" default:"devsessionsecret"`
	DefaultLanguage string `envconfig:"default_language" default:"no"`
	// TimeZone is used for times printed on pages, lists and badges.
	TimeZone string `envconfig:"time_zone" default:"Europe/Oslo"`

	// StoreBackend selects where records live: a SQL database through gorm,
	// or a hosted PostgREST endpoint.
	StoreBackend string `envconfig:"store_backend" default:"gorm"`

	DBDriver    string `envconfig:"db_driver" default:"postgres"`
	DSNOverride string `envconfig:"database_dsn"`
	DBHost      string `envconfig:"db_host" default:"localhost"`
	DBPort      int    `envconfig:"db_port" default:"5432"`
	DBUser      string `envconfig:"db_user" default:"postgres"`
	DBPassword  string `envconfig:"db_password" default:"postgres"`
	DBName      string `envconfig:"db_name" default:"visitors"`
	DBSSLMode   string `envconfig:"db_sslmode" default:"disable"`
	Migrations  bool   `envconfig:"migrations" default:"false"`
	DBDebug     bool   `envconfig:"db_debug" default:"false"`

	RemoteStoreURL string `envconfig:"remote_store_url"`
	RemoteStoreKey string `envconfig:"remote_store_key"`

	EmailJSServiceID      string        `envconfig:"emailjs_service_id"`
	EmailJSTemplateID     string        `envconfig:"emailjs_template_id"`
	EmailJSHostTemplateID string        `envconfig:"emailjs_host_template_id"`
	EmailJSPublicKey      string        `envconfig:"emailjs_public_key"`
	EmailJSPrivateKey     string        `envconfig:"emailjs_private_key"`
	EmailJSEndpoint       string        `envconfig:"emailjs_endpoint" default:"https://api.emailjs.com/api/v1.0/email/send"`
	NotifyTimeout         time.Duration `envconfig:"notify_timeout" default:"10s"`

	RetentionWindow   time.Duration `envconfig:"retention_window" default:"24h"`
	SweepInterval     time.Duration `envconfig:"sweep_interval" default:"15m"`
	HeartbeatInterval time.Duration `envconfig:"heartbeat_interval" default:"5m"`
	GateCacheTTL      time.Duration `envconfig:"gate_cache_ttl" default:"1m"`

	SuperAdminEmail    string `envconfig:"superadmin_email"`
	SuperAdminPassword string `envconfig:"superadmin_password"`

	// DemoFallback lets kiosk pages with an unknown company id fall back to
	// the oldest approved tenant (single-tenant demo installs).
	DemoFallback bool `envconfig:"demo_fallback" default:"false"`
}

// Load reads .env (when present) then the process environment.
func Load() (*EnvSpec, error) {
	_ = godotenv.Load()
	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return nil, fmt.Errorf("issues with environment sourcing: %w", err)
	}
	if err := specs.Validate(); err != nil {
		return nil, err
	}
	return specs, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (s *EnvSpec) Validate() error {
	if !s.Dev && (s.SessionSecret == "" || s.SessionSecret == DevSessionSecret) {
		return errors.New("SESSION_SECRET must be set outside dev mode")
	}
	switch s.StoreBackend {
	case BackendGorm:
		if s.DBDriver != "postgres" && s.DBDriver != "sqlite" {
			return fmt.Errorf("unsupported DB_DRIVER %q", s.DBDriver)
		}
	case BackendPostgREST:
		if s.RemoteStoreURL == "" || s.RemoteStoreKey == "" {
			return fmt.Errorf("STORE_BACKEND=postgrest requires REMOTE_STORE_URL and REMOTE_STORE_KEY")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", s.StoreBackend)
	}
	return nil
}

// DSN returns DATABASE_DSN when set, otherwise a PostgreSQL key=value string
// built from the DB_* variables. For sqlite DATABASE_DSN is the file path.
func (s *EnvSpec) DSN() string {
	if s.DSNOverride != "" {
		return s.DSNOverride
	}
	if s.DBDriver == "sqlite" {
		return "visitors.db"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		s.DBHost, s.DBPort, s.DBUser, s.DBPassword, s.DBName, s.DBSSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format, as expected by
// golang-migrate.
func (s *EnvSpec) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		s.DBUser, s.DBPassword, s.DBHost, s.DBPort, s.DBName, s.DBSSLMode,
	)
}

// Location resolves TimeZone, falling back to UTC for unknown zones.
func (s *EnvSpec) Location() *time.Location {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// EmailConfigured reports whether EmailJS credentials are complete.
// Without them notifications run in simulation mode.
func (s *EnvSpec) EmailConfigured() bool {
	return s.EmailJSServiceID != "" && s.EmailJSTemplateID != "" && s.EmailJSPublicKey != ""
}
