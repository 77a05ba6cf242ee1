package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/lexdesk/internal/api/notify"
	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
)

// Config is read from the environment once at startup.
type Config struct {
	// Env is dev, staging or production. RAILWAY_ENVIRONMENT set to any
	// value also counts as production.
	Env       string `env:"ENV" envDefault:"dev"`
	Railway   string `env:"RAILWAY_ENVIRONMENT"`
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	WebOrigin string `env:"WEB_ORIGIN" envDefault:"http://localhost:5173"`

	// ExtraOrigins are allowed by CORS in addition to WebOrigin and its twin.
	ExtraOrigins []string `env:"CORS_EXTRA_ORIGINS" envSeparator:","`

	// TrustProxy takes client addresses from X-Forwarded-For. Enable it only
	// behind a proxy that overwrites the header.
	TrustProxy bool             `env:"TRUST_PROXY"`
	RateLimits httpx.RateLimits `envPrefix:"RATELIMIT_"`

	JWT            JWT    `envPrefix:"JWT_"`
	AuthCookieName string `env:"AUTH_COOKIE_NAME" envDefault:"auth"`
	PIIKeyB64      string `env:"PII_ENC_KEY_B64,required,notEmpty"`
	PasswordPepper string `env:"PASSWORD_PEPPER"`

	Database Database `envPrefix:"DATABASE_"`
	// AutoMigrate is "1" to force, "0" to skip, empty for the environment default.
	AutoMigrate string `env:"AUTO_MIGRATE"`

	Root   StaffAccount `envPrefix:"ROOT_"`
	Admin1 StaffAccount `envPrefix:"ADMIN1_"`
	Admin2 StaffAccount `envPrefix:"ADMIN2_"`

	ContactEmail string `env:"CONTACT_EMAIL"`
	SMTP         SMTP   `envPrefix:"SMTP_"`

	Uploads Uploads `envPrefix:"UPLOADS_"`
	Storage Storage `envPrefix:"MINIO_"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	AuditRetention       time.Duration `env:"AUDIT_RETENTION" envDefault:"2160h"`
}

// JWT configures session tokens.
type JWT struct {
	Secret string `env:"SECRET,required,notEmpty"`
	Issuer string `env:"ISSUER" envDefault:"lexdesk-api"`
}

// Database selects the store driver: sqlite or postgres.
type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"`
	File   string `env:"FILE" envDefault:"lexdesk.db"`
	URL    string `env:"URL"`
}

// StaffAccount is a login ensured at startup. Root ignores Phone.
type StaffAccount struct {
	Email    string `env:"EMAIL"`
	Phone    string `env:"PHONE"`
	Password string `env:"PASSWORD"`
}

// SMTP configures notification email. Delivery is skipped unless host,
// user, password, sender and CONTACT_EMAIL are all set.
type SMTP struct {
	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"587"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
	From string `env:"FROM"`
}

// Uploads selects where admin images are kept: local or minio.
type Uploads struct {
	Driver string `env:"DRIVER" envDefault:"local"`
	Dir    string `env:"DIR" envDefault:"uploads"`
}

// Storage contains object storage parameters.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"lexdesk-uploads"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (Config, error) {
	// Unset variables keep these defaults.
	cfg := Config{RateLimits: httpx.DefaultRateLimits()}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.File == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for sqlite"))
		}
	case "postgres":
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver))
	}
	switch c.Uploads.Driver {
	case "local":
	case "minio":
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			errs = append(errs, errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for minio uploads"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown UPLOADS_DRIVER %q", c.Uploads.Driver))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether cookies must be cross-site capable.
func (c Config) IsProduction() bool {
	return httpx.IsProductionEnv(c.Env) || c.Railway != ""
}

// ShouldAutoMigrate applies the migration policy: outside production
// migrations run unless AUTO_MIGRATE=0; in production only with
// AUTO_MIGRATE=1.
func (c Config) ShouldAutoMigrate() bool {
	if c.IsProduction() {
		return c.AutoMigrate == "1"
	}
	return c.AutoMigrate != "0"
}

// CookiePolicy returns the session and CSRF cookie policy.
func (c Config) CookiePolicy() httpx.CookiePolicy {
	p := httpx.NewCookiePolicy(c.Env)
	p.Production = c.IsProduction()
	if c.AuthCookieName != "" {
		p.SessionName = c.AuthCookieName
	}
	return p
}

// SMTPConfig returns the notifier settings.
func (c Config) SMTPConfig() notify.SMTPConfig {
	return notify.SMTPConfig{
		Host: c.SMTP.Host,
		Port: c.SMTP.Port,
		User: c.SMTP.User,
		Pass: c.SMTP.Pass,
		From: c.SMTP.From,
		To:   c.ContactEmail,
	}
}

func (a StaffAccount) account() service.Account {
	return service.Account{Email: a.Email, Phone: a.Phone, Password: a.Password}
}
