package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/planhive/planhive/pkg/logging"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
			continue
		}
		// Tests and CLIs run from package directories; fall back to the
		// module root so one .env serves the whole tree.
		if root, ok := moduleRoot(); ok {
			candidate := filepath.Join(root, file)
			if _, err := os.Stat(candidate); err == nil {
				existingFiles = append(existingFiles, candidate)
			}
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

func moduleRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"planhive"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint    string `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"planhive"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type RateLimitOptions struct {
	Enabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	GlobalRPS int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"1000"`
	Storage   string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL  string `env:"RATE_LIMIT_REDIS_URL"`
}

// Validate checks the rate limit configuration for errors
func (r *RateLimitOptions) Validate() error {
	if r.GlobalRPS < 0 {
		return fmt.Errorf("rate limit GlobalRPS must be non-negative, got %d", r.GlobalRPS)
	}
	if r.GlobalRPS > 1000000 {
		return fmt.Errorf("rate limit GlobalRPS too high, maximum is 1,000,000, got %d", r.GlobalRPS)
	}
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit Storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return fmt.Errorf("rate limit RedisURL is required when Storage is 'redis'")
	}
	return nil
}

type OutboxOptions struct {
	RelayEnabled         bool          `env:"OUTBOX_RELAY_ENABLED" envDefault:"true"`
	RelayTables          string        `env:"OUTBOX_RELAY_TABLES" envDefault:"public.staffing_outbox"`
	RelayPollInterval    time.Duration `env:"OUTBOX_RELAY_POLL_INTERVAL" envDefault:"1s"`
	RelayBatchSize       int           `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`
	RelayLockTTL         time.Duration `env:"OUTBOX_RELAY_LOCK_TTL" envDefault:"60s"`
	RelayMaxAttempts     int           `env:"OUTBOX_RELAY_MAX_ATTEMPTS" envDefault:"25"`
	RelaySingleActive    bool          `env:"OUTBOX_RELAY_SINGLE_ACTIVE" envDefault:"true"`
	RelayDispatchTimeout time.Duration `env:"OUTBOX_RELAY_DISPATCH_TIMEOUT" envDefault:"30s"`

	LastErrorMaxBytes int `env:"OUTBOX_LAST_ERROR_MAX_BYTES" envDefault:"2048"`

	CleanerEnabled       bool          `env:"OUTBOX_CLEANER_ENABLED" envDefault:"true"`
	CleanerTables        string        `env:"OUTBOX_CLEANER_TABLES" envDefault:""`
	CleanerInterval      time.Duration `env:"OUTBOX_CLEANER_INTERVAL" envDefault:"1m"`
	CleanerRetention     time.Duration `env:"OUTBOX_CLEANER_RETENTION" envDefault:"168h"`
	CleanerDeadRetention time.Duration `env:"OUTBOX_CLEANER_DEAD_RETENTION" envDefault:"0"`
}

type AuthzOptions struct {
	Enabled bool `env:"AUTHZ_ENABLED" envDefault:"false"`
	// disabled, shadow (log-only) or enforce.
	Mode string `env:"AUTHZ_MODE" envDefault:"enforce"`
	// Header carrying the authenticated user email, set by the fronting proxy.
	IdentityHeader string `env:"AUTHZ_IDENTITY_HEADER" envDefault:"X-Forwarded-Email"`
}

type ImportOptions struct {
	// Upper bound on bind parameters per INSERT statement.
	BatchParamCeiling int    `env:"IMPORT_PARAM_CEILING" envDefault:"60000"`
	DefaultLocale     string `env:"IMPORT_DEFAULT_LOCALE" envDefault:"en"`
}

type Configuration struct {
	Database      DatabaseOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions
	RateLimit     RateLimitOptions
	Outbox        OutboxOptions
	Authz         AuthzOptions
	Import        ImportOptions

	ServerPort       int    `env:"PORT" envDefault:"3200"`
	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string `env:"-"`
	Domain           string `env:"DOMAIN" envDefault:"localhost"`
	Origin           string `env:"ORIGIN" envDefault:"http://localhost:3200"`
	PageSize         int    `env:"PAGE_SIZE" envDefault:"25"`
	MaxPageSize      int    `env:"MAX_PAGE_SIZE" envDefault:"100"`
	MaxUploadSize    int64  `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`
	MaxUploadMemory  int64  `env:"MAX_UPLOAD_MEMORY" envDefault:"33554432"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`
	LogPath          string `env:"LOG_PATH" envDefault:"./logs/app.log"`
	// Looked up on every request; when absent a random uuidv4 is generated.
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// Looked up on every request; when absent request.RemoteAddr is used.
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`

	// Ops endpoints (metrics, debug) are fenced off in production.
	OpsGuardEnabled       bool   `env:"OPS_GUARD_ENABLED" envDefault:"true"`
	OpsGuardCIDRs         string `env:"OPS_GUARD_CIDRS"`
	OpsGuardToken         string `env:"OPS_GUARD_TOKEN"`
	OpsGuardBasicAuthUser string `env:"OPS_GUARD_BASIC_AUTH_USER"`
	OpsGuardBasicAuthPass string `env:"OPS_GUARD_BASIC_AUTH_PASS"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production { // assume 'https' on production mode
		return "https"
	}
	return "http"
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit configuration error: %w", err)
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	// Update Domain and Origin dynamically if they weren't explicitly set via
	// environment variables so logs show the effective port.
	if os.Getenv("DOMAIN") == "" {
		c.Domain = "localhost"
	}
	if os.Getenv("ORIGIN") == "" {
		if c.GoAppEnvironment == "development" {
			c.Origin = fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Domain, c.ServerPort)
		} else {
			c.Origin = fmt.Sprintf("%s://%s", c.Scheme(), c.Domain)
		}
	}

	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
