package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// PostgresNode is one side of the read/write database split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"     default:"hotel"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

// DSN renders a postgres:// URL for the node with credentials escaped. extra
// is merged into the query string.
func (n PostgresNode) DSN(dbName string, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", n.SSLMode)

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(n.Username, n.Password),
		Host:     net.JoinHostPort(n.Host, n.Port),
		Path:     dbName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"hotel-ledger"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"     default:"localhost"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret string `envconfig:"ACCESS_SECRET"`
		Issuer       string `envconfig:"ISSUER"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int          `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MaxConnections int          `envconfig:"MAX_CONNECTIONS" default:"10"`
			MigrationTable string       `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
			Prefix         string       `envconfig:"PREFIX"`
			Read           PostgresNode `envconfig:"READ"`
			Write          PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable  bool     `envconfig:"ENABLE"`
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			Booking string `envconfig:"BOOKING" default:"hotel.bookings"`
			Ledger  string `envconfig:"LEDGER"  default:"hotel.ledger"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Ledger struct {
		InvoiceDueDays    int `envconfig:"INVOICE_DUE_DAYS"    default:"7"`
		DashboardCacheTTL int `envconfig:"DASHBOARD_CACHE_TTL" default:"30"`
	} `envconfig:"LEDGER"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// DatabaseName applies the configured prefix to a database name.
func (c *Config) DatabaseName(base string) string {
	return c.DB.Postgres.Prefix + base
}

// Validate rejects settings the ledger cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Ledger.InvoiceDueDays < 0 {
		errs = append(errs, errors.New("LEDGER_INVOICE_DUE_DAYS must not be negative"))
	}

	if c.Ledger.DashboardCacheTTL <= 0 {
		errs = append(errs, errors.New("LEDGER_DASHBOARD_CACHE_TTL must be positive"))
	}

	if c.App.RateLimiter.Enable && (c.App.RateLimiter.MaxRequests <= 0 || c.App.RateLimiter.WindowSeconds <= 0) {
		errs = append(errs, errors.New("APP_RATE_LIMITER needs positive MAX_REQUESTS and WINDOW_SECONDS"))
	}

	if c.Kafka.Enable && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when kafka is enabled"))
	}

	if c.External.Otel.SampleRatio < 0 || c.External.Otel.SampleRatio > 1 {
		errs = append(errs, errors.New("EXTERNAL_OTEL_SAMPLE_RATIO must be within [0, 1]"))
	}

	return errors.Join(errs...)
}

// Load reads the environment, with .env applied first when present, and
// validates the result.
func Load() (Config, error) {
	var cfg Config

	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file, using process environment")
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("processing environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

var (
	conf    Config
	once    sync.Once
	initErr error
)

// Init loads the process-wide configuration once. Later calls return the
// first outcome.
func Init() error {
	once.Do(func() {
		conf, initErr = Load()
		if initErr == nil {
			log.Info().Str("env", conf.Server.Env).Msg("configuration loaded")
		}
	})

	return initErr
}

func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	return &conf
}
