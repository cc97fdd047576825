package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "WORDCARDS"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is read from WORDCARDS_* environment variables,
// e.g. WORDCARDS_DB_DRIVER or WORDCARDS_PORT.
type Config struct {
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// Console output instead of JSON lines
	LogPretty bool `envconfig:"LOG_PRETTY" default:"false"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBURL      string `envconfig:"DB_URL"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"wordcards.db"`
	StorageKey string `envconfig:"STORAGE_KEY" default:"flashcards"`

	Port           string   `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	// Mutating API routes require a bearer token when set
	JWTSecret   string        `envconfig:"JWT_SECRET"`
	JWTIssuer   string        `envconfig:"JWT_ISSUER" default:"wordcards"`
	JWTAudience string        `envconfig:"JWT_AUDIENCE" default:"wordcards-api"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

// LoadDotEnv loads a .env file unless we are running on a hosted platform.
func LoadDotEnv() error {
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") != "" {
		return nil
	}
	return godotenv.Load()
}

// New parses the environment into a Config and validates it.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if c.DBURL == "" {
			return fmt.Errorf("DB_URL is required for the %s driver", DriverPostgres)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("STORAGE_KEY must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}
