package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Configuration errors. Any of these means the service must not start.
var (
	ErrMissingDatabaseURL  = errors.New("database URL required (use -d or DATABASE_URL env)")
	ErrMissingSharedSecret = errors.New("SHARED_SECRET required")
	ErrInvalidDatabaseType = errors.New("DATABASE_TYPE must be postgres or sqlite")
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"

	defaultPort    = 8000
	defaultEnvFile = ".env"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	SharedSecret string
	Migrate      bool
	CORSOrigin   string
	LogLevel     slog.Level

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// LogValue keeps the shared secret and database credentials out of logs.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("port", c.Port),
		slog.String("database_type", c.DatabaseType),
		slog.Bool("migrate", c.Migrate),
		slog.String("cors_origin", c.CORSOrigin),
		slog.String("log_level", c.LogLevel.String()),
		slog.Int("max_open_conns", c.MaxOpenConns),
	)
}

// ParseFlags validates flags, falls back to the environment and
// loads the dotenv file before reading either.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, logLevel string
	var maxOpen, maxIdle int
	var lifetime time.Duration

	fs := flag.NewFlagSet("admin-gate", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", "", "Allowed CORS origin")
	fs.BoolVar(&cfg.Migrate, "migrate", false, "Apply schema migrations at startup")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&envFile, "env-file", "", "Path to a dotenv file")

	// Pool sizing
	fs.IntVar(&maxOpen, "max-open-conns", 0, "Maximum open database connections")
	fs.IntVar(&maxIdle, "max-idle-conns", 0, "Maximum idle database connections")
	fs.DurationVar(&lifetime, "conn-max-lifetime", 0, "Maximum connection lifetime")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SharedSecret, "shared-secret", "", "Shared secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := LoadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", defaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabasePostgres
		}
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseType != DatabasePostgres && cfg.DatabaseType != DatabaseSQLite {
		return Config{}, ErrInvalidDatabaseType
	}

	if !cfg.Migrate {
		if v := os.Getenv("RUN_MIGRATIONS"); v != "" {
			migrate, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid RUN_MIGRATIONS env variable")
			}
			cfg.Migrate = migrate
		}
	}

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = os.Getenv("CORS_ORIGIN")
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	var err error
	if cfg.MaxOpenConns, err = orEnvInt(maxOpen, "DB_MAX_OPEN_CONNS", 10); err != nil {
		return Config{}, err
	}
	if cfg.MaxIdleConns, err = orEnvInt(maxIdle, "DB_MAX_IDLE_CONNS", 5); err != nil {
		return Config{}, err
	}
	cfg.ConnMaxLifetime = lifetime
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = 30 * time.Minute
		if v := os.Getenv("DB_CONN_MAX_LIFETIME"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, errors.New("invalid DB_CONN_MAX_LIFETIME env variable")
			}
			cfg.ConnMaxLifetime = d
		}
	}

	// Secret - MUST be provided, an empty value would open every route
	if cfg.SharedSecret == "" {
		cfg.SharedSecret = os.Getenv("SHARED_SECRET")
	}
	if cfg.SharedSecret == "" {
		return Config{}, ErrMissingSharedSecret
	}

	return cfg, nil
}

// LoadEnvFile loads a dotenv file without overriding variables that are
// already set. An empty path means ".env", which may be absent; an
// explicit path (argument or ENV_FILE) must exist.
func LoadEnvFile(path string) error {
	if path == "" {
		path = os.Getenv("ENV_FILE")
	}
	if path == "" {
		err := godotenv.Load(defaultEnvFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", defaultEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func orEnvInt(flagValue int, key string, def int) (int, error) {
	if flagValue != 0 {
		return flagValue, nil
	}
	return envInt(key, def)
}
