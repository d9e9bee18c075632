package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load a .env file into the process environment when present.
// Variables already set in the environment win over the file.
func Load(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: load env file: %w", err)
	}
	return nil
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	return d, nil
}

// Settings shared by the command line tools.
type Config struct {
	AppEnv       string
	LogLevel     string
	DBDriver     string
	DatabaseURL  string
	CatalogPath  string
	SeedPath     string
	MaxSolutions int
	MaxExplored  int
	Timeout      time.Duration
}

// Read the configuration from the environment, applying defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		AppEnv:      Get("APP_ENV", "development"),
		LogLevel:    Get("LOG_LEVEL", "info"),
		DBDriver:    Get("DB_DRIVER", "pgx"),
		DatabaseURL: Get("DATABASE_URL", ""),
		CatalogPath: Get("CATALOG_PATH", ""),
		SeedPath:    Get("SEED_PATH", "data/seeds/vehicle_types.yaml"),
	}

	var err error
	if cfg.MaxSolutions, err = GetInt("OPTIMIZER_MAX_SOLUTIONS", 10); err != nil {
		return Config{}, err
	}
	if cfg.MaxExplored, err = GetInt("OPTIMIZER_MAX_EXPLORED", 1_000_000); err != nil {
		return Config{}, err
	}
	if cfg.Timeout, err = GetDuration("OPTIMIZER_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}

	switch cfg.DBDriver {
	case "pgx", "sqlite":
	default:
		return Config{}, fmt.Errorf("config: DB_DRIVER must be pgx or sqlite, got %q", cfg.DBDriver)
	}

	return cfg, nil
}
