package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/anyulbade/truck-tco-calculator/internal/moodle"
)

const (
	RemoteStoreMoodle   = "moodle"
	RemoteStorePostgres = "postgres"

	LocalStoreRedis  = "redis"
	LocalStoreMemory = "memory"
)

type Config struct {
	Port        string
	GinMode     string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool

	RemoteStore   string
	MoodleURL     string
	MoodleAPIBase string
	MoodleTimeout time.Duration

	LocalStore    string
	RedisAddress  string
	RedisPassword string
	RedisDB       int
	LocalStoreKey string

	EmissionsHorizonYears int
	SwaggerSpec           string
}

// Load reads the environment, after applying a .env file when one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "tco"),
		DBPassword:  getEnv("DB_PASSWORD", "tco_secret"),
		DBName:      getEnv("DB_NAME", "tco"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",

		RemoteStore:   getEnv("REMOTE_STORE", RemoteStoreMoodle),
		MoodleURL:     getEnv("MOODLE_URL", moodle.DefaultURL),
		MoodleAPIBase: getEnv("MOODLE_API_BASE", moodle.DefaultAPIBase),
		MoodleTimeout: getEnvDuration("MOODLE_TIMEOUT", 8*time.Second),

		LocalStore:    getEnv("LOCAL_STORE", LocalStoreRedis),
		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		LocalStoreKey: getEnv("LOCAL_STORE_KEY", "tco_calculations"),

		EmissionsHorizonYears: getEnvInt("EMISSIONS_HORIZON_YEARS", 0),
		SwaggerSpec:           getEnv("SWAGGER_SPEC", "docs/swagger.json"),
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// NeedsDatabase reports whether any configured component reads Postgres.
func (c *Config) NeedsDatabase() bool {
	return c.RemoteStore == RemoteStorePostgres || c.AutoMigrate
}

func (c *Config) Validate() error {
	switch c.RemoteStore {
	case RemoteStoreMoodle, RemoteStorePostgres:
	default:
		return fmt.Errorf("REMOTE_STORE must be %q or %q, got %q", RemoteStoreMoodle, RemoteStorePostgres, c.RemoteStore)
	}
	switch c.LocalStore {
	case LocalStoreRedis, LocalStoreMemory:
	default:
		return fmt.Errorf("LOCAL_STORE must be %q or %q, got %q", LocalStoreRedis, LocalStoreMemory, c.LocalStore)
	}
	if c.EmissionsHorizonYears < 0 {
		return fmt.Errorf("EMISSIONS_HORIZON_YEARS must not be negative, got %d", c.EmissionsHorizonYears)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
