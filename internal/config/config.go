package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the API reads from the environment.
type Config struct {
	Env       string
	Port      int
	SecretKey string

	DatabaseURI      string
	MaxOpenConns     int
	MaxIdleConns     int
	IdleTimeout      time.Duration
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
	QueryTimeout     time.Duration

	BcryptWorkFactor int

	GeminiAPIKey string
	GeminiModel  string
}

// IsTest reports whether the API runs against the test database.
func (c Config) IsTest() bool { return c.Env == "test" }

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Load reads a .env file when present and builds the Config from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	return FromEnv()
}

// FromEnv builds the Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Env:          getenv("APP_ENV", "development"),
		SecretKey:    os.Getenv("SECRET_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	if cfg.SecretKey == "" {
		if cfg.Env == "production" {
			return Config{}, errors.New("SECRET_KEY must be set when APP_ENV=production")
		}
		cfg.SecretKey = "secret-dev"
	}

	var err error
	if cfg.Port, err = intEnv("PORT", 3001); err != nil {
		return Config{}, err
	}
	if cfg.MaxOpenConns, err = intEnv("DB_MAX_OPEN_CONNS", 5); err != nil {
		return Config{}, err
	}
	if cfg.MaxIdleConns, err = intEnv("DB_MAX_IDLE_CONNS", 1); err != nil {
		return Config{}, err
	}
	if cfg.IdleTimeout, err = durationEnv("DB_IDLE_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ConnectTimeout, err = durationEnv("DB_CONNECT_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.StatementTimeout, err = durationEnv("DB_STATEMENT_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.QueryTimeout, err = durationEnv("QUERY_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	// Hashing is slowed down on purpose outside of tests.
	workFactor := 12
	if cfg.IsTest() {
		workFactor = 4
	}
	if cfg.BcryptWorkFactor, err = intEnv("BCRYPT_WORK_FACTOR", workFactor); err != nil {
		return Config{}, err
	}

	cfg.DatabaseURI = databaseURI(cfg.IsTest())
	return cfg, nil
}

func databaseURI(test bool) string {
	key, name := "DATABASE_URI", "jobly"
	if test {
		key, name = "TEST_DATABASE_URI", "jobly_test"
	}
	if uri := os.Getenv(key); uri != "" {
		return uri
	}

	u := url.URL{
		Scheme: "postgresql",
		Host:   getenv("DB_HOST", "localhost") + ":" + getenv("DB_PORT", "5432"),
		Path:   "/" + getenv("DB_NAME", name),
	}
	if user := os.Getenv("DATABASE_USERNAME"); user != "" {
		if pw := os.Getenv("DATABASE_PW"); pw != "" {
			u.User = url.UserPassword(user, pw)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
