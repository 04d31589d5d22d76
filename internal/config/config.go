package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultGracePeriod     = 30 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// Config holds the server settings read from the environment.
type Config struct {
	Port              string
	LogLevel          string
	EnforceForcedGrid bool
	RoomGracePeriod   time.Duration
	ShutdownTimeout   time.Duration
	AllowedOrigins    []string
}

// Load reads an optional .env file from the given paths (".env" when none
// are given) and then builds the configuration from environment variables.
// Variables already set in the environment take precedence over the file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", defaultPort),
		LogLevel:          getEnv("LOG_LEVEL", defaultLogLevel),
		EnforceForcedGrid: true,
		RoomGracePeriod:   defaultGracePeriod,
		ShutdownTimeout:   defaultShutdownTimeout,
	}

	if v, ok := os.LookupEnv("ENFORCE_FORCED_GRID"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("ENFORCE_FORCED_GRID: %w", err)
		}
		cfg.EnforceForcedGrid = b
	}

	var err error
	if cfg.RoomGracePeriod, err = getDuration("ROOM_GRACE_PERIOD", defaultGracePeriod); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return nil, fmt.Errorf("PORT %q is not a valid port", cfg.Port)
	}

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", key, v)
	}
	return d, nil
}
