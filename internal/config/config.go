package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageBadger = "badger"
)

type Config struct {
	Host                string
	Port                int
	AllowedOrigins      string
	Storage             string
	DataDir             string
	MatchmakingInterval time.Duration
	LogLevel            log.Level
}

func Default() Config {
	return Config{
		Host:                "0.0.0.0",
		Port:                3000,
		AllowedOrigins:      "http://localhost:5173",
		Storage:             StorageMemory,
		DataDir:             "./data",
		MatchmakingInterval: time.Second,
		LogLevel:            log.InfoLevel,
	}
}

// Load reads .env files if present, then the environment.
func Load(files ...string) (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(files...)
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return cfg, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = p
	}
	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = v
	}
	if v := getenv("STORAGE"); v != "" {
		v = strings.ToLower(v)
		if v != StorageMemory && v != StorageBadger {
			return cfg, fmt.Errorf("invalid STORAGE %q, want %s or %s", v, StorageMemory, StorageBadger)
		}
		cfg.Storage = v
	}
	if v, ok := lookup(getenv, "DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v := getenv("MATCHMAKING_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid MATCHMAKING_INTERVAL %q", v)
		}
		cfg.MatchmakingInterval = d
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

// lookup treats "-" as an explicitly empty value.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	if v == "" {
		return "", false
	}
	if v == "-" {
		return "", true
	}
	return v, true
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
