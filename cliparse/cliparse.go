package cliparse

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMemory   = "memory"
)

type Config struct {
	Port            int           `yaml:"port"`
	DatabaseURL     string        `yaml:"database_url"`
	DatabaseType    string        `yaml:"database_type"`
	Timezone        string        `yaml:"timezone"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	RateLimit       string        `yaml:"rate_limit"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	ConfigFile      string        `yaml:"-"`
}

// BindFlags registers every setting on fs. Unset flags keep zero values so
// Resolve can fill them from the environment, the config file and defaults.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL (sqlite path or postgres URL)")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.Timezone, "timezone", "", "IANA zone that defines the start of a day")
	fs.DurationVar(&cfg.RefreshInterval, "refresh-interval", 0, "Dashboard refresh interval")
	fs.StringVar(&cfg.RateLimit, "rate-limit", "", `Per-IP API rate ("100-M"), "off" disables`)
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML config file")
}

// ParseFlags parses args and resolves the remaining settings
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("hydrate", pflag.ContinueOnError)
	BindFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := Resolve(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve fills unset fields from the environment (after loading .env),
// then the YAML config file, then defaults, and validates the result.
func Resolve(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if err := fromEnv(cfg); err != nil {
		return err
	}

	if cfg.ConfigFile != "" {
		if err := fromFile(cfg, cfg.ConfigFile); err != nil {
			return err
		}
	}

	applyDefaults(cfg)

	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabaseMemory:
	default:
		return fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	if cfg.RefreshInterval <= 0 {
		return errors.New("refresh interval must be positive")
	}

	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}

	// Deferred failure: the store reports every query as unconfigured.
	if cfg.DatabaseURL == "" && cfg.DatabaseType != DatabaseMemory {
		slog.Warn("database URL not set (use -d or DATABASE_URL env); queries will fail")
	}

	return nil
}

func fromEnv(cfg *Config) error {
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		}
	}
	if cfg.RefreshInterval == 0 {
		if s := os.Getenv("REFRESH_INTERVAL"); s != "" {
			d, err := parseSeconds(s)
			if err != nil {
				return errors.New("invalid REFRESH_INTERVAL env variable")
			}
			cfg.RefreshInterval = d
		}
	}

	setIfEmpty(&cfg.DatabaseURL, os.Getenv("DATABASE_URL"))
	setIfEmpty(&cfg.DatabaseType, os.Getenv("DATABASE_TYPE"))
	setIfEmpty(&cfg.Timezone, os.Getenv("TZ_NAME"))
	setIfEmpty(&cfg.RateLimit, os.Getenv("RATE_LIMIT"))
	setIfEmpty(&cfg.LogLevel, os.Getenv("LOG_LEVEL"))
	setIfEmpty(&cfg.LogFormat, os.Getenv("LOG_FORMAT"))
	setIfEmpty(&cfg.ConfigFile, os.Getenv("CONFIG_FILE"))
	return nil
}

func fromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.Port == 0 {
		cfg.Port = file.Port
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = file.RefreshInterval
	}
	setIfEmpty(&cfg.DatabaseURL, file.DatabaseURL)
	setIfEmpty(&cfg.DatabaseType, file.DatabaseType)
	setIfEmpty(&cfg.Timezone, file.Timezone)
	setIfEmpty(&cfg.RateLimit, file.RateLimit)
	setIfEmpty(&cfg.LogLevel, file.LogLevel)
	setIfEmpty(&cfg.LogFormat, file.LogFormat)
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = 3318
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = 30 * time.Second
	}
	setIfEmpty(&cfg.DatabaseType, DatabaseSQLite)
	setIfEmpty(&cfg.Timezone, "Local")
	setIfEmpty(&cfg.RateLimit, "100-M")
	setIfEmpty(&cfg.LogLevel, "info")
	setIfEmpty(&cfg.LogFormat, "text")
}

// Location returns the zone that defines "today". Resolve has already validated it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Level returns the configured slog level, defaulting to info.
func (c Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// parseSeconds accepts "30s", "1m" or a bare number of seconds.
func parseSeconds(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
