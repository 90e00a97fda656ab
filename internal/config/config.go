// Package config handles loading and validation of application configuration
// from YAML files and environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/islandbeat/eventradar/internal/logger"
)

// Scrape limits.
const (
	DefaultMessageLimit = 100
	MaxMessageLimit     = 1000
)

// Server defaults.
const (
	defaultServerAddress      = ":8085"
	defaultServerReadTimeout  = 30 * time.Second
	defaultServerWriteTimeout = 60 * time.Second
	defaultServerIdleTimeout  = 120 * time.Second
)

// Config is the root application configuration.
type Config struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Logger   logger.Config  `mapstructure:"logger"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
}

// ServiceConfig identifies the running service.
type ServiceConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Debug   bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds record store settings. Driver selects between
// postgres (production) and sqlite (local/dev).
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	// Path is the database file for the sqlite driver.
	Path string `mapstructure:"path"`
}

// ScraperConfig holds the pipeline configuration: the ordered keyword
// vocabulary, the channels to monitor, and extraction knobs.
type ScraperConfig struct {
	Channels     []string `mapstructure:"channels"`
	Keywords     []string `mapstructure:"keywords"`
	MessageLimit int      `mapstructure:"message_limit"`
	// WordBoundary switches keyword matching from substring containment to
	// whole-word matching. Off by default: the vocabulary is tuned for loose
	// containment ("yoga" matches inside "yogait").
	WordBoundary bool `mapstructure:"word_boundary"`
	// DateYears maps lowercase month names to the year the date extractor
	// assumes for "Month day" mentions. Months absent from the table never
	// match. The default table is tied to one festival season on purpose.
	DateYears map[string]int `mapstructure:"date_years"`
}

// DateTable converts the configured month->year table into time.Month keys.
// Unknown month names are ignored.
func (s *ScraperConfig) DateTable() map[time.Month]int {
	table := make(map[time.Month]int, len(s.DateYears))
	for name, year := range s.DateYears {
		if m, ok := monthsByName[strings.ToLower(name)]; ok {
			table[m] = year
		}
	}
	return table
}

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// Validation errors for misconfiguration. These are fatal: the caller must
// be able to tell "ran and found nothing" from "not configured".
var (
	ErrNoKeywords = errors.New("config: scraper keyword vocabulary is empty")
	ErrNoChannels = errors.New("config: scraper channel list is empty")
)

// Validate checks the configuration for fatal problems.
func (c *Config) Validate() error {
	if len(c.Scraper.Keywords) == 0 {
		return ErrNoKeywords
	}
	if len(c.Scraper.Channels) == 0 {
		return ErrNoChannels
	}
	if c.Scraper.MessageLimit < 1 || c.Scraper.MessageLimit > MaxMessageLimit {
		return fmt.Errorf("config: message_limit must be between 1 and %d, got %d",
			MaxMessageLimit, c.Scraper.MessageLimit)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	return nil
}

// Load reads configuration from the given file (optional), environment
// variables, and defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("EVENTRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Config file is optional: env and defaults are enough to run.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return LoadFrom(v)
}

// LoadFrom unmarshals and validates configuration from a prepared viper
// instance. Split out so tests can supply their own.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
