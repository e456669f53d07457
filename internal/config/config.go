package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"cuotas"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Events struct {
		// File is used when no path is given on the command line.
		File      string `envconfig:"EVENTS_FILE"`
		Delimiter string `envconfig:"EVENTS_DELIMITER" default:";"`
	}

	Report struct {
		// Months is how many periods the run summarizes, starting at the current month.
		Months int `envconfig:"REPORT_MONTHS" default:"3"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// Comma returns the event file delimiter as a rune.
func (c *Config) Comma() rune {
	r, _ := utf8.DecodeRuneInString(c.Events.Delimiter)
	return r
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if utf8.RuneCountInString(cfg.Events.Delimiter) != 1 {
		return nil, fmt.Errorf("EVENTS_DELIMITER must be a single character, got %q", cfg.Events.Delimiter)
	}

	if cfg.Report.Months < 0 {
		return nil, fmt.Errorf("REPORT_MONTHS cannot be negative, got %d", cfg.Report.Months)
	}

	return &cfg, nil
}
