package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
//
// It is treated as immutable after Load: components receive it (or a
// sub-struct) at construction and never mutate it.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Server  ServerConfig  `yaml:"server"`
	Index   IndexConfig   `yaml:"index"`
	Audit   AuditConfig   `yaml:"audit"`
	Refresh RefreshConfig `yaml:"refresh"`
}

// ContentConfig describes where page sources live and how routes map to them.
type ContentConfig struct {
	// Dir is the general documentation content root (MDX files).
	Dir string `yaml:"dir"`
	// ReportsDir holds migrated report posts, routed under the report namespace.
	ReportsDir string `yaml:"reports_dir"`
	// APISpecPath points at the external OpenAPI document used to derive schema routes.
	APISpecPath string `yaml:"api_spec_path"`
	// BaseURL is prepended to canonical page URLs (empty for site-relative URLs).
	BaseURL string `yaml:"base_url,omitempty"`
	// DefaultLocale is used when a page or lookup carries no locale.
	DefaultLocale string `yaml:"default_locale,omitempty"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr            string        `yaml:"addr,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// IndexConfig configures page index persistence.
type IndexConfig struct {
	// DBPath is the SQLite file used by `docsite index` and server warm start.
	// Empty disables persistence.
	DBPath string `yaml:"db_path,omitempty"`
}

// AuditConfig configures the link audit facility.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// RefreshConfig controls periodic re-enumeration in watch mode.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval,omitempty"`
	Debounce time.Duration `yaml:"debounce,omitempty"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Content: ContentConfig{
			Dir:           "content/docs",
			ReportsDir:    "content/reports",
			APISpecPath:   "specs/openapi.yaml",
			DefaultLocale: "en",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 15 * time.Second,
		},
		Audit: AuditConfig{
			Subject: "docsite.links.unresolved",
		},
		Refresh: RefreshConfig{
			Interval: 15 * time.Minute,
			Debounce: 2 * time.Second,
		},
	}
}

// Load loads configuration from the specified file.
//
// A missing file is not an error: defaults plus environment overrides are
// returned so the CLI works out of the box in a content checkout.
func Load(configPath string) (*Config, error) {
	// Load .env/.env.local if present; existing process env wins.
	for _, envPath := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envPath); err == nil {
			break
		}
	}

	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			if err := cfg.validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read configuration file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse configuration file %s: %w", configPath, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets deployment environments override file settings
// without editing the checked-in config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DOCSITE_CONTENT_DIR"); v != "" {
		cfg.Content.Dir = v
	}
	if v := os.Getenv("DOCSITE_REPORTS_DIR"); v != "" {
		cfg.Content.ReportsDir = v
	}
	if v := os.Getenv("DOCSITE_API_SPEC"); v != "" {
		cfg.Content.APISpecPath = v
	}
	if v := os.Getenv("DOCSITE_BASE_URL"); v != "" {
		cfg.Content.BaseURL = v
	}
	if v := os.Getenv("DOCSITE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DOCSITE_INDEX_DB"); v != "" {
		cfg.Index.DBPath = v
	}
	if v := os.Getenv("DOCSITE_NATS_URL"); v != "" {
		cfg.Audit.NATSURL = v
		cfg.Audit.Enabled = true
	}
	if v := os.Getenv("DOCSITE_AUDIT_ENABLED"); v != "" {
		cfg.Audit.Enabled = v == "true" || v == "1"
	}
}

func (c *Config) validate() error {
	if c.Content.Dir == "" {
		return fmt.Errorf("content.dir must not be empty")
	}
	if c.Content.DefaultLocale == "" {
		c.Content.DefaultLocale = "en"
	}
	if c.Audit.Enabled && c.Audit.NATSURL == "" {
		return fmt.Errorf("audit.nats_url is required when audit is enabled")
	}
	return nil
}
