// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for companion configuration.
	DefaultConfigDir = ".companion"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default SQLite database file name.
	DefaultDatabaseFile = "companion.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	LLM        LLMConfig        `yaml:"llm,omitempty"`
	Embedder   EmbedderConfig   `yaml:"embedder,omitempty"`
	Qdrant     QdrantConfig     `yaml:"qdrant,omitempty"`
	SQLite     SQLiteConfig     `yaml:"sqlite,omitempty"`
	Quota      QuotaConfig      `yaml:"quota,omitempty"`
	Extraction ExtractionConfig `yaml:"extraction,omitempty"`
	Contact    ContactConfig    `yaml:"contact,omitempty"`
}

// LLMConfig holds configuration for the entity inference provider.
type LLMConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant note index.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	Path string `yaml:"path,omitempty"`
}

// QuotaConfig holds the default extraction limits per usage window.
// Per-user overrides (custom daily limit, unlimited flag) live in the
// database, not here.
type QuotaConfig struct {
	DailyLimit   int `yaml:"daily_limit,omitempty"`
	WeeklyLimit  int `yaml:"weekly_limit,omitempty"`
	MonthlyLimit int `yaml:"monthly_limit,omitempty"`
}

// ExtractionConfig holds local thresholds for the extraction pipeline.
type ExtractionConfig struct {
	// MinContentLength rejects notes shorter than this before any quota
	// is consumed.
	MinContentLength int `yaml:"min_content_length,omitempty"`
	// TimeoutSeconds bounds a single inference call.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the inference timeout as a duration.
func (c ExtractionConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ContactConfig is the escalation payload shown with quota rejections.
type ContactConfig struct {
	Message          string `yaml:"message,omitempty"`
	ContactURL       string `yaml:"contact_url,omitempty"`
	PrefilledSubject string `yaml:"prefilled_subject,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Embedder: EmbedderConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "companion_notes",
		},
		Quota: QuotaConfig{
			DailyLimit:   10,
			WeeklyLimit:  30,
			MonthlyLimit: 75,
		},
		Extraction: ExtractionConfig{
			MinContentLength: 50,
			TimeoutSeconds:   60,
		},
		Contact: ContactConfig{
			Message:          "You have reached your extraction limit. Contact the game master to request a higher limit.",
			ContactURL:       "mailto:gm@example.com",
			PrefilledSubject: "Extraction limit increase request",
		},
	}
}

// Load loads configuration from the .companion directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'companion init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = filepath.Join(ConfigDir(basePath), DefaultDatabaseFile)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if c.LLM.APIKey == "" {
			c.LLM.APIKey = key
		}
		if c.Embedder.APIKey == "" {
			c.Embedder.APIKey = key
		}
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" {
		if c.Qdrant.APIKey == "" {
			c.Qdrant.APIKey = key
		}
	}
}

// ConfigDir returns the path to the .companion config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a companion config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
