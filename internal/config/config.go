// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"smartmedia-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// API contains transcoding API credentials
	API APIConfig `json:"api"`

	// Report contains report generation settings
	Report ReportConfig `json:"report"`

	// Enrichment contains the default enrichment feature selection
	Enrichment EnrichmentConfig `json:"enrichment"`

	// Database contains database connection settings
	Database DatabaseConfig `json:"database"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// APIConfig contains credentials for the transcoding service.
// The report run is a no-op when credentials are absent.
type APIConfig struct {
	// Key is the API access key
	Key string `json:"key,omitempty"`

	// Secret is the API secret
	Secret string `json:"secret,omitempty"`

	// Region is the pricing region code
	Region string `json:"region"`
}

// Configured reports whether API credentials are present
func (a APIConfig) Configured() bool {
	return a.Key != "" && a.Secret != ""
}

// ReportConfig contains report generation settings
type ReportConfig struct {
	// ProactiveConversion enables the forward-looking cost estimate
	ProactiveConversion bool `json:"proactive_conversion"`

	// LookbackSeconds is how far back unconverted media is considered
	LookbackSeconds int64 `json:"lookback_seconds"`

	// HDMinHeight is the minimum video height billed at the HD tier
	HDMinHeight int `json:"hd_min_height"`

	// SDHeight is the representative height used for SD bucket estimates
	SDHeight int `json:"sd_height"`

	// AudioHeight is the representative height used for audio bucket estimates
	AudioHeight int `json:"audio_height"`

	// Schedule is the cron expression used by the report daemon
	Schedule string `json:"schedule"`

	// PresetFile is an optional JSON file holding the preset catalog;
	// when empty the built-in catalog is used
	PresetFile string `json:"preset_file,omitempty"`

	// PricingDir is an optional directory of per-region pricing files;
	// when empty the built-in rate table is used
	PricingDir string `json:"pricing_dir,omitempty"`
}

// EnrichmentConfig contains the default enrichment feature flags used
// for forward-looking estimates, where no conversion record exists yet.
type EnrichmentConfig struct {
	// FaceDetection enables face detection analysis
	FaceDetection bool `json:"face_detection"`

	// ContentModeration enables content moderation analysis
	ContentModeration bool `json:"content_moderation"`

	// LabelDetection enables label detection analysis
	LabelDetection bool `json:"label_detection"`

	// PersonTracking enables person tracking analysis
	PersonTracking bool `json:"person_tracking"`

	// Transcription enables speech transcription
	Transcription bool `json:"transcription"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	// Host is the database host
	Host string `json:"host"`

	// Port is the database port
	Port int `json:"port"`

	// Name is the database name
	Name string `json:"name"`

	// User is the database user
	User string `json:"user"`

	// Password is the database password
	Password string `json:"password,omitempty"`

	// SSLMode is the postgres sslmode setting
	SSLMode string `json:"ssl_mode"`

	// MaxOpenConns limits the connection pool
	MaxOpenConns int `json:"max_open_conns"`

	// MaxIdleConns limits idle pooled connections
	MaxIdleConns int `json:"max_idle_conns"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		API: APIConfig{
			Region: "us-east-1",
		},
		Report: ReportConfig{
			ProactiveConversion: false,
			LookbackSeconds:     7 * 24 * 3600,
			HDMinHeight:         720,
			SDHeight:            540,
			AudioHeight:         0,
			Schedule:            "0 * * * *",
		},
		Enrichment: EnrichmentConfig{},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			Name:         "smartmedia",
			User:         "postgres",
			SSLMode:      "disable",
			MaxOpenConns: 10,
			MaxIdleConns: 2,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
