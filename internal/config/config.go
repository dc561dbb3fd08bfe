package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devbush/swiftconvert/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Endpoints EndpointsConfig `yaml:"endpoints"`
	Limits    LimitsConfig    `yaml:"limits"`
	Archive   ArchiveConfig   `yaml:"archive"`
}

// DefaultsConfig holds the settings used when no session exists
type DefaultsConfig struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	Quality    int    `yaml:"quality"`
	SessionTTL string `yaml:"session_ttl"`
}

// EndpointsConfig holds the remote services the client talks to
type EndpointsConfig struct {
	BackendURL   string `yaml:"backend_url"`
	AnalyticsURL string `yaml:"analytics_url"`
	AnalyticsKey string `yaml:"analytics_key"`
	SignInURL    string `yaml:"sign_in_url"`
}

// LimitsConfig bounds a single upload selection
type LimitsConfig struct {
	MaxTotalSize string `yaml:"max_total_size"`
	MaxFiles     int    `yaml:"max_files"`
}

// ArchiveConfig controls local exports
type ArchiveConfig struct {
	Compression string `yaml:"compression"` // deflate, zstd, xz or store
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Input:      string(domain.FileTypeJPG),
			Output:     string(domain.FileTypePNG),
			Quality:    domain.DefaultQuality,
			SessionTTL: "24h",
		},
		Endpoints: EndpointsConfig{
			BackendURL: "http://localhost:8080",
		},
		Limits: LimitsConfig{
			MaxTotalSize: "50MB",
			MaxFiles:     5,
		},
		Archive: ArchiveConfig{
			Compression: "deflate",
		},
	}
}

// AppDir returns the application directory (~/.swiftconvert)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swiftconvert"
	}
	return filepath.Join(home, ".swiftconvert")
}

// SessionDir returns the session directory
func SessionDir() string {
	return filepath.Join(AppDir(), "session")
}

// AuthPath returns the signed-in identity file
func AuthPath() string {
	return filepath.Join(AppDir(), "auth.yaml")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{AppDir(), SessionDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveDefault saves config to default path
func (c *Config) SaveDefault() error {
	return c.Save(ConfigPath())
}

// Validate checks values that cannot be fixed up silently
func (c *Config) Validate() error {
	if _, err := c.DefaultSettings(); err != nil {
		return err
	}
	if _, err := c.GetSessionTTL(); err != nil {
		return fmt.Errorf("defaults.session_ttl: %w", err)
	}
	if _, err := c.GetMaxTotalSize(); err != nil {
		return fmt.Errorf("limits.max_total_size: %w", err)
	}
	if c.Limits.MaxFiles < 1 {
		return fmt.Errorf("limits.max_files must be at least 1, got %d", c.Limits.MaxFiles)
	}
	return nil
}

// DefaultSettings converts the defaults section into domain settings
func (c *Config) DefaultSettings() (domain.Settings, error) {
	s := domain.DefaultSettings()

	input, err := domain.ParseFileTypeID(c.Defaults.Input)
	if err != nil {
		return s, fmt.Errorf("defaults.input: %w", err)
	}
	output, err := domain.ParseFileTypeID(c.Defaults.Output)
	if err != nil {
		return s, fmt.Errorf("defaults.output: %w", err)
	}
	if domain.IsInputOnly(output) {
		return s, fmt.Errorf("defaults.output: %w: %s", domain.ErrUnsupportedOutput, output)
	}
	if !domain.IsValidQuality(c.Defaults.Quality) {
		return s, fmt.Errorf("defaults.quality: %w: %d", domain.ErrInvalidQuality, c.Defaults.Quality)
	}

	s.FileInputID = input
	s.FileOutputID = output
	s.ImageQuality = c.Defaults.Quality
	return s, nil
}

// GetSessionTTL returns the session TTL as a duration
func (c *Config) GetSessionTTL() (time.Duration, error) {
	return ParseDuration(c.Defaults.SessionTTL)
}

// GetMaxTotalSize returns the upload size limit in bytes
func (c *Config) GetMaxTotalSize() (int64, error) {
	return ParseSize(c.Limits.MaxTotalSize)
}

// GetSignInURL returns the sign-in page, defaulting to the backend's
func (c *Config) GetSignInURL() string {
	if c.Endpoints.SignInURL != "" {
		return c.Endpoints.SignInURL
	}
	return strings.TrimRight(c.Endpoints.BackendURL, "/") + "/sign-in"
}

var durationPattern = regexp.MustCompile(`^(\d+)(m|h|d)$`)

// ParseDuration parses duration strings like "30m", "24h", "7d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 24h, 7d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}

var sizePattern = regexp.MustCompile(`^(\d+)\s*(b|kb|mb|gb)?$`)

// ParseSize parses decimal sizes like "500kB", "50MB", "1GB" or plain bytes
func ParseSize(s string) (int64, error) {
	matches := sizePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid size format: %s (use format like 500kB, 50MB)", s)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %s", s)
	}

	switch matches[2] {
	case "kb":
		value *= 1000
	case "mb":
		value *= 1000 * 1000
	case "gb":
		value *= 1000 * 1000 * 1000
	}
	if value <= 0 {
		return 0, fmt.Errorf("size must be positive: %s", s)
	}
	return value, nil
}
