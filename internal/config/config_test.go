package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/devbush/swiftconvert/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Defaults.Output != "png" {
		t.Errorf("Default output = %s, want png", cfg.Defaults.Output)
	}
	if cfg.Defaults.Quality != 80 {
		t.Errorf("Default quality = %d, want 80", cfg.Defaults.Quality)
	}
	if cfg.Defaults.SessionTTL != "24h" {
		t.Errorf("Default session TTL = %s, want 24h", cfg.Defaults.SessionTTL)
	}
	if cfg.Limits.MaxFiles != 5 {
		t.Errorf("Default max files = %d, want 5", cfg.Limits.MaxFiles)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}

	size, _ := cfg.GetMaxTotalSize()
	if size != 50*1000*1000 {
		t.Errorf("Default max total size = %d, want 50MB", size)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		wantSecs int64
		wantErr  bool
	}{
		{"24h", 86400, false},
		{"7d", 604800, false},
		{"30m", 1800, false},
		{"1h", 3600, false},
		{"invalid", 0, true},
		{"5s", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			dur, err := ParseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDuration(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if err == nil && int64(dur.Seconds()) != tt.wantSecs {
				t.Errorf("ParseDuration(%s) = %v, want %d seconds", tt.input, dur, tt.wantSecs)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"50MB", 50_000_000, false},
		{"50mb", 50_000_000, false},
		{"500kB", 500_000, false},
		{"1GB", 1_000_000_000, false},
		{"1024", 1024, false},
		{"12 MB", 12_000_000, false},
		{"0MB", 0, true},
		{"-1MB", 0, true},
		{"fifty", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSize(%s) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfig_DefaultSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"uppercase output", func(c *Config) { c.Defaults.Output = "WEBP" }, nil},
		{"unknown output", func(c *Config) { c.Defaults.Output = "svg" }, domain.ErrUnknownFileType},
		{"input-only output", func(c *Config) { c.Defaults.Output = "heic" }, domain.ErrUnsupportedOutput},
		{"off-step quality", func(c *Config) { c.Defaults.Quality = 85 }, domain.ErrInvalidQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			_, err := cfg.DefaultSettings()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DefaultSettings() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Save_Load(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Defaults.Output = "avif"
	cfg.Endpoints.BackendURL = "https://api.example.com"
	cfg.Archive.Compression = "zstd"

	err := cfg.Save(configPath)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Defaults.Output != "avif" || loaded.Endpoints.BackendURL != "https://api.example.com" || loaded.Archive.Compression != "zstd" {
		t.Errorf("Loaded config = %+v", loaded)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("limits:\n  max_files: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Limits.MaxFiles != 3 || cfg.Limits.MaxTotalSize != "50MB" || cfg.Defaults.Quality != 80 {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(configPath, []byte("defaults:\n  quality: 55\n"), 0644)

	if _, err := Load(configPath); err == nil {
		t.Error("Load() expected error for invalid quality")
	}
}

func TestConfig_GetSignInURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoints.BackendURL = "https://api.example.com/"
	if got := cfg.GetSignInURL(); got != "https://api.example.com/sign-in" {
		t.Errorf("GetSignInURL() = %s", got)
	}

	cfg.Endpoints.SignInURL = "https://accounts.example.com/sign-in"
	if got := cfg.GetSignInURL(); got != "https://accounts.example.com/sign-in" {
		t.Errorf("GetSignInURL() = %s", got)
	}
}

func TestAppDir(t *testing.T) {
	dir := AppDir()
	if dir == "" {
		t.Error("AppDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".swiftconvert")
	if dir != expected {
		t.Errorf("AppDir() = %s, want %s", dir, expected)
	}
}
