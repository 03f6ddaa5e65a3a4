package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for picsort. CLI flags
// override any value set here.
type Config struct {
	Source       string `toml:"source"`
	Target       string `toml:"target"`
	SortBy       string `toml:"sort_by"`   // "date", "name" or "size"
	Structure    string `toml:"structure"` // date-token template, empty = default
	Rename       bool   `toml:"rename"`
	Overwrite    bool   `toml:"overwrite"`
	DryRun       bool   `toml:"dry_run"`
	KeepOriginal bool   `toml:"keep_original"`
	LogDir       string `toml:"log_dir"`

	Destination DestinationConfig `toml:"destination"`
	Filesystem  FilesystemConfig  `toml:"filesystem"`
}

// DestinationConfig represents configuration for a destination backend.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type DestinationConfig struct {
	Type string `toml:"type"` // "filesystem" (default), "memory", or "s3"

	// S3-specific fields (only used when Type == "s3")
	S3Bucket          string `toml:"s3_bucket,omitempty"`
	S3Prefix          string `toml:"s3_prefix,omitempty"`
	S3Region          string `toml:"s3_region,omitempty"`
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`
}

// FilesystemConfig holds source enumeration settings.
type FilesystemConfig struct {
	Skip []string `toml:"skip"`
}

// NewConfig creates a Config with sensible defaults for a new install.
func NewConfig(baseDir string) *Config {
	return &Config{
		SortBy:       "date",
		KeepOriginal: true,
		LogDir:       filepath.Join(baseDir, "log"),
		Destination: DestinationConfig{
			Type: "filesystem",
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
