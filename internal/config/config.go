package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name in a project directory.
const FileName = "txclean.yaml"

// Config represents the top-level txclean.yaml configuration.
type Config struct {
	Mappings string       `yaml:"mappings"` // path to the mapping list
	Import   ImportConfig `yaml:"import"`
	Export   ExportConfig `yaml:"export"`
	Workers  int          `yaml:"workers"`
	Server   ServerConfig `yaml:"server"`
	LogLevel string       `yaml:"log_level"`
}

// ImportConfig controls where statements are read from.
type ImportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // parser name, or "auto"
}

// ExportConfig controls where cleaned statements are written.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "xlsx" or "csv"
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// Load reads a txclean.yaml file from disk. Fields absent from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Mappings: "mappings.yaml",
		Import: ImportConfig{
			Dir:    "import",
			Format: "auto",
		},
		Export: ExportConfig{
			Dir:    "exports",
			Format: "xlsx",
		},
		Workers: 4,
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		LogLevel: "info",
	}
}
