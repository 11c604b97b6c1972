package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Link policies applied when both static and dynamic artifacts are present.
const (
	PolicyDynamic = "dynamic"
	PolicyStatic  = "static"
)

// Output formats understood by the CLI
const (
	FormatStream = "stream"
	FormatEnv    = "env"
	FormatCgo    = "cgo"
)

// Config holds osslprobe configuration
type Config struct {
	Target       string   `yaml:"target"`
	Vendored     bool     `yaml:"vendored"`
	VendorDir    string   `yaml:"vendor_dir"`
	LinkPolicy   string   `yaml:"link_policy" validate:"omitempty,oneof=dynamic static"`
	Format       string   `yaml:"format" validate:"omitempty,oneof=stream env cgo"`
	Package      string   `yaml:"package" validate:"omitempty,alphanum"`
	FallbackDirs []string `yaml:"fallback_dirs" validate:"dive,required"`
	Debug        bool     `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Target:     "", // Derived from GOOS/GOARCH
		VendorDir:  getDefaultVendorDir(),
		LinkPolicy: PolicyDynamic,
		Format:     FormatStream,
		Package:    "openssl",
		Debug:      false,
	}
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "osslprobe", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "osslprobe", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks field constraints declared in the struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getDefaultVendorDir() string {
	if path := os.Getenv("OSSLPROBE_VENDOR_DIR"); path != "" {
		return path
	}

	cache, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "osslprobe", "vendor")
	}

	return filepath.Join(cache, "osslprobe", "vendor")
}
