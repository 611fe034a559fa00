// Package config provides hierarchical configuration for shiplog using
// koanf. Values are loaded with priority: environment variables
// (SHIPLOG_*) > project config (.shiplog/config.yml) > user config
// (~/.config/shiplog/config.yml) > defaults. Legacy JSON project configs
// (.shiplog/config.json) are still read.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration holds the shiplog settings.
type Configuration struct {
	// Output is the changelog destination path; empty means stdout.
	Output string `koanf:"output"`
	// Format selects the output encoding: markdown, yaml or json.
	Format string `koanf:"format"`
	// AllTypes includes every conventional commit type in the output
	// instead of only feat, fix, perf and revert.
	AllTypes bool `koanf:"all_types"`
	// NoLinks disables commit and tag hyperlinks even when a remote is
	// configured.
	NoLinks bool `koanf:"no_links"`
	// Repo is the repository path to read; empty means the current
	// working directory.
	Repo string `koanf:"repo"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path.
	ProjectConfigPath string
}

// Load loads configuration from user, project and environment sources.
func Load() (*Configuration, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		_ = k.Set(key, value)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("SHIPLOG_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadUserConfig layers the user-level YAML config when present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil {
		return nil
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig layers the project-level config, preferring YAML and
// falling back to the legacy JSON location.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		path = customPath
	}

	if fileExists(path) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", path, err)
		}
		return nil
	}

	if legacy := LegacyProjectConfigPath(); customPath == "" && fileExists(legacy) {
		if err := k.Load(file.Provider(legacy), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacy, err)
		}
	}
	return nil
}

// Validate checks that the configuration values are usable.
func Validate(cfg *Configuration) error {
	switch cfg.Format {
	case "markdown", "yaml", "json":
		return nil
	default:
		return fmt.Errorf("invalid format %q (expected markdown, yaml or json)", cfg.Format)
	}
}

// envTransform converts SHIPLOG_ALL_TYPES to all_types.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "SHIPLOG_"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
