package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables that override file values.
const (
	EnvProvider = "PLANRUN_PROVIDER"
	EnvModel    = "PLANRUN_MODEL"
)

type ProviderConfig struct {
	Name      string `yaml:"name"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url,omitempty"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

type RetryConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	BaseWait    string `yaml:"base_wait"`
}

type ProjectConfig struct {
	Provider     ProviderConfig `yaml:"provider"`
	Retry        RetryConfig    `yaml:"retry"`
	RequestPause string         `yaml:"request_pause"`
	SmokeTest    *bool          `yaml:"smoke_test,omitempty"`
}

const ConfigFileName = "planrun.yaml"

// Load reads planrun.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file from an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", planrun.ErrInvalidConfig, path, err)
	}
	return &cfg, nil
}

// Settings is the fully resolved runtime configuration.
type Settings struct {
	Provider     string
	Model        string
	BaseURL      string
	APIKeyEnv    string
	MaxAttempts  int
	BaseWait     time.Duration
	RequestPause time.Duration
	SmokeTest    bool
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Provider:     planrun.DefaultProvider,
		MaxAttempts:  planrun.DefaultMaxAttempts,
		BaseWait:     planrun.DefaultBaseWait,
		RequestPause: planrun.DefaultRequestPause,
		SmokeTest:    true,
	}
}

// Resolve applies file values, then environment overrides, on top of the defaults.
// cfg may be nil. Flag overrides are applied by the caller afterwards, so the
// result is not validated here; call Validate on the final settings.
// Only unparseable durations are reported.
func Resolve(cfg *ProjectConfig) (Settings, error) {
	s := Defaults()

	if cfg != nil {
		if name := NormalizeProvider(cfg.Provider.Name); name != "" {
			s.Provider = name
		}
		s.Model = cfg.Provider.Model
		s.BaseURL = cfg.Provider.BaseURL
		s.APIKeyEnv = cfg.Provider.APIKeyEnv

		if cfg.Retry.MaxAttempts != 0 {
			s.MaxAttempts = cfg.Retry.MaxAttempts
		}
		if cfg.Retry.BaseWait != "" {
			d, err := parseDuration("retry.base_wait", cfg.Retry.BaseWait)
			if err != nil {
				return s, err
			}
			s.BaseWait = d
		}
		if cfg.RequestPause != "" {
			d, err := parseDuration("request_pause", cfg.RequestPause)
			if err != nil {
				return s, err
			}
			s.RequestPause = d
		}
		if cfg.SmokeTest != nil {
			s.SmokeTest = *cfg.SmokeTest
		}
	}

	if v := NormalizeProvider(os.Getenv(EnvProvider)); v != "" {
		if v != s.Provider {
			// A different provider invalidates the file's model
			s.Model = ""
		}
		s.Provider = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvModel)); v != "" {
		s.Model = v
	}

	return s, nil
}

// NormalizeProvider trims and lowercases a provider name.
func NormalizeProvider(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate checks the settings are usable.
func (s Settings) Validate() error {
	if s.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", planrun.ErrInvalidConfig, s.MaxAttempts)
	}
	if s.BaseWait < 0 {
		return fmt.Errorf("%w: base wait must not be negative, got %v", planrun.ErrInvalidConfig, s.BaseWait)
	}
	if s.RequestPause < 0 {
		return fmt.Errorf("%w: request pause must not be negative, got %v", planrun.ErrInvalidConfig, s.RequestPause)
	}
	return nil
}

// parseDuration accepts Go durations ("10s", "1m30s") or bare seconds ("10").
func parseDuration(field, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	if d, err := time.ParseDuration(value + "s"); err == nil {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %s: invalid duration %q", planrun.ErrInvalidConfig, field, value)
}
