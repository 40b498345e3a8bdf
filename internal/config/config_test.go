package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/planrun/pkg/planrun"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvProvider, "")
	t.Setenv(EnvModel, "")
}

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `provider:
  name: openai
  model: gpt-4o
  base_url: http://localhost:8080/v1
  api_key_env: LOCAL_KEY

retry:
  max_attempts: 5
  base_wait: 2s

request_pause: 1m
smoke_test: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "openai", cfg.Provider.Name)
	assert.Equal(t, "gpt-4o", cfg.Provider.Model)
	assert.Equal(t, "http://localhost:8080/v1", cfg.Provider.BaseURL)
	assert.Equal(t, "LOCAL_KEY", cfg.Provider.APIKeyEnv)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, "2s", cfg.Retry.BaseWait)
	assert.Equal(t, "1m", cfg.RequestPause)
	require.NotNil(t, cfg.SmokeTest)
	assert.False(t, *cfg.SmokeTest)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("retry: [unclosed"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, planrun.ErrInvalidConfig))
}

func TestResolve_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := Resolve(nil)
	require.NoError(t, err)

	assert.Equal(t, "mistral", s.Provider)
	assert.Equal(t, 3, s.MaxAttempts)
	assert.Equal(t, 10*time.Second, s.BaseWait)
	assert.Equal(t, 10*time.Second, s.RequestPause)
	assert.True(t, s.SmokeTest)
}

func TestResolve_FileValues(t *testing.T) {
	clearEnv(t)
	smoke := false

	s, err := Resolve(&ProjectConfig{
		Provider:     ProviderConfig{Name: "anthropic", Model: "claude-3-5-haiku-latest"},
		Retry:        RetryConfig{MaxAttempts: 4, BaseWait: "5"},
		RequestPause: "0s",
		SmokeTest:    &smoke,
	})
	require.NoError(t, err)

	assert.Equal(t, "anthropic", s.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", s.Model)
	assert.Equal(t, 4, s.MaxAttempts)
	assert.Equal(t, 5*time.Second, s.BaseWait)
	assert.Equal(t, time.Duration(0), s.RequestPause)
	assert.False(t, s.SmokeTest)
}

func TestResolve_EnvOverrides(t *testing.T) {
	t.Setenv(EnvProvider, "deepseek")
	t.Setenv(EnvModel, "")

	s, err := Resolve(&ProjectConfig{Provider: ProviderConfig{Name: "openai", Model: "gpt-4o"}})
	require.NoError(t, err)
	assert.Equal(t, "deepseek", s.Provider)
	assert.Empty(t, s.Model, "file model belongs to a different provider")

	t.Setenv(EnvModel, "deepseek-reasoner")
	s, err = Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "deepseek-reasoner", s.Model)
}

func TestResolve_UnparseableDurations(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		cfg  *ProjectConfig
	}{
		{"bad base wait", &ProjectConfig{Retry: RetryConfig{BaseWait: "soon"}}},
		{"bad pause", &ProjectConfig{RequestPause: "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, planrun.ErrInvalidConfig))
		})
	}
}

func TestResolve_LeavesRangeChecksToValidate(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		cfg  *ProjectConfig
	}{
		{"negative attempts", &ProjectConfig{Retry: RetryConfig{MaxAttempts: -1}}},
		{"negative wait", &ProjectConfig{Retry: RetryConfig{BaseWait: "-3s"}}},
		{"negative pause", &ProjectConfig{RequestPause: "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Resolve(tt.cfg)
			require.NoError(t, err, "later layers may still fix the value")

			err = s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, planrun.ErrInvalidConfig))
		})
	}
}

func TestResolve_NormalizesProviderNames(t *testing.T) {
	clearEnv(t)

	s, err := Resolve(&ProjectConfig{Provider: ProviderConfig{Name: " OpenAI ", Model: "gpt-4o"}})
	require.NoError(t, err)
	assert.Equal(t, "openai", s.Provider)

	t.Setenv(EnvProvider, "OPENAI")
	s, err = Resolve(&ProjectConfig{Provider: ProviderConfig{Name: "openai", Model: "gpt-4o"}})
	require.NoError(t, err)
	assert.Equal(t, "openai", s.Provider)
	assert.Equal(t, "gpt-4o", s.Model, "same provider in another case keeps the model")
}
