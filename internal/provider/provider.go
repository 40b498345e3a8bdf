// Package provider binds planrun to external LLM completion APIs.
//
// OpenAI-compatible services (Mistral, OpenAI, DeepSeek) share one backend
// built on openai-go; Anthropic uses its own SDK. SDK-level retries are
// disabled everywhere so rate limits surface to the retry executor.
package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// Completer produces a single text completion.
type Completer interface {
	// Name identifies the provider in logs and output.
	Name() string

	// Model returns the model used for completions.
	Model() string

	// Complete sends a system prompt and user prompt and returns the reply text.
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Settings selects and configures a provider.
type Settings struct {
	// Provider is a preset name (mistral, openai, deepseek, anthropic)
	Provider string

	// Model overrides the preset's default model
	Model string

	// BaseURL overrides the preset's API endpoint
	BaseURL string

	// APIKeyEnv overrides the environment variable holding the API key
	APIKeyEnv string
}

// preset describes a known provider.
type preset struct {
	kind      string // "openai" or "anthropic" wire protocol
	baseURL   string
	model     string
	apiKeyEnv string
}

var presets = map[string]preset{
	"mistral": {
		kind:      kindOpenAI,
		baseURL:   "https://api.mistral.ai/v1/",
		model:     planrun.DefaultModel,
		apiKeyEnv: "MISTRAL_API_KEY",
	},
	"openai": {
		kind:      kindOpenAI,
		baseURL:   "https://api.openai.com/v1/",
		model:     "gpt-4o-mini",
		apiKeyEnv: "OPENAI_API_KEY",
	},
	"deepseek": {
		kind:      kindOpenAI,
		baseURL:   "https://api.deepseek.com/",
		model:     "deepseek-chat",
		apiKeyEnv: "DEEPSEEK_API_KEY",
	},
	"anthropic": {
		kind:      kindAnthropic,
		model:     "claude-3-5-haiku-latest",
		apiKeyEnv: "ANTHROPIC_API_KEY",
	},
}

const (
	kindOpenAI    = "openai"
	kindAnthropic = "anthropic"
)

// Names returns the supported provider names.
func Names() []string {
	return []string{"anthropic", "deepseek", "mistral", "openai"}
}

// Resolve fills unset fields in s from the provider preset.
// Returns ErrInvalidConfig for an unknown provider.
func Resolve(s Settings) (Settings, error) {
	name := strings.ToLower(strings.TrimSpace(s.Provider))
	if name == "" {
		name = planrun.DefaultProvider
	}
	p, ok := presets[name]
	if !ok {
		return s, fmt.Errorf("%w: unknown provider %q (supported: %s)",
			planrun.ErrInvalidConfig, s.Provider, strings.Join(Names(), ", "))
	}

	s.Provider = name
	if s.Model == "" {
		s.Model = p.model
	}
	if s.BaseURL == "" {
		s.BaseURL = p.baseURL
	}
	if s.APIKeyEnv == "" {
		s.APIKeyEnv = p.apiKeyEnv
	}
	return s, nil
}

// APIKey reads the credential for s from the environment.
// Returns ErrMissingCredential when the variable is unset or blank.
func APIKey(s Settings) (string, error) {
	resolved, err := Resolve(s)
	if err != nil {
		return "", err
	}
	key := strings.TrimSpace(os.Getenv(resolved.APIKeyEnv))
	if key == "" {
		return "", fmt.Errorf("%w: %s not found in environment variables", planrun.ErrMissingCredential, resolved.APIKeyEnv)
	}
	return key, nil
}

// New creates the Completer described by s, reading its API key from the environment.
func New(s Settings) (Completer, error) {
	resolved, err := Resolve(s)
	if err != nil {
		return nil, err
	}
	apiKey, err := APIKey(resolved)
	if err != nil {
		return nil, err
	}

	switch presets[resolved.Provider].kind {
	case kindAnthropic:
		return NewAnthropic(apiKey, resolved.Model, resolved.BaseURL), nil
	default:
		return NewOpenAICompatible(resolved.Provider, resolved.BaseURL, apiKey, resolved.Model), nil
	}
}

// providerError wraps an SDK error so callers can match ErrProviderFailed
// while the original message, including any HTTP status, stays visible.
func providerError(name string, err error) error {
	return fmt.Errorf("%w: error calling %s API: %w", planrun.ErrProviderFailed, name, err)
}
