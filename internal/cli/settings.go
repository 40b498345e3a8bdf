package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/planrun/internal/config"
	"github.com/vvka-141/planrun/internal/provider"
	"github.com/vvka-141/planrun/pkg/planrun"
)

type runFlagValues struct {
	configPath    string
	provider      string
	model         string
	maxAttempts   int
	baseWait      time.Duration
	pause         time.Duration
	skipSmokeTest bool
}

// addRunFlags registers the flags shared by every command that talks to a provider.
func addRunFlags(cmd *cobra.Command, v *runFlagValues) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&v.configPath, "config", "",
		"Path to a config file (default: ./"+config.ConfigFileName+" if present)")
	flags.StringVar(&v.provider, "provider", "",
		"LLM provider: anthropic|deepseek|mistral|openai\n"+
			"Precedence: --provider > $"+config.EnvProvider+" > config file > "+planrun.DefaultProvider)
	flags.StringVar(&v.model, "model", "",
		"Model name (default depends on the provider)")
	flags.IntVar(&v.maxAttempts, "max-attempts", planrun.DefaultMaxAttempts,
		"Total attempts per query when rate limited")
	flags.DurationVar(&v.baseWait, "base-wait", planrun.DefaultBaseWait,
		"Base wait between rate-limited attempts; attempt k waits k times this")
	flags.DurationVar(&v.pause, "pause", planrun.DefaultRequestPause,
		"Pause between interactive requests (0 disables)")
}

// resolveSettings merges defaults, the config file, the environment and flags.
func resolveSettings(cmd *cobra.Command, v *runFlagValues) (config.Settings, error) {
	_ = godotenv.Load()

	projectCfg, err := loadProjectConfig(v.configPath)
	if err != nil {
		return config.Settings{}, err
	}

	s, err := config.Resolve(projectCfg)
	if err != nil {
		return config.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		name := config.NormalizeProvider(v.provider)
		if name != s.Provider {
			s.Model = ""
			s.BaseURL = ""
			s.APIKeyEnv = ""
		}
		s.Provider = name
	}
	if flags.Changed("model") {
		s.Model = v.model
	}
	if flags.Changed("max-attempts") {
		s.MaxAttempts = v.maxAttempts
	}
	if flags.Changed("base-wait") {
		s.BaseWait = v.baseWait
	}
	if flags.Changed("pause") {
		s.RequestPause = v.pause
	}
	if v.skipSmokeTest {
		s.SmokeTest = false
	}

	return s, s.Validate()
}

// loadProjectConfig reads an explicit config file, or planrun.yaml from the
// working directory when present.
func loadProjectConfig(path string) (*config.ProjectConfig, error) {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load %s: %w", planrun.ErrInvalidConfig, path, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

func providerSettings(s config.Settings) provider.Settings {
	return provider.Settings{
		Provider:  s.Provider,
		Model:     s.Model,
		BaseURL:   s.BaseURL,
		APIKeyEnv: s.APIKeyEnv,
	}
}

// signalContext returns a context cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
