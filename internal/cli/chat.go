package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/planrun/internal/logging"
	"github.com/vvka-141/planrun/internal/provider"
	"github.com/vvka-141/planrun/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive planning session",
	Long: `Chat validates the provider credential, runs a startup query
("What is 5 plus 3?") and then reads one question per line from stdin.

Each question is planned by the provider and the plan is run locally.
Rate-limited requests are retried up to --max-attempts times in total,
waiting --base-wait, then twice that, and so on. After every question the
session pauses for --pause before the next prompt.

Type 'quit' or send EOF (Ctrl+D) to exit.

Examples:
  # Chat with the default provider (Mistral, needs MISTRAL_API_KEY)
  planrun chat

  # Use OpenAI without the startup query
  planrun chat --provider openai --skip-smoke-test

  # Shorter waits for a paid tier
  planrun chat --base-wait 2s --pause 0`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().BoolVar(&runFlags.skipSmokeTest, "skip-smoke-test", false,
		"Do not run the startup query before the chat loop")
}

func runChat(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	settings, err := resolveSettings(cmd, &runFlags)
	if err != nil {
		return err
	}

	completer, err := provider.New(providerSettings(settings))
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	logger.Verbose("Using provider %s, model %s, %d attempt(s), base wait %v",
		completer.Name(), completer.Model(), settings.MaxAttempts, settings.BaseWait)

	ctx, cancel := signalContext()
	defer cancel()

	s := newSession(settings, completer, os.Stdin, os.Stdout, logger, ui.IsInteractive())
	return s.chat(ctx)
}
