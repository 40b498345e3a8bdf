package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/planrun/internal/logging"
	"github.com/vvka-141/planrun/internal/provider"
	"github.com/vvka-141/planrun/internal/ui"
	"github.com/vvka-141/planrun/pkg/planrun"
)

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Plan and run a single query",
	Long: `Ask plans and runs one query with the same rate-limit retries as chat,
then exits. There is no startup query and no pause.

The exit code reflects the outcome: 0 on success, 12 when every attempt was
rate limited, 11 or 13 when the provider or the plan failed.

Examples:
  planrun ask "What is 5 plus 3?"
  planrun ask What is 20 minus 7 --provider deepseek`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	settings, err := resolveSettings(cmd, &runFlags)
	if err != nil {
		return err
	}

	completer, err := provider.New(providerSettings(settings))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	query := planrun.Query(strings.Join(args, " "))
	s := newSession(settings, completer, os.Stdin, os.Stdout, logging.NewConsoleLogger(verbose), ui.IsInteractive())
	_, err = s.execute(ctx, query)
	return err
}
