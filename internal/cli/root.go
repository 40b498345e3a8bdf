package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planrun",
	Short: "Plan and run arithmetic questions with an LLM planner",
	Long: `planrun sends natural-language arithmetic questions to an LLM planning
provider, prints the generated plan, runs it with local tools and shows the
results. Rate-limited requests are retried with a linear backoff.

Running planrun without a subcommand starts an interactive chat session.

Configuration precedence: flags > environment > planrun.yaml > defaults.
A .env file in the working directory is loaded automatically.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or missing API key
  11 - Provider request failed
  12 - Rate limit retries exhausted
  13 - Plan could not be generated or run
  14 - Interrupted`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runChat,
}

var runFlags runFlagValues

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	addRunFlags(rootCmd, &runFlags)
	rootCmd.Flags().BoolVar(&runFlags.skipSmokeTest, "skip-smoke-test", false,
		"Do not run the startup query before the chat loop")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
