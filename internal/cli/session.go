package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vvka-141/planrun/internal/config"
	"github.com/vvka-141/planrun/internal/planner"
	"github.com/vvka-141/planrun/internal/provider"
	"github.com/vvka-141/planrun/internal/retry"
	"github.com/vvka-141/planrun/internal/tools"
	"github.com/vvka-141/planrun/internal/ui"
	"github.com/vvka-141/planrun/pkg/planrun"
)

const queryPrompt = "\nEnter your calculation (or 'quit' to exit): "

// session holds everything one chat or ask invocation needs.
type session struct {
	settings config.Settings
	client   *planner.Client
	executor *retry.Executor
	pauser   planrun.Waiter
	printer  *ui.Printer
	prompter *ui.Prompter
	logger   planrun.Logger
}

func newSession(settings config.Settings, completer provider.Completer, in io.Reader, out io.Writer, logger planrun.Logger, interactive bool) *session {
	printer := ui.NewPrinter(out, interactive)
	waiter := ui.NewCountdownWaiter(out, "Waiting", interactive)

	client := planner.NewClient(completer, tools.DefaultRegistry(), planner.NewMemoryStore(0), logger).
		WithHooks(planner.Hooks{
			OnPlanning: func(planrun.Query) {
				printer.Println("\nGenerating plan...")
			},
			OnPlan: func(plan *planrun.Plan) {
				if err := printer.Plan(plan); err != nil {
					logger.Error("Failed to display plan: %v", err)
				}
				printer.Println("\nExecuting plan...")
			},
			OnRun: func(run *planrun.PlanRun) {
				if err := printer.Run(run); err != nil {
					logger.Error("Failed to display results: %v", err)
				}
			},
		})

	backoff := retry.NewLinearBackoff(settings.MaxAttempts, retry.WithBaseDelay(settings.BaseWait))
	executor := retry.NewExecutor(retry.NewRateLimitClassifier(), backoff).
		WithWaiter(waiter).
		WithOnRetry(func(attempt, maxAttempts int, err error, delay time.Duration) {
			printer.Warning("Rate limit reached. Attempt %d of %d", attempt, maxAttempts)
			printer.Println("Waiting %d seconds before retrying...", wholeSeconds(delay))
		})

	return &session{
		settings: settings,
		client:   client,
		executor: executor,
		pauser:   waiter,
		printer:  printer,
		prompter: ui.NewPrompter(in, out),
		logger:   logger,
	}
}

// withWaiter routes both backoff and request pauses through w.
func (s *session) withWaiter(w planrun.Waiter) *session {
	clone := *s
	clone.executor = s.executor.WithWaiter(w)
	clone.pauser = w
	return &clone
}

// operation is the retried unit of work: plan the query, then run the plan.
func (s *session) operation(ctx context.Context, query planrun.Query) (*planrun.PlanRun, error) {
	run, err := s.client.PlanAndRun(ctx, query)
	if err != nil {
		s.logger.Error("Error occurred: %v", err)
	}
	return run, err
}

// execute runs one query through the retry executor.
func (s *session) execute(ctx context.Context, query planrun.Query) (*planrun.PlanRun, error) {
	return s.executor.Execute(ctx, query, s.operation)
}

// chat is the interactive flow: greeting, smoke test, help, then the query loop.
func (s *session) chat(ctx context.Context) error {
	s.printer.Success("Successfully initialized planrun client with %s", s.client.Provider())

	if s.settings.SmokeTest {
		if err := s.smokeTest(ctx); err != nil {
			return err
		}
	}

	s.printHelp()
	return s.loop(ctx)
}

// smokeTest runs a fixed query once, outside the retry loop.
func (s *session) smokeTest(ctx context.Context) error {
	s.printer.Title("Testing with a simple calculation...")
	s.printer.Println("Query: %s", planrun.SmokeTestQuery)

	if _, err := s.client.PlanAndRun(ctx, planrun.SmokeTestQuery); err != nil {
		return fmt.Errorf("smoke test failed: %w", err)
	}
	return nil
}

func (s *session) printHelp() {
	s.printer.Println("\nIf the test was successful, you can now enter your own questions.")
	s.printer.Println("Type '%s' to exit.", planrun.QuitCommand)
	if pause := s.settings.RequestPause; pause > 0 {
		s.printer.Help("\nNote: There is a %d-second delay between requests to avoid rate limits.", wholeSeconds(pause))
	}
	s.printer.Println("\nAvailable operations:")
	s.printer.Println("1. Simple calculations (e.g., 'What is 5 plus 3?', 'Calculate 10 times 4')")
	s.printer.Println("2. Basic arithmetic (e.g., 'What is 20 minus 7?', 'Calculate 15 divided by 3')")
}

// loop reads queries until quit, EOF or cancellation.
func (s *session) loop(ctx context.Context) error {
	for {
		query, err := s.prompter.ReadQuery(ctx, queryPrompt)
		if errors.Is(err, io.EOF) {
			s.printer.Println("")
			return nil
		}
		if err != nil {
			return err
		}
		if query.IsQuit() {
			return nil
		}
		if strings.TrimSpace(query.String()) == "" {
			continue
		}

		if err := s.report(s.execute(ctx, query)); err != nil {
			return err
		}
		if err := s.pause(ctx); err != nil {
			return err
		}
	}
}

// report prints the outcome of one query. Only cancellation is returned;
// every other outcome is shown to the user and the session continues.
func (s *session) report(_ *planrun.PlanRun, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, planrun.ErrRateLimitExhausted):
		s.printer.Warning("Maximum retries reached. Please try again later.")
	default:
		s.printer.Error("Error: %s", err.Error())
		s.printer.Help("\nTip: Try rephrasing your question to use basic arithmetic operations.")
		s.printer.Help("For example, instead of 'cube root of 27', try 'What is 27 divided by 3?'")
	}
	return nil
}

// pause waits between interactive requests.
func (s *session) pause(ctx context.Context) error {
	d := s.settings.RequestPause
	if d <= 0 {
		return nil
	}
	s.printer.Println("\nWaiting %d seconds before next request...", wholeSeconds(d))
	return s.pauser.Wait(ctx, d)
}

// wholeSeconds rounds d up to whole seconds.
func wholeSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}
