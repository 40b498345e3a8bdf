package ui

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// CountdownWaiter implements planrun.Waiter by showing the remaining seconds
// while it waits. Plain mode rewrites a single line with \r; animated mode
// renders a spinner through bubbletea.
type CountdownWaiter struct {
	out      io.Writer
	message  string
	animated bool
	tick     time.Duration
}

// NewCountdownWaiter creates a waiter printing "<message> N seconds..." to out.
// animated selects the bubbletea spinner; use it only when out is a terminal.
func NewCountdownWaiter(out io.Writer, message string, animated bool) *CountdownWaiter {
	return &CountdownWaiter{
		out:      out,
		message:  message,
		animated: animated,
		tick:     time.Second,
	}
}

// Wait blocks for d, updating the countdown once per second.
// Returns ctx.Err() if ctx is cancelled first.
func (w *CountdownWaiter) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	seconds := int(math.Ceil(d.Seconds()))
	if w.animated {
		return w.waitAnimated(ctx, seconds)
	}
	return w.waitPlain(ctx, seconds)
}

func (w *CountdownWaiter) waitPlain(ctx context.Context, seconds int) error {
	defer w.clearLine()

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for i := seconds; i > 0; i-- {
		fmt.Fprintf(w.out, "\r%s %d seconds...", w.message, i)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func (w *CountdownWaiter) clearLine() {
	fmt.Fprint(w.out, "\r"+strings.Repeat(" ", 50)+"\r")
}

func (w *CountdownWaiter) waitAnimated(ctx context.Context, seconds int) error {
	model := newCountdownModel(w.message, seconds, w.tick)
	p := tea.NewProgram(model, tea.WithOutput(w.out), tea.WithContext(ctx))

	final, err := p.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return fmt.Errorf("countdown: %w", err)
	}
	if m, ok := final.(countdownModel); ok && m.cancelled {
		return context.Canceled
	}
	return nil
}

// countdownModel is a bubbletea model showing a spinner and the remaining seconds.
type countdownModel struct {
	spinner   spinner.Model
	message   string
	remaining int
	tick      time.Duration
	cancelled bool
}

type countdownTickMsg struct{}

func newCountdownModel(message string, seconds int, tick time.Duration) countdownModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return countdownModel{
		spinner:   s,
		message:   message,
		remaining: seconds,
		tick:      tick,
	}
}

func (m countdownModel) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(time.Time) tea.Msg {
		return countdownTickMsg{}
	})
}

// Init implements tea.Model.
func (m countdownModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tickCmd())
}

// Update implements tea.Model.
func (m countdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			m.cancelled = true
			return m, tea.Quit
		}
	case countdownTickMsg:
		m.remaining--
		if m.remaining <= 0 {
			return m, tea.Quit
		}
		return m, m.tickCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m countdownModel) View() string {
	if m.remaining <= 0 || m.cancelled {
		return ""
	}
	return m.spinner.View() + " " + CountdownStyle.Render(fmt.Sprintf("%s %d seconds...", m.message, m.remaining))
}

var _ planrun.Waiter = (*CountdownWaiter)(nil)
