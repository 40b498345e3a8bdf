package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// PrintPlan writes the plan as 2-space-indented JSON under a heading.
func PrintPlan(w io.Writer, plan *planrun.Plan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	fmt.Fprintln(w, "\nGenerated Plan:")
	fmt.Fprintln(w, string(data))
	return nil
}

// PrintRun writes the run state and one "- value" line per output.
// A run without outputs is printed raw.
func PrintRun(w io.Writer, run *planrun.PlanRun) error {
	if run == nil {
		return nil
	}
	fmt.Fprintf(w, "\nPlan State: %s\n", run.State)
	fmt.Fprintln(w, "\nResults:")

	if len(run.Outputs) == 0 {
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode run: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
	for _, out := range run.Outputs {
		fmt.Fprintf(w, "- %s\n", out.Value)
	}
	return nil
}

// Printer writes status lines, styled when attached to a terminal.
type Printer struct {
	out    io.Writer
	styled bool
}

// NewPrinter creates a printer. Styling is applied only when styled is true.
func NewPrinter(out io.Writer, styled bool) *Printer {
	return &Printer{out: out, styled: styled}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// Println writes an unstyled line.
func (p *Printer) Println(format string, args ...interface{}) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Title writes a heading preceded by a blank line.
func (p *Printer) Title(format string, args ...interface{}) {
	fmt.Fprintln(p.out, "\n"+p.render(TitleStyle, fmt.Sprintf(format, args...)))
}

// Success writes a success line.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.render(SuccessStyle, fmt.Sprintf(format, args...)))
}

// Warning writes a warning line preceded by a blank line.
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.out, "\n"+p.render(WarningStyle, fmt.Sprintf(format, args...)))
}

// Error writes an error line preceded by a blank line.
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.out, "\n"+p.render(ErrorStyle, fmt.Sprintf(format, args...)))
}

// Help writes a muted hint line.
func (p *Printer) Help(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.render(HelpStyle, fmt.Sprintf(format, args...)))
}

// Plan prints a generated plan.
func (p *Printer) Plan(plan *planrun.Plan) error {
	return PrintPlan(p.out, plan)
}

// Run prints a plan run.
func (p *Printer) Run(run *planrun.PlanRun) error {
	return PrintRun(p.out, run)
}
