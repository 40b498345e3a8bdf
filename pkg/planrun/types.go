package planrun

import (
	"fmt"
	"strings"
)

// Query is the raw text of a user request. Its content is never interpreted
// outside the planning provider.
type Query string

// String returns the query text.
func (q Query) String() string {
	return string(q)
}

// IsQuit reports whether the query is the interactive quit command.
func (q Query) IsQuit() bool {
	return strings.EqualFold(strings.TrimSpace(string(q)), QuitCommand)
}

// PlanStep is one tool invocation in a plan.
type PlanStep struct {
	// Task is a short human-readable description of the step
	Task string `json:"task"`

	// Tool is the registered tool name
	Tool string `json:"tool"`

	// Args are the tool arguments; values may reference earlier outputs as $name
	Args map[string]string `json:"args"`

	// Output is the $name the step result is stored under
	Output string `json:"output"`
}

// Plan is an ordered list of steps that answers a query.
type Plan struct {
	ID    string     `json:"id"`
	Query Query      `json:"query"`
	Steps []PlanStep `json:"steps"`
}

// Validate checks the plan has at least one step and every step is well formed.
func (p *Plan) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: plan is nil", ErrPlanInvalid)
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: plan has no steps", ErrPlanInvalid)
	}
	seen := make(map[string]bool, len(p.Steps))
	for i, step := range p.Steps {
		if strings.TrimSpace(step.Tool) == "" {
			return fmt.Errorf("%w: step %d has no tool", ErrPlanInvalid, i+1)
		}
		if step.Output == "" {
			continue
		}
		if !strings.HasPrefix(step.Output, "$") {
			return fmt.Errorf("%w: step %d output %q must start with $", ErrPlanInvalid, i+1, step.Output)
		}
		if seen[step.Output] {
			return fmt.Errorf("%w: step %d reuses output %s", ErrPlanInvalid, i+1, step.Output)
		}
		seen[step.Output] = true
	}
	return nil
}

// RunState is the lifecycle state of a plan run.
type RunState string

const (
	RunStateNotStarted RunState = "NOT_STARTED"
	RunStateInProgress RunState = "IN_PROGRESS"
	RunStateComplete   RunState = "COMPLETE"
	RunStateFailed     RunState = "FAILED"
)

// Output is a value produced by a plan step.
type Output struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Summary string `json:"summary,omitempty"`
}

// PlanRun is the result of executing a plan.
type PlanRun struct {
	ID      string   `json:"id"`
	PlanID  string   `json:"plan_id"`
	State   RunState `json:"state"`
	Outputs []Output `json:"outputs"`
	Error   string   `json:"error,omitempty"`
}

// FinalOutput returns the last output of the run, or nil if there is none.
func (r *PlanRun) FinalOutput() *Output {
	if r == nil || len(r.Outputs) == 0 {
		return nil
	}
	return &r.Outputs[len(r.Outputs)-1]
}
