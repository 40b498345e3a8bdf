package planner

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/planrun/internal/tools"
	"github.com/vvka-141/planrun/pkg/planrun"
)

// Runner executes plan steps against a tool registry.
type Runner struct {
	registry *tools.Registry
}

// NewRunner creates a runner using registry.
func NewRunner(registry *tools.Registry) *Runner {
	return &Runner{registry: registry}
}

// Run executes the steps of plan in order.
// On failure the returned run is FAILED and carries the outputs produced so far.
func (r *Runner) Run(ctx context.Context, plan *planrun.Plan) (*planrun.PlanRun, error) {
	run := &planrun.PlanRun{
		ID:      "prun-" + uuid.NewString(),
		State:   planrun.RunStateNotStarted,
		Outputs: []planrun.Output{},
	}
	if plan == nil {
		return r.fail(run, fmt.Errorf("%w: plan is nil", planrun.ErrPlanInvalid))
	}
	run.PlanID = plan.ID
	if err := plan.Validate(); err != nil {
		return r.fail(run, err)
	}

	run.State = planrun.RunStateInProgress
	values := make(map[string]string, len(plan.Steps))

	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return r.fail(run, err)
		}

		tool, err := r.registry.Get(step.Tool)
		if err != nil {
			return r.fail(run, fmt.Errorf("step %d: %w", i+1, err))
		}

		value, err := tool.Run(ctx, resolveArgs(step.Args, values))
		if err != nil {
			return r.fail(run, fmt.Errorf("step %d: %w", i+1, err))
		}

		name := step.Output
		if name == "" {
			name = fmt.Sprintf("$step_%d_output", i+1)
		}
		values[name] = value
		run.Outputs = append(run.Outputs, planrun.Output{
			Name:    name,
			Value:   value,
			Summary: step.Task,
		})
	}

	run.State = planrun.RunStateComplete
	return run, nil
}

func (r *Runner) fail(run *planrun.PlanRun, err error) (*planrun.PlanRun, error) {
	run.State = planrun.RunStateFailed
	run.Error = err.Error()
	return run, err
}

// resolveArgs replaces $name references with earlier step outputs.
// Longer names are replaced first so $total never clobbers $total_2.
func resolveArgs(args map[string]string, values map[string]string) map[string]string {
	if len(values) == 0 {
		return args
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})

	resolved := make(map[string]string, len(args))
	for k, v := range args {
		for _, name := range names {
			v = strings.ReplaceAll(v, name, values[name])
		}
		resolved[k] = v
	}
	return resolved
}
