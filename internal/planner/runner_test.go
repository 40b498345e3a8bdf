package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/planrun/internal/tools"
	"github.com/vvka-141/planrun/pkg/planrun"
)

func calcStep(expr, output string) planrun.PlanStep {
	return planrun.PlanStep{
		Task:   "calculate " + expr,
		Tool:   tools.CalculatorName,
		Args:   map[string]string{"expression": expr},
		Output: output,
	}
}

func TestRunner_Run_SingleStep(t *testing.T) {
	r := NewRunner(tools.DefaultRegistry())
	plan := &planrun.Plan{ID: "plan-1", Steps: []planrun.PlanStep{calcStep("5+3", "$sum")}}

	run, err := r.Run(context.Background(), plan)
	require.NoError(t, err)

	assert.Regexp(t, `^prun-`, run.ID)
	assert.Equal(t, "plan-1", run.PlanID)
	assert.Equal(t, planrun.RunStateComplete, run.State)
	require.Len(t, run.Outputs, 1)
	assert.Equal(t, planrun.Output{Name: "$sum", Value: "8", Summary: "calculate 5+3"}, run.Outputs[0])
	assert.Empty(t, run.Error)
}

func TestRunner_Run_ChainsOutputs(t *testing.T) {
	r := NewRunner(tools.DefaultRegistry())
	plan := &planrun.Plan{ID: "plan-2", Steps: []planrun.PlanStep{
		calcStep("10*4", "$total"),
		calcStep("20-7", "$total_2"),
		calcStep("$total_2 + $total", "$result"),
		calcStep("$result/2", ""),
	}}

	run, err := r.Run(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, run.Outputs, 4)
	assert.Equal(t, "53", run.Outputs[2].Value)
	assert.Equal(t, "26.5", run.Outputs[3].Value)
	assert.Equal(t, "$step_4_output", run.Outputs[3].Name)
	assert.Equal(t, "26.5", run.FinalOutput().Value)
}

func TestRunner_Run_ToolFailure(t *testing.T) {
	r := NewRunner(tools.DefaultRegistry())
	plan := &planrun.Plan{ID: "plan-3", Steps: []planrun.PlanStep{
		calcStep("6*7", "$a"),
		calcStep("$a/0", "$b"),
	}}

	run, err := r.Run(context.Background(), plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, planrun.ErrToolFailed))

	require.NotNil(t, run)
	assert.Equal(t, planrun.RunStateFailed, run.State)
	assert.Len(t, run.Outputs, 1)
	assert.Contains(t, run.Error, "step 2")
}

func TestRunner_Run_UnknownTool(t *testing.T) {
	r := NewRunner(tools.NewRegistry())
	plan := &planrun.Plan{Steps: []planrun.PlanStep{calcStep("1+1", "$x")}}

	run, err := r.Run(context.Background(), plan)
	assert.True(t, errors.Is(err, planrun.ErrToolNotFound))
	assert.Equal(t, planrun.RunStateFailed, run.State)
}

func TestRunner_Run_InvalidPlan(t *testing.T) {
	r := NewRunner(tools.DefaultRegistry())

	run, err := r.Run(context.Background(), nil)
	assert.True(t, errors.Is(err, planrun.ErrPlanInvalid))
	assert.Equal(t, planrun.RunStateFailed, run.State)

	run, err = r.Run(context.Background(), &planrun.Plan{ID: "empty"})
	assert.True(t, errors.Is(err, planrun.ErrPlanInvalid))
	assert.Equal(t, "empty", run.PlanID)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	r := NewRunner(tools.DefaultRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := r.Run(ctx, &planrun.Plan{Steps: []planrun.PlanStep{calcStep("1+1", "$x")}})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, planrun.RunStateFailed, run.State)
	assert.Empty(t, run.Outputs)
}

func TestResolveArgs(t *testing.T) {
	values := map[string]string{"$a": "1", "$ab": "2"}
	got := resolveArgs(map[string]string{"expression": "$ab + $a"}, values)
	assert.Equal(t, "2 + 1", got["expression"])

	args := map[string]string{"expression": "$a"}
	assert.Equal(t, args, resolveArgs(args, nil))
}
