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

func TestPlanner_Plan(t *testing.T) {
	completer := &fakeCompleter{replies: []string{addPlanJSON}}
	p := NewPlanner(completer, tools.DefaultRegistry())

	plan, err := p.Plan(context.Background(), "What is 5 plus 3?")
	require.NoError(t, err)

	assert.Regexp(t, `^plan-[0-9a-f-]{36}$`, plan.ID)
	assert.Equal(t, planrun.Query("What is 5 plus 3?"), plan.Query)
	require.Len(t, plan.Steps, 1)
	assert.Equal(t, "calculator_tool", plan.Steps[0].Tool)
	assert.Equal(t, "5+3", plan.Steps[0].Args["expression"])
	assert.Equal(t, "$sum", plan.Steps[0].Output)

	assert.Equal(t, []string{"What is 5 plus 3?"}, completer.prompts)
	assert.Contains(t, completer.system, tools.CalculatorName)
	assert.Contains(t, completer.system, `{"steps":[`)
}

func TestPlanner_Plan_ProviderErrorPassesThrough(t *testing.T) {
	rateLimit := errors.New("429 Too Many Requests")
	p := NewPlanner(&fakeCompleter{errs: []error{rateLimit}}, tools.DefaultRegistry())

	_, err := p.Plan(context.Background(), "q")
	assert.Equal(t, rateLimit, err)
}

func TestPlanner_Plan_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty steps", `{"steps":[]}`},
		{"not json", "I cannot help with that."},
		{"empty reply", ""},
		{"unknown tool", `{"steps":[{"task":"cube root","tool":"cube_root_tool","args":{"x":"27"},"output":"$r"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlanner(&fakeCompleter{replies: []string{tt.reply}}, tools.DefaultRegistry())
			_, err := p.Plan(context.Background(), "cube root of 27")
			require.Error(t, err)
			assert.True(t, errors.Is(err, planrun.ErrPlanInvalid), "got %v", err)
		})
	}
}

func TestPlanner_Plan_UnknownToolWrapsToolNotFound(t *testing.T) {
	reply := `{"steps":[{"task":"x","tool":"search_tool","args":{},"output":"$x"}]}`
	p := NewPlanner(&fakeCompleter{replies: []string{reply}}, tools.DefaultRegistry())

	_, err := p.Plan(context.Background(), "q")
	assert.True(t, errors.Is(err, planrun.ErrToolNotFound))
}

func TestPlanner_Plan_ErrorOmitsReply(t *testing.T) {
	p := NewPlanner(&fakeCompleter{replies: []string{"429 plus 1 is 430."}}, tools.DefaultRegistry())

	_, err := p.Plan(context.Background(), "What is 429 plus 1?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, planrun.ErrPlanInvalid))
	assert.NotContains(t, err.Error(), "429")
}

func TestParsePlan_Tolerance(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain", addPlanJSON},
		{"fenced json", "```json\n" + addPlanJSON + "\n```"},
		{"fenced bare", "```\n" + addPlanJSON + "\n```"},
		{"prose around", "Here is the plan:\n" + addPlanJSON + "\nLet me know!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := parsePlan(tt.text)
			require.NoError(t, err)
			require.Len(t, plan.Steps, 1)
			assert.Equal(t, "5+3", plan.Steps[0].Args["expression"])
		})
	}
}

func TestParsePlan_NonStringArgs(t *testing.T) {
	plan, err := parsePlan(`{"steps":[{"task":"t","tool":"calculator_tool","args":{"a":5,"b":2.5,"c":null,"d":true,"e":[1,2]},"output":"$x"}]}`)
	require.NoError(t, err)

	args := plan.Steps[0].Args
	assert.Equal(t, "5", args["a"])
	assert.Equal(t, "2.5", args["b"])
	assert.Equal(t, "", args["c"])
	assert.Equal(t, "true", args["d"])
	assert.Equal(t, "[1,2]", args["e"])
}

func TestPreview_Truncates(t *testing.T) {
	long := make([]byte, planrun.MaxErrorPreviewLength+50)
	for i := range long {
		long[i] = 'x'
	}
	out := preview(string(long))
	assert.Len(t, out, planrun.MaxErrorPreviewLength+3)
	assert.Equal(t, "short", preview("  short "))
}
