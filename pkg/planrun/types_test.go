package planrun_test

import (
	"errors"
	"testing"

	"github.com/vvka-141/planrun/pkg/planrun"
)

func TestQuery_IsQuit(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"quit", true},
		{"QUIT", true},
		{"  Quit  ", true},
		{"quit now", false},
		{"What is 5 plus 3?", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := planrun.Query(tt.input).IsQuit(); got != tt.want {
			t.Errorf("Query(%q).IsQuit() = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPlan_Validate(t *testing.T) {
	calc := func(output string) planrun.PlanStep {
		return planrun.PlanStep{Task: "add", Tool: "calculator_tool", Args: map[string]string{"expression": "5+3"}, Output: output}
	}

	tests := []struct {
		name    string
		plan    *planrun.Plan
		wantErr bool
	}{
		{"nil plan", nil, true},
		{"no steps", &planrun.Plan{ID: "p"}, true},
		{"single step", &planrun.Plan{Steps: []planrun.PlanStep{calc("$sum")}}, false},
		{"step without output", &planrun.Plan{Steps: []planrun.PlanStep{calc("")}}, false},
		{"missing tool", &planrun.Plan{Steps: []planrun.PlanStep{{Task: "nothing"}}}, true},
		{"output without dollar", &planrun.Plan{Steps: []planrun.PlanStep{calc("sum")}}, true},
		{"duplicate output", &planrun.Plan{Steps: []planrun.PlanStep{calc("$sum"), calc("$sum")}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if tt.wantErr {
				if !errors.Is(err, planrun.ErrPlanInvalid) {
					t.Errorf("Expected ErrPlanInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected valid plan, got %v", err)
			}
		})
	}
}

func TestPlanRun_FinalOutput(t *testing.T) {
	var nilRun *planrun.PlanRun
	if nilRun.FinalOutput() != nil {
		t.Error("Expected nil output for nil run")
	}

	empty := &planrun.PlanRun{State: planrun.RunStateComplete}
	if empty.FinalOutput() != nil {
		t.Error("Expected nil output for run without outputs")
	}

	run := &planrun.PlanRun{Outputs: []planrun.Output{{Name: "$a", Value: "8"}, {Name: "$b", Value: "16"}}}
	out := run.FinalOutput()
	if out == nil || out.Value != "16" {
		t.Errorf("Expected final output 16, got %+v", out)
	}
}
