package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/planrun/internal/logging"
	"github.com/vvka-141/planrun/internal/provider"
	"github.com/vvka-141/planrun/internal/tools"
	"github.com/vvka-141/planrun/pkg/planrun"
)

const basePrompt = "You are a planning agent. You turn a user request into a plan of tool calls."

// Planner asks a Completer for a JSON plan and decodes it.
type Planner struct {
	completer provider.Completer
	registry  *tools.Registry
	logger    planrun.Logger
}

// NewPlanner creates a planner that may only use tools from registry.
func NewPlanner(completer provider.Completer, registry *tools.Registry) *Planner {
	return &Planner{completer: completer, registry: registry, logger: logging.NewNullLogger()}
}

// WithLogger returns a copy of the planner that logs unparseable replies to logger.
func (p *Planner) WithLogger(logger planrun.Logger) *Planner {
	clone := *p
	clone.logger = logger
	return &clone
}

// Plan generates a plan for query.
// Provider errors are returned unchanged so rate limits stay classifiable.
func (p *Planner) Plan(ctx context.Context, query planrun.Query) (*planrun.Plan, error) {
	text, err := p.completer.Complete(ctx, p.systemPrompt(), query.String())
	if err != nil {
		return nil, err
	}

	plan, err := parsePlan(text)
	if err != nil {
		p.logger.Verbose("Unparseable reply from %s: %s", p.completer.Name(), preview(text))
		return nil, err
	}
	plan.ID = "plan-" + uuid.NewString()
	plan.Query = query

	if err := p.validate(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (p *Planner) validate(plan *planrun.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	for i, step := range plan.Steps {
		if _, err := p.registry.Get(step.Tool); err != nil {
			return fmt.Errorf("%w: step %d: %w", planrun.ErrPlanInvalid, i+1, err)
		}
	}
	return nil
}

// systemPrompt lists the tools and the JSON format contract.
func (p *Planner) systemPrompt() string {
	return basePrompt + "\n\nYou must output a JSON plan for the user's request using ONLY the following tools:\n" +
		p.registry.Describe() + "\n\n" +
		`Output a single JSON object with this exact format (no other text):
{"steps":[{"task":"<what the step does>","tool":"<tool_name>","args":{"<name>":"<value>"},"output":"$<name>"}]}
Every arg value is a string. A later step may reference an earlier output by writing its $name inside an arg value.
Use only the tool names listed above. If the request cannot be done with these tools, use: {"steps":[]}.`
}

var jsonBlockRE = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// rawStep accepts non-string arg values from the provider.
type rawStep struct {
	Task   string         `json:"task"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args"`
	Output string         `json:"output"`
}

// parsePlan extracts a plan from provider text. A markdown code block or
// prose around the JSON object is tolerated.
func parsePlan(text string) (*planrun.Plan, error) {
	trimmed := strings.TrimSpace(text)
	if m := jsonBlockRE.FindStringSubmatch(trimmed); len(m) > 1 {
		trimmed = strings.TrimSpace(m[1])
	}
	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start >= 0 && end > start {
		trimmed = trimmed[start : end+1]
	}
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty response from provider", planrun.ErrPlanInvalid)
	}

	var raw struct {
		Steps []rawStep `json:"steps"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: provider reply is not a JSON plan", planrun.ErrPlanInvalid)
	}

	plan := &planrun.Plan{Steps: make([]planrun.PlanStep, 0, len(raw.Steps))}
	for _, s := range raw.Steps {
		args := make(map[string]string, len(s.Args))
		for k, v := range s.Args {
			args[k] = stringify(v)
		}
		plan.Steps = append(plan.Steps, planrun.PlanStep{
			Task:   s.Task,
			Tool:   s.Tool,
			Args:   args,
			Output: s.Output,
		})
	}
	return plan, nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > planrun.MaxErrorPreviewLength {
		return s[:planrun.MaxErrorPreviewLength] + "..."
	}
	return s
}
