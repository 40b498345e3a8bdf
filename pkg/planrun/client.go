package planrun

import "context"

// Client generates plans from natural-language queries and runs them.
type Client interface {
	// Plan asks the planning provider to turn a query into a plan.
	Plan(ctx context.Context, query Query) (*Plan, error)

	// RunPlan executes a previously generated plan.
	RunPlan(ctx context.Context, plan *Plan) (*PlanRun, error)
}

// Operation performs the full plan-then-run sequence for one query.
// It is the unit of work retried by the retry executor.
type Operation func(ctx context.Context, query Query) (*PlanRun, error)

// Tool is a capability a plan step can invoke.
type Tool interface {
	// Name is the identifier plans use to reference the tool.
	Name() string

	// Description tells the planning provider what the tool does and which args it takes.
	Description() string

	// Run executes the tool with the step's arguments and returns its value.
	Run(ctx context.Context, args map[string]string) (string, error)
}
