package planner

import (
	"context"

	"github.com/vvka-141/planrun/internal/provider"
	"github.com/vvka-141/planrun/internal/tools"
	"github.com/vvka-141/planrun/pkg/planrun"
)

// Hooks let the presentation layer follow a PlanAndRun call.
// Any hook may be nil.
type Hooks struct {
	// OnPlanning is called before the provider is asked for a plan.
	OnPlanning func(query planrun.Query)

	// OnPlan is called with the generated plan before it runs.
	OnPlan func(plan *planrun.Plan)

	// OnRun is called with the finished run, successful or not.
	OnRun func(run *planrun.PlanRun)
}

// Client generates, runs and records plans. It implements planrun.Client.
type Client struct {
	completer provider.Completer
	planner   *Planner
	runner    *Runner
	store     Store
	logger    planrun.Logger
	hooks     Hooks
}

// NewClient wires a completer and tool registry into a client.
func NewClient(completer provider.Completer, registry *tools.Registry, store Store, logger planrun.Logger) *Client {
	return &Client{
		completer: completer,
		planner:   NewPlanner(completer, registry).WithLogger(logger),
		runner:    NewRunner(registry),
		store:     store,
		logger:    logger,
	}
}

// WithHooks returns a copy of the client that reports progress through h.
func (c *Client) WithHooks(h Hooks) *Client {
	clone := *c
	clone.hooks = h
	return &clone
}

// Provider describes the backing completer, e.g. "mistral (mistral-large-latest)".
func (c *Client) Provider() string {
	return c.completer.Name() + " (" + c.completer.Model() + ")"
}

// Plan generates and stores a plan for query.
func (c *Client) Plan(ctx context.Context, query planrun.Query) (*planrun.Plan, error) {
	c.logger.Verbose("Planning query %q with %s", query, c.Provider())
	plan, err := c.planner.Plan(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := c.store.SavePlan(plan); err != nil {
		c.logger.Error("Failed to store plan %s: %v", plan.ID, err)
	}
	c.logger.Verbose("Generated %s with %d step(s)", plan.ID, len(plan.Steps))
	return plan, nil
}

// RunPlan runs plan and stores the run, including failed runs.
func (c *Client) RunPlan(ctx context.Context, plan *planrun.Plan) (*planrun.PlanRun, error) {
	run, err := c.runner.Run(ctx, plan)
	if run != nil {
		if storeErr := c.store.SaveRun(run); storeErr != nil {
			c.logger.Error("Failed to store run %s: %v", run.ID, storeErr)
		}
		c.logger.Verbose("Run %s finished in state %s", run.ID, run.State)
	}
	return run, err
}

// PlanAndRun plans query and runs the plan. It satisfies planrun.Operation.
func (c *Client) PlanAndRun(ctx context.Context, query planrun.Query) (*planrun.PlanRun, error) {
	if c.hooks.OnPlanning != nil {
		c.hooks.OnPlanning(query)
	}
	plan, err := c.Plan(ctx, query)
	if err != nil {
		return nil, err
	}
	if c.hooks.OnPlan != nil {
		c.hooks.OnPlan(plan)
	}

	run, err := c.RunPlan(ctx, plan)
	if c.hooks.OnRun != nil && run != nil {
		c.hooks.OnRun(run)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

var _ planrun.Client = (*Client)(nil)
