package planner

import (
	"context"
	"sync"
)

// fakeCompleter replays queued replies and records prompts.
type fakeCompleter struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   int
	system  string
	prompts []string
}

func (f *fakeCompleter) Name() string  { return "fake" }
func (f *fakeCompleter) Model() string { return "fake-model" }

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.system = system
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return f.replies[len(f.replies)-1], nil
}

const addPlanJSON = `{"steps":[{"task":"Add 5 and 3","tool":"calculator_tool","args":{"expression":"5+3"},"output":"$sum"}]}`
