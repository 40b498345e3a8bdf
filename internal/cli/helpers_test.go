package cli

import (
	"context"
	"errors"
	"sync"
	"time"
)

const addPlanJSON = `{"steps":[{"task":"Add 5 and 3","tool":"calculator_tool","args":{"expression":"5+3"},"output":"$sum"}]}`

// scriptedCompleter answers every call through reply.
type scriptedCompleter struct {
	mu    sync.Mutex
	calls int
	reply func(call int) (string, error)
}

func (c *scriptedCompleter) Name() string  { return "fake" }
func (c *scriptedCompleter) Model() string { return "fake-model" }

func (c *scriptedCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	c.mu.Lock()
	c.calls++
	call := c.calls
	c.mu.Unlock()
	return c.reply(call)
}

func (c *scriptedCompleter) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func alwaysReply(s string) *scriptedCompleter {
	return &scriptedCompleter{reply: func(int) (string, error) { return s, nil }}
}

func alwaysFail(msg string) *scriptedCompleter {
	return &scriptedCompleter{reply: func(int) (string, error) { return "", errors.New(msg) }}
}

// recordingWaiter records requested waits without sleeping.
type recordingWaiter struct {
	waits []time.Duration
	err   error
}

func (w *recordingWaiter) Wait(ctx context.Context, d time.Duration) error {
	w.waits = append(w.waits, d)
	return w.err
}
