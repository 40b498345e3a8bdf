// Package tools holds the tools plan steps can invoke.
package tools

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// Registry maps tool names to tools. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]planrun.Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]planrun.Tool)}
}

// DefaultRegistry returns a registry with the built-in calculator tool.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCalculator())
	return r
}

// Register adds a tool, replacing any tool with the same name.
func (r *Registry) Register(tool planrun.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (planrun.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", planrun.ErrToolNotFound, name)
	}
	return tool, nil
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe renders one "name: description" line per tool for planning prompts.
func (r *Registry) Describe() string {
	names := r.Names()
	if len(names) == 0 {
		return "No tools available."
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "- %s: %s", name, r.tools[name].Description())
	}
	return sb.String()
}
