package planner

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// Store keeps generated plans and their runs.
type Store interface {
	SavePlan(plan *planrun.Plan) error
	GetPlan(id string) (*planrun.Plan, error)
	SaveRun(run *planrun.PlanRun) error
	GetRun(id string) (*planrun.PlanRun, error)
}

// MemoryStore is a process-local Store. Safe for concurrent use.
type MemoryStore struct {
	items *cache.Cache
}

// NewMemoryStore creates a store whose entries expire after ttl.
// A ttl of zero keeps entries for the lifetime of the process.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		return &MemoryStore{items: cache.New(cache.NoExpiration, 0)}
	}
	return &MemoryStore{items: cache.New(ttl, 2*ttl)}
}

func (s *MemoryStore) SavePlan(plan *planrun.Plan) error {
	if plan == nil || plan.ID == "" {
		return fmt.Errorf("cannot store plan without id")
	}
	s.items.SetDefault(plan.ID, plan)
	return nil
}

func (s *MemoryStore) GetPlan(id string) (*planrun.Plan, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, fmt.Errorf("plan %s not found", id)
	}
	plan, ok := v.(*planrun.Plan)
	if !ok {
		return nil, fmt.Errorf("%s is not a plan", id)
	}
	return plan, nil
}

func (s *MemoryStore) SaveRun(run *planrun.PlanRun) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("cannot store run without id")
	}
	s.items.SetDefault(run.ID, run)
	return nil
}

func (s *MemoryStore) GetRun(id string) (*planrun.PlanRun, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return nil, fmt.Errorf("run %s not found", id)
	}
	run, ok := v.(*planrun.PlanRun)
	if !ok {
		return nil, fmt.Errorf("%s is not a plan run", id)
	}
	return run, nil
}

// Len returns the number of stored plans and runs.
func (s *MemoryStore) Len() int {
	return s.items.ItemCount()
}

var _ Store = (*MemoryStore)(nil)
