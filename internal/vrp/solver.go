package vrp

import (
	"context"
	"fmt"

	"optiserve/internal/engine"
)

// Solve is the routing core's single entry point: build the MTZ model,
// solve it, and reconstruct routes. There is no HTTP surface for this
// path; callers consume it as a library.
func Solve(ctx context.Context, p *Problem) (Result, error) {
	if err := validateProblem(p); err != nil {
		return Result{Status: Status(fmt.Sprintf("%s(%s)", StatusErrorPrefix, err.Error()))}, nil
	}

	bm := build(p)
	if err := bm.engine.Optimize(ctx); err != nil {
		return Result{Status: Status(fmt.Sprintf("%s(%s)", StatusErrorPrefix, err.Error()))}, nil
	}

	switch bm.engine.Status() {
	case engine.StatusOptimal:
		return assemble(bm, p, bm.engine), nil
	case engine.StatusInfeasible:
		return Result{Status: StatusNoSolution}, nil
	case engine.StatusUnbounded:
		return Result{Status: Status(fmt.Sprintf("%s(unbounded)", StatusErrorPrefix))}, nil
	default:
		return Result{Status: Status(fmt.Sprintf("%s(%s)", StatusErrorPrefix, bm.engine.Message()))}, nil
	}
}

func validateProblem(p *Problem) error {
	n := len(p.Locations)
	if n == 0 {
		return fmt.Errorf("no locations supplied")
	}
	if len(p.Demands) != n {
		return fmt.Errorf("demands must have one entry per location")
	}
	if p.DepotIdx < 0 || p.DepotIdx >= n {
		return fmt.Errorf("depot index out of range")
	}
	if p.Demands[p.DepotIdx] != 0 {
		return fmt.Errorf("depot demand must be zero")
	}
	if p.Vehicles < 1 {
		return fmt.Errorf("vehicle count must be at least 1")
	}
	if p.Capacity <= 0 {
		return fmt.Errorf("vehicle capacity must be positive")
	}
	total := 0.0
	for _, dem := range p.Demands {
		if dem < 0 {
			return fmt.Errorf("demand must be non-negative")
		}
		total += dem
	}
	if total > float64(p.Vehicles)*p.Capacity {
		return fmt.Errorf("total demand exceeds fleet capacity")
	}
	return nil
}
