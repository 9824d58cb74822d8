package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// bbEps is the tolerance used both to decide whether a relaxation value is
// already integral and to prune nodes that cannot beat the incumbent.
const bbEps = 1e-6

// node is one branch-and-bound frontier entry: a set of tightened bounds
// layered on top of the model's own variable bounds.
type node struct {
	overrides map[int]bounds
}

// branchAndBound solves a model containing binary variables by relaxing
// integrality, branching on the most fractional binary variable, and
// pruning with the relaxation's own objective as an admissible bound.
// Search order is deterministic (ties in fractionality go to the lowest
// variable index, and the zero branch is explored first) so repeated
// solves of the same model follow the same path and return the same
// optimum.
func branchAndBound(ctx context.Context, m *Model) (solveResult, error) {
	binaryIdx := make([]int, 0)
	for j, v := range m.vars {
		if v.kind == Binary {
			binaryIdx = append(binaryIdx, j)
		}
	}
	sort.Ints(binaryIdx)

	maxNodes := m.params.MaxNodes
	if maxNodes <= 0 {
		maxNodes = 200000
	}

	rootRes, err := solveLP(ctx, m, nil)
	if err != nil {
		return solveResult{}, err
	}
	if rootRes.status != StatusOptimal {
		return rootRes, nil
	}

	haveIncumbent := false
	var incumbent solveResult
	incumbentBound := math.Inf(1) // best objective seen, in the model's own sense
	wantMin := m.objSense == Minimize

	better := func(candidate, current float64) bool {
		if wantMin {
			return candidate < current-bbEps
		}
		return candidate > current+bbEps
	}

	stack := []node{{overrides: nil}}
	nodesVisited := 0

	for len(stack) > 0 {
		if nodesVisited >= maxNodes {
			if haveIncumbent {
				return incumbent, nil
			}
			return solveResult{}, fmt.Errorf("milp: node limit exceeded without a feasible solution")
		}
		nodesVisited++

		if nodesVisited%64 == 0 {
			select {
			case <-ctx.Done():
				return solveResult{}, ctx.Err()
			default:
			}
		}

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		res, err := solveLP(ctx, m, cur.overrides)
		if err != nil {
			return solveResult{}, err
		}
		if res.status == StatusUnbounded {
			return res, nil
		}
		if res.status != StatusOptimal {
			continue // infeasible subproblem: prune
		}
		if haveIncumbent && !better(res.objValue, incumbentBound) {
			continue // relaxation bound cannot beat the incumbent: prune
		}

		branchVar := mostFractional(binaryIdx, res.values)
		if branchVar == -1 {
			// Integral solution: candidate for the incumbent.
			if !haveIncumbent || better(res.objValue, incumbentBound) {
				haveIncumbent = true
				incumbent = res
				incumbentBound = res.objValue
			}
			continue
		}

		zero := cloneOverrides(cur.overrides)
		zero[branchVar] = bounds{lb: 0, ub: 0}
		one := cloneOverrides(cur.overrides)
		one[branchVar] = bounds{lb: 1, ub: 1}

		// Push the "1" branch first so the "0" branch (popped first, since
		// this is a LIFO stack) is explored first, keeping node expansion
		// order deterministic and independent of map iteration.
		stack = append(stack, node{overrides: one}, node{overrides: zero})
	}

	if haveIncumbent {
		return incumbent, nil
	}
	return solveResult{status: StatusInfeasible, message: "infeasible"}, nil
}

// mostFractional returns the binary variable whose relaxation value is
// furthest from integral, or -1 when every binary is already integral
// within tolerance.
func mostFractional(binaryIdx []int, values []float64) int {
	best := -1
	bestFrac := bbEps
	for _, j := range binaryIdx {
		v := values[j]
		frac := v - math.Floor(v)
		dist := math.Min(frac, 1-frac)
		if dist > bestFrac {
			bestFrac = dist
			best = j
		}
	}
	return best
}

func cloneOverrides(src map[int]bounds) map[int]bounds {
	dst := make(map[int]bounds, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
