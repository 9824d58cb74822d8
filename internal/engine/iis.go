package engine

import "context"

// computeIIS runs a deletion-filter search: drop each constraint in turn,
// re-solve the relaxation, and permanently discard it when the remainder
// stays infeasible without it; a constraint whose removal restores
// feasibility is part of the conflict and goes back in. This does not always
// produce the unique minimal IIS when multiple independent infeasible
// subsets exist, but it always produces a minimal subset with respect to
// single-constraint removal, which is enough to explain an infeasible
// answer (callers fall back to their own sentinel when the search finds
// nothing).
func computeIIS(ctx context.Context, m *Model) []string {
	n := len(m.constraints)
	if n == 0 {
		return nil
	}

	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}

	// Confirm the full model is indeed infeasible before searching;
	// otherwise there is nothing to explain.
	if !isInfeasible(ctx, m, active) {
		return nil
	}

	for i := 0; i < n; i++ {
		if !active[i] {
			continue
		}
		active[i] = false
		if !isInfeasible(ctx, m, active) {
			// Removing constraint i alone restored feasibility (holding the
			// rest fixed): it belongs in the IIS, so put it back.
			active[i] = true
		}
	}

	var names []string
	for i, on := range active {
		if on {
			names = append(names, m.constraints[i].name)
		}
	}
	return names
}

func isInfeasible(ctx context.Context, m *Model, active []bool) bool {
	sub := NewModel(m.Name + "__iis_probe")
	sub.vars = m.vars
	sub.objCoeffs = m.objCoeffs
	sub.objSense = m.objSense
	sub.params = m.params

	for i, c := range m.constraints {
		if active[i] {
			sub.constraints = append(sub.constraints, c)
		}
	}

	res, err := solveLP(ctx, sub, nil)
	if err != nil {
		return false
	}
	return res.status == StatusInfeasible
}
