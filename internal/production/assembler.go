package production

import (
	"context"

	"optiserve/internal/engine"
)

// Assemble converts a solved engine model into the reported result
// schema, including IIS extraction on infeasibility and the plan-value
// clamp. It does not run the feasibility verifier; call Verify on the
// result afterwards when Status is StatusOptimal.
func Assemble(ctx context.Context, m *engine.Model, req *Request, varIdx map[string]int) *Result {
	switch m.Status() {
	case engine.StatusOptimal:
		return assembleOptimal(m, req, varIdx)
	case engine.StatusInfeasible:
		names := m.ComputeIIS(ctx)
		var infeasible any = "Unknown"
		if len(names) > 0 {
			infeasible = names
		}
		return &Result{
			Status:                StatusInfeasible,
			SolverMessage:         "The problem is infeasible",
			InfeasibleConstraints: infeasible,
		}
	case engine.StatusUnbounded:
		return &Result{
			Status:        StatusUnbounded,
			SolverMessage: "The problem is unbounded",
		}
	default:
		return &Result{
			Status:        StatusError,
			SolverMessage: "engine_error: " + m.Message(),
		}
	}
}

func assembleOptimal(m *engine.Model, req *Request, varIdx map[string]int) *Result {
	plan := make(map[string]float64, len(varIdx))
	for _, p := range req.Products {
		v := m.VarValue(varIdx[p.Name])
		if v < PlanValueClamp && v > -PlanValueClamp {
			v = 0
		}
		plan[p.Name] = v
	}

	usage := make(map[string]map[string]float64, len(req.Resources))
	for _, u := range req.ResourceUsage {
		if usage[u.ResourceName] == nil {
			usage[u.ResourceName] = make(map[string]float64)
		}
		usage[u.ResourceName][u.ProductName] = u.UsagePerUnit
	}

	utilization := make(map[string]ResourceUtilization, len(req.Resources))
	for _, r := range req.Resources {
		used := 0.0
		for name, qty := range plan {
			used += usage[r.Name][name] * qty
		}
		pct := 0.0
		if r.AvailableCapacity > 0 {
			pct = 100 * used / r.AvailableCapacity
		}
		utilization[r.Name] = ResourceUtilization{
			Used:           used,
			Available:      r.AvailableCapacity,
			UtilizationPct: pct,
		}
	}

	total := 0.0
	for _, qty := range plan {
		total += qty
	}

	objVal := m.ObjectiveValue()
	return &Result{
		Status:              StatusOptimal,
		ObjectiveValue:      &objVal,
		ProductionPlan:      plan,
		ResourceUtilization: utilization,
		TotalProduction:     &total,
		SolverMessage:       "Optimal solution found",
	}
}
