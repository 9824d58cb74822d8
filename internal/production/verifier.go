package production

import (
	"fmt"
	"math"
)

// Verify independently recomputes resource, demand, and total usage from
// a solved result and attaches feasibility warnings. It only has an
// effect when result.Status is StatusOptimal; any capacity or bound
// violation downgrades the status to StatusSolutionWarning, while pure
// numeric-precision and reconciliation warnings are attached without
// changing status; reconciliation drift alone never downgrades.
func Verify(result *Result, req *Request) {
	if result.Status != StatusOptimal {
		return
	}

	var warnings []string
	violated := false

	for name, qty := range result.ProductionPlan {
		if qty > 0 && qty < 1e-6 {
			warnings = append(warnings, fmt.Sprintf("product %s: negligible quantity %.3e may be numerical noise", name, qty))
		}
	}

	usage := make(map[string]map[string]float64, len(req.Resources))
	for _, u := range req.ResourceUsage {
		if usage[u.ResourceName] == nil {
			usage[u.ResourceName] = make(map[string]float64)
		}
		usage[u.ResourceName][u.ProductName] = u.UsagePerUnit
	}

	for _, r := range req.Resources {
		used := 0.0
		for name, qty := range result.ProductionPlan {
			used += usage[r.Name][name] * qty
		}
		reported := result.ResourceUtilization[r.Name].Used
		if math.Abs(used-reported) > ReconciliationTol {
			warnings = append(warnings, fmt.Sprintf("resource %s: recomputed usage %.6f differs from reported %.6f", r.Name, used, reported))
		}
		if used > r.AvailableCapacity+FeasibilityTol {
			warnings = append(warnings, fmt.Sprintf("resource %s: usage %.6f exceeds capacity %.6f", r.Name, used, r.AvailableCapacity))
			violated = true
		}
	}

	for _, dc := range req.DemandConstraints {
		qty := result.ProductionPlan[dc.ProductName]
		if dc.MinDemand != nil && qty < *dc.MinDemand-FeasibilityTol {
			warnings = append(warnings, fmt.Sprintf("product %s: quantity %.6f is below min_demand %.6f", dc.ProductName, qty, *dc.MinDemand))
			violated = true
		}
		if dc.MaxDemand != nil && qty > *dc.MaxDemand+FeasibilityTol {
			warnings = append(warnings, fmt.Sprintf("product %s: quantity %.6f exceeds max_demand %.6f", dc.ProductName, qty, *dc.MaxDemand))
			violated = true
		}
	}

	if req.TotalConstraints != nil && result.TotalProduction != nil {
		total := *result.TotalProduction
		tc := req.TotalConstraints
		if tc.MinTotal != nil && total < *tc.MinTotal-FeasibilityTol {
			warnings = append(warnings, fmt.Sprintf("total production %.6f is below min_total %.6f", total, *tc.MinTotal))
			violated = true
		}
		if tc.MaxTotal != nil && total > *tc.MaxTotal+FeasibilityTol {
			warnings = append(warnings, fmt.Sprintf("total production %.6f exceeds max_total %.6f", total, *tc.MaxTotal))
			violated = true
		}
	}

	if len(warnings) > 0 {
		result.FeasibilityWarnings = warnings
	}
	if violated {
		result.Status = StatusSolutionWarning
	}
}
