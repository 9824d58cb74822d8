package production

import (
	"fmt"

	"optiserve/internal/engine"
)

// Builder constructs an engine model for one production-optimization
// variant. Implementations conform to the shared capability the registry
// dispatches against: construct model, add variables, set objective, add
// constraints.
type Builder interface {
	// Build emits a solver model for req, returning the variable index
	// assigned to each product (keyed by product name) alongside the model.
	Build(req *Request) (*engine.Model, map[string]int, error)
}

// BasicBuilder allocates each product a variable bounded only below by
// zero, with no per-product demand shaping.
type BasicBuilder struct{}

func (BasicBuilder) Build(req *Request) (*engine.Model, map[string]int, error) {
	return buildCommon(req, nil)
}

// DemandConstrainedBuilder additionally bounds each product's variable by
// any matching demand constraint.
type DemandConstrainedBuilder struct{}

func (DemandConstrainedBuilder) Build(req *Request) (*engine.Model, map[string]int, error) {
	byProduct := make(map[string]DemandConstraint, len(req.DemandConstraints))
	for _, dc := range req.DemandConstraints {
		byProduct[dc.ProductName] = dc
	}
	return buildCommon(req, byProduct)
}

func buildCommon(req *Request, demand map[string]DemandConstraint) (*engine.Model, map[string]int, error) {
	m := engine.NewModel("production")
	m.SetParams(engine.Params{NumericFocus: 3, FeasibilityTol: FeasibilityTol, OutputEnabled: false})

	varIdx := make(map[string]int, len(req.Products))
	for _, p := range req.Products {
		lb, ub := 0.0, engine.Inf
		if demand != nil {
			if dc, ok := demand[p.Name]; ok {
				if dc.MinDemand != nil {
					lb = *dc.MinDemand
					if lb < 0 {
						lb = 0
					}
				}
				if dc.MaxDemand != nil {
					ub = *dc.MaxDemand
				}
				if ub < lb {
					// The validator should have already rejected this; this
					// guard only protects callers that bypass validation.
					ub = lb
				}
			}
		}
		varIdx[p.Name] = m.AddVariable(p.Name, engine.Continuous, lb, ub)
	}

	objCoeffs := make(map[int]float64, len(req.Products))
	var sense engine.ObjectiveSense
	switch req.Objective {
	case MaximizeProfit:
		sense = engine.Maximize
		for _, p := range req.Products {
			objCoeffs[varIdx[p.Name]] = p.ProfitPerUnit
		}
	case MinimizeCost:
		sense = engine.Minimize
		for _, p := range req.Products {
			objCoeffs[varIdx[p.Name]] = p.CostPerUnit
		}
	default:
		return nil, nil, fmt.Errorf("unsupported objective: %s", req.Objective)
	}
	m.SetObjective(objCoeffs, sense)

	usage := make(map[string]map[string]float64, len(req.Resources))
	for _, u := range req.ResourceUsage {
		if usage[u.ResourceName] == nil {
			usage[u.ResourceName] = make(map[string]float64)
		}
		usage[u.ResourceName][u.ProductName] = u.UsagePerUnit
	}

	for _, r := range req.Resources {
		coeffs := make(map[int]float64)
		for _, p := range req.Products {
			if per, ok := usage[r.Name][p.Name]; ok && per != 0 {
				coeffs[varIdx[p.Name]] = per
			}
		}
		m.AddConstraint("resource_"+r.Name, coeffs, engine.LE, r.AvailableCapacity)
	}

	if req.TotalConstraints != nil {
		totalCoeffs := make(map[int]float64, len(req.Products))
		for _, p := range req.Products {
			totalCoeffs[varIdx[p.Name]] = 1
		}
		tc := req.TotalConstraints
		if tc.MinTotal != nil && *tc.MinTotal > 0 {
			m.AddConstraint("total_min", totalCoeffs, engine.GE, *tc.MinTotal)
		}
		if tc.MaxTotal != nil && *tc.MaxTotal > 0 {
			m.AddConstraint("total_max", totalCoeffs, engine.LE, *tc.MaxTotal)
		}
	}

	return m, varIdx, nil
}
