package production

import "fmt"

// Validate runs ordered structural and semantic checks against a decoded
// request and returns every violation found; an empty slice means the
// request is valid. Validation never panics, and only the "missing
// top-level field" step short-circuits — every later check accumulates.
func Validate(req *Request) []string {
	var errs []string

	if req == nil {
		return []string{"request body is required"}
	}

	if req.Objective == "" {
		errs = append(errs, "missing required field: objective")
	}
	if req.Products == nil {
		errs = append(errs, "missing required field: products")
	}
	if req.Resources == nil {
		errs = append(errs, "missing required field: resources")
	}
	if req.ResourceUsage == nil {
		errs = append(errs, "missing required field: resource_usage")
	}
	if len(errs) > 0 {
		return errs
	}

	if req.Objective != MaximizeProfit && req.Objective != MinimizeCost {
		errs = append(errs, fmt.Sprintf("objective must be one of %q or %q", MaximizeProfit, MinimizeCost))
	}

	productNames := make(map[string]bool, len(req.Products))
	for _, p := range req.Products {
		if p.Name == "" {
			errs = append(errs, "product is missing a name")
			continue
		}
		if productNames[p.Name] {
			errs = append(errs, fmt.Sprintf("duplicate product name: %s", p.Name))
		}
		productNames[p.Name] = true
		if p.ProfitPerUnit < 0 {
			errs = append(errs, fmt.Sprintf("product %s: profit_per_unit must be non-negative", p.Name))
		}
		if p.CostPerUnit < 0 {
			errs = append(errs, fmt.Sprintf("product %s: cost_per_unit must be non-negative", p.Name))
		}
	}

	resourceNames := make(map[string]bool, len(req.Resources))
	for _, r := range req.Resources {
		if r.Name == "" {
			errs = append(errs, "resource is missing a name")
			continue
		}
		if resourceNames[r.Name] {
			errs = append(errs, fmt.Sprintf("duplicate resource name: %s", r.Name))
		}
		resourceNames[r.Name] = true
		if r.AvailableCapacity < 0 {
			errs = append(errs, fmt.Sprintf("resource %s: available_capacity must be non-negative", r.Name))
		}
	}

	productsWithUsage := make(map[string]bool, len(req.Products))
	for _, u := range req.ResourceUsage {
		if !productNames[u.ProductName] {
			errs = append(errs, fmt.Sprintf("resource_usage references unknown product: %s", u.ProductName))
		}
		if !resourceNames[u.ResourceName] {
			errs = append(errs, fmt.Sprintf("resource_usage references unknown resource: %s", u.ResourceName))
		}
		if u.UsagePerUnit < 0 {
			errs = append(errs, fmt.Sprintf("resource_usage %s/%s: usage_per_unit must be non-negative", u.ProductName, u.ResourceName))
		}
		productsWithUsage[u.ProductName] = true
	}

	for name := range productNames {
		if !productsWithUsage[name] {
			errs = append(errs, fmt.Sprintf("product %s has no resource_usage entries", name))
		}
	}

	for _, dc := range req.DemandConstraints {
		if !productNames[dc.ProductName] {
			errs = append(errs, fmt.Sprintf("demand_constraints references unknown product: %s", dc.ProductName))
			continue
		}
		if dc.MinDemand != nil && *dc.MinDemand < 0 {
			errs = append(errs, fmt.Sprintf("demand_constraints for %s: min_demand must be non-negative", dc.ProductName))
		}
		if dc.MaxDemand != nil && *dc.MaxDemand < 0 {
			errs = append(errs, fmt.Sprintf("demand_constraints for %s: max_demand must be non-negative", dc.ProductName))
		}
		if dc.MinDemand != nil && dc.MaxDemand != nil && *dc.MinDemand > *dc.MaxDemand {
			errs = append(errs, fmt.Sprintf("demand_constraints for %s: min_demand must be <= max_demand", dc.ProductName))
		}
	}

	if req.TotalConstraints != nil {
		tc := req.TotalConstraints
		if tc.MinTotal != nil && *tc.MinTotal < 0 {
			errs = append(errs, "total_constraints: min_total must be non-negative")
		}
		if tc.MaxTotal != nil && *tc.MaxTotal < 0 {
			errs = append(errs, "total_constraints: max_total must be non-negative")
		}
		if tc.MinTotal != nil && tc.MaxTotal != nil && *tc.MinTotal > *tc.MaxTotal {
			errs = append(errs, "total_constraints: min_total must be <= max_total")
		}
	}

	return errs
}
