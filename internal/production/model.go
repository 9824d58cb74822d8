// Package production implements the production-mix linear optimizer:
// request validation, model construction, solving, result assembly, and
// independent feasibility verification.
package production

// Objective selects which direction the linear program optimizes.
type Objective string

const (
	MaximizeProfit Objective = "maximize_profit"
	MinimizeCost   Objective = "minimize_cost"
)

// Product is one item the plan allocates a quantity to.
type Product struct {
	Name          string  `json:"name"`
	ProfitPerUnit float64 `json:"profit_per_unit"`
	CostPerUnit   float64 `json:"cost_per_unit"`
}

// Resource is a capacity-limited input consumed by production.
type Resource struct {
	Name              string  `json:"name"`
	AvailableCapacity float64 `json:"available_capacity"`
}

// ResourceUsage records how much of one resource one unit of one product
// consumes. A missing (product, resource) pair means zero usage.
type ResourceUsage struct {
	ProductName  string  `json:"product_name"`
	ResourceName string  `json:"resource_name"`
	UsagePerUnit float64 `json:"usage_per_unit"`
}

// DemandConstraint bounds how much of one product must or may be made.
type DemandConstraint struct {
	ProductName string   `json:"product_name"`
	MinDemand   *float64 `json:"min_demand,omitempty"`
	MaxDemand   *float64 `json:"max_demand,omitempty"`
}

// TotalConstraints bounds the aggregate production quantity across all
// products.
type TotalConstraints struct {
	MinTotal *float64 `json:"min_total,omitempty"`
	MaxTotal *float64 `json:"max_total,omitempty"`
}

// Request is the fully decoded production-optimization request.
type Request struct {
	Objective         Objective          `json:"objective"`
	Products          []Product          `json:"products"`
	Resources         []Resource         `json:"resources"`
	ResourceUsage     []ResourceUsage    `json:"resource_usage"`
	DemandConstraints []DemandConstraint `json:"demand_constraints,omitempty"`
	TotalConstraints  *TotalConstraints  `json:"total_constraints,omitempty"`
}

// ResourceUtilization reports how much of a resource a plan consumes.
type ResourceUtilization struct {
	Used           float64 `json:"used"`
	Available      float64 `json:"available"`
	UtilizationPct float64 `json:"utilization_pct"`
}

// Status is the outcome tag reported to callers.
type Status string

const (
	StatusOptimal         Status = "optimal"
	StatusSolutionWarning Status = "solution_warning"
	StatusInfeasible      Status = "infeasible"
	StatusUnbounded       Status = "unbounded"
	StatusError           Status = "error"
	StatusValidationError Status = "validation_error"
)

// Result is the response envelope returned for every solve outcome.
type Result struct {
	Status                Status                          `json:"status"`
	ObjectiveValue        *float64                        `json:"objective_value,omitempty"`
	ProductionPlan        map[string]float64              `json:"production_plan,omitempty"`
	ResourceUtilization   map[string]ResourceUtilization  `json:"resource_utilization,omitempty"`
	TotalProduction       *float64                        `json:"total_production,omitempty"`
	SolverMessage         string                          `json:"solver_message"`
	FeasibilityWarnings   []string                        `json:"feasibility_warnings,omitempty"`
	InfeasibleConstraints any                             `json:"infeasible_constraints,omitempty"`
	ValidationErrors      []string                        `json:"validation_errors,omitempty"`
}
