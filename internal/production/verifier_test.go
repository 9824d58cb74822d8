package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify_DowngradesOnCapacityViolation(t *testing.T) {
	// An adapter that reports an optimal plan exceeding a capacity by 1e-3
	// must be downgraded to solution_warning with a capacity-violation
	// warning naming the resource.
	req := &Request{
		Resources: []Resource{{Name: "R", AvailableCapacity: 100}},
		ResourceUsage: []ResourceUsage{
			{ProductName: "A", ResourceName: "R", UsagePerUnit: 1},
		},
	}
	total := 100.001
	result := &Result{
		Status:         StatusOptimal,
		ProductionPlan: map[string]float64{"A": 100.001},
		ResourceUtilization: map[string]ResourceUtilization{
			"R": {Used: 100.001, Available: 100, UtilizationPct: 100.001},
		},
		TotalProduction: &total,
	}

	Verify(result, req)

	assert.Equal(t, StatusSolutionWarning, result.Status)
	found := false
	for _, w := range result.FeasibilityWarnings {
		if w != "" {
			found = true
		}
	}
	assert.True(t, found)
	assert.Contains(t, result.FeasibilityWarnings[0], "R")
}

func TestVerify_ReconciliationAloneDoesNotDowngrade(t *testing.T) {
	// A reconciliation mismatch alone attaches a warning but never
	// downgrades the status.
	req := &Request{
		Resources: []Resource{{Name: "R", AvailableCapacity: 100}},
		ResourceUsage: []ResourceUsage{
			{ProductName: "A", ResourceName: "R", UsagePerUnit: 1},
		},
	}
	total := 50.0
	result := &Result{
		Status:         StatusOptimal,
		ProductionPlan: map[string]float64{"A": 50},
		ResourceUtilization: map[string]ResourceUtilization{
			"R": {Used: 49.9999, Available: 100, UtilizationPct: 49.9999},
		},
		TotalProduction: &total,
	}

	Verify(result, req)

	assert.Equal(t, StatusOptimal, result.Status)
	assert.NotEmpty(t, result.FeasibilityWarnings)
}

func TestVerify_DemandBoundViolation(t *testing.T) {
	req := &Request{
		DemandConstraints: []DemandConstraint{{ProductName: "A", MinDemand: ptr(10)}},
	}
	result := &Result{
		Status:         StatusOptimal,
		ProductionPlan: map[string]float64{"A": 5},
	}

	Verify(result, req)

	assert.Equal(t, StatusSolutionWarning, result.Status)
}

func TestVerify_NonOptimalStatusUntouched(t *testing.T) {
	result := &Result{Status: StatusInfeasible}
	Verify(result, &Request{})
	assert.Equal(t, StatusInfeasible, result.Status)
	assert.Empty(t, result.FeasibilityWarnings)
}
