package production

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optiserve/internal/engine"
)

func solvedModel(t *testing.T, req *Request) (*engine.Model, map[string]int) {
	t.Helper()
	m, varIdx, err := BasicBuilder{}.Build(req)
	require.NoError(t, err)
	require.NoError(t, m.Optimize(context.Background()))
	return m, varIdx
}

func TestAssemble_TotalMatchesPlanSum(t *testing.T) {
	// Reported total_production equals the sum of the reported plan
	// values to within 1e-9.
	req := validRequest()
	m, varIdx := solvedModel(t, req)
	result := Assemble(context.Background(), m, req, varIdx)

	require.Equal(t, StatusOptimal, result.Status)
	sum := 0.0
	for _, qty := range result.ProductionPlan {
		sum += qty
	}
	require.NotNil(t, result.TotalProduction)
	assert.InDelta(t, sum, *result.TotalProduction, 1e-9)
}

func TestAssemble_UtilizationPercentages(t *testing.T) {
	// utilization_pct is 100*used/available when available > 0, and 0
	// for a zero-capacity resource.
	req := validRequest()
	req.Resources = append(req.Resources, Resource{Name: "Idle", AvailableCapacity: 0})
	req.ResourceUsage = append(req.ResourceUsage, ResourceUsage{ProductName: "A", ResourceName: "Idle", UsagePerUnit: 0})
	m, varIdx := solvedModel(t, req)
	result := Assemble(context.Background(), m, req, varIdx)

	require.Equal(t, StatusOptimal, result.Status)
	for name, util := range result.ResourceUtilization {
		if util.Available > 0 {
			assert.InDelta(t, 100*util.Used/util.Available, util.UtilizationPct, 1e-9, "resource %s", name)
		} else {
			assert.Zero(t, util.UtilizationPct, "resource %s", name)
		}
	}
}

func TestAssemble_InfeasibleWithoutIsolatableConflictReportsUnknown(t *testing.T) {
	// A model whose infeasibility is purely integral: the LP relaxation is
	// feasible, so the deletion filter cannot isolate a conflicting
	// constraint subset and the assembler falls back to the "Unknown"
	// sentinel rather than omitting the field.
	m := engine.NewModel("integral_conflict")
	x := m.AddVariable("x", engine.Binary, 0, 1)
	m.SetObjective(map[int]float64{x: 1}, engine.Minimize)
	m.AddConstraint("half", map[int]float64{x: 1}, engine.EQ, 0.5)
	require.NoError(t, m.Optimize(context.Background()))
	require.Equal(t, engine.StatusInfeasible, m.Status())

	req := &Request{Products: []Product{{Name: "x"}}}
	result := Assemble(context.Background(), m, req, map[string]int{"x": x})
	assert.Equal(t, StatusInfeasible, result.Status)
	assert.Equal(t, "Unknown", result.InfeasibleConstraints)
}

func TestAssemble_InfeasibleReportsConstraintNames(t *testing.T) {
	req := &Request{
		Objective: MinimizeCost,
		Products:  []Product{{Name: "X", CostPerUnit: 1}},
		Resources: []Resource{{Name: "R", AvailableCapacity: 10}},
		ResourceUsage: []ResourceUsage{
			{ProductName: "X", ResourceName: "R", UsagePerUnit: 1},
		},
		TotalConstraints: &TotalConstraints{MinTotal: ptr(20)},
	}
	m, varIdx, err := BasicBuilder{}.Build(req)
	require.NoError(t, err)
	require.NoError(t, m.Optimize(context.Background()))
	require.Equal(t, engine.StatusInfeasible, m.Status())

	result := Assemble(context.Background(), m, req, varIdx)
	assert.Equal(t, StatusInfeasible, result.Status)
	names, ok := result.InfeasibleConstraints.([]string)
	require.True(t, ok, "expected constraint names, got %v", result.InfeasibleConstraints)
	assert.Contains(t, names, "total_min")
}
