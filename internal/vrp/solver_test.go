package vrp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_FourNodeSingleVehicle(t *testing.T) {
	// Depot at (0,0), customers at (10,0), (0,10), (10,10) with demands
	// 5,5,5; K=1, Q=20. These four points sit at the corners of a 10x10
	// square, so the exact optimum is its perimeter (40): depot and the
	// three customers form a convex quadrilateral, whose minimal
	// Hamiltonian cycle is always its boundary.
	p := &Problem{
		Locations: []Location{
			{X: 0, Y: 0},
			{X: 10, Y: 0},
			{X: 0, Y: 10},
			{X: 10, Y: 10},
		},
		Demands:  []float64{0, 5, 5, 5},
		Vehicles: 1,
		DepotIdx: 0,
		Capacity: 20,
	}

	result, err := Solve(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, result.Status)
	require.Len(t, result.Routes, 1)

	route := result.Routes[0]
	assert.Equal(t, 0, route[0])
	assert.Equal(t, 0, route[len(route)-1])
	assert.Len(t, route, 5) // depot, 3 customers, depot

	assert.InDelta(t, 40.0, result.TotalDistance, 1e-6)
}

func TestSolve_EveryCustomerVisitedExactlyOnce(t *testing.T) {
	// Every customer appears in exactly one route exactly once; every
	// route starts and ends at the depot; per-route demand <= capacity.
	p := &Problem{
		Locations: []Location{
			{X: 0, Y: 0},
			{X: 5, Y: 0},
			{X: -5, Y: 0},
			{X: 0, Y: 5},
			{X: 0, Y: -5},
		},
		Demands:  []float64{0, 6, 6, 6, 6},
		Vehicles: 2,
		DepotIdx: 0,
		Capacity: 12,
	}

	result, err := Solve(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, result.Status)

	seen := make(map[int]int)
	for _, route := range result.Routes {
		assert.Equal(t, p.DepotIdx, route[0])
		assert.Equal(t, p.DepotIdx, route[len(route)-1])

		demand := 0.0
		for _, stop := range route[1 : len(route)-1] {
			seen[stop]++
			demand += p.Demands[stop]
		}
		assert.LessOrEqual(t, demand, p.Capacity+1e-6)
	}
	for c := 1; c < len(p.Locations); c++ {
		assert.Equal(t, 1, seen[c], "customer %d should appear exactly once", c)
	}
}

func TestSolve_RouteLengthsSumToTotalDistance(t *testing.T) {
	// The sum of route-lengths equals the returned total_distance.
	p := &Problem{
		Locations: []Location{
			{X: 0, Y: 0},
			{X: 10, Y: 0},
			{X: 0, Y: 10},
		},
		Demands:  []float64{0, 5, 5},
		Vehicles: 1,
		DepotIdx: 0,
		Capacity: 20,
	}

	result, err := Solve(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, result.Status)

	sum := 0.0
	for _, d := range result.RouteDistance {
		sum += d
	}
	assert.InDelta(t, result.TotalDistance, sum, 1e-6)
}

func TestSolve_InfeasibleDemandExceedsFleetCapacity(t *testing.T) {
	p := &Problem{
		Locations: []Location{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Demands:   []float64{0, 100},
		Vehicles:  1,
		DepotIdx:  0,
		Capacity:  10,
	}

	result, err := Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, string(result.Status), "Error")
}

func TestSolve_DepotDemandMustBeZero(t *testing.T) {
	p := &Problem{
		Locations: []Location{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Demands:   []float64{1, 0},
		Vehicles:  1,
		DepotIdx:  0,
		Capacity:  10,
	}

	result, err := Solve(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, string(result.Status), "Error")
}

func TestDistanceMatrix_SymmetricZeroDiagonal(t *testing.T) {
	locs := []Location{{X: 0, Y: 0}, {X: 3, Y: 4}}
	d := DistanceMatrix(locs)
	assert.Equal(t, 0.0, d[0][0])
	assert.Equal(t, 0.0, d[1][1])
	assert.InDelta(t, 5.0, d[0][1], 1e-9)
	assert.InDelta(t, d[0][1], d[1][0], 1e-9)
}
