package vrp

import (
	"optiserve/internal/engine"
)

// arcKey indexes the binary arc-selection variables by (from, to, vehicle).
type arcKey struct{ i, j, k int }

// builtModel bundles the engine model with the variable index maps the
// assembler needs to read the solution back out.
type builtModel struct {
	engine *engine.Model
	x      map[arcKey]int
	u      map[[2]int]int // (location, vehicle) -> var index
	dist   [][]float64
}

// build emits the MTZ arc-flow formulation: binary arc-selection
// variables and continuous load potentials per vehicle, minimized over
// total arc distance under the visit/flow/depot/MTZ constraint families.
func build(p *Problem) *builtModel {
	n := len(p.Locations)
	k := p.Vehicles
	d := p.DepotIdx
	dist := DistanceMatrix(p.Locations)

	m := engine.NewModel("vrp")
	m.SetParams(engine.Params{NumericFocus: 3, FeasibilityTol: FeasibilityTol, OutputEnabled: false, MaxNodes: MaxBranchAndBound})

	bm := &builtModel{engine: m, x: make(map[arcKey]int), u: make(map[[2]int]int), dist: dist}

	for veh := 0; veh < k; veh++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				idx := m.AddVariable(arcName(i, j, veh), engine.Binary, 0, 1)
				bm.x[arcKey{i, j, veh}] = idx
			}
		}
		for i := 0; i < n; i++ {
			var lb, ub float64
			if i == d {
				lb, ub = 0, 0
			} else {
				lb, ub = p.Demands[i], p.Capacity
			}
			idx := m.AddVariable(potentialName(i, veh), engine.Continuous, lb, ub)
			bm.u[[2]int{i, veh}] = idx
		}
	}

	objCoeffs := make(map[int]float64)
	for key, idx := range bm.x {
		objCoeffs[idx] = dist[key.i][key.j]
	}
	m.SetObjective(objCoeffs, engine.Minimize)

	// 1. Visit each customer exactly once.
	for j := 0; j < n; j++ {
		if j == d {
			continue
		}
		coeffs := make(map[int]float64)
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			for veh := 0; veh < k; veh++ {
				coeffs[bm.x[arcKey{i, j, veh}]] = 1
			}
		}
		m.AddConstraint(visitName(j), coeffs, engine.EQ, 1)
	}

	// 2. Flow conservation per vehicle, per node.
	for veh := 0; veh < k; veh++ {
		for h := 0; h < n; h++ {
			coeffs := make(map[int]float64)
			for i := 0; i < n; i++ {
				if i != h {
					coeffs[bm.x[arcKey{i, h, veh}]] += 1
				}
			}
			for j := 0; j < n; j++ {
				if j != h {
					coeffs[bm.x[arcKey{h, j, veh}]] -= 1
				}
			}
			m.AddConstraint(flowName(h, veh), coeffs, engine.EQ, 0)
		}
	}

	// 3. Depot departure/return at most once.
	for veh := 0; veh < k; veh++ {
		depart := make(map[int]float64)
		for j := 0; j < n; j++ {
			if j != d {
				depart[bm.x[arcKey{d, j, veh}]] = 1
			}
		}
		m.AddConstraint(depotOutName(veh), depart, engine.LE, 1)

		arrive := make(map[int]float64)
		for i := 0; i < n; i++ {
			if i != d {
				arrive[bm.x[arcKey{i, d, veh}]] = 1
			}
		}
		m.AddConstraint(depotInName(veh), arrive, engine.LE, 1)
	}

	// 4. MTZ capacity + subtour elimination.
	for veh := 0; veh < k; veh++ {
		for i := 0; i < n; i++ {
			if i == d {
				continue
			}
			for j := 0; j < n; j++ {
				if j == d || i == j {
					continue
				}
				// u[j,k] - u[i,k] - Q*x[i,j,k] >= demand_j - Q
				coeffs := map[int]float64{
					bm.u[[2]int{j, veh}]:    1,
					bm.u[[2]int{i, veh}]:    -1,
					bm.x[arcKey{i, j, veh}]: -p.Capacity,
				}
				m.AddConstraint(mtzName(i, j, veh), coeffs, engine.GE, p.Demands[j]-p.Capacity)
			}
		}
	}

	return bm
}
