package engine

import (
	"context"
	"fmt"
	"math"
)

// bounds overrides the registered lower/upper bound of a variable for a
// single relaxation solve, used by branch-and-bound to tighten binary
// variables without rebuilding the whole model.
type bounds struct {
	lb, ub float64
}

const (
	simplexEps = 1e-9
)

// solveLP solves the LP relaxation of m, honoring any per-variable bound
// overrides, using a dense-tableau Big-M primal simplex. Variables are
// shifted so every column is nonnegative; finite upper bounds are modeled
// as explicit "<=" rows rather than a bounded-variable ratio test, trading
// some efficiency for a simpler, more easily verified pivoting loop.
func solveLP(ctx context.Context, m *Model, overrides map[int]bounds) (solveResult, error) {
	select {
	case <-ctx.Done():
		return solveResult{}, ctx.Err()
	default:
	}

	n := len(m.vars)
	lb := make([]float64, n)
	ub := make([]float64, n)
	for j, v := range m.vars {
		lb[j], ub[j] = v.lb, v.ub
		if o, ok := overrides[j]; ok {
			lb[j], ub[j] = o.lb, o.ub
		}
		if math.IsInf(lb[j], -1) {
			lb[j] = 0 // this domain never emits free variables
		}
		if ub[j] < lb[j] {
			ub[j] = lb[j]
		}
	}

	type row struct {
		coeffs map[int]float64
		sense  Sense
		rhs    float64
		name   string
	}
	var rows []row
	for _, c := range m.constraints {
		adj := c.rhs
		for j, a := range c.coeffs {
			adj -= a * lb[j]
		}
		rows = append(rows, row{coeffs: c.coeffs, sense: c.sense, rhs: adj, name: c.name})
	}
	for j := 0; j < n; j++ {
		if !math.IsInf(ub[j], 1) {
			width := ub[j] - lb[j]
			if width < 0 {
				width = 0
			}
			rows = append(rows, row{
				coeffs: map[int]float64{j: 1},
				sense:  LE,
				rhs:    width,
				name:   fmt.Sprintf("%s__ub", m.vars[j].name),
			})
		}
	}

	// Normalize so every row has a non-negative RHS.
	for i := range rows {
		if rows[i].rhs < 0 {
			flipped := make(map[int]float64, len(rows[i].coeffs))
			for j, a := range rows[i].coeffs {
				flipped[j] = -a
			}
			rows[i].coeffs = flipped
			rows[i].rhs = -rows[i].rhs
			switch rows[i].sense {
			case LE:
				rows[i].sense = GE
			case GE:
				rows[i].sense = LE
			}
		}
	}

	numRows := len(rows)
	// Column layout: [0,n) structural, then one slack/surplus per row that
	// needs one, then one artificial per row that needs one.
	extraCol := make([]int, numRows) // slack/surplus column index, or -1
	artCol := make([]int, numRows)   // artificial column index, or -1
	col := n
	for i, r := range rows {
		extraCol[i], artCol[i] = -1, -1
		switch r.sense {
		case LE:
			extraCol[i] = col
			col++
		case GE:
			extraCol[i] = col
			col++
			artCol[i] = col
			col++
		case EQ:
			artCol[i] = col
			col++
		}
	}
	totalCols := col

	if numRows == 0 {
		// No constraints at all: optimum is at whichever bound the
		// objective sense prefers, unbounded if that bound is infinite.
		values := make([]float64, n)
		for j := 0; j < n; j++ {
			c := m.objCoeffs[j]
			want := c > 0 == (m.objSense == Maximize)
			if want && math.IsInf(ub[j], 1) && c != 0 {
				return solveResult{status: StatusUnbounded, message: "unbounded"}, nil
			}
			if want {
				values[j] = ub[j]
			} else {
				values[j] = lb[j]
			}
		}
		return finishLP(m, values), nil
	}

	tableau := make([][]float64, numRows)
	for i := range tableau {
		tableau[i] = make([]float64, totalCols+1) // last column is RHS
		for j, a := range rows[i].coeffs {
			tableau[i][j] = a
		}
		if extraCol[i] >= 0 {
			if rows[i].sense == LE {
				tableau[i][extraCol[i]] = 1
			} else {
				tableau[i][extraCol[i]] = -1
			}
		}
		if artCol[i] >= 0 {
			tableau[i][artCol[i]] = 1
		}
		tableau[i][totalCols] = rows[i].rhs
	}

	basis := make([]int, numRows)
	for i := range basis {
		if artCol[i] >= 0 {
			basis[i] = artCol[i]
		} else {
			basis[i] = extraCol[i]
		}
	}

	bigM := 1.0
	for _, c := range m.objCoeffs {
		if math.Abs(c) > bigM {
			bigM = math.Abs(c)
		}
	}
	bigM *= 1e6

	cost := make([]float64, totalCols)
	for j, c := range m.objCoeffs {
		if m.objSense == Maximize {
			cost[j] = -c
		} else {
			cost[j] = c
		}
	}
	for i := range rows {
		if artCol[i] >= 0 {
			cost[artCol[i]] = bigM
		}
	}

	status, err := pivotToOptimum(ctx, tableau, cost, basis, totalCols)
	if err != nil {
		return solveResult{}, err
	}
	if status == StatusUnbounded {
		return solveResult{status: StatusUnbounded, message: "unbounded"}, nil
	}

	// Infeasible if any artificial variable remains basic above tolerance.
	isArt := make(map[int]bool, numRows)
	for _, a := range artCol {
		if a >= 0 {
			isArt[a] = true
		}
	}
	for i, b := range basis {
		if isArt[b] && tableau[i][totalCols] > m.params.FeasibilityTol {
			return solveResult{status: StatusInfeasible, message: "infeasible"}, nil
		}
	}

	colValue := make([]float64, totalCols)
	for i, b := range basis {
		colValue[b] = tableau[i][totalCols]
	}

	values := make([]float64, n)
	for j := 0; j < n; j++ {
		values[j] = lb[j] + colValue[j]
	}
	return finishLP(m, values), nil
}

func finishLP(m *Model, values []float64) solveResult {
	obj := 0.0
	for j, c := range m.objCoeffs {
		obj += c * values[j]
	}
	return solveResult{status: StatusOptimal, objValue: obj, values: values, message: "Optimal solution found"}
}

// pivotToOptimum runs the primal simplex method on the given tableau until
// no improving column remains (optimal) or an entering column has no
// blocking row (unbounded).
func pivotToOptimum(ctx context.Context, tableau [][]float64, cost []float64, basis []int, totalCols int) (Status, error) {
	numRows := len(tableau)
	maxIter := 2000 + 50*totalCols

	reduced := make([]float64, totalCols)
	for iter := 0; iter < maxIter; iter++ {
		if iter%256 == 0 {
			select {
			case <-ctx.Done():
				return StatusOther, ctx.Err()
			default:
			}
		}

		// z_j = sum(cost[basis[i]] * tableau[i][j]); reduced cost = cost[j] - z_j.
		for j := 0; j < totalCols; j++ {
			z := 0.0
			for i := 0; i < numRows; i++ {
				z += cost[basis[i]] * tableau[i][j]
			}
			reduced[j] = cost[j] - z
		}

		entering := -1
		best := -simplexEps
		for j := 0; j < totalCols; j++ {
			if reduced[j] < best {
				best = reduced[j]
				entering = j
			}
		}
		if entering == -1 {
			return StatusOptimal, nil
		}

		leaving := -1
		bestRatio := math.Inf(1)
		for i := 0; i < numRows; i++ {
			a := tableau[i][entering]
			if a > simplexEps {
				ratio := tableau[i][totalCols] / a
				if ratio < bestRatio-simplexEps {
					bestRatio = ratio
					leaving = i
				}
			}
		}
		if leaving == -1 {
			return StatusUnbounded, nil
		}

		pivot := tableau[leaving][entering]
		for j := 0; j <= totalCols; j++ {
			tableau[leaving][j] /= pivot
		}
		for i := 0; i < numRows; i++ {
			if i == leaving {
				continue
			}
			factor := tableau[i][entering]
			if factor == 0 {
				continue
			}
			for j := 0; j <= totalCols; j++ {
				tableau[i][j] -= factor * tableau[leaving][j]
			}
		}
		basis[leaving] = entering
	}

	return StatusOther, fmt.Errorf("simplex: iteration limit exceeded")
}
