package engine

import (
	"context"
	"fmt"
)

// Model is a named mathematical program: a set of bounded variables, a
// linear objective, and a set of named linear constraints. It is built up
// incrementally and solved once via Optimize.
type Model struct {
	Name string

	vars        []variable
	constraints []constraint
	objCoeffs   map[int]float64
	objSense    ObjectiveSense
	params      Params

	solved    bool
	status    Status
	objValue  float64
	varValues []float64
	message   string
	iis       []string
}

// NewModel creates an empty named model with default numeric parameters.
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		objCoeffs: make(map[int]float64),
		params:    DefaultParams(),
	}
}

// AddVariable registers a variable with the given bounds and kind,
// returning its index for use in constraints and the objective.
func (m *Model) AddVariable(name string, kind VarKind, lb, ub float64) int {
	if kind == Binary {
		lb, ub = 0, 1
	}
	m.vars = append(m.vars, variable{name: name, kind: kind, lb: lb, ub: ub})
	return len(m.vars) - 1
}

// AddConstraint adds a named linear constraint: sum(coeffs[i]*x_i) <sense> rhs.
func (m *Model) AddConstraint(name string, coeffs map[int]float64, sense Sense, rhs float64) int {
	cp := make(map[int]float64, len(coeffs))
	for k, v := range coeffs {
		if v != 0 {
			cp[k] = v
		}
	}
	m.constraints = append(m.constraints, constraint{name: name, coeffs: cp, sense: sense, rhs: rhs})
	return len(m.constraints) - 1
}

// SetObjective sets the linear objective and its sense.
func (m *Model) SetObjective(coeffs map[int]float64, sense ObjectiveSense) {
	m.objCoeffs = make(map[int]float64, len(coeffs))
	for k, v := range coeffs {
		if v != 0 {
			m.objCoeffs[k] = v
		}
	}
	m.objSense = sense
}

// SetParams installs the numeric-focus knobs used by the relaxation solver.
func (m *Model) SetParams(p Params) {
	m.params = p
}

// NumVars returns the number of decision variables registered so far.
func (m *Model) NumVars() int { return len(m.vars) }

// VarName returns the display name of variable i.
func (m *Model) VarName(i int) string { return m.vars[i].name }

// Optimize solves the model, blocking until a terminal status is reached
// or ctx is cancelled. It dispatches to the LP relaxation directly when
// the model has no binary variables, or to branch-and-bound otherwise.
func (m *Model) Optimize(ctx context.Context) error {
	hasBinary := false
	for _, v := range m.vars {
		if v.kind == Binary {
			hasBinary = true
			break
		}
	}

	var res solveResult
	var err error
	if hasBinary {
		res, err = branchAndBound(ctx, m)
	} else {
		res, err = solveLP(ctx, m, nil)
	}
	if err != nil {
		m.status = StatusOther
		m.message = err.Error()
		m.solved = true
		return err
	}

	m.status = res.status
	m.objValue = res.objValue
	m.varValues = res.values
	m.message = res.message
	m.solved = true
	return nil
}

// Status returns the solve outcome. Calling it before Optimize panics.
func (m *Model) Status() Status {
	m.mustBeSolved()
	return m.status
}

// Message returns a human-readable status detail (engine-error text, etc).
func (m *Model) Message() string {
	m.mustBeSolved()
	return m.message
}

// ObjectiveValue returns the objective at the reported solution.
func (m *Model) ObjectiveValue() float64 {
	m.mustBeSolved()
	return m.objValue
}

// VarValue returns the value of variable i at the reported solution.
func (m *Model) VarValue(i int) float64 {
	m.mustBeSolved()
	if i < 0 || i >= len(m.varValues) {
		return 0
	}
	return m.varValues[i]
}

func (m *Model) mustBeSolved() {
	if !m.solved {
		panic(fmt.Sprintf("engine: model %q: Optimize was not called", m.Name))
	}
}

// ComputeIIS returns the names of constraints in a minimal infeasible
// subset, or nil if none could be isolated. Only meaningful after a solve
// reported StatusInfeasible.
func (m *Model) ComputeIIS(ctx context.Context) []string {
	return computeIIS(ctx, m)
}

type solveResult struct {
	status   Status
	objValue float64
	values   []float64
	message  string
}
