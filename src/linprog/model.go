// Package linprog describes linear and 0/1 mixed-integer programs independently
// of the library used to solve them.
//
// A Model has the shape
//
//	Minimize (or Maximize): Σ Cost[j] · x[j]
//	Subject to:             Lower[r] ≤ Σ Coef · x[Col] ≤ Upper[r]
//	And:                    Lower[j] ≤ x[j] ≤ Upper[j]
//
// Backends live in sub-packages and implement Solver.
package linprog

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidModel = errors.New("invalid model")

type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

type Domain int

const (
	Continuous Domain = iota
	Binary
)

func (d Domain) String() string {
	switch d {
	case Continuous:
		return "continuous"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

type Variable struct {
	Name   string
	Domain Domain
	Lower  float64
	Upper  float64
	Cost   float64
}

type Term struct {
	Col  int
	Coef float64
}

// Constraint is a ranged row. Use math.Inf for a missing side.
type Constraint struct {
	Name  string
	Lower float64
	Upper float64
	Terms []Term
}

type Model struct {
	Name        string
	Sense       Sense
	Variables   []Variable
	Constraints []Constraint
}

func NewModel(name string, sense Sense) *Model {
	return &Model{Name: name, Sense: sense}
}

// AddVariable appends a variable and returns its column index. Binary
// variables always get the bounds [0, 1].
func (m *Model) AddVariable(name string, domain Domain, cost, lower, upper float64) int {
	if domain == Binary {
		lower, upper = 0, 1
	}
	m.Variables = append(m.Variables, Variable{
		Name:   name,
		Domain: domain,
		Lower:  lower,
		Upper:  upper,
		Cost:   cost,
	})
	return len(m.Variables) - 1
}

// AddConstraint appends a row and returns its index. Terms with a zero
// coefficient are dropped.
func (m *Model) AddConstraint(name string, lower, upper float64, terms []Term) int {
	kept := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.Coef != 0 {
			kept = append(kept, t)
		}
	}
	m.Constraints = append(m.Constraints, Constraint{
		Name:  name,
		Lower: lower,
		Upper: upper,
		Terms: kept,
	})
	return len(m.Constraints) - 1
}

func (m *Model) NumVariables() int {
	return len(m.Variables)
}

func (m *Model) NumConstraints() int {
	return len(m.Constraints)
}

func (m *Model) HasBinary() bool {
	for _, v := range m.Variables {
		if v.Domain == Binary {
			return true
		}
	}
	return false
}

// IsIntegral reports whether every cost, coefficient and finite bound of the
// model is an integer.
func (m *Model) IsIntegral() bool {
	for _, v := range m.Variables {
		if !isIntegral(v.Cost) || !isIntegral(v.Lower) || !isIntegral(v.Upper) {
			return false
		}
	}
	for _, c := range m.Constraints {
		if !isIntegral(c.Lower) || !isIntegral(c.Upper) {
			return false
		}
		for _, t := range c.Terms {
			if !isIntegral(t.Coef) {
				return false
			}
		}
	}
	return true
}

func isIntegral(x float64) bool {
	return math.IsInf(x, 0) || x == math.Trunc(x)
}

// Evaluate returns the objective value at values.
func (m *Model) Evaluate(values []float64) float64 {
	var obj float64
	for j, v := range m.Variables {
		obj += v.Cost * values[j]
	}
	return obj
}

// RowActivity returns Σ Coef · values[Col] for the given row.
func (m *Model) RowActivity(row int, values []float64) float64 {
	var act float64
	for _, t := range m.Constraints[row].Terms {
		act += t.Coef * values[t.Col]
	}
	return act
}

func (m *Model) Validate() error {
	for j, v := range m.Variables {
		if math.IsNaN(v.Cost) || math.IsNaN(v.Lower) || math.IsNaN(v.Upper) {
			return fmt.Errorf("%w: variable %d (%s) has NaN data", ErrInvalidModel, j, v.Name)
		}
		if v.Lower > v.Upper {
			return fmt.Errorf("%w: variable %d (%s) has lower bound %v above upper bound %v",
				ErrInvalidModel, j, v.Name, v.Lower, v.Upper)
		}
	}
	for r, c := range m.Constraints {
		if math.IsNaN(c.Lower) || math.IsNaN(c.Upper) {
			return fmt.Errorf("%w: constraint %d (%s) has NaN bounds", ErrInvalidModel, r, c.Name)
		}
		for _, t := range c.Terms {
			if t.Col < 0 || t.Col >= len(m.Variables) {
				return fmt.Errorf("%w: constraint %d (%s) references column %d of %d",
					ErrInvalidModel, r, c.Name, t.Col, len(m.Variables))
			}
			if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
				return fmt.Errorf("%w: constraint %d (%s) has non-finite coefficient", ErrInvalidModel, r, c.Name)
			}
		}
	}
	return nil
}

// DenseRow expands a constraint into a slice of len NumVariables.
func (m *Model) DenseRow(row int) []float64 {
	dense := make([]float64, len(m.Variables))
	for _, t := range m.Constraints[row].Terms {
		dense[t.Col] += t.Coef
	}
	return dense
}
