package minkp

import (
	"fmt"
	"math"

	"min_knapsack/src/linprog"
)

// Formulation is a built model together with the layout of its columns.
//
// Primal columns are x[i,j], item j in knapsack i, stored row-major at
// i*NumItems + j. Dual columns are v[i] at i, followed by w[j] at
// NumKnapsacks + j.
type Formulation struct {
	Model        *linprog.Model
	Mode         Mode
	NumKnapsacks int
	NumItems     int
}

func (f *Formulation) X(i, j int) int {
	return i*f.NumItems + j
}

func (f *Formulation) V(i int) int {
	return i
}

func (f *Formulation) W(j int) int {
	return f.NumKnapsacks + j
}

// BuildModel returns the primal or dual model of inst. Invalid modes and
// instances are rejected before anything is built.
//
// An instance without items but with a positive demand is not special-cased:
// its coverage row has no terms and the solver reports it infeasible.
func BuildModel(inst *Instance, mode Mode) (*Formulation, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
	if inst == nil {
		return nil, fmt.Errorf("%w: nil instance", ErrInvalidInstance)
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	f := &Formulation{
		Mode:         mode,
		NumKnapsacks: inst.NumKnapsacks,
		NumItems:     inst.NumItems,
	}
	if mode.IsPrimal() {
		f.Model = f.defPrimal(inst)
	} else {
		f.Model = f.defDual(inst)
	}
	return f, nil
}

func (f *Formulation) defPrimal(inst *Instance) *linprog.Model {
	name := "Single_minKP"
	if inst.IsMulti() {
		name = "Multi_minKP"
	}
	m := linprog.NewModel(name, linprog.Minimize)

	domain := linprog.Binary
	if f.Mode == RelaxedPrimal {
		domain = linprog.Continuous
	}
	for i := range inst.NumKnapsacks {
		for j := range inst.NumItems {
			m.AddVariable(fmt.Sprintf("present_%d_%d", i, j), domain, inst.Cost[j], 0, 1)
		}
	}

	for i := range inst.NumKnapsacks {
		terms := make([]linprog.Term, inst.NumItems)
		for j := range inst.NumItems {
			terms[j] = linprog.Term{Col: f.X(i, j), Coef: inst.Weight[j]}
		}
		m.AddConstraint(fmt.Sprintf("demand_%d", i), inst.Demand[i], math.Inf(1), terms)
	}

	// With a single knapsack the exclusivity row reduces to the bound x <= 1.
	if inst.IsMulti() {
		for j := range inst.NumItems {
			terms := make([]linprog.Term, inst.NumKnapsacks)
			for i := range inst.NumKnapsacks {
				terms[i] = linprog.Term{Col: f.X(i, j), Coef: 1}
			}
			m.AddConstraint(fmt.Sprintf("exclusive_%d", j), math.Inf(-1), 1, terms)
		}
	}
	return m
}

// defDual builds
//
//	max Σ demand[i] v[i] − Σ w[j]
//	s.t. weight[j] v[i] − w[j] <= cost[j]   for all i, j
//	     v, w >= 0
//
// For a single knapsack w[j] prices the bound x[j] <= 1 instead of the
// exclusivity row.
func (f *Formulation) defDual(inst *Instance) *linprog.Model {
	name := "Dual_minKP"
	if inst.IsMulti() {
		name = "Dual_multi_minKP"
	}
	m := linprog.NewModel(name, linprog.Maximize)

	for i := range inst.NumKnapsacks {
		m.AddVariable(fmt.Sprintf("v_%d", i), linprog.Continuous, inst.Demand[i], 0, math.Inf(1))
	}
	for j := range inst.NumItems {
		m.AddVariable(fmt.Sprintf("w_%d", j), linprog.Continuous, -1, 0, math.Inf(1))
	}

	for i := range inst.NumKnapsacks {
		for j := range inst.NumItems {
			m.AddConstraint(fmt.Sprintf("price_%d_%d", i, j), math.Inf(-1), inst.Cost[j], []linprog.Term{
				{Col: f.V(i), Coef: inst.Weight[j]},
				{Col: f.W(j), Coef: -1},
			})
		}
	}
	return m
}
