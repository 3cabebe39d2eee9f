// Package backend builds linprog solvers by name.
package backend

import (
	"context"
	"fmt"
	"sort"

	"min_knapsack/src/linprog"
	"min_knapsack/src/linprog/highs"
	"min_knapsack/src/linprog/lpsolve"
	"min_knapsack/src/linprog/pbsat"
	"min_knapsack/src/linprog/simplex"
)

const Auto = "auto"

// Default is the backend used when none is configured.
const Default = highs.Name

type factory func(opts ...linprog.Option) (linprog.Solver, error)

var factories = map[string]factory{
	highs.Name: func(opts ...linprog.Option) (linprog.Solver, error) {
		return highs.New(opts...)
	},
	lpsolve.Name: func(opts ...linprog.Option) (linprog.Solver, error) {
		return lpsolve.New(opts...)
	},
	simplex.Name: func(opts ...linprog.Option) (linprog.Solver, error) {
		return simplex.New(opts...)
	},
	pbsat.Name: func(opts ...linprog.Option) (linprog.Solver, error) {
		return pbsat.New(opts...)
	},
	Auto: func(opts ...linprog.Option) (linprog.Solver, error) {
		return NewAuto(opts...)
	},
}

// Names lists the accepted backend names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the solver registered under name.
func New(name string, opts ...linprog.Option) (linprog.Solver, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unsupported solver backend %q (want one of %v)", name, Names())
	}
	return f(opts...)
}

// AutoSolver routes each model to the cheapest backend able to solve it
// exactly: continuous models to gonum's simplex, integral 0/1 models to the
// pseudo-boolean solver and anything else to HiGHS.
type AutoSolver struct {
	continuous linprog.Solver
	binary     linprog.Solver
	general    linprog.Solver
}

func NewAuto(opts ...linprog.Option) (*AutoSolver, error) {
	cont, err := simplex.New(opts...)
	if err != nil {
		return nil, err
	}
	bin, err := pbsat.New(opts...)
	if err != nil {
		return nil, err
	}
	gen, err := highs.New(opts...)
	if err != nil {
		return nil, err
	}
	return &AutoSolver{continuous: cont, binary: bin, general: gen}, nil
}

func (a *AutoSolver) Name() string {
	return Auto
}

// Pick returns the backend that Solve would use for m.
func (a *AutoSolver) Pick(m *linprog.Model) linprog.Solver {
	switch {
	case !m.HasBinary():
		return a.continuous
	case pbsat.Supports(m):
		return a.binary
	default:
		return a.general
	}
}

func (a *AutoSolver) Solve(ctx context.Context, m *linprog.Model) (*linprog.Result, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", linprog.ErrInvalidModel)
	}
	return a.Pick(m).Solve(ctx, m)
}
