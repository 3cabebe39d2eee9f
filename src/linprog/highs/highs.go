// Package highs solves linprog models with the HiGHS LP/MIP solver.
package highs

import (
	"context"
	"fmt"

	"github.com/lanl/highs"

	"min_knapsack/src/linprog"
)

const Name = "highs"

type Solver struct {
	opts linprog.Options
}

func New(opts ...linprog.Option) (*Solver, error) {
	o, err := linprog.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Solver{opts: o}, nil
}

func (s *Solver) Name() string {
	return Name
}

func (s *Solver) Solve(ctx context.Context, m *linprog.Model) (*linprog.Result, error) {
	if err := linprog.Prepare(ctx, m); err != nil {
		return nil, err
	}
	m, feasible := linprog.DropEmptyRows(m)
	if !feasible {
		return &linprog.Result{Status: linprog.Infeasible}, nil
	}
	if res, ok := linprog.SolveTrivial(m); ok {
		return res, nil
	}

	raw, err := s.newRawModel(m)
	if err != nil {
		return nil, err
	}
	// HiGHS stops on its own once time_limit elapses, so the wait is only
	// cut short by ctx.
	return linprog.RunWithContext(ctx, 0, func() (*linprog.Result, error) {
		return runHighsSolver(raw, m.NumVariables())
	})
}

// newRawModel translates m and applies the solver options HiGHS understands.
func (s *Solver) newRawModel(m *linprog.Model) (*highs.RawModel, error) {
	raw, err := defModel(m).ToRawModel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}
	if err := raw.SetBoolOption("output_flag", s.opts.Verbose); err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}
	if s.opts.TimeLimit > 0 {
		if err := raw.SetFloat64Option("time_limit", s.opts.TimeLimit.Seconds()); err != nil {
			return nil, fmt.Errorf("%s: %w", Name, err)
		}
	}
	return raw, nil
}

func defModel(m *linprog.Model) *highs.Model {
	numCols := m.NumVariables()
	lp := new(highs.Model)
	lp.Maximize = m.Sense == linprog.Maximize

	lp.ColCosts = make([]float64, numCols)
	lp.ColLower = make([]float64, numCols)
	lp.ColUpper = make([]float64, numCols)
	lp.VarTypes = make([]highs.VariableType, numCols)
	for j, v := range m.Variables {
		lp.ColCosts[j] = v.Cost
		lp.ColLower[j] = v.Lower
		lp.ColUpper[j] = v.Upper
		if v.Domain == linprog.Binary {
			lp.VarTypes[j] = highs.IntegerType
		} else {
			lp.VarTypes[j] = highs.ContinuousType
		}
	}

	for r, c := range m.Constraints {
		for _, t := range c.Terms {
			lp.ConstMatrix = append(lp.ConstMatrix, highs.Nonzero{Row: r, Col: t.Col, Val: t.Coef})
		}
		lp.RowLower = append(lp.RowLower, c.Lower)
		lp.RowUpper = append(lp.RowUpper, c.Upper)
	}
	return lp
}

func runHighsSolver(raw *highs.RawModel, numCols int) (*linprog.Result, error) {
	solution, err := raw.Solve()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}

	res := &linprog.Result{Status: convertStatus(solution.Status)}
	if res.Status == linprog.Optimal {
		res.Objective = solution.Objective
		res.Values = make([]float64, numCols)
		copy(res.Values, solution.ColumnPrimal)
	}
	return res, nil
}

func convertStatus(st highs.ModelStatus) linprog.Status {
	switch st {
	case highs.Optimal:
		return linprog.Optimal
	case highs.Infeasible:
		return linprog.Infeasible
	case highs.Unbounded:
		return linprog.Unbounded
	default:
		// TimeLimit, IterationLimit and UnboundedOrInfeasible carry no
		// usable answer.
		return linprog.Undefined
	}
}
