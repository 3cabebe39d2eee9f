// Package lpsolve solves linprog models with lp_solve through golp.
package lpsolve

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/draffensperger/golp"

	"min_knapsack/src/linprog"
)

const Name = "lpsolve"

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

	// lp_solve honours its own timeout, so the wait is only cut short by ctx.
	return linprog.RunWithContext(ctx, 0, func() (*linprog.Result, error) {
		lp, err := defLP(m)
		if err != nil {
			return nil, err
		}
		if sec := timeoutSeconds(s.opts.TimeLimit); sec > 0 {
			lp.SetTimeout(sec)
		}
		return runLPSolver(lp, m.NumVariables())
	})
}

// timeoutSeconds rounds a time limit up to the whole seconds lp_solve takes.
// Zero means no limit.
func timeoutSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

func defLP(m *linprog.Model) (*golp.LP, error) {
	lp := golp.NewLP(0, m.NumVariables())

	costs := make([]float64, m.NumVariables())
	for j, v := range m.Variables {
		costs[j] = v.Cost
		lp.SetColName(j, v.Name)
		lp.SetBounds(j, v.Lower, v.Upper)
		if v.Domain == linprog.Binary {
			lp.SetInt(j, true)
		}
	}
	lp.SetObjFn(costs)
	if m.Sense == linprog.Maximize {
		lp.SetMaximize()
	}

	for r, c := range m.Constraints {
		row := make([]golp.Entry, len(c.Terms))
		for i, t := range c.Terms {
			row[i] = golp.Entry{Col: t.Col, Val: t.Coef}
		}

		var err error
		switch {
		case math.IsInf(c.Lower, -1) && math.IsInf(c.Upper, 1):
			// free row
		case math.IsInf(c.Lower, -1):
			err = lp.AddConstraintSparse(row, golp.LE, c.Upper)
		case math.IsInf(c.Upper, 1):
			err = lp.AddConstraintSparse(row, golp.GE, c.Lower)
		case c.Lower == c.Upper:
			err = lp.AddConstraintSparse(row, golp.EQ, c.Upper)
		default:
			if err = lp.AddConstraintSparse(row, golp.LE, c.Upper); err == nil {
				err = lp.AddConstraintSparse(row, golp.GE, c.Lower)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%s: adding constraint %d (%s): %w", Name, r, c.Name, err)
		}
	}
	return lp, nil
}

func runLPSolver(lp *golp.LP, numCols int) (*linprog.Result, error) {
	ret := lp.Solve()

	switch ret {
	case golp.OPTIMAL:
		vars := lp.Variables()
		values := make([]float64, numCols)
		copy(values, vars)
		return &linprog.Result{
			Status:    linprog.Optimal,
			Objective: lp.Objective(),
			Values:    values,
		}, nil
	case golp.INFEASIBLE:
		return &linprog.Result{Status: linprog.Infeasible}, nil
	case golp.UNBOUNDED:
		return &linprog.Result{Status: linprog.Unbounded}, nil
	case golp.TIMEOUT, golp.SUBOPTIMAL:
		// stopped before optimality was proven, usually by the timeout
		return &linprog.Result{Status: linprog.Undefined}, nil
	case golp.NOMEMORY:
		return nil, fmt.Errorf("%s: ran out of memory while solving", Name)
	default:
		// DEGENERATE, NUMFAILURE and friends
		return &linprog.Result{Status: linprog.Undefined}, nil
	}
}
