// Package simplex solves continuous linprog models with gonum's simplex
// implementation. Models with binary variables are rejected.
package simplex

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"min_knapsack/src/linprog"
)

const Name = "simplex"

// DefaultTolerance is used when no tolerance is configured.
const DefaultTolerance = 1e-10

type Solver struct {
	opts linprog.Options
}

func New(opts ...linprog.Option) (*Solver, error) {
	o, err := linprog.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
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
	for j, v := range m.Variables {
		if v.Domain != linprog.Continuous {
			return nil, fmt.Errorf("%s: variable %d (%s) is %v: %w", Name, j, v.Name, v.Domain, linprog.ErrUnsupported)
		}
		if math.IsInf(v.Lower, 0) {
			return nil, fmt.Errorf("%s: variable %d (%s) has no finite lower bound: %w", Name, j, v.Name, linprog.ErrUnsupported)
		}
	}
	m, feasible := linprog.DropEmptyRows(m)
	if !feasible {
		return &linprog.Result{Status: linprog.Infeasible}, nil
	}
	if res, ok := linprog.SolveTrivial(m); ok {
		return res, nil
	}

	return linprog.RunWithContext(ctx, s.opts.TimeLimit, func() (*linprog.Result, error) {
		return s.solveStandard(m)
	})
}

func (s *Solver) solveStandard(m *linprog.Model) (*linprog.Result, error) {
	sf := toStandardForm(m)
	if sf.infeasible {
		return &linprog.Result{Status: linprog.Infeasible}, nil
	}
	if sf.unbounded {
		return &linprog.Result{Status: linprog.Unbounded}, nil
	}

	y := make([]float64, sf.numCols)
	if len(sf.b) > 0 {
		A := mat.NewDense(len(sf.b), sf.numCols, sf.a)
		_, x, err := lp.Simplex(sf.c, A, sf.b, s.opts.Tolerance, nil)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return &linprog.Result{Status: linprog.Infeasible}, nil
		case errors.Is(err, lp.ErrUnbounded):
			return &linprog.Result{Status: linprog.Unbounded}, nil
		case err != nil:
			// Bland cycling, singular bases and the like
			return &linprog.Result{Status: linprog.Undefined}, nil
		}
		y = x
	}

	values := make([]float64, m.NumVariables())
	for j, v := range m.Variables {
		values[j] = v.Lower
		if col := sf.colOf[j]; col >= 0 {
			values[j] += y[col]
		}
	}
	return &linprog.Result{
		Status:    linprog.Optimal,
		Objective: m.Evaluate(values),
		Values:    values,
	}, nil
}

// standardForm is min c·y s.t. A y = b, y >= 0, b >= 0 with y = x - lower.
// Structural columns come first, followed by one slack per inequality.
type standardForm struct {
	c       []float64
	a       []float64 // row-major, numCols wide
	b       []float64
	numCols int
	colOf   []int // model column -> structural column, -1 when eliminated

	infeasible bool
	unbounded  bool
}

type stdRow struct {
	coefs []float64 // dense over structural columns
	slack float64   // +1, -1 or 0 for equalities
	rhs   float64
}

func toStandardForm(m *linprog.Model) *standardForm {
	n := m.NumVariables()
	sign := 1.0
	if m.Sense == linprog.Maximize {
		sign = -1
	}

	var rows []stdRow
	addRow := func(coefs []float64, slack, rhs float64) {
		rows = append(rows, stdRow{coefs: coefs, slack: slack, rhs: rhs})
	}

	for r, c := range m.Constraints {
		dense := m.DenseRow(r)
		var shift float64
		for j, a := range dense {
			shift += a * m.Variables[j].Lower
		}
		switch {
		case math.IsInf(c.Lower, -1) && math.IsInf(c.Upper, 1):
		case c.Lower == c.Upper:
			addRow(dense, 0, c.Lower-shift)
		default:
			if !math.IsInf(c.Lower, -1) {
				addRow(dense, -1, c.Lower-shift)
			}
			if !math.IsInf(c.Upper, 1) {
				addRow(dense, 1, c.Upper-shift)
			}
		}
	}
	for j, v := range m.Variables {
		if !math.IsInf(v.Upper, 1) {
			unit := make([]float64, n)
			unit[j] = 1
			addRow(unit, 1, v.Upper-v.Lower)
		}
	}

	sf := &standardForm{colOf: make([]int, n)}

	// Columns that appear in no row are settled here: gonum rejects zero
	// columns.
	var structural []int
	for j := range n {
		used := false
		for _, row := range rows {
			if row.coefs[j] != 0 {
				used = true
				break
			}
		}
		cost := sign * m.Variables[j].Cost
		if !used {
			sf.colOf[j] = -1
			if cost < 0 {
				sf.unbounded = true
			}
			continue
		}
		sf.colOf[j] = len(structural)
		structural = append(structural, j)
	}

	// Rows without structural terms are either void or contradictory.
	kept := rows[:0]
	for _, row := range rows {
		empty := true
		for _, j := range structural {
			if row.coefs[j] != 0 {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, row)
			continue
		}
		switch {
		case row.slack == 0 && row.rhs != 0,
			row.slack < 0 && row.rhs > 0,
			row.slack > 0 && row.rhs < 0:
			sf.infeasible = true
		}
	}
	rows = kept

	numSlacks := 0
	for _, row := range rows {
		if row.slack != 0 {
			numSlacks++
		}
	}
	sf.numCols = len(structural) + numSlacks

	sf.c = make([]float64, sf.numCols)
	for k, j := range structural {
		sf.c[k] = sign * m.Variables[j].Cost
	}

	sf.a = make([]float64, len(rows)*sf.numCols)
	sf.b = make([]float64, len(rows))
	slackCol := len(structural)
	for i, row := range rows {
		line := sf.a[i*sf.numCols : (i+1)*sf.numCols]
		for k, j := range structural {
			line[k] = row.coefs[j]
		}
		if row.slack != 0 {
			line[slackCol] = row.slack
			slackCol++
		}
		sf.b[i] = row.rhs
		if row.rhs < 0 {
			for k := range line {
				line[k] = -line[k]
			}
			sf.b[i] = -row.rhs
		}
	}
	return sf
}
