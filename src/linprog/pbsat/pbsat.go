// Package pbsat solves pure 0/1 linprog models with integral data exactly,
// by pseudo-boolean minimisation with gophersat.
package pbsat

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/crillab/gophersat/solver"

	"min_knapsack/src/linprog"
)

const Name = "pbsat"

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

// Supports reports whether m only has binary variables and integral data.
func Supports(m *linprog.Model) bool {
	for _, v := range m.Variables {
		if v.Domain != linprog.Binary {
			return false
		}
	}
	return m.IsIntegral()
}

func (s *Solver) Solve(ctx context.Context, m *linprog.Model) (*linprog.Result, error) {
	if err := linprog.Prepare(ctx, m); err != nil {
		return nil, err
	}
	if !Supports(m) {
		return nil, fmt.Errorf("%s: model %q needs binary variables and integral data: %w", Name, m.Name, linprog.ErrUnsupported)
	}
	m, feasible := linprog.DropEmptyRows(m)
	if !feasible {
		return &linprog.Result{Status: linprog.Infeasible}, nil
	}
	if res, ok := linprog.SolveTrivial(m); ok {
		return res, nil
	}

	return linprog.RunWithContext(ctx, s.opts.TimeLimit, func() (*linprog.Result, error) {
		return s.minimize(m)
	})
}

func (s *Solver) minimize(m *linprog.Model) (*linprog.Result, error) {
	opb, feasible := defOPB(m)
	if !feasible {
		return &linprog.Result{Status: linprog.Infeasible}, nil
	}
	pb, err := solver.ParseOPB(strings.NewReader(opb))
	if err != nil {
		return nil, fmt.Errorf("%s: parsing generated OPB: %w", Name, err)
	}

	sat := solver.New(pb)
	sat.Verbose = s.opts.Verbose
	if cost := sat.Minimize(); cost == -1 {
		return &linprog.Result{Status: linprog.Infeasible}, nil
	}

	model := sat.Model()
	values := make([]float64, m.NumVariables())
	for j := range values {
		if j < len(model) && model[j] {
			values[j] = 1
		}
	}
	return &linprog.Result{
		Status:    linprog.Optimal,
		Objective: m.Evaluate(values),
		Values:    values,
	}, nil
}

func lit(col int) int {
	return col + 1
}

// defOPB writes m in the OPB format read by gophersat. Rows are normalised by
// GtEq and LtEq first so that trivially true rows can be skipped and rows
// without terms decided here. It reports false when such a row can never
// hold.
func defOPB(m *linprog.Model) (string, bool) {
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "* %s: %d variables, %d constraints\n", m.Name, m.NumVariables(), m.NumConstraints())

	if lits, weights := costFunc(m); len(lits) > 0 {
		sb.WriteString("min:")
		writeTerms(sb, lits, weights)
		sb.WriteString(" ;\n")
	}

	var constrs []solver.PBConstr
	for j, v := range m.Variables {
		if v.Lower > 0 {
			constrs = append(constrs, solver.GtEq([]int{lit(j)}, []int{1}, 1))
		}
		if v.Upper < 1 {
			constrs = append(constrs, solver.GtEq([]int{-lit(j)}, []int{1}, 1))
		}
	}
	for _, c := range m.Constraints {
		if !math.IsInf(c.Lower, -1) {
			lits, weights := terms(c.Terms)
			constrs = append(constrs, solver.GtEq(lits, weights, int(math.Ceil(c.Lower))))
		}
		if !math.IsInf(c.Upper, 1) {
			lits, weights := terms(c.Terms)
			constrs = append(constrs, solver.LtEq(lits, weights, int(math.Floor(c.Upper))))
		}
	}

	for _, c := range constrs {
		if c.AtLeast <= 0 {
			continue
		}
		if len(c.Lits) == 0 {
			return "", false
		}
		writeTerms(sb, c.Lits, c.Weights)
		fmt.Fprintf(sb, " >= %d ;\n", c.AtLeast)
	}
	return sb.String(), true
}

func writeTerms(sb *strings.Builder, lits, weights []int) {
	for i, l := range lits {
		neg := ""
		if l < 0 {
			neg, l = "~", -l
		}
		fmt.Fprintf(sb, " +%d %sx%d", weights[i], neg, l)
	}
}

// terms returns fresh slices: the gophersat constructors modify them.
func terms(ts []linprog.Term) (lits, weights []int) {
	lits = make([]int, len(ts))
	weights = make([]int, len(ts))
	for i, t := range ts {
		lits[i] = lit(t.Col)
		weights[i] = int(t.Coef)
	}
	return lits, weights
}

// costFunc turns the objective into positive weights on literals. A negative
// cost c on x is written as -c on ¬x, which shifts the objective by c; the
// shift does not matter because the objective is recomputed from the model.
func costFunc(m *linprog.Model) (lits, weights []int) {
	sign := 1.0
	if m.Sense == linprog.Maximize {
		sign = -1
	}
	for j, v := range m.Variables {
		cost := int(sign * v.Cost)
		switch {
		case cost > 0:
			lits = append(lits, lit(j))
			weights = append(weights, cost)
		case cost < 0:
			lits = append(lits, -lit(j))
			weights = append(weights, -cost)
		}
	}
	return lits, weights
}
