package linprog

import "math"

// SolveTrivial handles models without variables or without constraints, which
// several native libraries reject as empty. It reports false when the model
// needs a real solver.
func SolveTrivial(m *Model) (*Result, bool) {
	switch {
	case len(m.Variables) == 0:
		for _, c := range m.Constraints {
			if c.Lower > 0 || c.Upper < 0 {
				return &Result{Status: Infeasible}, true
			}
		}
		return &Result{Status: Optimal, Values: []float64{}}, true
	case len(m.Constraints) == 0:
		return solveBoxed(m), true
	default:
		return nil, false
	}
}

// solveBoxed optimises each variable independently over its bounds.
func solveBoxed(m *Model) *Result {
	values := make([]float64, len(m.Variables))
	for j, v := range m.Variables {
		cost := v.Cost
		if m.Sense == Maximize {
			cost = -cost
		}
		var x float64
		switch {
		case cost > 0:
			x = v.Lower
		case cost < 0:
			x = v.Upper
		case !math.IsInf(v.Lower, 0):
			x = v.Lower
		case !math.IsInf(v.Upper, 0):
			x = v.Upper
		}
		if math.IsInf(x, 0) {
			return &Result{Status: Unbounded}
		}
		values[j] = x
	}
	return &Result{Status: Optimal, Objective: m.Evaluate(values), Values: values}
}

// DropEmptyRows removes the constraints without terms, whose activity is
// always 0. It reports false when one of them excludes 0, in which case no
// assignment is feasible. m is returned unchanged when it has no such row.
func DropEmptyRows(m *Model) (*Model, bool) {
	empty := 0
	for _, c := range m.Constraints {
		if len(c.Terms) > 0 {
			continue
		}
		if c.Lower > 0 || c.Upper < 0 {
			return m, false
		}
		empty++
	}
	if empty == 0 {
		return m, true
	}

	out := *m
	out.Constraints = make([]Constraint, 0, len(m.Constraints)-empty)
	for _, c := range m.Constraints {
		if len(c.Terms) > 0 {
			out.Constraints = append(out.Constraints, c)
		}
	}
	return &out, true
}
