package simplex

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"min_knapsack/src/linprog"
	"min_knapsack/src/linprog/linprogtest"
)

func TestSolveLP(t *testing.T) {
	// max 3x + 2y s.t. x + y <= 4, x + 3y <= 6, x <= 3
	m := linprog.NewModel("lp", linprog.Maximize)
	x := m.AddVariable("x", linprog.Continuous, 3, 0, 3)
	y := m.AddVariable("y", linprog.Continuous, 2, 0, math.Inf(1))
	m.AddConstraint("a", math.Inf(-1), 4, []linprog.Term{{Col: x, Coef: 1}, {Col: y, Coef: 1}})
	m.AddConstraint("b", math.Inf(-1), 6, []linprog.Term{{Col: x, Coef: 1}, {Col: y, Coef: 3}})

	s, err := New()
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, linprog.Optimal, res.Status)
	assert.InDelta(t, 11, res.Objective, 1e-8)
	assert.InDelta(t, 3, res.Values[x], 1e-8)
	assert.InDelta(t, 1, res.Values[y], 1e-8)
}

func TestSolveCovering(t *testing.T) {
	// Relaxed single knapsack: demand 10, weights 5 6 7, costs 2 3 4.
	m := linprog.NewModel("cover", linprog.Minimize)
	var ts []linprog.Term
	for j, c := range []float64{2, 3, 4} {
		col := m.AddVariable("x", linprog.Continuous, c, 0, 1)
		ts = append(ts, linprog.Term{Col: col, Coef: []float64{5, 6, 7}[j]})
	}
	m.AddConstraint("demand", 10, math.Inf(1), ts)

	s, err := New()
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, linprog.Optimal, res.Status)
	assert.InDelta(t, 4.5, res.Objective, 1e-8)
	assert.InDelta(t, 1, res.Values[0], 1e-8)
	assert.InDelta(t, 5.0/6, res.Values[1], 1e-8)
}

func TestSolveStatuses(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	infeasible := linprog.NewModel("infeasible", linprog.Minimize)
	infeasible.AddVariable("x", linprog.Continuous, 1, 0, 1)
	infeasible.AddConstraint("c", 2, math.Inf(1), []linprog.Term{{Col: 0, Coef: 1}})
	res, err := s.Solve(context.Background(), infeasible)
	require.NoError(t, err)
	assert.Equal(t, linprog.Infeasible, res.Status)

	unbounded := linprog.NewModel("unbounded", linprog.Maximize)
	unbounded.AddVariable("x", linprog.Continuous, 1, 0, math.Inf(1))
	unbounded.AddVariable("y", linprog.Continuous, 0, 0, math.Inf(1))
	unbounded.AddConstraint("c", math.Inf(-1), 1, []linprog.Term{{Col: 0, Coef: -1}, {Col: 1, Coef: 1}})
	res, err = s.Solve(context.Background(), unbounded)
	require.NoError(t, err)
	assert.Equal(t, linprog.Unbounded, res.Status)
}

func TestSolveRejectsBinary(t *testing.T) {
	m := linprog.NewModel("mip", linprog.Minimize)
	m.AddVariable("x", linprog.Binary, 1, 0, 1)
	s, err := New()
	require.NoError(t, err)
	_, err = s.Solve(context.Background(), m)
	assert.ErrorIs(t, err, linprog.ErrUnsupported)
}

func TestToStandardFormEliminatesFreeColumns(t *testing.T) {
	m := linprog.NewModel("m", linprog.Minimize)
	m.AddVariable("x", linprog.Continuous, 1, 0, math.Inf(1))
	m.AddVariable("y", linprog.Continuous, 1, 0, math.Inf(1))
	m.AddConstraint("c", 2, math.Inf(1), []linprog.Term{{Col: 0, Coef: 1}})

	sf := toStandardForm(m)
	assert.False(t, sf.infeasible)
	assert.False(t, sf.unbounded)
	assert.Equal(t, []int{0, -1}, sf.colOf)
	assert.Equal(t, []float64{2}, sf.b)
	assert.Equal(t, 2, sf.numCols)

	m.Variables[1].Cost = -1
	assert.True(t, toStandardForm(m).unbounded)
}

func TestSolveZeroWeights(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	for _, tc := range linprogtest.ZeroWeightCases {
		t.Run(tc.Name, func(t *testing.T) {
			m := linprogtest.CoverModel(tc.Demand, tc.Weight, tc.Cost, linprog.Continuous)
			res, err := s.Solve(context.Background(), m)
			require.NoError(t, err)
			require.Equal(t, tc.Status, res.Status)
			if tc.Status == linprog.Optimal {
				assert.InDelta(t, 0, res.Objective, 1e-9)
			}
		})
	}
}
