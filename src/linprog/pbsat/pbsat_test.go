package pbsat

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"min_knapsack/src/linprog"
	"min_knapsack/src/linprog/linprogtest"
)

func coverModel(demand, weight, cost []float64) *linprog.Model {
	return linprogtest.CoverModel(demand, weight, cost, linprog.Binary)
}

func TestSolveSingle(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), coverModel([]float64{10}, []float64{5, 6, 7}, []float64{2, 3, 4}))
	require.NoError(t, err)
	require.Equal(t, linprog.Optimal, res.Status)
	assert.Equal(t, 5.0, res.Objective)
	assert.Equal(t, []float64{1, 1, 0}, res.Values)
}

func TestSolveMulti(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), coverModel([]float64{4, 4}, []float64{4, 4, 4}, []float64{1, 1, 1}))
	require.NoError(t, err)
	require.Equal(t, linprog.Optimal, res.Status)
	assert.Equal(t, 2.0, res.Objective)
	for j := range 3 {
		assert.LessOrEqual(t, res.Values[j]+res.Values[3+j], 1.0)
	}
}

func TestSolveInfeasible(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), coverModel([]float64{19}, []float64{5, 6, 7}, []float64{2, 3, 4}))
	require.NoError(t, err)
	assert.Equal(t, linprog.Infeasible, res.Status)

	// Three knapsacks cannot share two items.
	res, err = s.Solve(context.Background(), coverModel([]float64{4, 4, 4}, []float64{4, 4}, []float64{1, 1}))
	require.NoError(t, err)
	assert.Equal(t, linprog.Infeasible, res.Status)
}

func TestSolveMaximize(t *testing.T) {
	m := linprog.NewModel("max", linprog.Maximize)
	m.AddVariable("a", linprog.Binary, 3, 0, 1)
	m.AddVariable("b", linprog.Binary, 2, 0, 1)
	m.AddVariable("c", linprog.Binary, -1, 0, 1)
	m.AddConstraint("budget", math.Inf(-1), 1, []linprog.Term{{Col: 0, Coef: 1}, {Col: 1, Coef: 1}})

	s, err := New()
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, linprog.Optimal, res.Status)
	assert.Equal(t, 3.0, res.Objective)
	assert.Equal(t, []float64{1, 0, 0}, res.Values)
}

func TestSolveUnsupported(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	cont := linprog.NewModel("lp", linprog.Minimize)
	cont.AddVariable("x", linprog.Continuous, 1, 0, 1)
	_, err = s.Solve(context.Background(), cont)
	assert.ErrorIs(t, err, linprog.ErrUnsupported)

	frac := coverModel([]float64{1.5}, []float64{1}, []float64{1})
	assert.False(t, Supports(frac))
	_, err = s.Solve(context.Background(), frac)
	assert.ErrorIs(t, err, linprog.ErrUnsupported)
}

func TestDefOPB(t *testing.T) {
	m := coverModel([]float64{4, 4}, []float64{4, 3}, []float64{1, -2})
	opb, ok := defOPB(m)
	require.True(t, ok)
	assert.Contains(t, opb, "min: +1 x1 +2 ~x2 +1 x3 +2 ~x4 ;\n")
	assert.Contains(t, opb, " +4 x1 +3 x2 >= 4 ;\n")
	assert.Contains(t, opb, " +1 ~x1 +1 ~x3 >= 1 ;\n")

	empty := linprog.NewModel("empty", linprog.Minimize)
	empty.AddVariable("x", linprog.Binary, 1, 0, 1)
	empty.AddConstraint("void", 0, math.Inf(1), nil)
	opb, ok = defOPB(empty)
	require.True(t, ok)
	assert.Equal(t, 1, strings.Count(opb, ";"))

	empty.AddConstraint("impossible", 2, math.Inf(1), nil)
	_, ok = defOPB(empty)
	assert.False(t, ok)
}

func TestSolveZeroWeights(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	for _, tc := range linprogtest.ZeroWeightCases {
		t.Run(tc.Name, func(t *testing.T) {
			res, err := s.Solve(context.Background(), coverModel(tc.Demand, tc.Weight, tc.Cost))
			require.NoError(t, err)
			require.Equal(t, tc.Status, res.Status)
			if tc.Status == linprog.Optimal {
				assert.Equal(t, 0.0, res.Objective)
			}
		})
	}
}
