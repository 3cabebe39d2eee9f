package highs

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/lanl/highs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"min_knapsack/src/linprog"
	"min_knapsack/src/linprog/linprogtest"
)

func knapsackModel() *linprog.Model {
	m := linprog.NewModel("cover", linprog.Minimize)
	for _, c := range []float64{2, 3, 4} {
		m.AddVariable("x", linprog.Binary, c, 0, 1)
	}
	m.AddConstraint("demand", 10, math.Inf(1), []linprog.Term{{Col: 0, Coef: 5}, {Col: 1, Coef: 6}, {Col: 2, Coef: 7}})
	return m
}

func TestDefModel(t *testing.T) {
	lp := defModel(knapsackModel())
	assert.False(t, lp.Maximize)
	assert.Equal(t, []float64{2, 3, 4}, lp.ColCosts)
	assert.Equal(t, []float64{1, 1, 1}, lp.ColUpper)
	assert.Equal(t, []highs.VariableType{highs.IntegerType, highs.IntegerType, highs.IntegerType}, lp.VarTypes)
	assert.Equal(t, []float64{10}, lp.RowLower)
	require.Len(t, lp.ConstMatrix, 3)
	assert.Equal(t, highs.Nonzero{Row: 0, Col: 2, Val: 7}, lp.ConstMatrix[2])
}

func TestConvertStatus(t *testing.T) {
	assert.Equal(t, linprog.Optimal, convertStatus(highs.Optimal))
	assert.Equal(t, linprog.Infeasible, convertStatus(highs.Infeasible))
	assert.Equal(t, linprog.Unbounded, convertStatus(highs.Unbounded))
	assert.Equal(t, linprog.Undefined, convertStatus(highs.UnboundedOrInfeasible))
	assert.Equal(t, linprog.Undefined, convertStatus(highs.TimeLimit))
}

func TestNewRawModelTimeLimit(t *testing.T) {
	s, err := New(linprog.WithTimeLimit(1500 * time.Millisecond))
	require.NoError(t, err)
	raw, err := s.newRawModel(knapsackModel())
	require.NoError(t, err)
	limit, err := raw.GetFloat64Option("time_limit")
	require.NoError(t, err)
	assert.Equal(t, 1.5, limit)

	s, err = New()
	require.NoError(t, err)
	raw, err = s.newRawModel(knapsackModel())
	require.NoError(t, err)
	limit, err = raw.GetFloat64Option("time_limit")
	require.NoError(t, err)
	assert.True(t, math.IsInf(limit, 1) || limit > 1e6, "no limit by default, got %v", limit)
}

func TestSolve(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), knapsackModel())
	require.NoError(t, err)
	require.Equal(t, linprog.Optimal, res.Status)
	assert.InDelta(t, 5, res.Objective, 1e-6)
	assert.InDeltaSlice(t, []float64{1, 1, 0}, res.Values, 1e-6)

	relaxed := knapsackModel()
	for j := range relaxed.Variables {
		relaxed.Variables[j].Domain = linprog.Continuous
	}
	res, err = s.Solve(context.Background(), relaxed)
	require.NoError(t, err)
	require.Equal(t, linprog.Optimal, res.Status)
	assert.InDelta(t, 4.5, res.Objective, 1e-6)
}

func TestSolveZeroWeights(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	for _, tc := range linprogtest.ZeroWeightCases {
		for _, domain := range []linprog.Domain{linprog.Binary, linprog.Continuous} {
			t.Run(tc.Name+"/"+domain.String(), func(t *testing.T) {
				m := linprogtest.CoverModel(tc.Demand, tc.Weight, tc.Cost, domain)
				res, err := s.Solve(context.Background(), m)
				require.NoError(t, err)
				require.Equal(t, tc.Status, res.Status)
				if tc.Status == linprog.Optimal {
					assert.InDelta(t, 0, res.Objective, 1e-9)
					assert.Len(t, res.Values, m.NumVariables())
				}
			})
		}
	}
}
