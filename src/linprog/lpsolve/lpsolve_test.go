package lpsolve

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"min_knapsack/src/linprog"
	"min_knapsack/src/linprog/linprogtest"
)

func TestSolve(t *testing.T) {
	m := linprog.NewModel("cover", linprog.Minimize)
	for _, c := range []float64{2, 3, 4} {
		m.AddVariable("x", linprog.Binary, c, 0, 1)
	}
	m.AddConstraint("demand", 10, math.Inf(1), []linprog.Term{{Col: 0, Coef: 5}, {Col: 1, Coef: 6}, {Col: 2, Coef: 7}})

	s, err := New()
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, linprog.Optimal, res.Status)
	assert.InDelta(t, 5, res.Objective, 1e-6)
	assert.InDeltaSlice(t, []float64{1, 1, 0}, res.Values, 1e-6)

	m.Constraints[0].Lower = 19
	res, err = s.Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, linprog.Infeasible, res.Status)
}

func TestSolveRangedRow(t *testing.T) {
	// max x + y s.t. 1 <= x - y <= 2, x, y in [0, 3]
	m := linprog.NewModel("ranged", linprog.Maximize)
	m.AddVariable("x", linprog.Continuous, 1, 0, 3)
	m.AddVariable("y", linprog.Continuous, 1, 0, 3)
	m.AddConstraint("r", 1, 2, []linprog.Term{{Col: 0, Coef: 1}, {Col: 1, Coef: -1}})

	s, err := New()
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, linprog.Optimal, res.Status)
	assert.InDelta(t, 5, res.Objective, 1e-6)
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

func TestTimeoutSeconds(t *testing.T) {
	assert.Equal(t, 0, timeoutSeconds(0))
	assert.Equal(t, 1, timeoutSeconds(200*time.Millisecond))
	assert.Equal(t, 2, timeoutSeconds(2*time.Second))
	assert.Equal(t, 3, timeoutSeconds(2001*time.Millisecond))
}

func TestSolveWithTimeLimit(t *testing.T) {
	s, err := New(linprog.WithTimeLimit(time.Minute))
	require.NoError(t, err)
	res, err := s.Solve(context.Background(), linprogtest.CoverModel([]float64{10}, []float64{5, 6, 7}, []float64{2, 3, 4}, linprog.Binary))
	require.NoError(t, err)
	require.Equal(t, linprog.Optimal, res.Status)
	assert.InDelta(t, 5, res.Objective, 1e-6)
}
