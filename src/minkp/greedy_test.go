package minkp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"min_knapsack/src/linprog"
)

func TestGreedyCover(t *testing.T) {
	sol, err := GreedyCover(scenarioA(t))
	require.NoError(t, err)
	assert.Equal(t, linprog.Undefined, sol.Status)
	assert.Equal(t, "greedy", sol.Backend)
	// Ratios 0.4, 0.5, 0.57: items 0 and 1 reach 11.
	assert.Equal(t, []SelectedItem{{Index: 0, Weight: 5, Cost: 2}, {Index: 1, Weight: 6, Cost: 3}}, sol.Selection[0])
	assert.Equal(t, 5.0, sol.Objective)
	assert.Empty(t, Verify(scenarioA(t), IntegerPrimal, sol.Selection, Epsilon))
}

func TestGreedyCoverMulti(t *testing.T) {
	inst := mustInstance(t, []float64{4, 4}, []float64{4, 4, 4}, []float64{1, 1, 1})
	sol, err := GreedyCover(inst)
	require.NoError(t, err)
	assert.Equal(t, 2.0, sol.Objective)
	assert.Empty(t, Verify(inst, IntegerPrimal, sol.Selection, Epsilon))
}

func TestGreedyCoverZeroDemand(t *testing.T) {
	inst := mustInstance(t, []float64{0}, []float64{3}, []float64{1})
	sol, err := GreedyCover(inst)
	require.NoError(t, err)
	assert.Empty(t, sol.Selection[0])
	assert.Zero(t, sol.Objective)
}

func TestGreedyCoverFails(t *testing.T) {
	inst := mustInstance(t, []float64{4, 4}, []float64{4, 3}, []float64{1, 1})
	_, err := GreedyCover(inst)
	assert.ErrorIs(t, err, ErrNoHeuristicCover)

	_, err = GreedyCover(&Instance{})
	assert.ErrorIs(t, err, ErrNoKnapsacks)
}
