// Package linprogtest builds the covering models shared by the backend tests.
package linprogtest

import (
	"math"

	"min_knapsack/src/linprog"
)

// CoverModel is the primal of a min-cost covering knapsack: item j goes to at
// most one of the len(demand) knapsacks, and knapsack i must hold a weight of
// at least demand[i]. Column i*len(weight)+j assigns item j to knapsack i.
func CoverModel(demand, weight, cost []float64, domain linprog.Domain) *linprog.Model {
	k, n := len(demand), len(weight)
	m := linprog.NewModel("cover", linprog.Minimize)
	for range k {
		for j := range n {
			m.AddVariable("x", domain, cost[j], 0, 1)
		}
	}
	for i := range k {
		ts := make([]linprog.Term, n)
		for j := range n {
			ts[j] = linprog.Term{Col: i*n + j, Coef: weight[j]}
		}
		m.AddConstraint("demand", demand[i], math.Inf(1), ts)
	}
	if k > 1 {
		for j := range n {
			ts := make([]linprog.Term, k)
			for i := range k {
				ts[i] = linprog.Term{Col: i*n + j, Coef: 1}
			}
			m.AddConstraint("exclusive", math.Inf(-1), 1, ts)
		}
	}
	return m
}

// ZeroWeightCases are covering models whose items all weigh nothing, so
// every demand row is left without terms.
var ZeroWeightCases = []struct {
	Name   string
	Demand []float64
	Weight []float64
	Cost   []float64
	Status linprog.Status
}{
	{"single, nothing to cover", []float64{0}, []float64{0, 0}, []float64{1, 2}, linprog.Optimal},
	{"single, demand left", []float64{5}, []float64{0, 0}, []float64{1, 2}, linprog.Infeasible},
	{"multi, nothing to cover", []float64{0, 0}, []float64{0, 0}, []float64{1, 2}, linprog.Optimal},
	{"multi, demand left", []float64{0, 3}, []float64{0, 0}, []float64{1, 2}, linprog.Infeasible},
}
