package minkp

import (
	"fmt"
	"sort"

	"gopkg.in/dnaeon/go-priorityqueue.v1"

	"min_knapsack/src/linprog"
)

// GreedyCover fills the knapsacks in index order, each time taking the
// unassigned item with the lowest cost per unit of weight until the demand is
// met. The result is a feasible integer selection, hence an upper bound on the
// IntegerPrimal optimum; it is not claimed optimal and its Status is
// Undefined.
func GreedyCover(inst *Instance) (*Solution, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	used := make([]bool, inst.NumItems)
	sol := &Solution{
		Mode:      IntegerPrimal,
		Status:    linprog.Undefined,
		Selection: make([][]SelectedItem, inst.NumKnapsacks),
		Backend:   "greedy",
	}

	for i := range inst.NumKnapsacks {
		pq := priorityqueue.New[int, float64](priorityqueue.MinHeap)
		for j := range inst.NumItems {
			if !used[j] && inst.Weight[j] > 0 {
				pq.Put(j, inst.Cost[j]/inst.Weight[j])
			}
		}

		selected := []SelectedItem{}
		var covered float64
		for covered < inst.Demand[i] {
			if pq.Len() == 0 {
				return nil, fmt.Errorf("%w: knapsack %d reaches %v of %v", ErrNoHeuristicCover, i, covered, inst.Demand[i])
			}
			item := pq.Get()
			j := item.Value
			used[j] = true
			covered += inst.Weight[j]
			sol.Objective += inst.Cost[j]
			selected = append(selected, SelectedItem{Index: j, Weight: inst.Weight[j], Cost: inst.Cost[j]})
		}

		sort.Slice(selected, func(a, b int) bool {
			return selected[a].Index < selected[b].Index
		})
		sol.Selection[i] = selected
	}

	return sol, nil
}
