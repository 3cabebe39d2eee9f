package minkp

import (
	"fmt"
	"strings"
	"time"

	"min_knapsack/src/linprog"
)

type SelectedItem struct {
	Index  int
	Weight float64
	Cost   float64
}

// DualValues holds v[i] for every knapsack and w[j] for every item.
type DualValues struct {
	V []float64
	W []float64
}

type Solution struct {
	Mode   Mode
	Status linprog.Status
	// Objective is meaningful only when Status is Optimal, or for a greedy
	// cover where it is the cost of the heuristic selection.
	Objective float64
	// Selection[i] lists the items assigned to knapsack i in ascending index
	// order. Nil for dual solves and non-optimal outcomes.
	Selection [][]SelectedItem
	Dual      *DualValues
	// Violations found when checking the selection against the model.
	Violations []Violation
	Backend    string
	Elapsed    time.Duration
}

func (sol *Solution) Optimal() bool {
	return sol.Status == linprog.Optimal
}

func (sol *Solution) SelectedWeight(i int) (w float64) {
	for _, it := range sol.Selection[i] {
		w += it.Weight
	}
	return
}

func (sol *Solution) SelectedCost(i int) (c float64) {
	for _, it := range sol.Selection[i] {
		c += it.Cost
	}
	return
}

// Unassigned returns the items of inst that no knapsack selected, in
// ascending order.
func (sol *Solution) Unassigned(inst *Instance) []int {
	used := make([]bool, inst.NumItems)
	for _, items := range sol.Selection {
		for _, it := range items {
			used[it.Index] = true
		}
	}
	var free []int
	for j, u := range used {
		if !u {
			free = append(free, j)
		}
	}
	return free
}

func (sol *Solution) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "Status: %v\n", sol.Status)
	if sol.Status == linprog.Optimal {
		fmt.Fprintf(s, "Objective: %v\n", sol.Objective)
	}
	for i, items := range sol.Selection {
		fmt.Fprintf(s, "Knapsack %d: [ ", i)
		for _, it := range items {
			fmt.Fprint(s, it.Index, " ")
		}
		s.WriteString("]\n")
	}
	if sol.Dual != nil {
		fmt.Fprintf(s, "v: %v\nw: %v\n", sol.Dual.V, sol.Dual.W)
	}
	return s.String()
}
