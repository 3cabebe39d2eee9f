package main

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"min_knapsack/src/minkp"
)

func writeReports(w io.Writer, format string, mode minkp.Mode, backendName string, outcomes []*outcome) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, o := range outcomes {
			if err := enc.Encode(newReport(o, mode, backendName)); err != nil {
				return err
			}
		}
		return enc.Close()
	}

	for _, o := range outcomes {
		if _, err := io.WriteString(w, textReport(o, mode)); err != nil {
			return err
		}
	}
	return nil
}

func textReport(o *outcome, mode minkp.Mode) string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "Problem instance: %v\n", o.path)
	if o.inst == nil {
		fmt.Fprintf(s, "Error: %v\n\n", o.err)
		return s.String()
	}
	fmt.Fprintf(s, "Number of knapsacks: %d\n", o.inst.NumKnapsacks)
	fmt.Fprintf(s, "Number of items: %d\n", o.inst.NumItems)
	fmt.Fprintf(s, "Mode: %v\n", mode)
	if o.err != nil {
		fmt.Fprintf(s, "Error: %v\n\n", o.err)
		return s.String()
	}

	sol := o.sol
	fmt.Fprintf(s, "\nStatus: %v\n", sol.Status)
	if sol.Optimal() {
		fmt.Fprintf(s, "Objective value: %v\n", sol.Objective)
	}

	if sol.Dual != nil {
		s.WriteString("\nDual variables (v for each knapsack):\n")
		for i, val := range sol.Dual.V {
			fmt.Fprintf(s, "  v%d = %.4f\n", i, val)
		}
		s.WriteString("\nDual variables (w for each item):\n")
		for j, val := range sol.Dual.W {
			fmt.Fprintf(s, "  w%d = %.4f\n", j, val)
		}
	}
	if sol.Selection != nil {
		s.WriteString("\nItems selected by knapsack:\n")
		for i, items := range sol.Selection {
			fmt.Fprintf(s, "\nKnapsack %d:\n", i)
			for _, it := range items {
				fmt.Fprintf(s, "  Item %d: weight = %v, cost = %v\n", it.Index, it.Weight, it.Cost)
			}
			fmt.Fprintf(s, "  Total weight in knapsack %d: %v\n", i, sol.SelectedWeight(i))
		}
	}
	for _, v := range sol.Violations {
		fmt.Fprintf(s, "Warning: %v\n", v)
	}

	if o.greedy != nil {
		fmt.Fprintf(s, "\nGreedy upper bound: %v\n", o.greedy.Objective)
	} else if o.greedyErr != nil {
		fmt.Fprintf(s, "\nGreedy upper bound: none (%v)\n", o.greedyErr)
	}
	if o.gapErr != nil {
		fmt.Fprintf(s, "\nDuality gap: not available (%v)\n", o.gapErr)
	} else if o.gap != nil {
		fmt.Fprintf(s, "\nRelaxed primal: %v, dual: %v, gap: %.2e\n", o.gap.Primal, o.gap.Dual, o.gap.Primal-o.gap.Dual)
	}

	fmt.Fprintf(s, "\nSolved by %v in %v\n\n", sol.Backend, sol.Elapsed)
	return s.String()
}

type report struct {
	Instance   string          `yaml:"instance"`
	Knapsacks  int             `yaml:"knapsacks,omitempty"`
	Items      int             `yaml:"items,omitempty"`
	Mode       string          `yaml:"mode"`
	Backend    string          `yaml:"backend"`
	Status     string          `yaml:"status,omitempty"`
	Objective  *float64        `yaml:"objective,omitempty"`
	Selection  []knapsackEntry `yaml:"selection,omitempty"`
	Dual       *dualEntry      `yaml:"dual,omitempty"`
	Violations []string        `yaml:"violations,omitempty"`
	Greedy     *float64        `yaml:"greedy_bound,omitempty"`
	Gap        *gapEntry       `yaml:"duality,omitempty"`
	Elapsed    string          `yaml:"elapsed,omitempty"`
	Error      string          `yaml:"error,omitempty"`
}

type knapsackEntry struct {
	Knapsack    int         `yaml:"knapsack"`
	Items       []itemEntry `yaml:"items"`
	TotalWeight float64     `yaml:"total_weight"`
}

type itemEntry struct {
	Index  int     `yaml:"index"`
	Weight float64 `yaml:"weight"`
	Cost   float64 `yaml:"cost"`
}

type dualEntry struct {
	V []float64 `yaml:"v"`
	W []float64 `yaml:"w"`
}

type gapEntry struct {
	Primal float64 `yaml:"relaxed_primal"`
	Dual   float64 `yaml:"dual"`
}

func newReport(o *outcome, mode minkp.Mode, backendName string) *report {
	r := &report{Instance: o.path, Mode: mode.String(), Backend: backendName}
	if o.inst != nil {
		r.Knapsacks = o.inst.NumKnapsacks
		r.Items = o.inst.NumItems
	}
	if o.err != nil {
		r.Error = o.err.Error()
		return r
	}

	sol := o.sol
	r.Status = sol.Status.String()
	r.Elapsed = sol.Elapsed.String()
	if sol.Optimal() {
		obj := sol.Objective
		r.Objective = &obj
	}
	for i, items := range sol.Selection {
		entry := knapsackEntry{Knapsack: i, Items: []itemEntry{}, TotalWeight: sol.SelectedWeight(i)}
		for _, it := range items {
			entry.Items = append(entry.Items, itemEntry{Index: it.Index, Weight: it.Weight, Cost: it.Cost})
		}
		r.Selection = append(r.Selection, entry)
	}
	if sol.Dual != nil {
		r.Dual = &dualEntry{V: sol.Dual.V, W: sol.Dual.W}
	}
	for _, v := range sol.Violations {
		r.Violations = append(r.Violations, v.String())
	}
	if o.greedy != nil {
		bound := o.greedy.Objective
		r.Greedy = &bound
	}
	r.Gap = o.gap
	return r
}
