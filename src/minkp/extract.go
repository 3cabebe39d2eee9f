package minkp

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"min_knapsack/src/linprog"
)

// Epsilon is the default threshold above which x[i,j] counts as selected.
const Epsilon = 1e-5

// ExtractSelection lists, per knapsack, the items whose x[i,j] exceeds eps,
// in ascending item order. It is a pure function of its arguments.
func ExtractSelection(inst *Instance, status linprog.Status, values []float64, eps float64) ([][]SelectedItem, error) {
	if status != linprog.Optimal {
		return nil, fmt.Errorf("%w: status %v", ErrNoExtraction, status)
	}
	if want := inst.NumKnapsacks * inst.NumItems; len(values) != want {
		return nil, fmt.Errorf("%w: %d primal values for %d variables", ErrInconsistentSolution, len(values), want)
	}

	selection := make([][]SelectedItem, inst.NumKnapsacks)
	for i := range inst.NumKnapsacks {
		selection[i] = []SelectedItem{}
		for j := range inst.NumItems {
			if values[i*inst.NumItems+j] > eps {
				selection[i] = append(selection[i], SelectedItem{
					Index:  j,
					Weight: inst.Weight[j],
					Cost:   inst.Cost[j],
				})
			}
		}
	}
	return selection, nil
}

// ExtractDual copies v and w out of the dual column values, without any
// filtering: small prices are meaningful.
func ExtractDual(inst *Instance, status linprog.Status, values []float64) (*DualValues, error) {
	if status != linprog.Optimal {
		return nil, fmt.Errorf("%w: status %v", ErrNoExtraction, status)
	}
	if want := inst.NumKnapsacks + inst.NumItems; len(values) != want {
		return nil, fmt.Errorf("%w: %d dual values for %d variables", ErrInconsistentSolution, len(values), want)
	}

	dual := &DualValues{
		V: make([]float64, inst.NumKnapsacks),
		W: make([]float64, inst.NumItems),
	}
	copy(dual.V, values[:inst.NumKnapsacks])
	copy(dual.W, values[inst.NumKnapsacks:])
	return dual, nil
}

type ViolationKind int

const (
	CoverageViolation ViolationKind = iota
	ExclusivityViolation
)

func (k ViolationKind) String() string {
	if k == ExclusivityViolation {
		return "exclusivity"
	}
	return "coverage"
}

type Violation struct {
	Kind     ViolationKind
	Knapsack int
	Item     int // -1 for coverage violations
	Detail   string
}

func (v Violation) String() string {
	return fmt.Sprintf("%v violation in knapsack %d: %s", v.Kind, v.Knapsack, v.Detail)
}

// Verify checks selection against the constraints of inst: each knapsack's
// selected weight reaches its demand within eps and, for integer solutions, no
// item is selected by two knapsacks. A relaxed solution may legitimately
// split an item across knapsacks.
func Verify(inst *Instance, mode Mode, selection [][]SelectedItem, eps float64) []Violation {
	var violations []Violation
	seen := mapset.NewThreadUnsafeSet[int]()

	for i, items := range selection {
		var weight float64
		for _, it := range items {
			weight += it.Weight
			if !seen.Add(it.Index) && mode == IntegerPrimal {
				violations = append(violations, Violation{
					Kind:     ExclusivityViolation,
					Knapsack: i,
					Item:     it.Index,
					Detail:   fmt.Sprintf("item %d already selected by another knapsack", it.Index),
				})
			}
		}
		if weight < inst.Demand[i]-eps {
			violations = append(violations, Violation{
				Kind:     CoverageViolation,
				Knapsack: i,
				Item:     -1,
				Detail:   fmt.Sprintf("selected weight %v below demand %v", weight, inst.Demand[i]),
			})
		}
	}
	return violations
}
