package minkp

import "errors"

var (
	ErrInvalidMode     = errors.New("invalid mode")
	ErrInvalidInstance = errors.New("invalid instance")
	ErrNoKnapsacks     = errors.New("instance has no knapsack")

	// ErrNoExtraction is returned when asked to interpret a solve that did not
	// end Optimal: there is nothing meaningful to extract.
	ErrNoExtraction = errors.New("no optimal solution to extract")

	// ErrInconsistentSolution reports a selection that breaks a coverage or
	// exclusivity constraint of the model it came from.
	ErrInconsistentSolution = errors.New("solution inconsistent with model")

	ErrNoHeuristicCover = errors.New("greedy heuristic found no cover")
)
