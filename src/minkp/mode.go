package minkp

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects the formulation handed to the solver.
type Mode int

const (
	// IntegerPrimal picks each item for a knapsack or not.
	IntegerPrimal Mode = iota
	// RelaxedPrimal lets items be split, x in [0, 1].
	RelaxedPrimal
	// Dual prices the coverage and exclusivity constraints.
	Dual
)

func ParseMode(v int) (Mode, error) {
	m := Mode(v)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: %d (use 0 for integer primal, 1 for relaxation, 2 for dual)", ErrInvalidMode, v)
	}
	return m, nil
}

// ParseModeName accepts the numeric form or one of "integer", "relaxed" and
// "dual".
func ParseModeName(s string) (Mode, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if v, err := strconv.Atoi(s); err == nil {
		return ParseMode(v)
	}
	switch s {
	case "integer", "int", "primal":
		return IntegerPrimal, nil
	case "relaxed", "relaxation", "lp":
		return RelaxedPrimal, nil
	case "dual":
		return Dual, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func (m Mode) Valid() bool {
	return m >= IntegerPrimal && m <= Dual
}

func (m Mode) IsPrimal() bool {
	return m == IntegerPrimal || m == RelaxedPrimal
}

func (m Mode) String() string {
	switch m {
	case IntegerPrimal:
		return "integer"
	case RelaxedPrimal:
		return "relaxed"
	case Dual:
		return "dual"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
