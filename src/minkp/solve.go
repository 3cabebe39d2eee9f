package minkp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"min_knapsack/src/linprog"
)

type options struct {
	logger  logr.Logger
	epsilon float64
	strict  bool
}

type Option func(*options) error

func WithLogger(logger logr.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithEpsilon changes the selection threshold, Epsilon by default. It is
// also the slack allowed when checking coverage.
func WithEpsilon(eps float64) Option {
	return func(o *options) error {
		if eps <= 0 || eps >= 0.5 {
			return fmt.Errorf("epsilon must be in (0, 0.5), got %v", eps)
		}
		o.epsilon = eps
		return nil
	}
}

// WithStrictVerification turns selection violations into
// ErrInconsistentSolution. Without it they are logged and attached to the
// Solution.
func WithStrictVerification() Option {
	return func(o *options) error {
		o.strict = true
		return nil
	}
}

func applyOptions(opts []Option) (*options, error) {
	o := &options{
		logger:  logr.Discard(),
		epsilon: Epsilon,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	return o, nil
}

// Solve builds the model of inst for mode, hands it to backend and interprets
// the result. A non-optimal status is returned as is, with no selection or
// dual values.
func Solve(ctx context.Context, inst *Instance, mode Mode, backend linprog.Solver, opts ...Option) (*Solution, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, errors.New("no solver backend")
	}

	f, err := BuildModel(inst, mode)
	if err != nil {
		return nil, err
	}
	log := o.logger.WithValues("model", f.Model.Name, "mode", mode.String(), "backend", backend.Name())
	log.V(1).Info("model built",
		"knapsacks", inst.NumKnapsacks,
		"items", inst.NumItems,
		"variables", f.Model.NumVariables(),
		"constraints", f.Model.NumConstraints())

	start := time.Now()
	res, err := backend.Solve(ctx, f.Model)
	if err != nil {
		return nil, fmt.Errorf("solving %s with %s: %w", f.Model.Name, backend.Name(), err)
	}

	sol := &Solution{
		Mode:    mode,
		Status:  res.Status,
		Backend: backend.Name(),
		Elapsed: time.Since(start),
	}
	if res.Status != linprog.Optimal {
		log.Info("no optimal solution", "status", res.Status.String())
		return sol, nil
	}
	sol.Objective = res.Objective

	if !mode.IsPrimal() {
		if sol.Dual, err = ExtractDual(inst, res.Status, res.Values); err != nil {
			return nil, err
		}
		log.V(1).Info("dual solved", "objective", sol.Objective, "elapsed", sol.Elapsed)
		return sol, nil
	}

	if sol.Selection, err = ExtractSelection(inst, res.Status, res.Values, o.epsilon); err != nil {
		return nil, err
	}
	if violations := Verify(inst, mode, sol.Selection, o.epsilon); len(violations) > 0 {
		if o.strict {
			return nil, fmt.Errorf("%w: %v", ErrInconsistentSolution, violations[0])
		}
		log.Info("solution fails verification", "violations", len(violations), "first", violations[0].String())
		sol.Violations = violations
	}
	log.V(1).Info("primal solved", "objective", sol.Objective, "elapsed", sol.Elapsed)
	return sol, nil
}

// Solver binds a backend and options for repeated solves.
type Solver struct {
	backend linprog.Solver
	opts    []Option
}

func NewSolver(backend linprog.Solver, opts ...Option) (*Solver, error) {
	if backend == nil {
		return nil, errors.New("no solver backend")
	}
	if _, err := applyOptions(opts); err != nil {
		return nil, err
	}
	return &Solver{backend: backend, opts: opts}, nil
}

func (s *Solver) Backend() string {
	return s.backend.Name()
}

func (s *Solver) Solve(ctx context.Context, inst *Instance, mode Mode) (*Solution, error) {
	return Solve(ctx, inst, mode, s.backend, s.opts...)
}

// DualityGap solves the relaxed primal and the dual of inst and returns both
// objective values. At optimality they agree up to solver tolerance.
func (s *Solver) DualityGap(ctx context.Context, inst *Instance) (primal, dual float64, err error) {
	p, err := s.Solve(ctx, inst, RelaxedPrimal)
	if err != nil {
		return 0, 0, err
	}
	if !p.Optimal() {
		return 0, 0, fmt.Errorf("%w: relaxed primal is %v", ErrNoExtraction, p.Status)
	}
	d, err := s.Solve(ctx, inst, Dual)
	if err != nil {
		return 0, 0, err
	}
	if !d.Optimal() {
		return 0, 0, fmt.Errorf("%w: dual is %v", ErrNoExtraction, d.Status)
	}
	return p.Objective, d.Objective, nil
}
