package linprog

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnsupported is returned by a backend that cannot express a model, for
// instance a continuous-only backend given binary variables.
var ErrUnsupported = errors.New("model not supported by backend")

type Status int

const (
	Undefined Status = iota
	Optimal
	Infeasible
	Unbounded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	default:
		return "Undefined"
	}
}

// Result is what a backend hands back. Objective and Values are meaningful
// only when Status is Optimal.
type Result struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Solver is the adapter contract. An error means the backend could not run
// (unsupported model, library failure, cancelled context); infeasible and
// unbounded models are reported through Result.Status.
//
// Implementations create a fresh native problem per call so that Solve can be
// used from several goroutines.
type Solver interface {
	Name() string
	Solve(ctx context.Context, m *Model) (*Result, error)
}

// Options is the configuration shared by every backend.
type Options struct {
	TimeLimit time.Duration
	Verbose   bool
	Tolerance float64
}

type Option func(*Options) error

func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) error {
		if d < 0 {
			return fmt.Errorf("negative time limit %v", d)
		}
		o.TimeLimit = d
		return nil
	}
}

func WithVerbose(verbose bool) Option {
	return func(o *Options) error {
		o.Verbose = verbose
		return nil
	}
}

func WithTolerance(tol float64) Option {
	return func(o *Options) error {
		if tol < 0 {
			return fmt.Errorf("negative tolerance %v", tol)
		}
		o.Tolerance = tol
		return nil
	}
}

// ApplyOptions folds opts over the defaults.
func ApplyOptions(opts ...Option) (Options, error) {
	var o Options
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, fmt.Errorf("applying solver option: %w", err)
		}
	}
	return o, nil
}

// Prepare is the common prologue of every backend: it checks the context and
// the model before any native resource is allocated.
func Prepare(ctx context.Context, m *Model) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("%w: nil model", ErrInvalidModel)
	}
	return m.Validate()
}

// RunWithContext runs solve and returns early when ctx is done or the time
// limit elapses. solve itself is not interrupted: an abandoned call finishes
// in the background and its result is dropped. Backends whose library takes a
// time limit pass it there and call this with limit 0.
func RunWithContext(ctx context.Context, limit time.Duration, solve func() (*Result, error)) (*Result, error) {
	if limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := solve()
		done <- outcome{res, err}
	}()

	select {
	case out := <-done:
		return out.res, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
