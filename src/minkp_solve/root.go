package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"min_knapsack/src/linprog"
	"min_knapsack/src/linprog/backend"
	"min_knapsack/src/minkp"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "minkp_solve [flags] <file>... <mode>",
		Short:        "Solve minimum knapsack instances, their relaxation or their dual",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cmd.Flags())
			if err != nil {
				return err
			}
			paths, mode, err := splitArgs(args, cfg.Mode)
			if err != nil {
				return err
			}

			log, flush, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer flush()

			return run(cmd.Context(), cfg, paths, mode, log, cmd.OutOrStdout())
		},
	}
	defineFlags(cmd.Flags())
	return cmd
}

// outcome is everything reported for one instance file.
type outcome struct {
	path string
	inst *minkp.Instance
	sol  *minkp.Solution
	err  error

	greedy    *minkp.Solution
	greedyErr error

	gap    *gapEntry
	gapErr error
}

func run(ctx context.Context, cfg *Config, paths []string, mode minkp.Mode, log logr.Logger, out io.Writer) error {
	lp, err := backend.New(cfg.Backend,
		linprog.WithTimeLimit(cfg.TimeLimit),
		linprog.WithVerbose(cfg.LogLevel == "debug"))
	if err != nil {
		return err
	}
	opts := []minkp.Option{minkp.WithLogger(log), minkp.WithEpsilon(cfg.Epsilon)}
	if cfg.Strict {
		opts = append(opts, minkp.WithStrictVerification())
	}
	solver, err := minkp.NewSolver(lp, opts...)
	if err != nil {
		return err
	}

	m := newMetrics()
	outcomes := solveAll(ctx, cfg, solver, paths, mode, log, m)

	var failed int
	for _, o := range outcomes {
		if o.err != nil {
			failed++
		}
	}
	if err := writeReports(out, cfg.Output, mode, solver.Backend(), outcomes); err != nil {
		return err
	}
	if cfg.MetricsFile != "" {
		if err := m.write(cfg.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d instances failed", failed, len(outcomes))
	}
	return nil
}

func solveAll(ctx context.Context, cfg *Config, solver *minkp.Solver, paths []string, mode minkp.Mode, log logr.Logger, m *metrics) []*outcome {
	outcomes := make([]*outcome, len(paths))

	var g errgroup.Group
	g.SetLimit(cfg.Jobs)
	for i, p := range paths {
		g.Go(func() error {
			outcomes[i] = solveFile(ctx, cfg, solver, p, mode, log.WithValues("instance", p), m)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func solveFile(ctx context.Context, cfg *Config, solver *minkp.Solver, path string, mode minkp.Mode, log logr.Logger, m *metrics) *outcome {
	o := &outcome{path: path}

	o.inst, o.err = minkp.LoadInstance(path)
	if o.err != nil {
		log.Error(o.err, "skipping instance")
		return o
	}
	log.V(1).Info("instance loaded", "knapsacks", o.inst.NumKnapsacks, "items", o.inst.NumItems)

	start := time.Now()
	o.sol, o.err = solver.Solve(ctx, o.inst, mode)
	if o.err != nil {
		log.Error(o.err, "solve failed")
		m.observe(solver.Backend(), mode, "error", time.Since(start))
		return o
	}
	m.observe(o.sol.Backend, mode, o.sol.Status.String(), o.sol.Elapsed)

	if cfg.Greedy {
		o.greedy, o.greedyErr = minkp.GreedyCover(o.inst)
	}
	if cfg.Gap {
		primal, dual, err := solver.DualityGap(ctx, o.inst)
		if err != nil {
			o.gapErr = err
		} else {
			o.gap = &gapEntry{Primal: primal, Dual: dual}
		}
	}
	return o
}
