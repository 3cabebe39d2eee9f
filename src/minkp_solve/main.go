// Command minkp_solve solves minimum knapsack instances read from files.
//
//	minkp_solve [flags] <file>... <mode>
//
// mode is 0 (integer), 1 (relaxed) or 2 (dual); it may be given with --mode
// instead, in which case every argument is an instance file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
