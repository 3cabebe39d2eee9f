// Package minkp formulates the minimum-cost covering knapsack problem and its
// linear-programming dual, and interprets what a solver returns.
//
// Each knapsack i has a demand; each item j has a weight and a cost. A
// solution picks items for every knapsack so that the picked weight meets the
// demand, no item goes to two knapsacks, and the total cost is minimal.
//
// The pipeline is linear:
//
//	Instance → BuildModel → linprog.Solver → ExtractSelection / ExtractDual
//
// Solve runs it once. It keeps no state between calls, so independent calls
// may run concurrently as long as the backend creates an isolated native
// problem per call, which every backend in linprog does.
//
// Example:
//
//	inst, err := minkp.LoadInstance("data/example.txt")
//	if err != nil {
//		return err
//	}
//	backend, _ := highs.New()
//	sol, err := minkp.Solve(ctx, inst, minkp.IntegerPrimal, backend)
//	if err != nil {
//		return err
//	}
//	for i, items := range sol.Selection {
//		log.Info("knapsack filled", "knapsack", i, "items", len(items))
//	}
package minkp
