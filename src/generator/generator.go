package main

import (
	"bytes"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	"min_knapsack/src/minkp"
)

// GenerateInstance draws item weights and costs uniformly and sets each
// demand to a fraction of the total weight divided among the knapsacks, so
// that the generated instance is usually feasible.
func GenerateInstance(numKnapsacks, numItems, maxWeight, maxCost int, demandRatio float64, rng *rand.Rand) (*minkp.Instance, error) {
	weight := make([]float64, numItems)
	cost := make([]float64, numItems)
	var total float64
	for j := range numItems {
		weight[j] = float64(1 + rng.Intn(maxWeight))
		cost[j] = float64(1 + rng.Intn(maxCost))
		total += weight[j]
	}

	demand := make([]float64, numKnapsacks)
	share := total / float64(numKnapsacks)
	for i := range numKnapsacks {
		r := math.Max(0, math.Min(1, demandRatio+0.1*rng.NormFloat64()))
		demand[i] = math.Floor(share * r)
	}
	return minkp.NewInstance(demand, weight, cost)
}

func main() {
	var outPath string
	var numKnapsacks, numItems, maxWeight, maxCost int
	var demandRatio float64
	var seed int64

	flag.StringVar(&outPath, "out", "out.txt", "The output file")
	flag.IntVar(&numKnapsacks, "knapsacks", 1, "The number of knapsacks")
	flag.IntVar(&numItems, "items", 0, "The number of items")
	flag.IntVar(&maxWeight, "maxw", 20, "The maximum item weight")
	flag.IntVar(&maxCost, "maxc", 20, "The maximum item cost")
	flag.Float64Var(&demandRatio, "ratio", 0.5, "The mean fraction of each knapsack's share of the total weight to demand")
	flag.Int64Var(&seed, "seed", 0, "The random seed, 0 for a time-based one")

	flag.Parse()

	err := false
	if numKnapsacks < 1 {
		fmt.Fprintln(os.Stderr, "Must specify at least one knapsack")
		err = true
	}
	if numItems < 1 {
		fmt.Fprintln(os.Stderr, "Must specify the number of items")
		err = true
	}
	if maxWeight < 1 || maxCost < 1 {
		fmt.Fprintln(os.Stderr, "Maximum weight and cost must be positive")
		err = true
	}
	if demandRatio <= 0 || demandRatio > 1 {
		fmt.Fprintln(os.Stderr, "Demand ratio must be in (0, 1]")
		err = true
	}

	if err {
		os.Exit(1)
	}

	if seed == 0 {
		seed = rand.Int63()
	}
	inst, genErr := GenerateInstance(numKnapsacks, numItems, maxWeight, maxCost, demandRatio, rand.New(rand.NewSource(seed)))
	if genErr != nil {
		fmt.Fprintln(os.Stderr, genErr)
		os.Exit(1)
	}

	buf := new(bytes.Buffer)
	if writeErr := minkp.WriteInstance(buf, inst); writeErr != nil {
		fmt.Fprintln(os.Stderr, writeErr)
		os.Exit(1)
	}
	if writeErr := os.WriteFile(outPath, buf.Bytes(), 0666); writeErr != nil {
		fmt.Fprintln(os.Stderr, writeErr)
		os.Exit(1)
	}
}
