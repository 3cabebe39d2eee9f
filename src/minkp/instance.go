package minkp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Instance is the immutable input of a solve. The slices must not be modified
// once the instance has been built or loaded.
type Instance struct {
	NumKnapsacks int
	NumItems     int
	Demand       []float64
	Weight       []float64
	Cost         []float64
}

// NewInstance copies its arguments into a validated Instance.
func NewInstance(demand, weight, cost []float64) (*Instance, error) {
	inst := &Instance{
		NumKnapsacks: len(demand),
		NumItems:     len(weight),
		Demand:       append([]float64(nil), demand...),
		Weight:       append([]float64(nil), weight...),
		Cost:         append([]float64(nil), cost...),
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst.NumKnapsacks == 0 {
		return ErrNoKnapsacks
	}
	if inst.NumKnapsacks < 0 || inst.NumItems < 0 {
		return fmt.Errorf("%w: negative dimensions %d knapsacks, %d items", ErrInvalidInstance, inst.NumKnapsacks, inst.NumItems)
	}
	if len(inst.Demand) != inst.NumKnapsacks {
		return fmt.Errorf("%w: %d demands for %d knapsacks", ErrInvalidInstance, len(inst.Demand), inst.NumKnapsacks)
	}
	if len(inst.Weight) != inst.NumItems {
		return fmt.Errorf("%w: %d weights for %d items", ErrInvalidInstance, len(inst.Weight), inst.NumItems)
	}
	if len(inst.Cost) != inst.NumItems {
		return fmt.Errorf("%w: %d costs for %d items", ErrInvalidInstance, len(inst.Cost), inst.NumItems)
	}
	for i, d := range inst.Demand {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: demand of knapsack %d is %v", ErrInvalidInstance, i, d)
		}
	}
	for j := range inst.NumItems {
		if w := inst.Weight[j]; w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: weight of item %d is %v", ErrInvalidInstance, j, w)
		}
		if c := inst.Cost[j]; math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: cost of item %d is %v", ErrInvalidInstance, j, c)
		}
	}
	return nil
}

func (inst *Instance) IsMulti() bool {
	return inst.NumKnapsacks > 1
}

func (inst *Instance) TotalWeight() float64 {
	return floats.Sum(inst.Weight)
}

func (inst *Instance) TotalDemand() float64 {
	return floats.Sum(inst.Demand)
}

func (inst *Instance) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "N. knapsacks: %d\n", inst.NumKnapsacks)
	fmt.Fprintf(s, "N. items: %d\n", inst.NumItems)
	fmt.Fprintf(s, "Demands: %v\n", inst.Demand)
	for j := range inst.NumItems {
		fmt.Fprintf(s, "Item %d: weight = %v, cost = %v\n", j, inst.Weight[j], inst.Cost[j])
	}
	return s.String()
}

func errorCoalesce(args ...error) error {
	for _, e := range args {
		if e != nil {
			return e
		}
	}
	return nil
}

// instanceReader walks the fixed five-line layout:
//
//	nb_knapsacks
//	nb_items
//	demand vector
//	weight vector
//	cost vector
type instanceReader struct {
	scanner *bufio.Scanner
	line    int
}

// next returns the fields of the following line. A missing vector line reads
// as empty, so an instance without items may omit its last two lines.
func (r *instanceReader) next() ([]string, bool) {
	r.line++
	if !r.scanner.Scan() {
		return nil, false
	}
	return strings.Fields(r.scanner.Text()), true
}

func (r *instanceReader) parseCount(what string) (int, error) {
	fields, ok := r.next()
	if !ok {
		return 0, fmt.Errorf("error while parsing line %d (%s): missing line", r.line, what)
	}
	if len(fields) != 1 {
		return 0, fmt.Errorf("error while parsing line %d (%s): expected one value, got %d", r.line, what, len(fields))
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("error while parsing line %d (%s): %v", r.line, what, err)
	}
	return v, nil
}

func (r *instanceReader) parseVector(what string) ([]float64, error) {
	fields, _ := r.next()
	vec := make([]float64, len(fields))
	for i, tok := range fields {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("error while parsing line %d (%s), value %d: %v", r.line, what, i, err)
		}
		vec[i] = float64(v)
	}
	return vec, nil
}

func (inst *Instance) parseFirstLine(r *instanceReader) (err error) {
	inst.NumKnapsacks, err = r.parseCount("nb_knapsacks")
	return
}

func (inst *Instance) parseSecondLine(r *instanceReader) (err error) {
	inst.NumItems, err = r.parseCount("nb_items")
	return
}

func (inst *Instance) parseDemands(r *instanceReader) (err error) {
	inst.Demand, err = r.parseVector("demand")
	return
}

func (inst *Instance) parseWeights(r *instanceReader) (err error) {
	inst.Weight, err = r.parseVector("weight")
	return
}

func (inst *Instance) parseCosts(r *instanceReader) (err error) {
	inst.Cost, err = r.parseVector("cost")
	return
}

// ReadInstance parses an instance from r and validates it.
func ReadInstance(in io.Reader) (*Instance, error) {
	inst := new(Instance)
	r := &instanceReader{scanner: bufio.NewScanner(in)}
	err := errorCoalesce(
		inst.parseFirstLine(r),
		inst.parseSecondLine(r),
		inst.parseDemands(r),
		inst.parseWeights(r),
		inst.parseCosts(r),
	)
	if err == nil {
		err = r.scanner.Err()
	}
	if err != nil {
		return nil, err
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func LoadInstance(filename string) (*Instance, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	inst, err := ReadInstance(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return inst, nil
}

// WriteInstance writes inst in the layout ReadInstance expects. Values are
// rounded to integers, as the format only carries integers.
func WriteInstance(w io.Writer, inst *Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, inst.NumKnapsacks)
	fmt.Fprintln(bw, inst.NumItems)
	for _, vec := range [][]float64{inst.Demand, inst.Weight, inst.Cost} {
		toks := make([]string, len(vec))
		for i, v := range vec {
			toks[i] = strconv.Itoa(int(math.Round(v)))
		}
		fmt.Fprintln(bw, strings.Join(toks, " "))
	}
	return bw.Flush()
}
