package heredity

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoConsistentConfiguration means every configuration had zero
	// probability, so some person's distribution cannot be normalized. The
	// evidence is contradictory under the model.
	ErrNoConsistentConfiguration = errors.New("no consistent configuration")

	ErrAlreadyNormalized = errors.New("table already normalized")
)

// Distribution is one person's posterior, or the unnormalized weights that
// become it. Gene[g] is the weight of g copies; Trait[1] is the weight of
// the trait being present and Trait[0] of it being absent.
type Distribution struct {
	Gene  [NGeneCounts]float64
	Trait [2]float64
}

// GeneProbability returns the weight of carrying g copies.
func (d Distribution) GeneProbability(g GeneCount) float64 {
	return d.Gene[g]
}

// TraitProbability returns the weight of the trait's presence equalling
// present.
func (d Distribution) TraitProbability(present bool) float64 {
	return d.Trait[traitBucket(present)]
}

// Table holds one Distribution per person, in pedigree order. It starts at
// zero, accumulates joint probabilities through Update and Merge, and is
// normalized exactly once.
type Table struct {
	Distributions []Distribution
	normalized    bool
}

// NewTable returns an all-zero table for n people.
func NewTable(n int) *Table {
	return &Table{
		Distributions: make([]Distribution, n),
	}
}

// Normalized reports whether Normalize has succeeded on the table.
func (t *Table) Normalized() bool {
	return t.normalized
}

// Update adds p to the gene and trait bucket that c assigns each person.
func (t *Table) Update(c Configuration, p float64) {
	for i := range t.Distributions {
		d := &t.Distributions[i]
		d.Gene[c.Genes(i)] += p
		d.Trait[traitBucket(c.HasTrait(i))] += p
	}
}

// Merge adds other into t bucket by bucket. Both tables must still be
// accumulating.
func (t *Table) Merge(other *Table) error {
	if t.normalized || other.normalized {
		return ErrAlreadyNormalized
	}
	if len(t.Distributions) != len(other.Distributions) {
		return fmt.Errorf("cannot merge a table of %d people into one of %d", len(other.Distributions), len(t.Distributions))
	}

	for i := range t.Distributions {
		d, o := &t.Distributions[i], &other.Distributions[i]
		for g := range d.Gene {
			d.Gene[g] += o.Gene[g]
		}
		for v := range d.Trait {
			d.Trait[v] += o.Trait[v]
		}
	}

	return nil
}

// Normalize rescales every distribution so that it sums to 1. The table is
// left untouched if any distribution has no weight to rescale.
func (t *Table) Normalize() error {
	if t.normalized {
		return ErrAlreadyNormalized
	}

	for i, d := range t.Distributions {
		if !positive(sum(d.Gene[:])) || !positive(sum(d.Trait[:])) {
			return fmt.Errorf("%w: person %d has no probability mass", ErrNoConsistentConfiguration, i)
		}
	}

	for i := range t.Distributions {
		d := &t.Distributions[i]
		scale(d.Gene[:])
		scale(d.Trait[:])
	}
	t.normalized = true

	return nil
}

func sum(weights []float64) float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	return total
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}

func scale(weights []float64) {
	alpha := 1 / sum(weights)
	for i := range weights {
		weights[i] *= alpha
	}
}
