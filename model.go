// Package heredity computes exact posterior gene count and trait
// distributions for every person in a pedigree by enumerating every joint
// configuration of the family.
package heredity

import (
	"errors"
	"fmt"
	"math"
)

// Tolerance is the slack allowed when checking that a distribution sums to 1.
const Tolerance = 1e-9

// ErrInvalidModel is returned when a model's tables are not probability
// distributions.
var ErrInvalidModel = errors.New("invalid inheritance model")

// Model holds the fixed conditional probability tables that govern gene
// inheritance and trait expression. A Model is immutable once built by
// NewModel and is safe to share between goroutines.
type Model struct {
	// GenePrior is the unconditional gene count distribution, used for
	// founders.
	GenePrior [NGeneCounts]float64

	// TraitGivenGene[g][1] is P(trait present | g copies) and
	// TraitGivenGene[g][0] is P(trait absent | g copies).
	TraitGivenGene [NGeneCounts][2]float64

	// Mutation is the probability that a transmitted allele flips state.
	Mutation float64

	// transition[c][a][b] is P(child has c copies | parents have a and b).
	transition [NGeneCounts][NGeneCounts][NGeneCounts]float64
}

var defaultModel = mustModel(
	[NGeneCounts]float64{0.96, 0.03, 0.01},
	[NGeneCounts][2]float64{
		{0.99, 0.01},
		{0.44, 0.56},
		{0.35, 0.65},
	},
	0.01,
)

// DefaultModel returns the shared model with the standard gene prior, trait
// table and a mutation rate of 0.01.
func DefaultModel() *Model {
	return defaultModel
}

func mustModel(prior [NGeneCounts]float64, trait [NGeneCounts][2]float64, mutation float64) *Model {
	m, err := NewModel(prior, trait, mutation)
	if err != nil {
		panic(err)
	}
	return m
}

// NewModel validates the tables and derives the gene transition table from
// the mutation rate.
func NewModel(prior [NGeneCounts]float64, trait [NGeneCounts][2]float64, mutation float64) (*Model, error) {
	if err := checkDistribution("gene prior", prior[:]); err != nil {
		return nil, err
	}
	for g := range trait {
		if err := checkDistribution(fmt.Sprintf("trait given %d genes", g), trait[g][:]); err != nil {
			return nil, err
		}
	}
	if math.IsNaN(mutation) || mutation < 0 || mutation > 1 {
		return nil, fmt.Errorf("%w: mutation rate %v is outside [0, 1]", ErrInvalidModel, mutation)
	}

	m := &Model{
		GenePrior:      prior,
		TraitGivenGene: trait,
		Mutation:       mutation,
	}
	m.deriveTransitions()

	return m, nil
}

func checkDistribution(name string, dist []float64) error {
	sum := 0.0
	for i, p := range dist {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: %s[%d] = %v is not a probability", ErrInvalidModel, name, i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > Tolerance {
		return fmt.Errorf("%w: %s sums to %v, expected 1", ErrInvalidModel, name, sum)
	}
	return nil
}

// transmission is the probability that a parent with g copies passes on
// the variant allele, after mutation.
func (m *Model) transmission(g GeneCount) float64 {
	switch g {
	case GeneZero:
		return m.Mutation
	case GeneOne:
		return 0.5
	default:
		return 1 - m.Mutation
	}
}

func (m *Model) deriveTransitions() {
	for a := GeneZero; a <= GeneTwo; a++ {
		qa := m.transmission(a)
		for b := GeneZero; b <= GeneTwo; b++ {
			qb := m.transmission(b)
			m.transition[GeneTwo][a][b] = qa * qb
			m.transition[GeneOne][a][b] = qa*(1-qb) + (1-qa)*qb
			m.transition[GeneZero][a][b] = (1 - qa) * (1 - qb)
		}
	}
}

// Transition returns the probability that a child carries child copies
// given that its parents carry a and b copies. The order of the parents does
// not matter.
func (m *Model) Transition(child, a, b GeneCount) float64 {
	return m.transition[child][a][b]
}

// Prior returns the unconditional probability of carrying g copies.
func (m *Model) Prior(g GeneCount) float64 {
	return m.GenePrior[g]
}

// TraitProbability returns the probability that the trait's presence equals
// present given g copies.
func (m *Model) TraitProbability(g GeneCount, present bool) float64 {
	return m.TraitGivenGene[g][traitBucket(present)]
}
