package heredity

import "math/bits"

// Mask is a set of people, bit i standing for person i of a Pedigree.
type Mask uint64

func fullMask(n int) Mask {
	if n >= 64 {
		return ^Mask(0)
	}
	return Mask(1)<<uint(n) - 1
}

// Has reports whether person i is in the set.
func (m Mask) Has(i int) bool {
	return m&(1<<uint(i)) != 0
}

// With returns the set with person i added.
func (m Mask) With(i int) Mask {
	return m | 1<<uint(i)
}

// Len returns the number of people in the set.
func (m Mask) Len() int {
	return bits.OnesCount64(uint64(m))
}

// Configuration is one complete hypothesis: every person's gene count and
// trait value. People in neither OneGene nor TwoGenes carry zero copies, and
// people outside Trait lack the trait. OneGene and TwoGenes never overlap.
type Configuration struct {
	Trait    Mask
	OneGene  Mask
	TwoGenes Mask
}

// Genes returns the hypothesized gene count of person i.
func (c Configuration) Genes(i int) GeneCount {
	switch {
	case c.OneGene.Has(i):
		return GeneOne
	case c.TwoGenes.Has(i):
		return GeneTwo
	default:
		return GeneZero
	}
}

// HasTrait returns the hypothesized trait value of person i.
func (c Configuration) HasTrait(i int) bool {
	return c.Trait.Has(i)
}

// ConfigurationCount returns how many configurations survive the evidence
// filter: every trait assignment of the unobserved people times every gene
// partition. It saturates at the maximum uint64.
func ConfigurationCount(p *Pedigree) uint64 {
	unknown := p.Len() - p.known.Len()

	total := uint64(1) << uint(unknown)
	for i := 0; i < p.Len(); i++ {
		hi, lo := bits.Mul64(total, 3)
		if hi != 0 {
			return ^uint64(0)
		}
		total = lo
	}
	return total
}
