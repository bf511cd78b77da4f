package heredity

// JointProbability returns the probability that every person in p has
// exactly the gene count and trait value c assigns them. Each person
// contributes a gene factor, taken from the prior for founders and from the
// transition table given their parents' hypothesized gene counts otherwise,
// and a trait factor conditioned on their own gene count.
func (m *Model) JointProbability(p *Pedigree, c Configuration) float64 {
	prob := 1.0

	for i := range p.people {
		genes := c.Genes(i)

		if mother, father := p.mother[i], p.father[i]; mother < 0 {
			prob *= m.GenePrior[genes]
		} else {
			prob *= m.transition[genes][c.Genes(father)][c.Genes(mother)]
		}

		prob *= m.TraitGivenGene[genes][traitBucket(c.HasTrait(i))]
	}

	return prob
}
