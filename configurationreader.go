package heredity

import (
	"fmt"
)

// ConfigurationReader walks every configuration of a pedigree that agrees
// with the observed traits. Trait subsets are visited in increasing mask
// order; within each, the one-gene set runs over every mask and the
// two-gene set over every subset of the remaining people, so each of the
// 3^N gene partitions is produced exactly once.
//
// A reader can be restricted to a partition of the trait subsets so that
// several readers cover the whole sequence between them with no overlap.
type ConfigurationReader struct {
	ConfigurationsSeen uint64
	TraitSubsetsSeen   uint64

	p     *Pedigree
	full  Mask
	part  uint64
	parts uint64

	started bool
	done    bool
	current Configuration
}

// NewConfigurationReader returns a reader over the full configuration
// sequence.
func (p *Pedigree) NewConfigurationReader() *ConfigurationReader {
	cr, _ := p.NewConfigurationReaderPartition(0, 1)
	return cr
}

// NewConfigurationReaderPartition returns a reader over every parts'th
// trait subset, starting with subset number part.
func (p *Pedigree) NewConfigurationReaderPartition(part, parts int) (*ConfigurationReader, error) {
	if parts < 1 || part < 0 || part >= parts {
		return nil, fmt.Errorf("partition %d of %d is out of range", part, parts)
	}

	cr := &ConfigurationReader{
		p:     p,
		full:  p.full(),
		part:  uint64(part),
		parts: uint64(parts),
	}

	return cr, nil
}

// Reset rewinds the reader to the start of its sequence.
func (cr *ConfigurationReader) Reset() {
	cr.ConfigurationsSeen = 0
	cr.TraitSubsetsSeen = 0
	cr.started = false
	cr.done = false
	cr.current = Configuration{}
}

// Read returns the next configuration, or nil once the sequence is
// exhausted. The returned value is only valid until the next call.
func (cr *ConfigurationReader) Read() *Configuration {
	if cr.done || !cr.advance() {
		cr.done = true
		return nil
	}

	cr.ConfigurationsSeen++

	return &cr.current
}

// NewTraitSubset reports whether the configuration most recently returned
// by Read was the first one for its trait subset.
func (cr *ConfigurationReader) NewTraitSubset() bool {
	c := cr.current
	return cr.started && !cr.done && c.OneGene == 0 && c.TwoGenes == cr.full
}

func (cr *ConfigurationReader) advance() bool {
	c := &cr.current

	if !cr.started {
		cr.started = true
		return cr.seekTrait(cr.part)
	}

	// Next subset of the people left over after the one-gene set, counting
	// down to the empty set.
	if c.TwoGenes != 0 {
		c.TwoGenes = (c.TwoGenes - 1) & (cr.full &^ c.OneGene)
		return true
	}

	if c.OneGene < cr.full {
		c.OneGene++
		c.TwoGenes = cr.full &^ c.OneGene
		return true
	}

	return cr.seekTrait(uint64(c.Trait) + cr.parts)
}

// seekTrait moves to the first trait subset at or after from, within this
// reader's partition, that is consistent with the evidence.
func (cr *ConfigurationReader) seekTrait(from uint64) bool {
	for trait := from; trait <= uint64(cr.full); trait += cr.parts {
		if !cr.p.Consistent(Mask(trait)) {
			continue
		}

		cr.TraitSubsetsSeen++
		cr.current = Configuration{
			Trait:    Mask(trait),
			OneGene:  0,
			TwoGenes: cr.full,
		}
		return true
	}

	return false
}
