package heredity

import (
	"fmt"
	"testing"
)

func founders(n int) []Person {
	people := make([]Person, n)
	for i := range people {
		people[i].Name = fmt.Sprintf("P%d", i)
	}
	return people
}

func pow(base, exp int) uint64 {
	out := uint64(1)
	for i := 0; i < exp; i++ {
		out *= uint64(base)
	}
	return out
}

func readAll(t *testing.T, cr *ConfigurationReader) []Configuration {
	t.Helper()
	var out []Configuration
	for c := cr.Read(); c != nil; c = cr.Read() {
		out = append(out, *c)
	}
	return out
}

func TestConfigurationReaderCoversEveryConfigurationOnce(t *testing.T) {
	for n := 0; n <= 5; n++ {
		p, err := NewPedigree(founders(n))
		if err != nil {
			t.Fatal(err)
		}

		configs := readAll(t, p.NewConfigurationReader())

		expected := pow(2, n) * pow(3, n)
		if uint64(len(configs)) != expected {
			t.Errorf("%d people: Got %d configurations, expected %d", n, len(configs), expected)
		}
		if got := ConfigurationCount(p); got != expected {
			t.Errorf("%d people: ConfigurationCount is %d, expected %d", n, got, expected)
		}

		seen := make(map[Configuration]struct{}, len(configs))
		full := fullMask(n)
		for _, c := range configs {
			if c.OneGene&c.TwoGenes != 0 {
				t.Fatalf("%d people: overlapping gene sets in %+v", n, c)
			}
			if (c.OneGene|c.TwoGenes|c.Trait)&^full != 0 {
				t.Fatalf("%d people: configuration %+v names people outside the pedigree", n, c)
			}
			if _, dup := seen[c]; dup {
				t.Fatalf("%d people: configuration %+v produced twice", n, c)
			}
			seen[c] = struct{}{}
		}
	}
}

func TestConfigurationReaderFiltersEvidence(t *testing.T) {
	p, err := NewPedigree(family0())
	if err != nil {
		t.Fatal(err)
	}

	cr := p.NewConfigurationReader()
	configs := readAll(t, cr)

	// Only Harry's trait is free.
	if expected := 2 * pow(3, 3); uint64(len(configs)) != expected {
		t.Errorf("Got %d configurations, expected %d", len(configs), expected)
	}
	if cr.TraitSubsetsSeen != 2 {
		t.Errorf("Got %d trait subsets, expected 2", cr.TraitSubsetsSeen)
	}
	if cr.ConfigurationsSeen != uint64(len(configs)) {
		t.Errorf("ConfigurationsSeen is %d, expected %d", cr.ConfigurationsSeen, len(configs))
	}
	for _, c := range configs {
		if !p.Consistent(c.Trait) {
			t.Fatalf("Configuration %+v contradicts the evidence", c)
		}
	}
}

func TestConfigurationReaderReset(t *testing.T) {
	p, err := NewPedigree(family0())
	if err != nil {
		t.Fatal(err)
	}

	cr := p.NewConfigurationReader()
	first := readAll(t, cr)
	if cr.Read() != nil {
		t.Fatalf("Exhausted reader produced another configuration")
	}

	cr.Reset()
	second := readAll(t, cr)

	if len(first) != len(second) {
		t.Fatalf("Got %d configurations after Reset, expected %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Configuration %d differs after Reset: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestConfigurationReaderPartitions(t *testing.T) {
	people := founders(4)
	people[2].Trait = TraitPresent
	p, err := NewPedigree(people)
	if err != nil {
		t.Fatal(err)
	}

	whole := readAll(t, p.NewConfigurationReader())

	for _, parts := range []int{1, 2, 3, 7, 20} {
		seen := map[Configuration]int{}
		for part := 0; part < parts; part++ {
			cr, err := p.NewConfigurationReaderPartition(part, parts)
			if err != nil {
				t.Fatal(err)
			}
			for _, c := range readAll(t, cr) {
				seen[c]++
			}
		}

		if len(seen) != len(whole) {
			t.Errorf("%d parts: Got %d distinct configurations, expected %d", parts, len(seen), len(whole))
		}
		for _, c := range whole {
			if seen[c] != 1 {
				t.Errorf("%d parts: configuration %+v seen %d times", parts, c, seen[c])
			}
		}
	}
}

func TestConfigurationReaderPartitionRange(t *testing.T) {
	p, err := NewPedigree(founders(2))
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range [][2]int{{0, 0}, {-1, 2}, {2, 2}} {
		if _, err := p.NewConfigurationReaderPartition(c[0], c[1]); err == nil {
			t.Errorf("Partition %d of %d was accepted", c[0], c[1])
		}
	}
}

func TestNewTraitSubset(t *testing.T) {
	p, err := NewPedigree(founders(2))
	if err != nil {
		t.Fatal(err)
	}

	cr := p.NewConfigurationReader()
	starts := 0
	for c := cr.Read(); c != nil; c = cr.Read() {
		if cr.NewTraitSubset() {
			starts++
		}
	}
	if starts != 4 {
		t.Errorf("Got %d trait subset starts, expected 4", starts)
	}
}

func TestConfigurationGenes(t *testing.T) {
	c := Configuration{
		Trait:    Mask(0).With(2),
		OneGene:  Mask(0).With(0),
		TwoGenes: Mask(0).With(1),
	}

	expected := []GeneCount{GeneOne, GeneTwo, GeneZero}
	for i, g := range expected {
		if got := c.Genes(i); got != g {
			t.Errorf("Person %d: Got %s genes, expected %s", i, got, g)
		}
	}
	if c.HasTrait(0) || c.HasTrait(1) || !c.HasTrait(2) {
		t.Errorf("Unexpected trait assignment in %+v", c)
	}
}
