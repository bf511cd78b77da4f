package heredity

// GeneCount is the number of copies of the variant allele a person carries.
type GeneCount uint8

const (
	GeneZero GeneCount = iota
	GeneOne
	GeneTwo
)

// NGeneCounts is the number of gene count states.
const NGeneCounts = 3

// String returns the number of copies as a digit.
func (g GeneCount) String() string {
	switch g {
	case GeneZero:
		return "0"
	case GeneOne:
		return "1"
	case GeneTwo:
		return "2"

	default:
		return "Illegal gene count"
	}
}

// Trait is the observed evidence about a person's trait. Unlike GeneCount,
// which is only ever hypothesized, a Trait may be unknown.
type Trait uint8

const (
	TraitUnknown Trait = iota
	TraitAbsent
	TraitPresent
)

// String returns "unknown", "absent" or "present".
func (t Trait) String() string {
	switch t {
	case TraitUnknown:
		return "unknown"
	case TraitAbsent:
		return "absent"
	case TraitPresent:
		return "present"

	default:
		return "Illegal trait"
	}
}

// Known reports whether the trait was observed.
func (t Trait) Known() bool {
	return t == TraitAbsent || t == TraitPresent
}

// Present reports whether the trait was observed to be present.
func (t Trait) Present() bool {
	return t == TraitPresent
}

// traitBucket maps a hypothesized trait value onto the index used by the
// trait tables: 0 for absent, 1 for present.
func traitBucket(present bool) int {
	if present {
		return 1
	}
	return 0
}
