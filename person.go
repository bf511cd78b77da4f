package heredity

import (
	"errors"
	"fmt"
)

// MaxPeople is the largest pedigree the enumerator accepts. Exact inference
// visits 3^N gene partitions, so pedigrees near this size are already far
// beyond what can finish; the limit keeps masks within a uint64.
const MaxPeople = 32

var (
	ErrInvalidPerson    = errors.New("invalid person")
	ErrDuplicatePerson  = errors.New("duplicate person")
	ErrUnknownParent    = errors.New("unknown parent")
	ErrCyclicPedigree   = errors.New("cyclic pedigree")
	ErrPedigreeTooLarge = errors.New("pedigree too large")
)

// Parents names a person's recorded mother and father. A Person either has
// both or, as a founder, neither.
type Parents struct {
	Mother string
	Father string
}

// Person is one individual in a pedigree along with any evidence about
// their trait.
type Person struct {
	Name    string
	Parents *Parents
	Trait   Trait
}

// Founder reports whether the person has no recorded parents.
func (p Person) Founder() bool {
	return p.Parents == nil
}

// Pedigree is a validated, acyclic set of people with a fixed ordering.
// Person i in the ordering corresponds to bit i of every Mask.
type Pedigree struct {
	people []Person
	index  map[string]int

	// mother[i] and father[i] are indices into people, or -1 for founders.
	mother []int
	father []int

	known   Mask // people whose trait was observed
	present Mask // people observed to have the trait
}

// NewPedigree validates people and fixes their ordering as given.
func NewPedigree(people []Person) (*Pedigree, error) {
	if len(people) > MaxPeople {
		return nil, fmt.Errorf("%w: %d people, at most %d are supported", ErrPedigreeTooLarge, len(people), MaxPeople)
	}

	p := &Pedigree{
		people: make([]Person, len(people)),
		index:  make(map[string]int, len(people)),
		mother: make([]int, len(people)),
		father: make([]int, len(people)),
	}
	copy(p.people, people)

	for i, person := range p.people {
		if person.Name == "" {
			return nil, fmt.Errorf("%w: person %d has no name", ErrInvalidPerson, i)
		}
		if _, exists := p.index[person.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePerson, person.Name)
		}
		if person.Trait > TraitPresent {
			return nil, fmt.Errorf("%w: %q has trait value %d", ErrInvalidPerson, person.Name, person.Trait)
		}
		p.index[person.Name] = i

		if person.Trait.Known() {
			p.known = p.known.With(i)
		}
		if person.Trait.Present() {
			p.present = p.present.With(i)
		}
	}

	for i, person := range p.people {
		p.mother[i], p.father[i] = -1, -1
		if person.Founder() {
			continue
		}

		// Copy so that callers cannot mutate the pedigree through the
		// pointer they passed in.
		p.people[i] = clonePerson(person)
		parents := *person.Parents

		if parents.Mother == "" || parents.Father == "" {
			return nil, fmt.Errorf("%w: %q has only one parent recorded", ErrInvalidPerson, person.Name)
		}
		if parents.Mother == person.Name || parents.Father == person.Name {
			return nil, fmt.Errorf("%w: %q is recorded as their own parent", ErrCyclicPedigree, person.Name)
		}

		mother, ok := p.index[parents.Mother]
		if !ok {
			return nil, fmt.Errorf("%w: mother %q of %q", ErrUnknownParent, parents.Mother, person.Name)
		}
		father, ok := p.index[parents.Father]
		if !ok {
			return nil, fmt.Errorf("%w: father %q of %q", ErrUnknownParent, parents.Father, person.Name)
		}
		p.mother[i], p.father[i] = mother, father
	}

	if err := p.checkAcyclic(); err != nil {
		return nil, err
	}

	return p, nil
}

// checkAcyclic walks parent links depth first. A person met again while
// still on the walk is their own ancestor.
func (p *Pedigree) checkAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]uint8, len(p.people))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case visiting:
			return fmt.Errorf("%w: %q is their own ancestor", ErrCyclicPedigree, p.people[i].Name)
		case done:
			return nil
		}
		state[i] = visiting
		for _, parent := range [2]int{p.mother[i], p.father[i]} {
			if parent < 0 {
				continue
			}
			if err := visit(parent); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}

	for i := range p.people {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of people in the pedigree.
func (p *Pedigree) Len() int {
	return len(p.people)
}

// Person returns the i'th person in the pedigree ordering.
func (p *Pedigree) Person(i int) Person {
	return clonePerson(p.people[i])
}

// People returns a copy of the people in pedigree order.
func (p *Pedigree) People() []Person {
	out := make([]Person, len(p.people))
	for i, person := range p.people {
		out[i] = clonePerson(person)
	}
	return out
}

// clonePerson copies person so that its Parents no longer alias the
// pedigree's own.
func clonePerson(person Person) Person {
	if person.Parents != nil {
		parents := *person.Parents
		person.Parents = &parents
	}
	return person
}

// Index returns the position of the named person in the pedigree ordering.
func (p *Pedigree) Index(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// Consistent reports whether the people in trait having the trait, and
// everyone else lacking it, agrees with every observed trait.
func (p *Pedigree) Consistent(trait Mask) bool {
	return trait&p.known == p.present
}

// full is the mask containing every person.
func (p *Pedigree) full() Mask {
	return fullMask(len(p.people))
}
