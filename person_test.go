package heredity

import (
	"errors"
	"fmt"
	"testing"
)

// family0 is a child with two founder parents, one known to have the trait
// and one known not to.
func family0() []Person {
	return []Person{
		{Name: "Harry", Parents: &Parents{Mother: "Lily", Father: "James"}},
		{Name: "James", Trait: TraitPresent},
		{Name: "Lily", Trait: TraitAbsent},
	}
}

func TestNewPedigree(t *testing.T) {
	p, err := NewPedigree(family0())
	if err != nil {
		t.Fatal(err)
	}

	if p.Len() != 3 {
		t.Fatalf("Got %d people, expected 3", p.Len())
	}

	harry, ok := p.Index("Harry")
	if !ok || harry != 0 {
		t.Errorf("Got index %d (%v), expected 0", harry, ok)
	}
	if p.mother[harry] != 2 || p.father[harry] != 1 {
		t.Errorf("Got parents (%d, %d), expected (2, 1)", p.mother[harry], p.father[harry])
	}
	if p.mother[1] != -1 || p.father[1] != -1 {
		t.Errorf("Founder James has parents (%d, %d)", p.mother[1], p.father[1])
	}
	if _, ok := p.Index("Ron"); ok {
		t.Errorf("Found a person who is not in the pedigree")
	}

	if p.known != Mask(0).With(1).With(2) {
		t.Errorf("Got known mask %b", p.known)
	}
	if p.present != Mask(0).With(1) {
		t.Errorf("Got present mask %b", p.present)
	}
}

func TestNewPedigreeCopiesInput(t *testing.T) {
	people := family0()
	p, err := NewPedigree(people)
	if err != nil {
		t.Fatal(err)
	}

	people[0].Parents.Mother = "Petunia"
	people[1].Name = "Vernon"

	if got := p.Person(0).Parents.Mother; got != "Lily" {
		t.Errorf("Got mother %q, expected Lily", got)
	}
	if got := p.People()[1].Name; got != "James" {
		t.Errorf("Got %q, expected James", got)
	}
}

func TestPedigreeAccessorsCopyParents(t *testing.T) {
	p, err := NewPedigree(family0())
	if err != nil {
		t.Fatal(err)
	}

	people := p.People()
	people[0].Parents.Mother = "Petunia"

	person := p.Person(0)
	person.Parents.Father = "Vernon"

	got := p.Person(0).Parents
	if got.Mother != "Lily" || got.Father != "James" {
		t.Errorf("Got parents %+v, expected Lily and James", *got)
	}
}

func TestNewPedigreeRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name     string
		people   []Person
		expected error
	}{
		{
			name:     "blank name",
			people:   []Person{{Name: ""}},
			expected: ErrInvalidPerson,
		},
		{
			name:     "duplicate",
			people:   []Person{{Name: "A"}, {Name: "A"}},
			expected: ErrDuplicatePerson,
		},
		{
			name:     "unknown mother",
			people:   []Person{{Name: "A"}, {Name: "C", Parents: &Parents{Mother: "B", Father: "A"}}},
			expected: ErrUnknownParent,
		},
		{
			name:     "unknown father",
			people:   []Person{{Name: "A"}, {Name: "C", Parents: &Parents{Mother: "A", Father: "B"}}},
			expected: ErrUnknownParent,
		},
		{
			name:     "half parentage",
			people:   []Person{{Name: "A"}, {Name: "C", Parents: &Parents{Mother: "A"}}},
			expected: ErrInvalidPerson,
		},
		{
			name:     "own parent",
			people:   []Person{{Name: "A"}, {Name: "C", Parents: &Parents{Mother: "A", Father: "C"}}},
			expected: ErrCyclicPedigree,
		},
		{
			name: "cycle",
			people: []Person{
				{Name: "A"},
				{Name: "B", Parents: &Parents{Mother: "A", Father: "C"}},
				{Name: "C", Parents: &Parents{Mother: "A", Father: "B"}},
			},
			expected: ErrCyclicPedigree,
		},
		{
			name:     "bad trait",
			people:   []Person{{Name: "A", Trait: Trait(7)}},
			expected: ErrInvalidPerson,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewPedigree(c.people); !errors.Is(err, c.expected) {
				t.Errorf("Got %v, expected %v", err, c.expected)
			}
		})
	}
}

func TestNewPedigreeRejectsTooManyPeople(t *testing.T) {
	people := make([]Person, MaxPeople+1)
	for i := range people {
		people[i].Name = fmt.Sprintf("P%d", i)
	}

	if _, err := NewPedigree(people); !errors.Is(err, ErrPedigreeTooLarge) {
		t.Errorf("Got %v, expected ErrPedigreeTooLarge", err)
	}

	if _, err := NewPedigree(people[:MaxPeople]); err != nil {
		t.Errorf("Got %v for %d people, expected success", err, MaxPeople)
	}
}

func TestConsistent(t *testing.T) {
	p, err := NewPedigree(family0())
	if err != nil {
		t.Fatal(err)
	}

	// Harry is unobserved, James has the trait, Lily does not.
	cases := []struct {
		trait    Mask
		expected bool
	}{
		{Mask(0).With(1), true},
		{Mask(0).With(0).With(1), true},
		{Mask(0), false},
		{Mask(0).With(1).With(2), false},
		{Mask(0).With(0), false},
	}

	for _, c := range cases {
		if got := p.Consistent(c.trait); got != c.expected {
			t.Errorf("Consistent(%03b): Got %v, expected %v", c.trait, got, c.expected)
		}
	}
}
