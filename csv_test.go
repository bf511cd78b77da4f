package heredity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const family0CSV = `name,mother,father,trait
Harry,Lily,James,
James,,,1
Lily,,,0
`

func TestReadPeople(t *testing.T) {
	people, err := ReadPeople(strings.NewReader(family0CSV))
	if err != nil {
		t.Fatal(err)
	}

	expected := family0()
	if len(people) != len(expected) {
		t.Fatalf("Got %d people, expected %d", len(people), len(expected))
	}
	for i, person := range people {
		want := expected[i]
		if person.Name != want.Name || person.Trait != want.Trait || person.Founder() != want.Founder() {
			t.Errorf("Person %d: Got %+v, expected %+v", i, person, want)
		}
		if !person.Founder() && *person.Parents != *want.Parents {
			t.Errorf("Person %d: Got parents %+v, expected %+v", i, *person.Parents, *want.Parents)
		}
	}
}

func TestReadPeopleColumnOrder(t *testing.T) {
	people, err := ReadPeople(strings.NewReader("trait,father,name,mother\n1,,A,\n,A,C,B\n0,,B,\n"))
	if err != nil {
		t.Fatal(err)
	}

	if len(people) != 3 {
		t.Fatalf("Got %d people, expected 3", len(people))
	}
	if people[0].Name != "A" || people[0].Trait != TraitPresent {
		t.Errorf("Got %+v", people[0])
	}
	if people[1].Parents == nil || people[1].Parents.Mother != "B" || people[1].Parents.Father != "A" {
		t.Errorf("Got %+v", people[1])
	}
}

func TestReadPeopleRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"missing column": "name,mother,father\nA,,\n",
		"half parentage": "name,mother,father,trait\nA,,,\nB,A,,\n",
		"bad trait":      "name,mother,father,trait\nA,,,yes\n",
		"blank name":     "name,mother,father,trait\n,,,1\n",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadPeople(strings.NewReader(input)); !errors.Is(err, ErrMalformedCSV) {
				t.Errorf("Got %v, expected ErrMalformedCSV", err)
			}
		})
	}
}

func TestParseTrait(t *testing.T) {
	cases := map[string]Trait{
		"":  TraitUnknown,
		" ": TraitUnknown,
		"0": TraitAbsent,
		"1": TraitPresent,
	}
	for input, expected := range cases {
		got, err := ParseTrait(input)
		if err != nil {
			t.Errorf("%q: %v", input, err)
		}
		if got != expected {
			t.Errorf("%q: Got %s, expected %s", input, got, expected)
		}
	}

	if _, err := ParseTrait("2"); err == nil {
		t.Errorf("Accepted trait 2")
	}
}

func TestLoadPedigree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "family0.csv")
	if err := os.WriteFile(path, []byte(family0CSV), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPedigree(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 3 {
		t.Errorf("Got %d people, expected 3", p.Len())
	}
}

func TestLoadPedigreeValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orphan.csv")
	if err := os.WriteFile(path, []byte("name,mother,father,trait\nA,B,C,\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPedigree(context.Background(), path); !errors.Is(err, ErrUnknownParent) {
		t.Errorf("Got %v, expected ErrUnknownParent", err)
	}
}
