package heredity

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// ErrMalformedCSV is returned when a pedigree file cannot be parsed.
var ErrMalformedCSV = errors.New("malformed pedigree csv")

// Column names of a pedigree file. Columns may appear in any order.
const (
	ColumnName   = "name"
	ColumnMother = "mother"
	ColumnFather = "father"
	ColumnTrait  = "trait"
)

// ReadPeople parses a pedigree CSV with a header row naming the name,
// mother, father and trait columns. mother and father must both be blank or
// both be set; trait is 1, 0 or blank for unknown.
func ReadPeople(r io.Reader) ([]Person, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedCSV)
	} else if err != nil {
		return nil, pfx.Err(err)
	}

	cols := map[string]int{}
	for i, field := range header {
		cols[strings.ToLower(strings.TrimSpace(field))] = i
	}
	for _, required := range []string{ColumnName, ColumnMother, ColumnFather, ColumnTrait} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: header has no %q column", ErrMalformedCSV, required)
		}
	}

	var people []Person
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}
		line, _ := reader.FieldPos(0)

		person, err := parsePerson(record, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}
		people = append(people, person)
	}

	return people, nil
}

func parsePerson(record []string, cols map[string]int) (Person, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[cols[name]])
	}

	person := Person{Name: field(ColumnName)}
	if person.Name == "" {
		return person, errors.New("blank name")
	}

	mother, father := field(ColumnMother), field(ColumnFather)
	switch {
	case mother == "" && father == "":
	case mother == "" || father == "":
		return person, fmt.Errorf("%q must have both parents or neither", person.Name)
	default:
		person.Parents = &Parents{Mother: mother, Father: father}
	}

	trait, err := ParseTrait(field(ColumnTrait))
	if err != nil {
		return person, fmt.Errorf("%q: %v", person.Name, err)
	}
	person.Trait = trait

	return person, nil
}

// ParseTrait interprets "1" as present, "0" as absent and a blank as
// unknown.
func ParseTrait(s string) (Trait, error) {
	switch strings.TrimSpace(s) {
	case "":
		return TraitUnknown, nil
	case "0":
		return TraitAbsent, nil
	case "1":
		return TraitPresent, nil
	default:
		return TraitUnknown, fmt.Errorf("trait %q is not 0, 1 or blank", s)
	}
}

// LoadPedigree opens path (see Open), parses it and validates the result.
func LoadPedigree(ctx context.Context, path string) (*Pedigree, error) {
	f, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	people, err := ReadPeople(f)
	if err != nil {
		return nil, err
	}

	return NewPedigree(people)
}
