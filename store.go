package heredity

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS person (
	pedigree TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	mother TEXT,
	father TEXT,
	trait INTEGER,
	PRIMARY KEY (pedigree, name)
);

CREATE TABLE IF NOT EXISTS run (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	pedigree TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	configurations INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS posterior (
	run_id INTEGER NOT NULL REFERENCES run(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	gene0 REAL NOT NULL,
	gene1 REAL NOT NULL,
	gene2 REAL NOT NULL,
	trait_absent REAL NOT NULL,
	trait_present REAL NOT NULL,
	PRIMARY KEY (run_id, name)
);
`

// ErrPedigreeHasRuns is returned when saving a different pedigree under a
// name that stored runs already refer to.
var ErrPedigreeHasRuns = errors.New("pedigree has stored runs")

// Store keeps pedigrees and the posteriors computed from them in a sqlite
// database.
type Store struct {
	DB *sqlx.DB
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// OpenStore opens (creating if needed) the sqlite database at path.
func OpenStore(path string) (*Store, error) {
	db, err := connect(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Pragmas are per connection, and sqlite serializes writers anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return &Store{DB: db}, nil
}

// personRow conforms to the rows of the person table.
type personRow struct {
	Pedigree string         `db:"pedigree"`
	Position int            `db:"position"`
	Name     string         `db:"name"`
	Mother   sql.NullString `db:"mother"`
	Father   sql.NullString `db:"father"`
	Trait    sql.NullInt64  `db:"trait"`
}

// Run describes one stored inference.
type Run struct {
	ID             int64  `db:"id"`
	Pedigree       string `db:"pedigree"`
	CreatedAt      Time   `db:"created_at"`
	Configurations uint64 `db:"configurations"`
}

// posteriorRow conforms to the rows of the posterior table.
type posteriorRow struct {
	RunID        int64   `db:"run_id"`
	Position     int     `db:"position"`
	Name         string  `db:"name"`
	Gene0        float64 `db:"gene0"`
	Gene1        float64 `db:"gene1"`
	Gene2        float64 `db:"gene2"`
	TraitAbsent  float64 `db:"trait_absent"`
	TraitPresent float64 `db:"trait_present"`
}

// SavePedigree stores p under name, replacing any pedigree already stored
// under that name. Runs are keyed by pedigree name, so once a run refers to
// a stored pedigree only an identical pedigree may be saved under its name
// again; anything else fails with ErrPedigreeHasRuns.
func (s *Store) SavePedigree(name string, p *Pedigree) error {
	rows := make([]personRow, len(p.people))
	for i, person := range p.people {
		rows[i] = newPersonRow(name, i, person)
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	var runs int
	if err := tx.Get(&runs, `SELECT COUNT(*) FROM run WHERE pedigree = ?`, name); err != nil {
		return pfx.Err(err)
	}
	if runs > 0 {
		var stored []personRow
		if err := tx.Select(&stored, `SELECT * FROM person WHERE pedigree = ? ORDER BY position ASC`, name); err != nil {
			return pfx.Err(err)
		}
		if len(stored) > 0 && !samePersonRows(stored, rows) {
			return fmt.Errorf("%w: %d runs refer to %q", ErrPedigreeHasRuns, runs, name)
		}
	}

	if _, err := tx.Exec(`DELETE FROM person WHERE pedigree = ?`, name); err != nil {
		return pfx.Err(err)
	}

	for _, row := range rows {
		if _, err := tx.NamedExec(`INSERT INTO person (pedigree, position, name, mother, father, trait)
			VALUES (:pedigree, :position, :name, :mother, :father, :trait)`, row); err != nil {
			return pfx.Err(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func newPersonRow(pedigree string, position int, person Person) personRow {
	row := personRow{
		Pedigree: pedigree,
		Position: position,
		Name:     person.Name,
	}
	if !person.Founder() {
		row.Mother = sql.NullString{String: person.Parents.Mother, Valid: true}
		row.Father = sql.NullString{String: person.Parents.Father, Valid: true}
	}
	if person.Trait.Known() {
		row.Trait = sql.NullInt64{Valid: true}
		if person.Trait.Present() {
			row.Trait.Int64 = 1
		}
	}
	return row
}

func samePersonRows(a, b []personRow) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// LoadPedigree reads back and validates the pedigree stored under name.
func (s *Store) LoadPedigree(name string) (*Pedigree, error) {
	var rows []personRow
	if err := s.DB.Select(&rows, `SELECT * FROM person WHERE pedigree = ? ORDER BY position ASC`, name); err != nil {
		return nil, pfx.Err(err)
	}
	if len(rows) == 0 {
		return nil, pfx.Err(fmt.Errorf("no pedigree named %q", name))
	}

	people := make([]Person, 0, len(rows))
	for _, row := range rows {
		person := Person{Name: row.Name}
		if row.Mother.Valid || row.Father.Valid {
			person.Parents = &Parents{Mother: row.Mother.String, Father: row.Father.String}
		}
		if row.Trait.Valid {
			person.Trait = TraitAbsent
			if row.Trait.Int64 != 0 {
				person.Trait = TraitPresent
			}
		}
		people = append(people, person)
	}

	return NewPedigree(people)
}

// SaveResult records r as a new run over the named pedigree and returns the
// run's ID.
func (s *Store) SaveResult(pedigree string, r *Result) (int64, error) {
	tx, err := s.DB.Beginx()
	if err != nil {
		return 0, pfx.Err(err)
	}
	defer tx.Rollback()

	configurations := r.Configurations
	if configurations > math.MaxInt64 {
		configurations = math.MaxInt64
	}

	res, err := tx.Exec(`INSERT INTO run (pedigree, created_at, configurations) VALUES (?, ?, ?)`,
		pedigree, Time(time.Now()), int64(configurations))
	if err != nil {
		return 0, pfx.Err(err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, pfx.Err(err)
	}

	for i, name := range r.names {
		d := r.dists[name]
		row := posteriorRow{
			RunID:        runID,
			Position:     i,
			Name:         name,
			Gene0:        d.Gene[GeneZero],
			Gene1:        d.Gene[GeneOne],
			Gene2:        d.Gene[GeneTwo],
			TraitAbsent:  d.Trait[0],
			TraitPresent: d.Trait[1],
		}
		if _, err := tx.NamedExec(`INSERT INTO posterior (run_id, position, name, gene0, gene1, gene2, trait_absent, trait_present)
			VALUES (:run_id, :position, :name, :gene0, :gene1, :gene2, :trait_absent, :trait_present)`, row); err != nil {
			return 0, pfx.Err(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, pfx.Err(err)
	}

	return runID, nil
}

// LoadResult reads back the posteriors of a stored run.
func (s *Store) LoadResult(runID int64) (*Result, error) {
	var run Run
	if err := s.DB.Get(&run, `SELECT * FROM run WHERE id = ?`, runID); err != nil {
		return nil, pfx.Err(err)
	}

	var rows []posteriorRow
	if err := s.DB.Select(&rows, `SELECT * FROM posterior WHERE run_id = ? ORDER BY position ASC`, runID); err != nil {
		return nil, pfx.Err(err)
	}

	r := &Result{
		Configurations: run.Configurations,
		names:          make([]string, 0, len(rows)),
		dists:          make(map[string]Distribution, len(rows)),
	}
	for _, row := range rows {
		r.names = append(r.names, row.Name)
		r.dists[row.Name] = Distribution{
			Gene:  [NGeneCounts]float64{row.Gene0, row.Gene1, row.Gene2},
			Trait: [2]float64{row.TraitAbsent, row.TraitPresent},
		}
	}

	return r, nil
}

// Runs lists the stored runs over the named pedigree, oldest first.
func (s *Store) Runs(pedigree string) ([]Run, error) {
	var runs []Run
	if err := s.DB.Select(&runs, `SELECT * FROM run WHERE pedigree = ? ORDER BY id ASC`, pedigree); err != nil {
		return nil, pfx.Err(err)
	}
	return runs, nil
}
