package recgo

import (
	"fmt"
	"iter"

	"github.com/hupe1980/recgo/codec"
	"github.com/hupe1980/recgo/index"
)

// Table is a named, append-only collection of records with declared
// columns and unique keys.
//
// A Table owns its row arena and its per-column indexes. Every declared
// unique column gets a unique index at declaration time; non-unique
// columns get a multi-value index when a join chain targets them.
//
// Tables are not safe for concurrent use.
type Table struct {
	name      string
	columns   []*Column
	colByName map[string]*Column
	uniques   []*Column
	rows      [][]any
	uniqueIdx map[string]*index.Unique
	multiIdx  map[string]*index.Multi
	relations map[string]*Relation
	logger    *Logger
}

// Declare creates a table with the given ordered columns. Every name in
// uniques must appear in columns; each becomes a unique-key column backed
// by its own index.
func Declare(name string, columns []string, uniques []string, opts ...Option) (*Table, error) {
	opt := options{
		logger: NoopLogger(),
	}
	for _, fn := range opts {
		fn(&opt)
	}

	if name == "" {
		return nil, fmt.Errorf("table name must not be empty")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s: at least one column required", name)
	}

	t := &Table{
		name:      name,
		colByName: make(map[string]*Column, len(columns)),
		uniqueIdx: make(map[string]*index.Unique),
		multiIdx:  make(map[string]*index.Multi),
		relations: make(map[string]*Relation),
		logger:    opt.logger,
	}

	for i, colName := range columns {
		if colName == "" {
			return nil, fmt.Errorf("table %s: column name must not be empty", name)
		}
		if _, ok := t.colByName[colName]; ok {
			return nil, fmt.Errorf("table %s: duplicate column %s", name, colName)
		}
		col := &Column{t: t, name: colName, pos: i}
		t.columns = append(t.columns, col)
		t.colByName[colName] = col
	}

	for _, colName := range uniques {
		col, ok := t.colByName[colName]
		if !ok {
			return nil, fmt.Errorf("table %s: unique column %s is not declared", name, colName)
		}
		if col.unique {
			return nil, fmt.Errorf("table %s: duplicate unique column %s", name, colName)
		}
		col.unique = true
		t.uniques = append(t.uniques, col)
		t.uniqueIdx[colName] = index.NewUnique()
	}

	t.logger.Debug("table declared",
		"table", name,
		"columns", len(columns),
		"uniques", len(uniques),
	)

	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of stored records.
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns the table's column handles in declared order.
func (t *Table) Columns() []*Column {
	return append([]*Column(nil), t.columns...)
}

// Col returns the column handle for name.
func (t *Table) Col(name string) (*Column, bool) {
	col, ok := t.colByName[name]
	return col, ok
}

// MustCol returns the column handle for name, panicking if the table
// does not declare it. Intended for schema wiring at startup.
func (t *Table) MustCol(name string) *Column {
	col, ok := t.colByName[name]
	if !ok {
		panic(fmt.Sprintf("recgo: table %s does not declare column %s", t.name, name))
	}
	return col
}

// Construct builds a candidate record from values in declared column
// order and inserts it with deduplication.
//
//   - If any unique column's value is nil, the row is incomplete and is
//     silently skipped: ok is false and err is nil.
//   - If the candidate fully equals an existing record matched via every
//     unique index, the existing record is returned unchanged (idempotent
//     re-insert).
//   - If a unique key matches an existing record whose other columns
//     differ, or the unique indexes disagree with each other, Construct
//     fails with *ErrUniqueConflict and the table is left unchanged.
//   - Otherwise the record is appended and every index is updated.
func (t *Table) Construct(values ...any) (rec Record, ok bool, err error) {
	if len(values) != len(t.columns) {
		return Record{}, false, fmt.Errorf("table %s: got %d values for %d columns", t.name, len(values), len(t.columns))
	}

	for _, col := range t.uniques {
		if values[col.pos] == nil {
			return Record{}, false, nil
		}
	}

	// Probe every unique index before touching anything.
	missed := false
	var matchCol, conflictCol *Column
	var matchPos uint32
	for _, col := range t.uniques {
		pos, hit := t.uniqueIdx[col.name].Lookup(values[col.pos])
		if !hit {
			missed = true
			continue
		}
		if matchCol != nil && pos != matchPos {
			conflictCol = col
		}
		matchCol = col
		matchPos = pos
	}

	switch {
	case matchCol == nil:
		row := make([]any, len(values))
		copy(row, values)
		pos := uint32(len(t.rows))
		t.rows = append(t.rows, row)
		for _, col := range t.uniques {
			t.uniqueIdx[col.name].Insert(row[col.pos], pos)
		}
		for name, ix := range t.multiIdx {
			ix.Insert(row[t.colByName[name].pos], pos)
		}
		t.logger.LogConstruct(t.name, true, nil)
		return Record{t: t, pos: pos}, true, nil

	case missed || conflictCol != nil:
		// A key collides on matchCol while another unique column
		// disagrees: a partial match is a schema violation.
		if conflictCol == nil {
			conflictCol = matchCol
		}
		err := &ErrUniqueConflict{Table: t.name, Column: conflictCol.name, Key: values[conflictCol.pos]}
		t.logger.LogConstruct(t.name, false, err)
		return Record{}, false, err

	default:
		// Every unique index points at the same record; it must equal
		// the candidate elementwise or the payload diverged.
		row := t.rows[matchPos]
		for i := range row {
			if row[i] != values[i] {
				col := t.uniques[0]
				err := &ErrUniqueConflict{Table: t.name, Column: col.name, Key: values[col.pos]}
				t.logger.LogConstruct(t.name, false, err)
				return Record{}, false, err
			}
		}
		t.logger.LogConstruct(t.name, false, nil)
		return Record{t: t, pos: matchPos}, true, nil
	}
}

// Records returns an iterator over the table's records in insertion
// order. The iterator covers the rows present when it starts; mutating
// the table while iterating is undefined.
func (t *Table) Records() iter.Seq[Record] {
	rows := t.rows
	return func(yield func(Record) bool) {
		for i := range rows {
			if !yield(Record{t: t, pos: uint32(i)}) {
				return
			}
		}
	}
}

// LookupUnique returns the record whose value at col equals key.
//
// col must be one of the table's declared unique columns. A miss fails
// with *ErrLookupMiss.
func (t *Table) LookupUnique(col *Column, key any) (Record, error) {
	if col == nil || col.t != t {
		name := "<nil>"
		if col != nil {
			name = col.name
		}
		return Record{}, &ErrColumnNotFound{Table: t.name, Column: name}
	}
	if !col.unique {
		return Record{}, fmt.Errorf("table %s: column %s is not unique", t.name, col.name)
	}
	return t.lookupUnique(col, key)
}

func (t *Table) lookupUnique(col *Column, key any) (Record, error) {
	pos, ok := t.uniqueIdx[col.name].Lookup(key)
	if !ok {
		return Record{}, &ErrLookupMiss{Table: t.name, Column: col.name, Key: key}
	}
	return Record{t: t, pos: pos}, nil
}

func (t *Table) lookupMulti(col *Column, key any) ([]Record, error) {
	positions, ok := t.multiIdx[col.name].Lookup(key)
	if !ok {
		return nil, &ErrLookupMiss{Table: t.name, Column: col.name, Key: key}
	}
	recs := make([]Record, len(positions))
	for i, pos := range positions {
		recs[i] = Record{t: t, pos: pos}
	}
	return recs, nil
}

// ensureMulti creates the multi-value index for col if absent and
// backfills it from the rows already stored, so compiling joins after
// loading data observes every record.
func (t *Table) ensureMulti(col *Column) {
	if _, ok := t.multiIdx[col.name]; ok {
		return
	}
	ix := index.NewMulti()
	for pos, row := range t.rows {
		ix.Insert(row[col.pos], uint32(pos))
	}
	t.multiIdx[col.name] = ix

	t.logger.Debug("multi index built",
		"table", t.name,
		"column", col.name,
		"keys", ix.Len(),
	)
}

// IndexKind returns the index shape currently backing col.
func (t *Table) IndexKind(col *Column) index.Kind {
	if col == nil || col.t != t {
		return index.KindNone
	}
	if col.unique {
		return index.KindUnique
	}
	if _, ok := t.multiIdx[col.name]; ok {
		return index.KindMulti
	}
	return index.KindNone
}

// DefineRelation attaches a compiled relation to the table under name,
// making it retrievable per record via Relation.
func (t *Table) DefineRelation(name string, rel *Relation) error {
	if rel == nil {
		return fmt.Errorf("table %s: relation %s is nil", t.name, name)
	}
	if rel.root != t {
		return fmt.Errorf("table %s: relation %s starts at table %s", t.name, name, rel.root.name)
	}
	if _, ok := t.relations[name]; ok {
		return fmt.Errorf("table %s: relation %s already defined", t.name, name)
	}
	t.relations[name] = rel
	return nil
}

// Relation returns the relation attached under name.
func (t *Table) Relation(name string) (*Relation, bool) {
	rel, ok := t.relations[name]
	return rel, ok
}

// ExportJSON encodes the table as an array of column-name-to-value
// objects in insertion order using the given codec.
//
// If c is nil, codec.Default is used.
func (t *Table) ExportJSON(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	docs := make([]map[string]any, 0, len(t.rows))
	for rec := range t.Records() {
		docs = append(docs, rec.Document())
	}
	return c.Marshal(docs)
}

// MarshalJSON implements json.Marshaler via ExportJSON with the default
// codec.
func (t *Table) MarshalJSON() ([]byte, error) {
	return t.ExportJSON(nil)
}
